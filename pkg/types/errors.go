package types

import "errors"

// Placement errors. TryPlace and Restore return these without mutating the
// placement relation.
var (
	ErrCellOccupied   = errors.New("cell is occupied by another token")
	ErrUnknownCell    = errors.New("cell is not part of the grid")
	ErrUnknownToken   = errors.New("token is not placed on the board")
	ErrUnknownShape   = errors.New("shape is not in the palette")
	ErrDuplicateToken = errors.New("token is placed more than once")
)

// Drag lifecycle errors.
var (
	ErrDragInProgress = errors.New("a drag is already in progress")
	ErrNoActiveDrag   = errors.New("no drag in progress")
	ErrDragMismatch   = errors.New("drag end does not match drag start")
)

// Grid errors.
var (
	ErrInvalidGrid = errors.New("grid rows and columns must be between 1 and 64")
)

// Store lifecycle and entity errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrNotFound        = errors.New("design not found")
	ErrInvalidID       = errors.New("invalid design ID")
	ErrInvalidName     = errors.New("invalid name")
	ErrAmbiguousName   = errors.New("design name matches more than one design")
)
