package board

import (
	"fmt"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// DragController reduces pointer drag events into board operations.
// A drag starts with OnDragStart, receives any number of OnDragOver calls,
// and ends with exactly one OnDragEnd or OnDragCancel.
type DragController struct {
	board  *Board
	active *types.TokenRef
}

// NewDragController attaches a reducer to b.
func NewDragController(b *Board) *DragController {
	return &DragController{board: b}
}

// Board returns the board the controller drives.
func (d *DragController) Board() *Board {
	return d.board
}

// Active returns the reference being dragged.
func (d *DragController) Active() (types.TokenRef, bool) {
	if d.active == nil {
		return types.TokenRef{}, false
	}
	return *d.active, true
}

// OnDragStart begins dragging ref. The reference must be a palette shape or
// a token currently on the board.
func (d *DragController) OnDragStart(ref types.TokenRef) error {
	if d.active != nil {
		return fmt.Errorf("start %s while dragging %s: %w", ref, *d.active, types.ErrDragInProgress)
	}
	if ref.IsPalette() {
		if !d.board.catalog.Has(ref.Shape) {
			return fmt.Errorf("start %s: %w", ref, types.ErrUnknownShape)
		}
	} else if _, ok := d.board.CellOf(ref.TokenID); !ok {
		return fmt.Errorf("start %s: %w", ref, types.ErrUnknownToken)
	}
	d.active = &ref
	return nil
}

// OnDragOver reports the candidate cell under the pointer, or NoCell.
func (d *DragController) OnDragOver(cell types.CellID) error {
	if d.active == nil {
		return types.ErrNoActiveDrag
	}
	d.board.HoverCandidate(cell)
	return nil
}

// OnDragEnd finishes the drag of ref at cell (NoCell for outside the grid).
// The drag is over and hover is cleared whether or not the placement
// succeeds; a failed placement leaves the token where it was.
func (d *DragController) OnDragEnd(ref types.TokenRef, cell types.CellID) (types.Move, error) {
	if d.active == nil {
		return types.Move{}, types.ErrNoActiveDrag
	}
	if *d.active != ref {
		return types.Move{}, fmt.Errorf("end %s while dragging %s: %w", ref, *d.active, types.ErrDragMismatch)
	}
	d.active = nil
	d.board.HoverCandidate(types.NoCell)
	return d.board.TryPlace(ref, cell)
}

// OnDragCancel abandons the drag without touching the placement relation.
func (d *DragController) OnDragCancel() {
	d.active = nil
	d.board.HoverCandidate(types.NoCell)
}
