package board

import (
	"fmt"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// Catalog is the read-only view of the shape palette the board needs.
type Catalog interface {
	Has(kind types.ShapeKind) bool
}

// Option configures a Board.
type Option func(*Board)

// WithIDGenerator replaces the UUID v7 token id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(b *Board) { b.newID = gen }
}

// CellState is one entry of a board snapshot.
type CellState struct {
	Cell     types.CellID `json:"cell_id"`
	Row      int          `json:"row"`
	Col      int          `json:"col"`
	Occupant *types.Token `json:"occupant,omitempty"`
	Hovered  bool         `json:"hovered,omitempty"`
}

// Board is the placement board. The zero value is not usable; call New.
type Board struct {
	grid    types.Grid
	cells   []types.CellID
	catalog Catalog
	newID   IDGenerator

	byCell  map[types.CellID]types.Token
	byToken map[string]types.CellID

	hover types.CellID
}

// New builds an empty board over grid. Cells are created once here and never
// change.
func New(grid types.Grid, catalog Catalog, opts ...Option) (*Board, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, fmt.Errorf("board: nil catalog")
	}
	b := &Board{
		grid:    grid,
		cells:   make([]types.CellID, 0, grid.Size()),
		catalog: catalog,
		newID:   NewTokenID,
		byCell:  make(map[types.CellID]types.Token),
		byToken: make(map[string]types.CellID),
	}
	for r := 0; r < grid.Rows; r++ {
		for c := 0; c < grid.Cols; c++ {
			b.cells = append(b.cells, grid.CellIDAt(r, c))
		}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Grid returns the board layout.
func (b *Board) Grid() types.Grid {
	return b.grid
}

// Cells returns every cell id in row-major order.
func (b *Board) Cells() []types.CellID {
	return append([]types.CellID(nil), b.cells...)
}

// Len is the number of placed tokens.
func (b *Board) Len() int {
	return len(b.byToken)
}

// ResolveCell returns id if it belongs to the grid, ErrUnknownCell otherwise.
func (b *Board) ResolveCell(id types.CellID) (types.CellID, error) {
	if !b.grid.Contains(id) {
		return types.NoCell, fmt.Errorf("%q: %w", id, types.ErrUnknownCell)
	}
	return id, nil
}

// TryPlace drops ref onto target. An empty or unrecognized target means the
// drop landed outside the grid. On error the placement relation is
// unchanged.
func (b *Board) TryPlace(ref types.TokenRef, target types.CellID) (types.Move, error) {
	if !b.grid.Contains(target) {
		return b.dropOutside(ref)
	}

	occupant, occupied := b.byCell[target]

	if ref.IsPalette() {
		if !b.catalog.Has(ref.Shape) {
			return types.Move{}, fmt.Errorf("%q: %w", ref.Shape, types.ErrUnknownShape)
		}
		if occupied {
			return types.Move{}, fmt.Errorf("%s: %w", target, types.ErrCellOccupied)
		}
		tok := types.Token{TokenID: b.mintID(), Shape: ref.Shape}
		b.bind(tok, target)
		return types.Move{
			Action:    types.MoveCreate,
			Placement: placement(tok, target),
		}, nil
	}

	from, placed := b.byToken[ref.TokenID]
	if !placed {
		return types.Move{}, fmt.Errorf("%q: %w", ref.TokenID, types.ErrUnknownToken)
	}
	tok := b.byCell[from]

	if occupied {
		if occupant.TokenID != ref.TokenID {
			return types.Move{}, fmt.Errorf("%s: %w", target, types.ErrCellOccupied)
		}
		return types.Move{
			Action:    types.MoveUnchanged,
			Placement: placement(tok, target),
			From:      from,
		}, nil
	}

	delete(b.byCell, from)
	b.bind(tok, target)
	return types.Move{
		Action:    types.MoveRelocate,
		Placement: placement(tok, target),
		From:      from,
	}, nil
}

func (b *Board) dropOutside(ref types.TokenRef) (types.Move, error) {
	if ref.IsPalette() {
		return types.Move{Action: types.MoveNone}, nil
	}
	from, placed := b.byToken[ref.TokenID]
	if !placed {
		return types.Move{}, fmt.Errorf("%q: %w", ref.TokenID, types.ErrUnknownToken)
	}
	tok := b.byCell[from]
	delete(b.byCell, from)
	delete(b.byToken, ref.TokenID)
	return types.Move{
		Action:    types.MoveRemove,
		Placement: placement(tok, from),
		From:      from,
	}, nil
}

// mintID draws ids until one is unused. Custom generators may repeat ids
// that were restored from a saved design.
func (b *Board) mintID() string {
	for {
		id := b.newID()
		if _, taken := b.byToken[id]; !taken && id != "" {
			return id
		}
	}
}

func (b *Board) bind(tok types.Token, cell types.CellID) {
	b.byCell[cell] = tok
	b.byToken[tok.TokenID] = cell
}

func placement(tok types.Token, cell types.CellID) types.Placement {
	return types.Placement{TokenID: tok.TokenID, CellID: cell, Shape: tok.Shape}
}

// HoverCandidate records the cell under the pointer. An empty or unknown
// cell clears the hover state. The placement relation is never touched.
func (b *Board) HoverCandidate(cell types.CellID) {
	if !b.grid.Contains(cell) {
		b.hover = types.NoCell
		return
	}
	b.hover = cell
}

// Hover returns the hovered cell, if any.
func (b *Board) Hover() (types.CellID, bool) {
	return b.hover, b.hover != types.NoCell
}

// Occupant returns the token on cell.
func (b *Board) Occupant(cell types.CellID) (types.Token, bool) {
	tok, ok := b.byCell[cell]
	return tok, ok
}

// IsOccupied reports whether cell hosts a token.
func (b *Board) IsOccupied(cell types.CellID) bool {
	_, ok := b.byCell[cell]
	return ok
}

// CellOf returns the cell a placed token occupies.
func (b *Board) CellOf(tokenID string) (types.CellID, bool) {
	cell, ok := b.byToken[tokenID]
	return cell, ok
}

// Placements returns the relation in row-major cell order.
func (b *Board) Placements() []types.Placement {
	out := make([]types.Placement, 0, len(b.byCell))
	for _, cell := range b.cells {
		if tok, ok := b.byCell[cell]; ok {
			out = append(out, placement(tok, cell))
		}
	}
	return out
}

// Snapshot returns every cell with its occupant and hover flag, row-major.
func (b *Board) Snapshot() []CellState {
	out := make([]CellState, 0, len(b.cells))
	for i, cell := range b.cells {
		st := CellState{
			Cell:    cell,
			Row:     i / b.grid.Cols,
			Col:     i % b.grid.Cols,
			Hovered: cell == b.hover,
		}
		if tok, ok := b.byCell[cell]; ok {
			tok := tok
			st.Occupant = &tok
		}
		out = append(out, st)
	}
	return out
}

// Restore replaces the relation with ps, typically a saved design. Every
// placement is validated first; on error nothing changes.
func (b *Board) Restore(ps []types.Placement) error {
	byCell := make(map[types.CellID]types.Token, len(ps))
	byToken := make(map[string]types.CellID, len(ps))
	for _, p := range ps {
		if !b.grid.Contains(p.CellID) {
			return fmt.Errorf("restore %q: %w", p.CellID, types.ErrUnknownCell)
		}
		if p.TokenID == "" {
			return fmt.Errorf("restore %s: %w", p.CellID, types.ErrUnknownToken)
		}
		if !b.catalog.Has(p.Shape) {
			return fmt.Errorf("restore %q: %w", p.Shape, types.ErrUnknownShape)
		}
		if _, dup := byCell[p.CellID]; dup {
			return fmt.Errorf("restore %s: %w", p.CellID, types.ErrCellOccupied)
		}
		if _, dup := byToken[p.TokenID]; dup {
			return fmt.Errorf("restore %q: %w", p.TokenID, types.ErrDuplicateToken)
		}
		byCell[p.CellID] = p.Token()
		byToken[p.TokenID] = p.CellID
	}
	b.byCell = byCell
	b.byToken = byToken
	return nil
}
