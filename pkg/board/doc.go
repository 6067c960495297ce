// Package board implements the quilt placement board: the exclusive
// token-to-cell relation, hover feedback, and the reducer that turns pointer
// drag events into placement transitions.
//
// # Placement relation
//
// A Board owns two indexes that always agree: cell -> token and
// token -> cell. A cell hosts at most one token and a token occupies at most
// one cell. TryPlace is the only mutator besides Restore; it checks
// occupancy and updates both indexes in the same call, so a failed call
// leaves the relation exactly as it was.
//
// # Token references
//
// A drag is either a palette reference (types.PaletteRef) that mints a new
// token on a successful drop, or a placed reference (types.PlacedRef) that
// relocates an existing token. Dropping a placed token outside the grid
// removes it; dropping a palette shape outside the grid does nothing.
//
// # Concurrency
//
// Board and DragController are not safe for concurrent use. The host UI
// delivers drag events one at a time.
//
// # Example
//
//	b, _ := board.New(types.Grid{Rows: 2, Cols: 2}, palette.Default())
//	mv, err := b.TryPlace(types.PaletteRef(palette.BlueSquare), "c1")
//	if errors.Is(err, types.ErrCellOccupied) {
//	    // snap back
//	}
//	_, _ = b.TryPlace(types.PlacedRef(mv.Placement.TokenID), "c2")
package board
