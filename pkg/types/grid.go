package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid size limits.
const (
	MaxGridSide    = 64
	DefaultRows    = 4
	DefaultColumns = 4
)

// CellID identifies one drop slot. Cells are numbered row-major from 1,
// so a 2x2 grid has cells c1 c2 (first row) and c3 c4 (second row).
type CellID string

// NoCell is the empty target: a drop outside every cell.
const NoCell CellID = ""

// Grid is the fixed rows x columns layout of a board.
type Grid struct {
	Rows int `json:"rows" yaml:"rows" mapstructure:"rows"`
	Cols int `json:"cols" yaml:"cols" mapstructure:"cols"`
}

// DefaultGrid returns the 4x4 layout.
func DefaultGrid() Grid {
	return Grid{Rows: DefaultRows, Cols: DefaultColumns}
}

// Validate returns ErrInvalidGrid if either side is out of range.
func (g Grid) Validate() error {
	if g.Rows < 1 || g.Cols < 1 || g.Rows > MaxGridSide || g.Cols > MaxGridSide {
		return fmt.Errorf("%dx%d: %w", g.Rows, g.Cols, ErrInvalidGrid)
	}
	return nil
}

// Size is the number of cells.
func (g Grid) Size() int {
	return g.Rows * g.Cols
}

// CellIDAt returns the id of the cell at zero-based row and col.
// It does not check bounds; use Contains for that.
func (g Grid) CellIDAt(row, col int) CellID {
	return CellID("c" + strconv.Itoa(row*g.Cols+col+1))
}

// Position returns the zero-based row and column of id.
// ok is false when id is malformed or outside the grid.
func (g Grid) Position(id CellID) (row, col int, ok bool) {
	n, ok := ParseCellID(id)
	if !ok || n > g.Size() {
		return 0, 0, false
	}
	return (n - 1) / g.Cols, (n - 1) % g.Cols, true
}

// Contains reports whether id names a cell of this grid.
func (g Grid) Contains(id CellID) bool {
	_, _, ok := g.Position(id)
	return ok
}

// ParseCellID returns the 1-based ordinal encoded in id ("c7" -> 7).
func ParseCellID(id CellID) (int, bool) {
	s, found := strings.CutPrefix(string(id), "c")
	if !found || s == "" || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
