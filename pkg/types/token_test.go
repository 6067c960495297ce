package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRef(t *testing.T) {
	p := PaletteRef("blueSquare")
	assert.True(t, p.IsPalette())
	assert.Equal(t, "palette:blueSquare", p.String())

	placed := PlacedRef("t1")
	assert.False(t, placed.IsPalette())
	assert.Equal(t, "token:t1", placed.String())
}

func TestMoveChanged(t *testing.T) {
	tests := []struct {
		action MoveAction
		want   bool
	}{
		{MoveNone, false},
		{MoveCreate, true},
		{MoveRelocate, true},
		{MoveUnchanged, false},
		{MoveRemove, true},
	}
	for _, tt := range tests {
		t.Run(tt.action.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Move{Action: tt.action}.Changed())
		})
	}
	assert.Equal(t, "unknown", MoveAction(42).String())
}

func TestDesignSetPlacements(t *testing.T) {
	d := &Design{Rows: 2, Cols: 3}
	ps := []Placement{{TokenID: "t1", CellID: "c1", Shape: "blueSquare"}}

	d.SetPlacements(ps)
	ps[0].CellID = "c2"

	assert.Equal(t, CellID("c1"), d.Placements[0].CellID, "design keeps its own copy")
	assert.Equal(t, Grid{Rows: 2, Cols: 3}, d.Grid())
	assert.False(t, d.UpdatedAt.IsZero())
}
