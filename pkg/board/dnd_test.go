package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

func TestDragPaletteToCell(t *testing.T) {
	b := newTestBoard(t)
	d := NewDragController(b)
	ref := types.PaletteRef(square)

	require.NoError(t, d.OnDragStart(ref))
	active, ok := d.Active()
	require.True(t, ok)
	assert.Equal(t, ref, active)

	require.NoError(t, d.OnDragOver("c1"))
	require.NoError(t, d.OnDragOver("c2"))
	hover, _ := b.Hover()
	assert.Equal(t, types.CellID("c2"), hover)
	assert.Equal(t, 0, b.Len(), "drag-over never places")

	mv, err := d.OnDragEnd(ref, "c2")
	require.NoError(t, err)
	assert.Equal(t, types.MoveCreate, mv.Action)

	_, ok = d.Active()
	assert.False(t, ok)
	_, ok = b.Hover()
	assert.False(t, ok, "drag end resets hover")
}

func TestDragEndFailureSnapsBack(t *testing.T) {
	b := newTestBoard(t)
	d := NewDragController(b)
	_, err := b.TryPlace(types.PaletteRef(square), "c1")
	require.NoError(t, err)
	_, err = b.TryPlace(types.PaletteRef(square), "c2")
	require.NoError(t, err)

	ref := types.PlacedRef("t2")
	require.NoError(t, d.OnDragStart(ref))
	require.NoError(t, d.OnDragOver("c1"))
	_, err = d.OnDragEnd(ref, "c1")
	assert.ErrorIs(t, err, types.ErrCellOccupied)

	cell, _ := b.CellOf("t2")
	assert.Equal(t, types.CellID("c2"), cell)
	_, ok := d.Active()
	assert.False(t, ok, "a failed drop still ends the drag")
	_, ok = b.Hover()
	assert.False(t, ok)
}

func TestDragOrdering(t *testing.T) {
	b := newTestBoard(t)
	d := NewDragController(b)
	ref := types.PaletteRef(square)

	assert.ErrorIs(t, d.OnDragOver("c1"), types.ErrNoActiveDrag)
	_, err := d.OnDragEnd(ref, "c1")
	assert.ErrorIs(t, err, types.ErrNoActiveDrag)

	require.NoError(t, d.OnDragStart(ref))
	assert.ErrorIs(t, d.OnDragStart(ref), types.ErrDragInProgress)

	_, err = d.OnDragEnd(types.PlacedRef("t9"), "c1")
	assert.ErrorIs(t, err, types.ErrDragMismatch)
	_, ok := d.Active()
	assert.True(t, ok, "mismatched end keeps the drag alive")
	assert.Equal(t, 0, b.Len())
}

func TestDragStartValidatesRef(t *testing.T) {
	b := newTestBoard(t)
	d := NewDragController(b)

	assert.ErrorIs(t, d.OnDragStart(types.PaletteRef("hexagon")), types.ErrUnknownShape)
	assert.ErrorIs(t, d.OnDragStart(types.PlacedRef("ghost")), types.ErrUnknownToken)
	_, ok := d.Active()
	assert.False(t, ok)
}

func TestDragCancel(t *testing.T) {
	b := newTestBoard(t)
	d := NewDragController(b)
	_, err := b.TryPlace(types.PaletteRef(square), "c1")
	require.NoError(t, err)

	ref := types.PlacedRef("t1")
	require.NoError(t, d.OnDragStart(ref))
	require.NoError(t, d.OnDragOver("c4"))
	d.OnDragCancel()

	cell, _ := b.CellOf("t1")
	assert.Equal(t, types.CellID("c1"), cell)
	_, ok := b.Hover()
	assert.False(t, ok)
	require.NoError(t, d.OnDragStart(ref), "cancel frees the controller for a new drag")
}

func TestDragPlacedOutsideRemoves(t *testing.T) {
	b := newTestBoard(t)
	d := NewDragController(b)
	_, err := b.TryPlace(types.PaletteRef(square), "c3")
	require.NoError(t, err)

	ref := types.PlacedRef("t1")
	require.NoError(t, d.OnDragStart(ref))
	require.NoError(t, d.OnDragOver(types.NoCell))
	mv, err := d.OnDragEnd(ref, types.NoCell)
	require.NoError(t, err)
	assert.Equal(t, types.MoveRemove, mv.Action)
	assert.Equal(t, 0, b.Len())
}
