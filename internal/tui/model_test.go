package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quiltboard/pkg/board"
	"github.com/mesh-intelligence/quiltboard/pkg/palette"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEscape}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, save SaveFunc) (Model, *board.Board) {
	t.Helper()
	b, err := board.New(types.Grid{Rows: 2, Cols: 2}, palette.Default(), board.WithIDGenerator(board.SequentialIDs("t")))
	require.NoError(t, err)
	return New("test", board.NewDragController(b), palette.Default(), save, nil), b
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func TestPlaceFromPalette(t *testing.T) {
	m, b := newTestModel(t, nil)

	m = press(t, m, runes("1"))
	ref, dragging := m.ctrl.Active()
	require.True(t, dragging)
	assert.Equal(t, types.PaletteRef(palette.YellowSquare), ref)

	m = press(t, m, keyRight)
	hover, ok := b.Hover()
	require.True(t, ok)
	assert.Equal(t, types.CellID("c2"), hover, "hover follows the cursor while dragging")

	m = press(t, m, keySpace)
	tok, ok := b.Occupant("c2")
	require.True(t, ok)
	assert.Equal(t, palette.YellowSquare, tok.Shape)
	_, dragging = m.ctrl.Active()
	assert.False(t, dragging)
	assert.True(t, m.Dirty())
	assert.Contains(t, m.Status(), "placed")
}

func TestRelocateWithEnter(t *testing.T) {
	m, b := newTestModel(t, nil)
	m = press(t, m, runes("2"), keyEnter)
	id, _ := b.Occupant("c1")

	m = press(t, m, keyEnter, keyDown, keyEnter)
	assert.False(t, b.IsOccupied("c1"))
	tok, ok := b.Occupant("c3")
	require.True(t, ok)
	assert.Equal(t, id.TokenID, tok.TokenID)
	assert.Contains(t, m.Status(), "moved")
}

func TestDropOntoOccupiedSnapsBack(t *testing.T) {
	m, b := newTestModel(t, nil)
	m = press(t, m, runes("1"), keySpace, keyRight, runes("2"), keySpace)
	require.Equal(t, 2, b.Len())

	// Carry the blue square onto the yellow one.
	m = press(t, m, keySpace, keyLeft, keySpace)
	assert.True(t, m.failed)
	assert.Contains(t, m.Status(), types.ErrCellOccupied.Error())
	blue, _ := b.Occupant("c2")
	assert.Equal(t, palette.BlueSquare, blue.Shape, "rejected token stays put")
	_, dragging := m.ctrl.Active()
	assert.False(t, dragging)
}

func TestRemove(t *testing.T) {
	m, b := newTestModel(t, nil)
	m = press(t, m, runes("3"), keySpace)
	require.True(t, b.IsOccupied("c1"))

	m = press(t, m, runes("x"))
	assert.False(t, b.IsOccupied("c1"))
	assert.Contains(t, m.Status(), "removed")

	// Carried token dropped outside with backspace.
	m = press(t, m, runes("1"), keySpace, keySpace, keyBack)
	assert.Equal(t, 0, b.Len())
}

func TestEscCancelsDrag(t *testing.T) {
	m, b := newTestModel(t, nil)
	m = press(t, m, runes("1"), keyRight, keyEsc)

	_, dragging := m.ctrl.Active()
	assert.False(t, dragging)
	_, hovering := b.Hover()
	assert.False(t, hovering)
	assert.Equal(t, 0, b.Len())
	assert.False(t, m.Dirty())
}

func TestPickShapeWhileDragging(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, runes("1"), runes("2"))
	assert.True(t, m.failed)
	ref, _ := m.ctrl.Active()
	assert.Equal(t, palette.YellowSquare, ref.Shape, "first drag survives")

	m = press(t, m, keyEsc, runes("9"))
	_, dragging := m.ctrl.Active()
	assert.False(t, dragging, "keys past the palette are ignored")
}

func TestCursorClampsToGrid(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, keyLeft, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, types.CellID("c1"), m.Cursor())
	m = press(t, m, keyRight, keyRight, keyRight, keyDown, keyDown)
	assert.Equal(t, types.CellID("c4"), m.Cursor())
}

func TestSave(t *testing.T) {
	var saved []types.Placement
	m, _ := newTestModel(t, func(ps []types.Placement) error {
		saved = ps
		return nil
	})
	m = press(t, m, runes("2"), keySpace, runes("s"))
	require.Len(t, saved, 1)
	assert.Equal(t, types.CellID("c1"), saved[0].CellID)
	assert.False(t, m.Dirty())

	failing, _ := newTestModel(t, func([]types.Placement) error { return errors.New("disk full") })
	failing = press(t, failing, runes("1"), keySpace, runes("s"))
	assert.True(t, failing.Dirty())
	assert.Equal(t, "disk full", failing.Status())

	readOnly, _ := newTestModel(t, nil)
	readOnly = press(t, readOnly, runes("s"))
	assert.True(t, readOnly.failed)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = press(t, m, runes("1"), keySpace)

	v := m.View()
	assert.Contains(t, v, "test *")
	assert.Contains(t, v, "Yellow square")
	assert.Contains(t, v, "Half-square triangle")
	lines := strings.Split(RenderBoard(m.ctrl.Board(), m.pal, m.Cursor()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[ 1 ]")
	assert.Contains(t, lines[1], emptyCell)
}
