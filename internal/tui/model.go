package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/mesh-intelligence/quiltboard/pkg/board"
	"github.com/mesh-intelligence/quiltboard/pkg/palette"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// SaveFunc persists the current placements.
type SaveFunc func([]types.Placement) error

// Model is the bubbletea model of the editor. Key presses stand in for the
// pointer: the cursor is the pointer position and picking up a shape or token
// starts a drag that follows the cursor until it is dropped.
type Model struct {
	title  string
	ctrl   *board.DragController
	pal    *palette.Palette
	save   SaveFunc
	logger *log.Logger

	row, col int
	status   string
	failed   bool
	dirty    bool
	quitting bool
}

// New builds an editor over ctrl's board. save may be nil for a read-only
// session; logger may be nil.
func New(title string, ctrl *board.DragController, pal *palette.Palette, save SaveFunc, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return Model{
		title:  title,
		ctrl:   ctrl,
		pal:    pal,
		save:   save,
		logger: logger,
		status: "pick a shape with 1-9",
	}
}

// Cursor returns the cell under the pointer.
func (m Model) Cursor() types.CellID {
	return m.ctrl.Board().Grid().CellIDAt(m.row, m.col)
}

// Dirty reports unsaved changes.
func (m Model) Dirty() bool { return m.dirty }

// Status returns the last status line.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case " ", "enter":
		m.pickOrDrop()
	case "x", "backspace", "delete":
		m.remove()
	case "esc":
		if ref, ok := m.ctrl.Active(); ok {
			m.ctrl.OnDragCancel()
			m.logger.Debug("drag cancelled", "ref", ref)
			m.ok("dropped nothing")
		}
	case "s":
		m.persist()
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			m.pickShape(int(s[0] - '1'))
		}
	}
	return m, nil
}

func (m *Model) move(dr, dc int) {
	g := m.ctrl.Board().Grid()
	m.row = clamp(m.row+dr, 0, g.Rows-1)
	m.col = clamp(m.col+dc, 0, g.Cols-1)
	if _, dragging := m.ctrl.Active(); dragging {
		// OnDragOver only fails without an active drag.
		_ = m.ctrl.OnDragOver(m.Cursor())
	}
}

func (m *Model) pickShape(i int) {
	shapes := m.pal.Shapes()
	if i >= len(shapes) {
		return
	}
	if _, dragging := m.ctrl.Active(); dragging {
		m.fail(types.ErrDragInProgress)
		return
	}
	ref := types.PaletteRef(shapes[i].Kind)
	if err := m.start(ref); err != nil {
		m.fail(err)
		return
	}
	m.ok("carrying " + shapes[i].Name)
}

func (m *Model) pickOrDrop() {
	if ref, dragging := m.ctrl.Active(); dragging {
		m.drop(ref, m.Cursor())
		return
	}
	tok, ok := m.ctrl.Board().Occupant(m.Cursor())
	if !ok {
		m.ok("nothing here to pick up")
		return
	}
	if err := m.start(types.PlacedRef(tok.TokenID)); err != nil {
		m.fail(err)
		return
	}
	m.ok(fmt.Sprintf("carrying %s from %s", tok.Shape, m.Cursor()))
}

// remove drops the carried token outside the grid, or lifts the token under
// the cursor and drops it outside in one step.
func (m *Model) remove() {
	ref, dragging := m.ctrl.Active()
	if !dragging {
		tok, ok := m.ctrl.Board().Occupant(m.Cursor())
		if !ok {
			return
		}
		ref = types.PlacedRef(tok.TokenID)
		if err := m.start(ref); err != nil {
			m.fail(err)
			return
		}
	}
	m.drop(ref, types.NoCell)
}

func (m *Model) start(ref types.TokenRef) error {
	if err := m.ctrl.OnDragStart(ref); err != nil {
		return err
	}
	m.logger.Debug("drag started", "ref", ref)
	return m.ctrl.OnDragOver(m.Cursor())
}

func (m *Model) drop(ref types.TokenRef, cell types.CellID) {
	mv, err := m.ctrl.OnDragEnd(ref, cell)
	if err != nil {
		m.logger.Debug("drop rejected", "ref", ref, "cell", cell, "err", err)
		m.fail(err)
		return
	}
	m.logger.Debug("drop", "ref", ref, "cell", cell, "action", mv.Action)
	if mv.Changed() {
		m.dirty = true
	}
	switch mv.Action {
	case types.MoveCreate:
		m.ok(fmt.Sprintf("placed %s on %s", mv.Placement.Shape, mv.Placement.CellID))
	case types.MoveRelocate:
		m.ok(fmt.Sprintf("moved %s from %s to %s", mv.Placement.Shape, mv.From, mv.Placement.CellID))
	case types.MoveRemove:
		m.ok(fmt.Sprintf("removed %s from %s", mv.Placement.Shape, mv.From))
	default:
		m.ok("no change")
	}
}

func (m *Model) persist() {
	if m.save == nil {
		m.fail(errors.New("read-only session"))
		return
	}
	if err := m.save(m.ctrl.Board().Placements()); err != nil {
		m.logger.Error("save failed", "err", err)
		m.fail(err)
		return
	}
	m.dirty = false
	m.ok("saved")
}

func (m *Model) ok(s string) {
	m.status, m.failed = s, false
}

func (m *Model) fail(err error) {
	m.status, m.failed = err.Error(), true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	title := m.title
	if m.dirty {
		title += " *"
	}
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(RenderBoard(m.ctrl.Board(), m.pal, m.Cursor()))
	b.WriteString("\n\n")
	b.WriteString(RenderPalette(m.pal))
	b.WriteString("\n\n")
	if m.failed {
		b.WriteString(styleErr.Render("✗ " + m.status))
	} else {
		b.WriteString(styleOK.Render("› " + m.status))
	}
	b.WriteString("\n")
	b.WriteString(styleDim.Render("←↑↓→ move  1-9 pick shape  ␣ pick/drop  x remove  esc cancel  s save  q quit"))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
