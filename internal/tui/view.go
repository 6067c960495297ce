// Package tui implements the terminal quilt editor: a bubbletea program that
// hosts a pointer over the board grid and turns key presses into drag events.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/quiltboard/pkg/board"
	"github.com/mesh-intelligence/quiltboard/pkg/palette"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleKey    = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCursor = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleHover  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
	styleErr    = lipgloss.NewStyle().Foreground(colorRed)
)

// Cell markers.
const (
	emptyCell   = "·"
	cursorLeft  = "["
	cursorRight = "]"
	hoverLeft   = "‹"
	hoverRight  = "›"
)

// RenderBoard draws the grid one line per row. Each occupied cell shows the
// palette key of its shape on the shape's colors; cursor marks the pointer
// cell and the hover candidate gets its own markers.
func RenderBoard(b *board.Board, pal *palette.Palette, cursor types.CellID) string {
	keys := paletteKeys(pal)
	g := b.Grid()
	snap := b.Snapshot()

	var sb strings.Builder
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			st := snap[r*g.Cols+c]
			left, right := " ", " "
			switch {
			case st.Cell == cursor:
				left, right = styleCursor.Render(cursorLeft), styleCursor.Render(cursorRight)
			case st.Hovered:
				left, right = styleHover.Render(hoverLeft), styleHover.Render(hoverRight)
			}
			sb.WriteString(left)
			sb.WriteString(renderSwatch(st.Occupant, pal, keys))
			sb.WriteString(right)
		}
		if r < g.Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func renderSwatch(tok *types.Token, pal *palette.Palette, keys map[types.ShapeKind]string) string {
	if tok == nil {
		return styleDim.Render(" " + emptyCell + " ")
	}
	label, ok := keys[tok.Shape]
	if !ok {
		label = "?"
	}
	shape, ok := pal.Get(tok.Shape)
	if !ok {
		return styleErr.Render(" " + label + " ")
	}
	primary := lipgloss.NewStyle().Background(lipgloss.Color(shape.Primary)).Foreground(lipgloss.Color(contrast(shape.Primary)))
	if !shape.TwoColor() {
		return primary.Render(" " + label + " ")
	}
	secondary := lipgloss.NewStyle().Background(lipgloss.Color(shape.Secondary)).Foreground(lipgloss.Color(contrast(shape.Secondary)))
	return primary.Render(" "+label) + secondary.Render(" ")
}

// RenderPalette lists the shapes with the digit keys that pick them up.
func RenderPalette(pal *palette.Palette) string {
	var parts []string
	for i, s := range pal.Shapes() {
		if i >= maxPaletteKeys {
			break
		}
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(s.Primary)).Render("  ")
		if s.TwoColor() {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(s.Primary)).Render(" ") +
				lipgloss.NewStyle().Background(lipgloss.Color(s.Secondary)).Render(" ")
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", styleKey.Render(fmt.Sprint(i+1)), swatch, s.Name))
	}
	return strings.Join(parts, "  ")
}

// maxPaletteKeys is the number of shapes reachable with the digit keys.
const maxPaletteKeys = 9

func paletteKeys(pal *palette.Palette) map[types.ShapeKind]string {
	keys := make(map[types.ShapeKind]string, pal.Len())
	for i, s := range pal.Shapes() {
		if i < maxPaletteKeys {
			keys[s.Kind] = fmt.Sprint(i + 1)
		} else {
			keys[s.Kind] = "+"
		}
	}
	return keys
}

// contrast picks black or white text for a hex background.
func contrast(hex string) string {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	var r, g, b int
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return "#ffffff"
	}
	// ITU-R BT.601 luma.
	if 299*r+587*g+114*b > 128000 {
		return "#000000"
	}
	return "#ffffff"
}
