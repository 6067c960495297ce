package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newPaletteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the shapes that can be placed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pal, err := a.loadPalette()
			if err != nil {
				return err
			}
			shapes := pal.Shapes()
			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), shapes)
			}

			rows := make([][]string, 0, len(shapes))
			for i, s := range shapes {
				colors := s.Primary
				if s.TwoColor() {
					colors += " / " + s.Secondary
				}
				rows = append(rows, []string{fmt.Sprint(i + 1), string(s.Kind), s.Name, string(s.Geometry), colors})
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(styleDim).
				Headers("#", "Kind", "Name", "Geometry", "Colors").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == headerRow {
						return styleHeader
					}
					if col == 0 {
						return styleNumber
					}
					return lipgloss.NewStyle()
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
