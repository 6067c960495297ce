package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quiltboard/internal/tui"
	"github.com/mesh-intelligence/quiltboard/pkg/board"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// designView is the JSON shape of a design with its board snapshot.
type designView struct {
	*types.Design
	Cells []board.CellState `json:"cells,omitempty"`
}

func newNewCmd(a *app) *cobra.Command {
	var rows, cols int
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grid := defaultGrid(a.cfg)
			if cmd.Flags().Changed("rows") {
				grid.Rows = rows
			}
			if cmd.Flags().Changed("cols") {
				grid.Cols = cols
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			d, err := store.Create(args[0], grid)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("design created", "id", d.DesignID, "grid", fmt.Sprintf("%dx%d", grid.Rows, grid.Cols))

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			printSuccess(cmd.OutOrStdout(), "created %s (%dx%d)", d.Name, d.Rows, d.Cols)
			printKeyValue(cmd.OutOrStdout(), "id", d.DesignID)
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", types.DefaultRows, "grid rows (default from config grid.rows)")
	cmd.Flags().IntVar(&cols, "cols", types.DefaultColumns, "grid columns (default from config grid.cols)")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored designs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			designs, err := store.List()
			if err != nil {
				return sysErr(err)
			}
			if a.jsonMode {
				if designs == nil {
					designs = []*types.Design{}
				}
				return writeJSON(cmd.OutOrStdout(), designs)
			}
			if len(designs) == 0 {
				printWarning(cmd.OutOrStdout(), "no designs yet; create one with quilt new <name>")
				return nil
			}

			rows := make([][]string, 0, len(designs))
			for _, d := range designs {
				rows = append(rows, []string{
					d.Name,
					fmt.Sprintf("%dx%d", d.Rows, d.Cols),
					fmt.Sprintf("%d/%d", len(d.Placements), d.Grid().Size()),
					d.UpdatedAt.Local().Format(time.DateTime),
					d.DesignID,
				})
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(styleDim).
				Headers("Name", "Grid", "Filled", "Updated", "ID").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == headerRow {
						return styleHeader
					}
					if col == 4 {
						return styleDim
					}
					return lipgloss.NewStyle()
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <design>",
		Short: "Show a design's grid and placements",
		Long:  "Show a design by id or name. The grid shows each placed shape by its palette number.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pal, err := a.loadPalette()
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			d, err := store.Get(args[0])
			if err != nil {
				return err
			}
			b, err := loadBoard(d, pal)
			if err != nil {
				return err
			}

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), designView{Design: d, Cells: b.Snapshot()})
			}
			w := cmd.OutOrStdout()
			printTitle(w, d.Name)
			printKeyValue(w, "id", d.DesignID)
			printKeyValue(w, "grid", fmt.Sprintf("%dx%d", d.Rows, d.Cols))
			printKeyValue(w, "placements", fmt.Sprint(len(d.Placements)))
			fmt.Fprintln(w)
			fmt.Fprintln(w, tui.RenderBoard(b, pal, types.NoCell))
			fmt.Fprintln(w)
			fmt.Fprintln(w, tui.RenderPalette(pal))
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <design>",
		Short: "Delete a design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			d, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(d.DesignID); err != nil {
				return err
			}
			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]string{"deleted": d.DesignID})
			}
			printSuccess(cmd.OutOrStdout(), "deleted %s", d.Name)
			return nil
		},
	}
}
