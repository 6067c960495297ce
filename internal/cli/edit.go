package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quiltboard/internal/paths"
	"github.com/mesh-intelligence/quiltboard/internal/tui"
	"github.com/mesh-intelligence/quiltboard/pkg/board"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <design>",
		Short: "Edit a design in the terminal",
		Long: `Open the terminal editor. The cursor is the pointer: arrow keys move it,
1-9 pick up a palette shape, space or enter picks up the token under the
cursor or drops the carried one, x removes, esc cancels a drag, s saves,
q quits.`,
		Args: cobra.ExactArgs(1),
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

			// The editor owns the terminal; debug logs go to a file.
			var editLog *log.Logger
			if a.verbose {
				f, err := os.OpenFile(paths.EditLog(a.resolvedConfigDir), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return sysErr(fmt.Errorf("open edit log: %w", err))
				}
				defer f.Close()
				editLog = newLogger(f, log.DebugLevel)
			}

			save := func(ps []types.Placement) error {
				d.SetPlacements(ps)
				return store.Save(d)
			}
			model := tui.New(d.Name, board.NewDragController(b), pal, save, editLog)

			prog := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)
			final, err := prog.Run()
			if err != nil {
				return sysErr(fmt.Errorf("editor: %w", err))
			}
			if m, ok := final.(tui.Model); ok && m.Dirty() {
				printWarning(cmd.ErrOrStderr(), "unsaved changes to %s were discarded", d.Name)
			}
			return nil
		},
	}
}
