package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quiltboard/pkg/board"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

var errPlaceSubject = errors.New("exactly one of --shape or --token is required")

func newPlaceCmd(a *app) *cobra.Command {
	var shape, token string
	cmd := &cobra.Command{
		Use:   "place <design> [cell]",
		Short: "Drop a palette shape or a placed token on a cell",
		Long: `Place runs one drag: pick up a palette shape (--shape) or a token already on
the board (--token) and drop it on cell. Cells are written c1..cN in row-major
order or as row,col counting from 1. Without a cell the drop lands outside
the grid, which removes a placed token.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (shape == "") == (token == "") {
				return errPlaceSubject
			}
			ref := types.PlacedRef(token)
			if shape != "" {
				ref = types.PaletteRef(types.ShapeKind(shape))
			}

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

			target := types.NoCell
			if len(args) == 2 {
				if target, err = parseCellArg(b, args[1]); err != nil {
					return err
				}
			}

			mv, err := drag(board.NewDragController(b), ref, target)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			logger.Debug("drop", "design", d.Name, "ref", ref, "cell", target, "action", mv.Action)

			if mv.Changed() {
				d.SetPlacements(b.Placements())
				if err := store.Save(d); err != nil {
					return err
				}
			}

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"action":    mv.Action.String(),
					"placement": mv.Placement,
					"from":      mv.From,
				})
			}
			w := cmd.OutOrStdout()
			switch mv.Action {
			case types.MoveCreate:
				printSuccess(w, "placed %s on %s", mv.Placement.Shape, mv.Placement.CellID)
				printKeyValue(w, "token", mv.Placement.TokenID)
			case types.MoveRelocate:
				printSuccess(w, "moved %s from %s to %s", mv.Placement.Shape, mv.From, mv.Placement.CellID)
			case types.MoveRemove:
				printSuccess(w, "removed %s from %s", mv.Placement.Shape, mv.From)
			default:
				printWarning(w, "no change")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&shape, "shape", "", "palette shape kind to instantiate")
	cmd.Flags().StringVar(&token, "token", "", "id of a placed token to move or remove")
	return cmd
}

// drag replays a complete pointer drag of ref onto target.
func drag(ctrl *board.DragController, ref types.TokenRef, target types.CellID) (types.Move, error) {
	if err := ctrl.OnDragStart(ref); err != nil {
		return types.Move{}, err
	}
	if err := ctrl.OnDragOver(target); err != nil {
		ctrl.OnDragCancel()
		return types.Move{}, err
	}
	return ctrl.OnDragEnd(ref, target)
}

// parseCellArg accepts a cell id ("c7") or a 1-based "row,col" pair.
func parseCellArg(b *board.Board, s string) (types.CellID, error) {
	s = strings.TrimSpace(s)
	if r, c, ok := strings.Cut(s, ","); ok {
		row, err1 := strconv.Atoi(strings.TrimSpace(r))
		col, err2 := strconv.Atoi(strings.TrimSpace(c))
		g := b.Grid()
		if err1 != nil || err2 != nil || row < 1 || col < 1 || row > g.Rows || col > g.Cols {
			return types.NoCell, fmt.Errorf("%q: %w", s, types.ErrUnknownCell)
		}
		return g.CellIDAt(row-1, col-1), nil
	}
	return b.ResolveCell(types.CellID(strings.ToLower(s)))
}
