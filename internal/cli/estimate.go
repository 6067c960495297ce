package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quiltboard/pkg/logcabin"
)

// paramFlags are the log cabin calculator inputs shared by estimate and
// preview.
type paramFlags struct {
	blockSize   float64
	rows, cols  int
	seam        float64
	border      string
	borderWidth float64
	quiltWidth  float64
	quiltHeight float64
	center      string
	strips      []string
}

func addParamFlags(cmd *cobra.Command, f *paramFlags) {
	d := logcabin.DefaultParams()
	fs := cmd.Flags()
	fs.Float64Var(&f.blockSize, "block-size", d.BlockSize, "finished block size in inches")
	fs.IntVar(&f.rows, "rows", d.Rows, "blocks down")
	fs.IntVar(&f.cols, "cols", d.Cols, "blocks across")
	fs.Float64Var(&f.seam, "seam", d.SeamAllowance, "seam allowance in inches")
	fs.StringVar(&f.border, "border", d.BorderStyle.Slug(), "border style")
	fs.Float64Var(&f.borderWidth, "border-width", d.BorderWidth, "border width in inches")
	fs.Float64Var(&f.quiltWidth, "quilt-width", 0, "total quilt width in inches; with --quilt-height derives the block size")
	fs.Float64Var(&f.quiltHeight, "quilt-height", 0, "total quilt height in inches")
	fs.StringVar(&f.center, "center-color", d.CenterColor, "center square color")
	fs.StringSliceVar(&f.strips, "strip-colors", d.StripColors, "strip colors from the center outwards")
}

// params builds calculator inputs from the flags.
func (f *paramFlags) params(cmd *cobra.Command) (logcabin.Params, error) {
	style, err := logcabin.ParseBorderStyle(f.border)
	if err != nil {
		return logcabin.Params{}, err
	}
	p := logcabin.Params{
		BlockSize:     f.blockSize,
		Rows:          f.rows,
		Cols:          f.cols,
		SeamAllowance: f.seam,
		BorderStyle:   style,
		BorderWidth:   f.borderWidth,
		CenterColor:   f.center,
		StripColors:   f.strips,
	}

	byQuilt := cmd.Flags().Changed("quilt-width") || cmd.Flags().Changed("quilt-height")
	if byQuilt {
		if cmd.Flags().Changed("block-size") {
			return logcabin.Params{}, fmt.Errorf("%w: --block-size conflicts with --quilt-width/--quilt-height", logcabin.ErrInvalidParams)
		}
		bs, err := logcabin.BlockSizeFor(f.quiltWidth, f.quiltHeight, f.rows, f.cols)
		if err != nil {
			return logcabin.Params{}, err
		}
		p.BlockSize = bs
	}
	return p, p.Validate()
}

// estimateView is the JSON output of estimate.
type estimateView struct {
	Params logcabin.Params `json:"params"`
	Fabric logcabin.Fabric `json:"fabric"`
	Total  float64         `json:"total"`
}

func newEstimateCmd(a *app) *cobra.Command {
	var f paramFlags
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate fabric for a log cabin quilt",
		Long: `Estimate the fabric area, in square inches, for a log cabin quilt: the
center squares, each strip color, and the border. Give either --block-size or
--quilt-width and --quilt-height.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.params(cmd)
			if err != nil {
				return err
			}
			fab, err := logcabin.Estimate(p)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("estimate", "block_size", p.BlockSize, "strip_width", p.StripWidth(), "border", p.BorderStyle)

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), estimateView{Params: p, Fabric: fab, Total: fab.Total()})
			}

			w := cmd.OutOrStdout()
			width, height := p.Size()
			printTitle(w, "Log cabin quilt")
			printKeyValue(w, "quilt", fmt.Sprintf("%.2f x %.2f in", width, height))
			printKeyValue(w, "blocks", fmt.Sprintf("%d x %d at %.2f in", p.Cols, p.Rows, p.BlockSize))
			printKeyValue(w, "strip width", fmt.Sprintf("%.2f in", p.StripWidth()))
			printKeyValue(w, "border", fmt.Sprintf("%s, %.2f in", p.BorderStyle, p.BorderWidth))
			fmt.Fprintln(w)

			rows := [][]string{{"Center", fab.CenterColor, area(fab.Center)}}
			for i, s := range fab.Strips {
				rows = append(rows, []string{fmt.Sprintf("Strip %d", i+1), s.Color, area(s.Area)})
			}
			rows = append(rows,
				[]string{"Border", p.BorderStyle.MotifColor(), area(fab.Border)},
				[]string{"Total", "", area(fab.Total())},
			)
			last := len(rows) - 1
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(styleDim).
				Headers("Piece", "Color", "Fabric (sq in)").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == headerRow:
						return styleHeader
					case row == last:
						return styleTitle
					case col == 2:
						return styleNumber
					}
					return lipgloss.NewStyle()
				})
			fmt.Fprintln(w, t.Render())
			return nil
		},
	}
	addParamFlags(cmd, &f)
	return cmd
}

func area(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
