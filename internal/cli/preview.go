package cli

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quiltboard/pkg/logcabin"
)

// halfBlock draws two vertically stacked pixels in one terminal cell:
// foreground is the upper pixel and background the lower.
const halfBlock = "▀"

func newPreviewCmd(a *app) *cobra.Command {
	var f paramFlags
	var columns int
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw the log cabin quilt diagram in the terminal",
		Long: `Rasterize the log cabin quilt diagram and print it with terminal colors,
two pixels per character cell. Takes the same flags as estimate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if columns < 1 {
				return fmt.Errorf("%w: --columns must be positive", logcabin.ErrInvalidParams)
			}
			p, err := f.params(cmd)
			if err != nil {
				return err
			}
			width, _ := p.Size()
			scale := float64(columns) / width

			prog := newProgress(loggerFromContext(cmd.Context()))
			img, err := logcabin.Render(p, scale)
			if err != nil {
				return err
			}
			bounds := img.Bounds()
			prog.done(fmt.Sprintf("Rendered %dx%d diagram", bounds.Dx(), bounds.Dy()))

			if a.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"params": p,
					"width":  bounds.Dx(),
					"height": bounds.Dy(),
					"scale":  scale,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), terminalImage(img))
			return nil
		},
	}
	addParamFlags(cmd, &f)
	cmd.Flags().IntVar(&columns, "columns", 64, "preview width in terminal columns")
	return cmd
}

// terminalImage renders img with one half block per pair of pixel rows.
func terminalImage(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexOf(img.At(x, y))
			bottom := top
			if y+1 < b.Max.Y {
				bottom = hexOf(img.At(x, y+1))
			}
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(top)).Background(lipgloss.Color(bottom))
			sb.WriteString(st.Render(halfBlock))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func hexOf(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
