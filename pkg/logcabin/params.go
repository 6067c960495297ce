package logcabin

import (
	"errors"
	"fmt"
	"math"
	"regexp"
)

// ErrInvalidParams is returned when calculator inputs are out of range.
var ErrInvalidParams = errors.New("invalid log cabin parameters")

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Params are the calculator inputs. Lengths are in inches.
type Params struct {
	BlockSize     float64     `json:"block_size"`
	Rows          int         `json:"rows"`
	Cols          int         `json:"cols"`
	SeamAllowance float64     `json:"seam_allowance"`
	BorderStyle   BorderStyle `json:"border_style"`
	BorderWidth   float64     `json:"border_width"`
	CenterColor   string      `json:"center_color"`
	StripColors   []string    `json:"strip_colors"`
}

// DefaultParams returns a 5x5 quilt of 12 inch blocks with a red center,
// four warm strips, and a 4 inch Flying Geese border.
func DefaultParams() Params {
	return Params{
		BlockSize:     12,
		Rows:          5,
		Cols:          5,
		SeamAllowance: 0.25,
		BorderStyle:   FlyingGeese,
		BorderWidth:   4,
		CenterColor:   "#ff0000",
		StripColors:   []string{"#ffcc00", "#ff9900", "#ff6600", "#ff3300"},
	}
}

// Validate checks that all lengths are positive and finite, counts are at
// least one, and colors are hex.
func (p Params) Validate() error {
	switch {
	case !positive(p.BlockSize):
		return fmt.Errorf("%w: block size %v must be positive", ErrInvalidParams, p.BlockSize)
	case p.Rows < 1 || p.Cols < 1:
		return fmt.Errorf("%w: %dx%d blocks", ErrInvalidParams, p.Rows, p.Cols)
	case p.SeamAllowance < 0 || math.IsNaN(p.SeamAllowance) || math.IsInf(p.SeamAllowance, 0):
		return fmt.Errorf("%w: seam allowance %v", ErrInvalidParams, p.SeamAllowance)
	case p.BorderWidth < 0 || math.IsNaN(p.BorderWidth) || math.IsInf(p.BorderWidth, 0):
		return fmt.Errorf("%w: border width %v", ErrInvalidParams, p.BorderWidth)
	case !p.BorderStyle.valid():
		return fmt.Errorf("%w: %w", ErrInvalidParams, ErrUnknownBorderStyle)
	case len(p.StripColors) == 0:
		return fmt.Errorf("%w: at least one strip color is required", ErrInvalidParams)
	}
	for _, c := range append([]string{p.CenterColor}, p.StripColors...) {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidParams, c)
		}
	}
	return nil
}

// StripWidth is the finished width of one log: the block is split evenly
// between the center square and each strip.
func (p Params) StripWidth() float64 {
	return p.BlockSize / float64(len(p.StripColors)+1)
}

// Size returns the finished quilt width and height including the border.
func (p Params) Size() (width, height float64) {
	return float64(p.Cols)*p.BlockSize + 2*p.BorderWidth,
		float64(p.Rows)*p.BlockSize + 2*p.BorderWidth
}

// BlockSizeFor returns the largest block size that fits rows x cols blocks
// into a quilt of the given width and height.
func BlockSizeFor(quiltWidth, quiltHeight float64, rows, cols int) (float64, error) {
	if !positive(quiltWidth) || !positive(quiltHeight) || rows < 1 || cols < 1 {
		return 0, fmt.Errorf("%w: quilt %vx%v with %dx%d blocks", ErrInvalidParams, quiltWidth, quiltHeight, rows, cols)
	}
	return math.Min(quiltWidth/float64(cols), quiltHeight/float64(rows)), nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
