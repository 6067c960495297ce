package logcabin

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallParams renders to a 120x120 canvas: 2x2 blocks of 4in at 10px/in
// with a 2in (20px) border. Strips are 0.8in (8px) wide.
func smallParams() Params {
	p := DefaultParams()
	p.BlockSize = 4
	p.Rows, p.Cols = 2, 2
	p.BorderWidth = 2
	return p
}

func assertPixel(t *testing.T, img image.Image, x, y int, hex string) {
	t.Helper()
	want := color.NRGBAModel.Convert(gg.Hex(hex).Color()).(color.NRGBA)
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	near := func(a, b uint8) bool { return a-b <= 2 || b-a <= 2 }
	assert.True(t, near(want.R, got.R) && near(want.G, got.G) && near(want.B, got.B) && near(want.A, got.A),
		"pixel (%d,%d): want %v, got %v", x, y, want, got)
}

func TestRenderSize(t *testing.T) {
	img, err := Render(smallParams(), 10)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestRenderBlocks(t *testing.T) {
	p := smallParams()
	img, err := Render(p, 10)
	require.NoError(t, err)

	// First block spans 20..60 on both axes.
	assertPixel(t, img, 22, 22, p.CenterColor)
	assertPixel(t, img, 31, 31, p.StripColors[0])
	assertPixel(t, img, 56, 56, p.StripColors[3])
	// Last block spans 60..100.
	assertPixel(t, img, 62, 62, p.CenterColor)
	assertPixel(t, img, 97, 97, p.StripColors[3])
}

func TestRenderTippedBricksBorder(t *testing.T) {
	p := smallParams()
	p.BorderStyle = TippedBricks
	img, err := Render(p, 10)
	require.NoError(t, err)

	assertPixel(t, img, 10, 5, p.BorderStyle.MotifColor())
	assertPixel(t, img, 15, 15, "#ffffff")
	assertPixel(t, img, 5, 50, p.BorderStyle.MotifColor())
}

func TestRenderCrossoversBorder(t *testing.T) {
	p := smallParams()
	p.BorderStyle = Crossovers
	img, err := Render(p, 10)
	require.NoError(t, err)

	assertPixel(t, img, 50, 10, p.BorderStyle.MotifColor())
	assertPixel(t, img, 42, 2, "#ffffff")
}

func TestRenderNoBorder(t *testing.T) {
	p := smallParams()
	p.BorderWidth = 0
	img, err := Render(p, 10)
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assertPixel(t, img, 2, 2, p.CenterColor)
}

func TestRenderEveryStyle(t *testing.T) {
	for _, s := range BorderStyles() {
		t.Run(s.Slug(), func(t *testing.T) {
			p := smallParams()
			p.BorderStyle = s
			img, err := Render(p, 4)
			require.NoError(t, err)
			assert.Equal(t, 48, img.Bounds().Dx())
		})
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	_, err := Render(smallParams(), 0)
	assert.ErrorIs(t, err, ErrInvalidParams)

	p := smallParams()
	p.BlockSize = 1e6
	_, err = Render(p, DefaultScale)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestRenderRejectsOversizedCanvas(t *testing.T) {
	huge := smallParams()
	huge.BlockSize = 1 << 32
	huge.Rows, huge.Cols = 1, 1
	huge.BorderWidth = 0

	tests := []struct {
		name  string
		p     Params
		scale float64
	}{
		{"sides whose int product wraps", huge, 1},
		{"huge scale", smallParams(), 1 << 32},
		{"one side over the budget", smallParams(), maxPixels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.p, tt.scale)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}
