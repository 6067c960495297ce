package logcabin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateDefaults(t *testing.T) {
	f, err := Estimate(DefaultParams())
	require.NoError(t, err)

	// 25 blocks, 2.4in strips, 0.5in of seams per piece.
	assert.InDelta(t, 210.25, f.Center, 1e-9)
	assert.Equal(t, "#ff0000", f.CenterColor)
	require.Len(t, f.Strips, 4)
	want := []float64{2550.25, 1482.25, 702.25, 210.25}
	for i, s := range f.Strips {
		assert.InDelta(t, want[i], s.Area, 1e-9, "strip %d", i)
	}
	assert.Equal(t, "#ff3300", f.Strips[3].Color)

	// perimeter 2*(60+60) + 16 = 256, Flying Geese doubles it.
	assert.InDelta(t, 512, f.Border, 1e-9)
	assert.InDelta(t, 210.25+2550.25+1482.25+702.25+210.25+512, f.Total(), 1e-9)
}

func TestBorderFabricFactors(t *testing.T) {
	p := DefaultParams()
	want := map[BorderStyle]float64{
		FlyingGeese:        512,
		Herringbone:        384,
		DelectableMountain: 640,
		Pinwheels:          768,
		TippedBricks:       716.8,
		Crossovers:         460.8,
	}
	for style, area := range want {
		t.Run(style.String(), func(t *testing.T) {
			p.BorderStyle = style
			assert.InDelta(t, area, BorderFabric(p), 1e-9)
		})
	}
}

func TestEstimateStripCountSetsStripWidth(t *testing.T) {
	p := DefaultParams()
	p.StripColors = []string{"#111111", "#222222"}
	p.SeamAllowance = 0
	p.Rows, p.Cols = 1, 1

	f, err := Estimate(p)
	require.NoError(t, err)
	assert.InDelta(t, 16, f.Center, 1e-9)
	assert.InDelta(t, 64, f.Strips[0].Area, 1e-9)
	assert.InDelta(t, 16, f.Strips[1].Area, 1e-9)
}

func TestEstimateRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero block size", func(p *Params) { p.BlockSize = 0 }},
		{"no rows", func(p *Params) { p.Rows = 0 }},
		{"negative seam", func(p *Params) { p.SeamAllowance = -0.25 }},
		{"negative border", func(p *Params) { p.BorderWidth = -1 }},
		{"unknown style", func(p *Params) { p.BorderStyle = BorderStyle(99) }},
		{"no strips", func(p *Params) { p.StripColors = nil }},
		{"bad center color", func(p *Params) { p.CenterColor = "red" }},
		{"bad strip color", func(p *Params) { p.StripColors = []string{"#12"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			_, err := Estimate(p)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

func TestBlockSizeFor(t *testing.T) {
	got, err := BlockSizeFor(60, 80, 5, 5)
	require.NoError(t, err)
	assert.InDelta(t, 12, got, 1e-9)

	got, err = BlockSizeFor(90, 40, 4, 6)
	require.NoError(t, err)
	assert.InDelta(t, 10, got, 1e-9)

	_, err = BlockSizeFor(0, 40, 4, 6)
	assert.ErrorIs(t, err, ErrInvalidParams)
	_, err = BlockSizeFor(40, 40, 0, 6)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestParamsSize(t *testing.T) {
	w, h := DefaultParams().Size()
	assert.InDelta(t, 68, w, 1e-9)
	assert.InDelta(t, 68, h, 1e-9)
}
