package logcabin

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
)

// DefaultScale is the preview resolution in pixels per inch.
const DefaultScale = 40

// maxPixels bounds the canvas so a typo in the inputs cannot allocate
// gigabytes.
const maxPixels = 64 << 20

// Render rasterizes the quilt: every block as nested log cabin squares and
// the selected border motif tiled along all four sides.
func Render(p Params, scale float64) (image.Image, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !positive(scale) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidParams, scale)
	}
	wIn, hIn := p.Size()
	wf, hf := math.Ceil(wIn*scale), math.Ceil(hIn*scale)
	// Bound in float64; the int product of two large sides wraps.
	if !(wf >= 1 && hf >= 1 && wf*hf <= maxPixels) {
		return nil, fmt.Errorf("%w: canvas %.0fx%.0f pixels", ErrInvalidParams, wf, hf)
	}
	w, h := int(wf), int(hf)

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	r := renderer{dc: dc, p: p, scale: scale, w: float64(w), h: float64(h)}
	for row := 0; row < p.Rows; row++ {
		for col := 0; col < p.Cols; col++ {
			x := (float64(col)*p.BlockSize + p.BorderWidth) * scale
			y := (float64(row)*p.BlockSize + p.BorderWidth) * scale
			r.block(x, y)
		}
	}
	if p.BorderWidth > 0 {
		r.border()
	}
	if r.err != nil {
		return nil, fmt.Errorf("render: %w", r.err)
	}
	return dc.Image(), nil
}

type renderer struct {
	dc    *gg.Context
	p     Params
	scale float64
	w, h  float64
	err   error
}

func (r *renderer) fill() {
	if err := r.dc.Fill(); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *renderer) stroke() {
	if err := r.dc.Stroke(); err != nil && r.err == nil {
		r.err = err
	}
}

// block draws the center color over the whole block, then each strip inset
// by one strip width toward the bottom-right corner.
func (r *renderer) block(x, y float64) {
	sw := r.p.StripWidth() * r.scale
	size := r.p.BlockSize * r.scale
	colors := append([]string{r.p.CenterColor}, r.p.StripColors...)
	for i, c := range colors {
		off := float64(i) * sw
		r.dc.SetHexColor(c)
		r.dc.DrawRectangle(x+off, y+off, size-off, size-off)
		r.fill()
	}
}

// side is one border band. Tiles run along it from its origin; inward is
// the unit direction from the quilt edge toward the blocks.
type side struct {
	x, y   float64 // outer corner where tiling starts
	dx, dy float64 // tiling direction
	nx, ny float64 // inward normal
	length float64
}

func (r *renderer) sides() []side {
	return []side{
		{x: 0, y: 0, dx: 1, ny: 1, length: r.w},    // top
		{x: 0, y: r.h, dx: 1, ny: -1, length: r.w}, // bottom
		{x: 0, y: 0, dy: 1, nx: 1, length: r.h},    // left
		{x: r.w, y: 0, dy: 1, nx: -1, length: r.h}, // right
	}
}

// pt maps tile-local coordinates (u along the side, v inward) to pixels.
func (s side) pt(u, v float64) (float64, float64) {
	return s.x + u*s.dx + v*s.nx, s.y + u*s.dy + v*s.ny
}

func (r *renderer) poly(s side, uv ...float64) {
	x, y := s.pt(uv[0], uv[1])
	r.dc.MoveTo(x, y)
	for i := 2; i+1 < len(uv); i += 2 {
		x, y = s.pt(uv[i], uv[i+1])
		r.dc.LineTo(x, y)
	}
}

func (r *renderer) border() {
	t := r.p.BorderWidth * r.scale
	r.dc.SetHexColor(r.p.BorderStyle.MotifColor())
	r.dc.SetLineWidth(2)

	for _, s := range r.sides() {
		for u := 0.0; u < s.length; u += t {
			switch r.p.BorderStyle {
			case FlyingGeese:
				// base on the outer edge, point toward the blocks
				r.poly(s, u, 0, u+t/2, t, u+t, 0)
				r.dc.ClosePath()
				r.fill()
			case Herringbone:
				r.poly(s, u, 0, u+t/2, t, u+t, 0)
				r.stroke()
			case DelectableMountain:
				// base on the inner edge, peak toward the outside
				r.poly(s, u, t, u+t/2, 0, u+t, t)
				r.dc.ClosePath()
				r.fill()
			case Pinwheels:
				cu, cv := u+t/2, t/2
				r.poly(s, u, 0, cu, cv, u+t/2, 0)
				r.dc.ClosePath()
				r.poly(s, u+t, 0, cu, cv, u+t, t/2)
				r.dc.ClosePath()
				r.poly(s, u+t, t, cu, cv, u+t/2, t)
				r.dc.ClosePath()
				r.poly(s, u, t, cu, cv, u, t/2)
				r.dc.ClosePath()
				r.fill()
			case TippedBricks:
				r.poly(s, u, 0, u+t, 0, u+t, t/2, u, t/2)
				r.dc.ClosePath()
				r.fill()
			case Crossovers:
				r.poly(s, u, t/4, u+t, t/4, u+t, 3*t/4, u, 3*t/4)
				r.dc.ClosePath()
				r.poly(s, u+t/4, 0, u+3*t/4, 0, u+3*t/4, t, u+t/4, t)
				r.dc.ClosePath()
				r.fill()
			}
		}
	}
}
