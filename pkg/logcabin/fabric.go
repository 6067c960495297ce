package logcabin

// StripArea is the fabric needed for one strip color.
type StripArea struct {
	Color string  `json:"color"`
	Area  float64 `json:"area"`
}

// Fabric is the approximate fabric area per color, in square inches.
type Fabric struct {
	Center      float64     `json:"center"`
	CenterColor string      `json:"center_color"`
	Strips      []StripArea `json:"strips"`
	Border      float64     `json:"border"`
}

// Total sums every entry.
func (f Fabric) Total() float64 {
	t := f.Center + f.Border
	for _, s := range f.Strips {
		t += s.Area
	}
	return t
}

// Estimate computes fabric needs for p. Each piece is treated as a square
// of its finished size plus seam allowance on both sides.
func Estimate(p Params) (Fabric, error) {
	if err := p.Validate(); err != nil {
		return Fabric{}, err
	}
	n := float64(p.Rows * p.Cols)
	sw := p.StripWidth()
	seams := 2 * p.SeamAllowance

	f := Fabric{
		Center:      n * sq(sw+seams),
		CenterColor: p.CenterColor,
		Strips:      make([]StripArea, len(p.StripColors)),
		Border:      BorderFabric(p),
	}
	for i, c := range p.StripColors {
		f.Strips[i] = StripArea{
			Color: c,
			Area:  n * sq(p.BlockSize-float64(i+1)*sw+seams),
		}
	}
	return f, nil
}

// BorderFabric is the border perimeter times the style factor.
func BorderFabric(p Params) float64 {
	perimeter := 2*(float64(p.Cols)*p.BlockSize+float64(p.Rows)*p.BlockSize) + 4*p.BorderWidth
	return perimeter * p.BorderStyle.Factor()
}

func sq(v float64) float64 { return v * v }
