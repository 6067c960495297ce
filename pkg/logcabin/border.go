package logcabin

import (
	"errors"
	"fmt"
	"strings"
)

// BorderStyle selects the pieced border around the quilt.
type BorderStyle int

// Border styles in menu order.
const (
	FlyingGeese BorderStyle = iota
	Herringbone
	DelectableMountain
	Pinwheels
	TippedBricks
	Crossovers
)

// ErrUnknownBorderStyle is returned by ParseBorderStyle.
var ErrUnknownBorderStyle = errors.New("unknown border style")

type borderInfo struct {
	name   string
	slug   string
	factor float64 // border fabric per inch of perimeter
	color  string  // motif color in the preview
}

var borders = [...]borderInfo{
	FlyingGeese:        {"Flying Geese", "flying-geese", 2, "#bada55"},
	Herringbone:        {"Herringbone", "herringbone", 1.5, "#00ffff"},
	DelectableMountain: {"Delectable Mountain", "delectable-mountain", 2.5, "#ff69b4"},
	Pinwheels:          {"Pinwheels", "pinwheels", 3, "#ffb6c1"},
	TippedBricks:       {"Tipped Bricks", "tipped-bricks", 2.8, "#8a2be2"},
	Crossovers:         {"Crossovers", "crossovers", 1.8, "#ff6347"},
}

// BorderStyles lists every style in menu order.
func BorderStyles() []BorderStyle {
	out := make([]BorderStyle, len(borders))
	for i := range borders {
		out[i] = BorderStyle(i)
	}
	return out
}

func (s BorderStyle) valid() bool {
	return s >= 0 && int(s) < len(borders)
}

// String returns the display name, e.g. "Delectable Mountain".
func (s BorderStyle) String() string {
	if !s.valid() {
		return fmt.Sprintf("BorderStyle(%d)", int(s))
	}
	return borders[s].name
}

// Slug returns the flag-friendly name, e.g. "delectable-mountain".
func (s BorderStyle) Slug() string {
	if !s.valid() {
		return ""
	}
	return borders[s].slug
}

// Factor is the fabric multiplier applied to the border perimeter.
// Unknown styles use 1.
func (s BorderStyle) Factor() float64 {
	if !s.valid() {
		return 1
	}
	return borders[s].factor
}

// MotifColor is the color the preview draws the border motif in.
func (s BorderStyle) MotifColor() string {
	if !s.valid() {
		return "#000000"
	}
	return borders[s].color
}

// ParseBorderStyle accepts a display name or slug, case-insensitively.
func ParseBorderStyle(s string) (BorderStyle, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for i, b := range borders {
		if want == strings.ToLower(b.name) || want == b.slug {
			return BorderStyle(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownBorderStyle)
}

// MarshalText encodes the slug.
func (s BorderStyle) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("%d: %w", int(s), ErrUnknownBorderStyle)
	}
	return []byte(s.Slug()), nil
}

// UnmarshalText accepts anything ParseBorderStyle does.
func (s *BorderStyle) UnmarshalText(b []byte) error {
	v, err := ParseBorderStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
