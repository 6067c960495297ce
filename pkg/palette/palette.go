// Package palette provides the fixed catalog of draggable quilt-block shapes.
// A palette maps each shape kind to a render descriptor (geometry and a
// color pair). It is read-only once built; the placement board only asks
// whether a kind exists.
package palette

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// Geometry is the glyph drawn for a shape.
type Geometry string

// Supported geometries.
const (
	GeometrySquare                Geometry = "square"
	GeometryHalfSquareTriangle    Geometry = "half-square-triangle"
	GeometryQuarterSquareTriangle Geometry = "quarter-square-triangle"
	GeometryFlyingGeese           Geometry = "flying-geese"
)

var validGeometries = map[Geometry]bool{
	GeometrySquare:                true,
	GeometryHalfSquareTriangle:    true,
	GeometryQuarterSquareTriangle: true,
	GeometryFlyingGeese:           true,
}

// Kinds of the built-in shapes.
const (
	YellowSquare       types.ShapeKind = "yellowSquare"
	BlueSquare         types.ShapeKind = "blueSquare"
	HalfSquareTriangle types.ShapeKind = "halfSquareTriangle"
)

// ErrInvalidPalette is returned for catalogs that fail validation.
var ErrInvalidPalette = errors.New("invalid palette")

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Shape is the render descriptor of one palette entry. Secondary is only
// used by two-color geometries.
type Shape struct {
	Kind      types.ShapeKind `toml:"kind" json:"kind"`
	Name      string          `toml:"name" json:"name"`
	Geometry  Geometry        `toml:"geometry" json:"geometry"`
	Primary   string          `toml:"primary" json:"primary"`
	Secondary string          `toml:"secondary,omitempty" json:"secondary,omitempty"`
}

// TwoColor reports whether the geometry splits the square between two colors.
func (s Shape) TwoColor() bool {
	return s.Geometry != GeometrySquare
}

func (s Shape) validate() error {
	if s.Kind == "" {
		return fmt.Errorf("%w: shape kind must not be empty", ErrInvalidPalette)
	}
	if !validGeometries[s.Geometry] {
		return fmt.Errorf("%w: shape %q: unknown geometry %q", ErrInvalidPalette, s.Kind, s.Geometry)
	}
	if !hexColor.MatchString(s.Primary) {
		return fmt.Errorf("%w: shape %q: primary color %q is not #rrggbb", ErrInvalidPalette, s.Kind, s.Primary)
	}
	if s.TwoColor() && !hexColor.MatchString(s.Secondary) {
		return fmt.Errorf("%w: shape %q: secondary color %q is not #rrggbb", ErrInvalidPalette, s.Kind, s.Secondary)
	}
	return nil
}

// Palette is an immutable shape catalog.
type Palette struct {
	shapes map[types.ShapeKind]Shape
	order  []types.ShapeKind
}

// New validates shapes and builds a palette. Kinds must be unique and at
// least one shape is required. Shapes keep their given order.
func New(shapes ...Shape) (*Palette, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("%w: no shapes", ErrInvalidPalette)
	}
	p := &Palette{shapes: make(map[types.ShapeKind]Shape, len(shapes))}
	for _, s := range shapes {
		if s.Name == "" {
			s.Name = string(s.Kind)
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, dup := p.shapes[s.Kind]; dup {
			return nil, fmt.Errorf("%w: duplicate shape %q", ErrInvalidPalette, s.Kind)
		}
		p.shapes[s.Kind] = s
		p.order = append(p.order, s.Kind)
	}
	return p, nil
}

// Default returns the built-in catalog: a yellow square, a blue square, and
// a yellow/blue half-square triangle.
func Default() *Palette {
	p, err := New(
		Shape{Kind: YellowSquare, Name: "Yellow square", Geometry: GeometrySquare, Primary: "#ffff00"},
		Shape{Kind: BlueSquare, Name: "Blue square", Geometry: GeometrySquare, Primary: "#0000ff"},
		Shape{Kind: HalfSquareTriangle, Name: "Half-square triangle", Geometry: GeometryHalfSquareTriangle, Primary: "#ffff00", Secondary: "#0000ff"},
	)
	if err != nil {
		panic(err)
	}
	return p
}

// file is the TOML layout of a palette file:
//
//	[[shape]]
//	kind = "redSquare"
//	geometry = "square"
//	primary = "#ff0000"
type file struct {
	Shapes []Shape `toml:"shape"`
}

// Parse reads a TOML palette from r.
func Parse(r io.Reader) (*Palette, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPalette, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidPalette, undecoded[0].String())
	}
	return New(f.Shapes...)
}

// Load reads a TOML palette file.
func Load(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open palette: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Has reports whether kind is in the catalog.
func (p *Palette) Has(kind types.ShapeKind) bool {
	_, ok := p.shapes[kind]
	return ok
}

// Get returns the descriptor for kind.
func (p *Palette) Get(kind types.ShapeKind) (Shape, bool) {
	s, ok := p.shapes[kind]
	return s, ok
}

// Shapes returns the descriptors in catalog order.
func (p *Palette) Shapes() []Shape {
	out := make([]Shape, 0, len(p.order))
	for _, k := range p.order {
		out = append(out, p.shapes[k])
	}
	return out
}

// Kinds returns the shape kinds sorted by name.
func (p *Palette) Kinds() []types.ShapeKind {
	out := append([]types.ShapeKind(nil), p.order...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len is the number of shapes.
func (p *Palette) Len() int {
	return len(p.order)
}
