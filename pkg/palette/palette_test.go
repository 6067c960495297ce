package palette

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

func TestDefault(t *testing.T) {
	p := Default()

	assert.Equal(t, 3, p.Len())
	assert.True(t, p.Has(YellowSquare))
	assert.True(t, p.Has(BlueSquare))
	assert.True(t, p.Has(HalfSquareTriangle))
	assert.False(t, p.Has("flyingGeese"))

	hst, ok := p.Get(HalfSquareTriangle)
	require.True(t, ok)
	assert.True(t, hst.TwoColor())
	assert.Equal(t, "#ffff00", hst.Primary)
	assert.Equal(t, "#0000ff", hst.Secondary)

	assert.Equal(t, []types.ShapeKind{BlueSquare, HalfSquareTriangle, YellowSquare}, p.Kinds())
	assert.Equal(t, YellowSquare, p.Shapes()[0].Kind, "Shapes keeps catalog order")
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		shapes []Shape
	}{
		{name: "empty catalog"},
		{name: "empty kind", shapes: []Shape{{Geometry: GeometrySquare, Primary: "#fff"}}},
		{name: "unknown geometry", shapes: []Shape{{Kind: "x", Geometry: "hexagon", Primary: "#fff"}}},
		{name: "bad primary", shapes: []Shape{{Kind: "x", Geometry: GeometrySquare, Primary: "yellow"}}},
		{name: "two-color missing secondary", shapes: []Shape{{Kind: "x", Geometry: GeometryFlyingGeese, Primary: "#fff"}}},
		{name: "duplicate kind", shapes: []Shape{
			{Kind: "x", Geometry: GeometrySquare, Primary: "#fff"},
			{Kind: "x", Geometry: GeometrySquare, Primary: "#000"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.shapes...)
			assert.ErrorIs(t, err, ErrInvalidPalette)
		})
	}
}

func TestNewDefaultsName(t *testing.T) {
	p, err := New(Shape{Kind: "plain", Geometry: GeometrySquare, Primary: "#abcdef"})
	require.NoError(t, err)
	s, _ := p.Get("plain")
	assert.Equal(t, "plain", s.Name)
}

const sampleTOML = `
[[shape]]
kind = "redSquare"
name = "Red square"
geometry = "square"
primary = "#ff0000"

[[shape]]
kind = "geese"
geometry = "flying-geese"
primary = "#00ff00"
secondary = "#ffffff"
`

func TestParse(t *testing.T) {
	p, err := Parse(strings.NewReader(sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	geese, ok := p.Get("geese")
	require.True(t, ok)
	assert.Equal(t, GeometryFlyingGeese, geese.Geometry)
	assert.Equal(t, "geese", geese.Name)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("[[shape]]\nkind = \"a\"\ngeometry = \"square\"\nprimary = \"#fff\"\ncolour = \"red\"\n"))
	assert.ErrorIs(t, err, ErrInvalidPalette)
}

func TestParseRejectsMalformedTOML(t *testing.T) {
	_, err := Parse(strings.NewReader("[[shape]\nkind ="))
	assert.ErrorIs(t, err, ErrInvalidPalette)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.True(t, p.Has("redSquare"))

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
