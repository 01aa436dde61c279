package app

import (
	"fmt"

	"github.com/taigrr/facet/pkg/geometry"
	"github.com/taigrr/facet/pkg/math3d"
)

// Parameter limits.
const (
	MaxTessellation = geometry.MaxSubdivisions
	MaxSunIntensity = 200.0
)

// Color is a color picker value: red, green and blue in [0, 255] and alpha
// in [0, 1].
type Color [4]float64

// RGB returns an opaque picker color.
func RGB(r, g, b float64) Color {
	return Color{r, g, b, 1}
}

// Vec4 converts the picker value to the [0, 1] vector staged on programs.
// Alpha is always pushed as 1.
func (c Color) Vec4() math3d.Vec4 {
	return math3d.V4(c[0]/255, c[1]/255, c[2]/255, 1)
}

// Clamp limits each component to its picker range.
func (c Color) Clamp() Color {
	return Color{
		math3d.Clamp(c[0], 0, 255),
		math3d.Clamp(c[1], 0, 255),
		math3d.Clamp(c[2], 0, 255),
		math3d.Clamp(c[3], 0, 1),
	}
}

// Hex formats the color as #rrggbb.
func (c Color) Hex() string {
	c = c.Clamp()
	return fmt.Sprintf("#%02x%02x%02x", uint8(c[0]), uint8(c[1]), uint8(c[2]))
}

// Params is the application state edited by the control panel and read by
// every tick.
type Params struct {
	Tessellation int
	Shader       ShaderKind
	Shape        ShapeKind
	SunIntensity float64
	Diffuse      Color
	Specular     Color
	Fog          Color
}

// DefaultParams returns the startup parameters.
func DefaultParams() Params {
	return Params{
		Tessellation: 6,
		Shader:       ShaderPlanet,
		Shape:        ShapeIcosphere,
		SunIntensity: 50,
		Diffuse:      RGB(255, 0, 0),
		Specular:     RGB(255, 255, 0),
		Fog:          RGB(55, 85, 135),
	}
}

// Normalize clamps every field into range and replaces unknown kinds with
// their defaults.
func (p Params) Normalize() Params {
	d := DefaultParams()
	p.Tessellation = min(max(p.Tessellation, 0), MaxTessellation)
	p.SunIntensity = math3d.Clamp(p.SunIntensity, 0, MaxSunIntensity)
	if !p.Shader.Valid() {
		p.Shader = d.Shader
	}
	if !p.Shape.Valid() {
		p.Shape = d.Shape
	}
	p.Diffuse = p.Diffuse.Clamp()
	p.Specular = p.Specular.Clamp()
	p.Fog = p.Fog.Clamp()
	return p
}
