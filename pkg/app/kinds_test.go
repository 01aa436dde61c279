package app

import (
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func TestParseKinds(t *testing.T) {
	for _, k := range ShaderKinds() {
		got, err := ParseShaderKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseShaderKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	for _, k := range ShapeKinds() {
		got, err := ParseShapeKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseShapeKind(%q) = %v, %v", k.String(), got, err)
		}
	}

	if k, err := ParseShaderKind("Planet"); err != nil || k != ShaderPlanet {
		t.Errorf("ParseShaderKind is case sensitive: %v, %v", k, err)
	}
	if _, err := ParseShaderKind("phong"); err == nil {
		t.Error("ParseShaderKind(phong) succeeded")
	}
	if _, err := ParseShapeKind("torus"); err == nil {
		t.Error("ParseShapeKind(torus) succeeded")
	}
}

func TestInvalidKinds(t *testing.T) {
	if s := ShaderKind(9).String(); s != "ShaderKind(9)" {
		t.Errorf("String = %q", s)
	}
	if _, err := ShapeKind(-1).MarshalText(); err == nil {
		t.Error("MarshalText accepted an invalid shape")
	}
	var k ShapeKind
	if err := k.UnmarshalText([]byte("cube")); err != nil || k != ShapeCube {
		t.Errorf("UnmarshalText(cube) = %v, %v", k, err)
	}
}

func TestColorVec4(t *testing.T) {
	got := Color{55, 85, 135, 0.25}.Vec4()
	want := math3d.V4(55.0/255, 85.0/255, 135.0/255, 1)
	if !got.ApproxEqual(want, 1e-12) {
		t.Errorf("Vec4 = %v, want %v", got, want)
	}
	if hex := RGB(55, 85, 135).Hex(); hex != "#375587" {
		t.Errorf("Hex = %q, want #375587", hex)
	}
}

func TestParamsNormalize(t *testing.T) {
	p := Params{
		Tessellation: 20,
		Shader:       ShaderKind(5),
		Shape:        ShapeKind(-2),
		SunIntensity: 1e6,
		Diffuse:      Color{-1, 0, 0, 1},
	}.Normalize()

	if p.Tessellation != MaxTessellation || p.SunIntensity != MaxSunIntensity {
		t.Errorf("limits not applied: %+v", p)
	}
	if p.Shader != ShaderPlanet || p.Shape != ShapeIcosphere {
		t.Errorf("invalid kinds not replaced: %v %v", p.Shader, p.Shape)
	}
	if p.Diffuse[0] != 0 {
		t.Errorf("diffuse not clamped: %v", p.Diffuse)
	}
}
