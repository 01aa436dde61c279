package app

import (
	"fmt"
	"strings"
)

// ShaderKind selects the program used to draw the scene.
type ShaderKind int

const (
	ShaderLambert ShaderKind = iota
	ShaderFireball
	ShaderPlanet
	numShaderKinds
)

// ShaderKinds lists every shader kind in panel order.
func ShaderKinds() []ShaderKind {
	return []ShaderKind{ShaderLambert, ShaderFireball, ShaderPlanet}
}

func (k ShaderKind) String() string {
	switch k {
	case ShaderLambert:
		return "lambert"
	case ShaderFireball:
		return "fireball"
	case ShaderPlanet:
		return "planet"
	}
	return fmt.Sprintf("ShaderKind(%d)", int(k))
}

// Valid reports whether k is a known shader kind.
func (k ShaderKind) Valid() bool {
	return k >= 0 && k < numShaderKinds
}

// ParseShaderKind parses a shader name, case-insensitively.
func ParseShaderKind(s string) (ShaderKind, error) {
	for _, k := range ShaderKinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shader %q (want lambert, fireball or planet)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ShaderKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid shader kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShaderKind) UnmarshalText(text []byte) error {
	v, err := ParseShaderKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ShapeKind selects the drawable rendered each tick.
type ShapeKind int

const (
	ShapeIcosphere ShapeKind = iota
	ShapeSquare
	ShapeCube
	numShapeKinds
)

// ShapeKinds lists every shape kind in panel order.
func ShapeKinds() []ShapeKind {
	return []ShapeKind{ShapeIcosphere, ShapeSquare, ShapeCube}
}

func (k ShapeKind) String() string {
	switch k {
	case ShapeIcosphere:
		return "icosphere"
	case ShapeSquare:
		return "square"
	case ShapeCube:
		return "cube"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// Valid reports whether k is a known shape kind.
func (k ShapeKind) Valid() bool {
	return k >= 0 && k < numShapeKinds
}

// ParseShapeKind parses a shape name, case-insensitively.
func ParseShapeKind(s string) (ShapeKind, error) {
	for _, k := range ShapeKinds() {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q (want icosphere, square or cube)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ShapeKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid shape kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ShapeKind) UnmarshalText(text []byte) error {
	v, err := ParseShapeKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
