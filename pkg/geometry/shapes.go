package geometry

import "github.com/taigrr/facet/pkg/math3d"

// Square returns a 2x2 plane facing +Z, centered at center.
func Square(center math3d.Vec3) *Mesh {
	m := NewMesh("square", 4, 6)
	normal := math3d.V3(0, 0, 1)

	corners := [4]math3d.Vec3{
		{X: -1, Y: -1}, // bottom-left
		{X: 1, Y: -1},  // bottom-right
		{X: 1, Y: 1},   // top-right
		{X: -1, Y: 1},  // top-left
	}
	for _, c := range corners {
		m.AddVertex(c.Add(center), normal)
	}

	m.AddTriangle(0, 1, 2)
	m.AddTriangle(0, 2, 3)
	return m
}

// cubeFaces lists each face as its outward normal and four corners (as
// signs of the half extent), counter-clockwise seen from outside.
var cubeFaces = [6]struct {
	normal  math3d.Vec3
	corners [4]math3d.Vec3
}{
	{math3d.V3(0, 0, 1), [4]math3d.Vec3{{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1}}},         // front
	{math3d.V3(0, 0, -1), [4]math3d.Vec3{{X: 1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: -1}}},    // back
	{math3d.V3(1, 0, 0), [4]math3d.Vec3{{X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: 1, Z: 1}}},         // right
	{math3d.V3(-1, 0, 0), [4]math3d.Vec3{{X: -1, Y: -1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}}},    // left
	{math3d.V3(0, 1, 0), [4]math3d.Vec3{{X: -1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1}}},         // top
	{math3d.V3(0, -1, 0), [4]math3d.Vec3{{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: 1}}},    // bottom
}

// Cube returns an axis-aligned cube with edge length size, centered at
// center. Each face owns its four vertices so its normal stays flat.
func Cube(center math3d.Vec3, size float64) *Mesh {
	m := NewMesh("cube", 24, 36)
	h := size / 2

	for _, f := range cubeFaces {
		base := uint32(m.VertexCount())
		for _, c := range f.corners {
			m.AddVertex(c.Scale(h).Add(center), f.normal)
		}
		m.AddTriangle(base, base+1, base+2)
		m.AddTriangle(base, base+2, base+3)
	}
	return m
}
