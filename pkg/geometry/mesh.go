// Package geometry builds the procedural meshes facet renders: a subdivided
// icosphere, a square plane and a cube.
package geometry

import (
	"errors"
	"fmt"

	"github.com/taigrr/facet/pkg/math3d"
)

// Mesh is indexed triangle geometry. Positions and Normals are parallel
// slices; every three Indices form one counter-clockwise triangle.
type Mesh struct {
	Name      string
	Positions []math3d.Vec3
	Normals   []math3d.Vec3
	Indices   []uint32
}

// NewMesh creates an empty mesh with room for the given number of vertices
// and indices.
func NewMesh(name string, vertices, indices int) *Mesh {
	return &Mesh{
		Name:      name,
		Positions: make([]math3d.Vec3, 0, vertices),
		Normals:   make([]math3d.Vec3, 0, vertices),
		Indices:   make([]uint32, 0, indices),
	}
}

// ErrInvalidMesh is wrapped by every error Validate returns.
var ErrInvalidMesh = errors.New("invalid mesh")

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(pos, normal math3d.Vec3) uint32 {
	m.Positions = append(m.Positions, pos)
	m.Normals = append(m.Normals, normal)
	return uint32(len(m.Positions) - 1)
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// Validate checks the structural invariants: one normal per position, whole
// triangles only, and no index past the last vertex.
func (m *Mesh) Validate() error {
	if len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("%w: %d normals for %d positions", ErrInvalidMesh, len(m.Normals), len(m.Positions))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	n := uint32(len(m.Positions))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (vertex count %d)", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the positions.
func (m *Mesh) Bounds() (min, max math3d.Vec3) {
	if len(m.Positions) == 0 {
		return math3d.Vec3{}, math3d.Vec3{}
	}
	min, max = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return min, max
}

// Edge is an undirected edge with A < B.
type Edge struct {
	A, B uint32
}

func makeEdge(a, b uint32) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

// EdgeUse counts how many triangles use each undirected edge.
func (m *Mesh) EdgeUse() map[Edge]int {
	use := make(map[Edge]int, len(m.Indices))
	for i := range m.TriangleCount() {
		t := m.Triangle(i)
		use[makeEdge(t[0], t[1])]++
		use[makeEdge(t[1], t[2])]++
		use[makeEdge(t[2], t[0])]++
	}
	return use
}

// IsClosedManifold reports whether every edge is shared by exactly two
// triangles.
func (m *Mesh) IsClosedManifold() bool {
	for _, n := range m.EdgeUse() {
		if n != 2 {
			return false
		}
	}
	return true
}

// Float32Positions flattens positions for device upload and export.
func (m *Mesh) Float32Positions() [][3]float32 {
	return toFloat32(m.Positions)
}

// Float32Normals flattens normals for device upload and export.
func (m *Mesh) Float32Normals() [][3]float32 {
	return toFloat32(m.Normals)
}

func toFloat32(vs []math3d.Vec3) [][3]float32 {
	out := make([][3]float32, len(vs))
	for i, v := range vs {
		out[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	return out
}
