package geometry

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// MaxSubdivisions bounds the icosphere subdivision level. Each level
// multiplies the triangle count by four, so level 8 is already ~1.3M
// triangles.
const MaxSubdivisions = 8

// IcosphereCounts returns the vertex and triangle count of an icosphere
// subdivided n times: every pass adds one vertex per edge and splits each
// triangle into four.
func IcosphereCounts(n int) (vertices, triangles int) {
	n = clampSubdivisions(n)
	p := 1 << (2 * n) // 4^n
	return 10*p + 2, 20 * p
}

func clampSubdivisions(n int) int {
	return max(0, min(n, MaxSubdivisions))
}

// icosahedron vertices are the cyclic permutations of (±1, ±φ, 0).
func icosahedron() ([]math3d.Vec3, [][3]uint32) {
	t := (1 + math.Sqrt(5)) / 2

	verts := []math3d.Vec3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}

	faces := [][3]uint32{
		// around vertex 0
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		// adjacent band
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		// around vertex 3
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		// adjacent band
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return verts, faces
}

// subdivider splits triangles at edge midpoints, reusing the midpoint of an
// edge already split by the neighbouring triangle.
type subdivider struct {
	verts     []math3d.Vec3
	midpoints map[Edge]uint32
}

func (s *subdivider) midpoint(a, b uint32) uint32 {
	e := makeEdge(a, b)
	if idx, ok := s.midpoints[e]; ok {
		return idx
	}
	mid := s.verts[a].Add(s.verts[b]).Scale(0.5).Normalize()
	s.verts = append(s.verts, mid)
	idx := uint32(len(s.verts) - 1)
	s.midpoints[e] = idx
	return idx
}

func (s *subdivider) pass(faces [][3]uint32) [][3]uint32 {
	s.midpoints = make(map[Edge]uint32, len(faces)*3/2)
	out := make([][3]uint32, 0, len(faces)*4)
	for _, f := range faces {
		ab := s.midpoint(f[0], f[1])
		bc := s.midpoint(f[1], f[2])
		ca := s.midpoint(f[2], f[0])
		out = append(out,
			[3]uint32{f[0], ab, ca},
			[3]uint32{f[1], bc, ab},
			[3]uint32{f[2], ca, bc},
			[3]uint32{ab, bc, ca},
		)
	}
	return out
}

// Icosphere returns a sphere approximated by an icosahedron subdivided
// subdivisions times. Subdivision 0 is the icosahedron itself. Normals are
// the unit position vectors taken before scaling and translation.
func Icosphere(center math3d.Vec3, radius float64, subdivisions int) *Mesh {
	subdivisions = clampSubdivisions(subdivisions)
	base, faces := icosahedron()

	nv, nt := IcosphereCounts(subdivisions)
	s := &subdivider{verts: make([]math3d.Vec3, 0, nv)}
	for _, v := range base {
		s.verts = append(s.verts, v.Normalize())
	}
	for range subdivisions {
		faces = s.pass(faces)
	}

	m := NewMesh("icosphere", nv, nt*3)
	for _, v := range s.verts {
		m.AddVertex(v.Scale(radius).Add(center), v)
	}
	for _, f := range faces {
		m.AddTriangle(f[0], f[1], f[2])
	}
	return m
}
