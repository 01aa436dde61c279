package geometry

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

func TestIcosphereBaseAndFirstLevel(t *testing.T) {
	tests := []struct {
		subdivisions int
		vertices     int
		triangles    int
	}{
		{0, 12, 20},
		{1, 42, 80},
		{2, 162, 320},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("level %d", tc.subdivisions), func(t *testing.T) {
			m := Icosphere(math3d.V3(0, 0, 0), 1, tc.subdivisions)
			if m.VertexCount() != tc.vertices {
				t.Errorf("vertices = %d, want %d", m.VertexCount(), tc.vertices)
			}
			if m.TriangleCount() != tc.triangles {
				t.Errorf("triangles = %d, want %d", m.TriangleCount(), tc.triangles)
			}
		})
	}
}

func TestIcosphereInvariants(t *testing.T) {
	maxLevel := MaxSubdivisions
	if testing.Short() {
		maxLevel = 5
	}
	center := math3d.V3(1, -2, 0.5)
	const radius = 2.5

	for n := 0; n <= maxLevel; n++ {
		t.Run(fmt.Sprintf("level %d", n), func(t *testing.T) {
			m := Icosphere(center, radius, n)

			if err := m.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}

			wantV, wantT := IcosphereCounts(n)
			if m.VertexCount() != wantV || m.TriangleCount() != wantT {
				t.Errorf("counts = %d/%d, want %d/%d", m.VertexCount(), m.TriangleCount(), wantV, wantT)
			}

			if !m.IsClosedManifold() {
				t.Error("mesh is not a closed manifold")
			}

			for i, p := range m.Positions {
				if d := p.Distance(center); math.Abs(d-radius) > 1e-9 {
					t.Fatalf("vertex %d at distance %v, want %v", i, d, radius)
				}
				if nrm := m.Normals[i]; math.Abs(nrm.Len()-1) > 1e-9 {
					t.Fatalf("normal %d has length %v", i, nrm.Len())
				}
			}
		})
	}
}

func TestIcosphereNoDuplicateVertices(t *testing.T) {
	m := Icosphere(math3d.V3(0, 0, 0), 1, 4)

	seen := make(map[[3]int64]int, m.VertexCount())
	for i, p := range m.Positions {
		// quantize to 1e-9 so coincident points collide
		key := [3]int64{int64(math.Round(p.X * 1e9)), int64(math.Round(p.Y * 1e9)), int64(math.Round(p.Z * 1e9))}
		if j, ok := seen[key]; ok {
			t.Fatalf("vertices %d and %d coincide at %v", j, i, p)
		}
		seen[key] = i
	}
}

func TestIcosphereOutwardWinding(t *testing.T) {
	for n := range 4 {
		m := Icosphere(math3d.V3(0, 0, 0), 1, n)
		for i := range m.TriangleCount() {
			tri := m.Triangle(i)
			a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
			faceNormal := b.Sub(a).Cross(c.Sub(a))
			centroid := a.Add(b).Add(c)
			if faceNormal.Dot(centroid) <= 0 {
				t.Fatalf("level %d triangle %d winds inward", n, i)
			}
		}
	}
}

func TestIcosphereClampsSubdivisions(t *testing.T) {
	m := Icosphere(math3d.V3(0, 0, 0), 1, -3)
	if m.VertexCount() != 12 {
		t.Errorf("negative level: vertices = %d, want 12", m.VertexCount())
	}

	v, tris := IcosphereCounts(MaxSubdivisions + 4)
	wantV, wantT := IcosphereCounts(MaxSubdivisions)
	if v != wantV || tris != wantT {
		t.Errorf("IcosphereCounts above max = %d/%d, want %d/%d", v, tris, wantV, wantT)
	}
}

func TestFixedTopologyShapes(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		vertices  int
		triangles int
	}{
		{"square", Square(math3d.V3(0, 0, 0)), 4, 2},
		{"square offset", Square(math3d.V3(3, 1, -2)), 4, 2},
		{"cube", Cube(math3d.V3(0, 0, 0), 2), 24, 12},
		{"cube small", Cube(math3d.V3(1, 1, 1), 0.5), 24, 12},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.mesh.Validate(); err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if tc.mesh.VertexCount() != tc.vertices {
				t.Errorf("vertices = %d, want %d", tc.mesh.VertexCount(), tc.vertices)
			}
			if tc.mesh.TriangleCount() != tc.triangles {
				t.Errorf("triangles = %d, want %d", tc.mesh.TriangleCount(), tc.triangles)
			}
		})
	}
}

func TestCubeFacesPointOutward(t *testing.T) {
	m := Cube(math3d.V3(0, 0, 0), 2)

	for i := range m.TriangleCount() {
		tri := m.Triangle(i)
		a, b, c := m.Positions[tri[0]], m.Positions[tri[1]], m.Positions[tri[2]]
		faceNormal := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if !faceNormal.ApproxEqual(m.Normals[tri[0]], 1e-9) {
			t.Errorf("triangle %d: winding normal %v, vertex normal %v", i, faceNormal, m.Normals[tri[0]])
		}
	}

	min, max := m.Bounds()
	if !min.ApproxEqual(math3d.V3(-1, -1, -1), 1e-12) || !max.ApproxEqual(math3d.V3(1, 1, 1), 1e-12) {
		t.Errorf("bounds = %v..%v, want (-1,-1,-1)..(1,1,1)", min, max)
	}
}

func TestValidateRejectsBrokenMeshes(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
	}{
		{"index out of range", &Mesh{
			Positions: []math3d.Vec3{{}, {}, {}},
			Normals:   []math3d.Vec3{{}, {}, {}},
			Indices:   []uint32{0, 1, 3},
		}},
		{"normal count mismatch", &Mesh{
			Positions: []math3d.Vec3{{}, {}, {}},
			Normals:   []math3d.Vec3{{}},
			Indices:   []uint32{0, 1, 2},
		}},
		{"partial triangle", &Mesh{
			Positions: []math3d.Vec3{{}, {}, {}},
			Normals:   []math3d.Vec3{{}, {}, {}},
			Indices:   []uint32{0, 1},
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mesh.Validate()
			if !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Validate() = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestSquareIsOpen(t *testing.T) {
	m := Square(math3d.V3(0, 0, 0))
	if m.IsClosedManifold() {
		t.Error("square reported as closed manifold")
	}
	if got := len(m.EdgeUse()); got != 5 {
		t.Errorf("square edges = %d, want 5", got)
	}
}

func BenchmarkIcosphere6(b *testing.B) {
	for b.Loop() {
		_ = Icosphere(math3d.V3(0, 0, 0), 1, 6)
	}
}
