package geometry

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/facet/pkg/math3d"
)

func TestReadGLBInvalidPath(t *testing.T) {
	_, err := ReadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLBRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		mesh *Mesh
	}{
		{"icosphere", Icosphere(math3d.V3(0, 0, 0), 1, 2)},
		{"square", Square(math3d.V3(0, 0, 0))},
		{"cube", Cube(math3d.V3(0, 0, 0), 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.name+".glb")
			if err := WriteGLB(tc.mesh, path); err != nil {
				t.Fatalf("WriteGLB: %v", err)
			}

			got, err := ReadGLB(path)
			if err != nil {
				t.Fatalf("ReadGLB: %v", err)
			}
			if got.VertexCount() != tc.mesh.VertexCount() {
				t.Errorf("vertices = %d, want %d", got.VertexCount(), tc.mesh.VertexCount())
			}
			if got.TriangleCount() != tc.mesh.TriangleCount() {
				t.Errorf("triangles = %d, want %d", got.TriangleCount(), tc.mesh.TriangleCount())
			}
			for i := range got.Indices {
				if got.Indices[i] != tc.mesh.Indices[i] {
					t.Fatalf("index %d = %d, want %d", i, got.Indices[i], tc.mesh.Indices[i])
				}
			}
			for i := range got.Positions {
				if !got.Positions[i].ApproxEqual(tc.mesh.Positions[i], 1e-6) {
					t.Fatalf("position %d = %v, want %v", i, got.Positions[i], tc.mesh.Positions[i])
				}
			}
		})
	}
}

// writeRawGLB saves one triangle primitive without validating it. Normals
// are omitted when nil.
func writeRawGLB(t *testing.T, positions, normals [][3]float32, indices []uint32) string {
	t.Helper()
	doc := gltf.NewDocument()
	attrs := map[string]int{gltf.POSITION: modeler.WritePosition(doc, positions)}
	if normals != nil {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, normals)
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: "raw",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, indices)),
			Attributes: attrs,
		}},
	})

	path := filepath.Join(t.TempDir(), "raw.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("SaveBinary: %v", err)
	}
	return path
}

func TestReadGLBRejectsMalformedIndices(t *testing.T) {
	tri := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	up := [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}

	tests := []struct {
		name    string
		normals [][3]float32
		indices []uint32
	}{
		{"out of range without normals", nil, []uint32{0, 1, 7}},
		{"out of range with normals", up, []uint32{0, 1, 7}},
		{"partial triangle", up, []uint32{0, 1, 2, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeRawGLB(t, tri, tc.normals, tc.indices)
			if _, err := ReadGLB(path); !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("ReadGLB = %v, want ErrInvalidMesh", err)
			}
		})
	}
}

func TestWriteGLBRejectsInvalidMesh(t *testing.T) {
	bad := &Mesh{Positions: []math3d.Vec3{{}}, Normals: []math3d.Vec3{{}}, Indices: []uint32{0, 0, 1}}
	if err := WriteGLB(bad, filepath.Join(t.TempDir(), "bad.glb")); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestSmoothNormalsFromFaces(t *testing.T) {
	m := Square(math3d.V3(0, 0, 0))
	for i := range m.Normals {
		m.Normals[i] = math3d.Vec3{}
	}

	m.smoothNormals(0, 0)

	for i, n := range m.Normals {
		if !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-12) {
			t.Errorf("normal %d = %v, want (0, 0, 1)", i, n)
		}
	}
}
