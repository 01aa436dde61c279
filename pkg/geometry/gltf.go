package geometry

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/facet/pkg/math3d"
)

// WriteGLB saves the mesh as a single-node binary glTF file.
func WriteGLB(m *Mesh, path string) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	doc := NewDocument(m)
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}

// NewDocument builds a glTF document holding the mesh as one triangle
// primitive with POSITION and NORMAL attributes.
func NewDocument(m *Mesh) *gltf.Document {
	doc := gltf.NewDocument()

	positions := modeler.WritePosition(doc, m.Float32Positions())
	normals := modeler.WriteNormal(doc, m.Float32Normals())
	indices := modeler.WriteIndices(doc, m.Indices)

	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name: m.Name,
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(indices),
			Attributes: map[string]int{
				gltf.POSITION: positions,
				gltf.NORMAL:   normals,
			},
		}},
	})
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: m.Name, Mesh: gltf.Index(len(doc.Meshes) - 1)})
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return doc
}

// ReadGLB loads every triangle primitive of a glTF/GLB file into one mesh.
// Primitives without normals get smooth normals computed from their faces.
func ReadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path), 0, 0)
	for _, gm := range doc.Meshes {
		if err := readMesh(doc, gm, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", gm.Name, err)
		}
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}

func readMesh(doc *gltf.Document, gm *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// lines and points have no surface to shade
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		base := uint32(mesh.VertexCount())
		for i, p := range positions {
			var n math3d.Vec3
			if i < len(normals) {
				n = math3d.V3(float64(normals[i][0]), float64(normals[i][1]), float64(normals[i][2]))
			}
			mesh.AddVertex(math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])), n)
		}

		firstIndex := len(mesh.Indices)
		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for _, idx := range indices {
				if idx >= uint32(len(positions)) {
					return fmt.Errorf("%w: index %d out of range for %d vertices", ErrInvalidMesh, idx, len(positions))
				}
				mesh.Indices = append(mesh.Indices, base+idx)
			}
		} else {
			// unindexed: consecutive vertex triples
			for i := range uint32(len(positions)) {
				mesh.Indices = append(mesh.Indices, base+i)
			}
		}

		if len(normals) == 0 {
			mesh.smoothNormals(base, firstIndex)
		}
	}
	return nil
}

// smoothNormals averages area-weighted face normals onto the vertices added
// from base, using the triangles from firstIndex on.
func (m *Mesh) smoothNormals(base uint32, firstIndex int) {
	for i := base; i < uint32(len(m.Normals)); i++ {
		m.Normals[i] = math3d.Vec3{}
	}
	for i := firstIndex; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0, p1, p2 := m.Positions[a], m.Positions[b], m.Positions[c]
		// unnormalized cross product weights by area
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		m.Normals[a] = m.Normals[a].Add(n)
		m.Normals[b] = m.Normals[b].Add(n)
		m.Normals[c] = m.Normals[c].Add(n)
	}
	for i := base; i < uint32(len(m.Normals)); i++ {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}
