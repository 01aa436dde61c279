package render

import (
	"github.com/taigrr/facet/pkg/geometry"
	"github.com/taigrr/facet/pkg/gfx"
	"github.com/taigrr/facet/pkg/math3d"
)

// Drawable is a mesh that lives in device buffers.
//
// Create builds the geometry and uploads it; Draw binds the buffers and
// issues one indexed draw with whatever program is bound; Destroy releases
// the buffers. A Drawable is used read-only between Create and Destroy.
type Drawable interface {
	Create()
	Draw()
	Destroy()
	ElementCount() int
	Bounds() (min, max math3d.Vec3)
}

// MeshDrawable uploads the mesh produced by its build function.
type MeshDrawable struct {
	ctx   *gfx.Context
	build func() *geometry.Mesh

	position *gfx.Buffer
	normal   *gfx.Buffer
	index    *gfx.Buffer

	count    int
	min, max math3d.Vec3
}

// NewIcosphere returns an icosphere drawable. Call Create before drawing.
func NewIcosphere(ctx *gfx.Context, center math3d.Vec3, radius float64, subdivisions int) *MeshDrawable {
	return &MeshDrawable{ctx: ctx, build: func() *geometry.Mesh {
		return geometry.Icosphere(center, radius, subdivisions)
	}}
}

// NewSquare returns a square drawable. Call Create before drawing.
func NewSquare(ctx *gfx.Context, center math3d.Vec3) *MeshDrawable {
	return &MeshDrawable{ctx: ctx, build: func() *geometry.Mesh {
		return geometry.Square(center)
	}}
}

// NewCube returns a cube drawable. Call Create before drawing.
func NewCube(ctx *gfx.Context, center math3d.Vec3, size float64) *MeshDrawable {
	return &MeshDrawable{ctx: ctx, build: func() *geometry.Mesh {
		return geometry.Cube(center, size)
	}}
}

// Create builds the mesh and fills fresh device buffers, releasing any
// buffers from an earlier Create. It panics when the drawable has no
// graphics context.
func (d *MeshDrawable) Create() {
	if d.ctx == nil {
		panic("render: drawable created without a graphics context")
	}
	d.Destroy()

	m := d.build()
	d.position = d.ctx.CreateBuffer()
	d.ctx.BufferData(d.position, m.Positions)
	d.normal = d.ctx.CreateBuffer()
	d.ctx.BufferData(d.normal, m.Normals)
	d.index = d.ctx.CreateBuffer()
	d.ctx.BufferIndexData(d.index, m.Indices)

	d.count = len(m.Indices)
	d.min, d.max = m.Bounds()
	gfx.Logger().Debug("drawable created", "mesh", m.Name,
		"vertices", m.VertexCount(), "triangles", m.TriangleCount())
}

// Draw binds the drawable's buffers and draws every element. It does
// nothing before Create.
func (d *MeshDrawable) Draw() {
	if d.index == nil {
		return
	}
	d.ctx.BindAttribute(gfx.AttribPosition, d.position)
	d.ctx.BindAttribute(gfx.AttribNormal, d.normal)
	d.ctx.BindIndexBuffer(d.index)
	d.ctx.DrawElements(d.count)
}

// Destroy releases the device buffers. It is safe to call more than once.
func (d *MeshDrawable) Destroy() {
	if d.ctx == nil {
		return
	}
	for _, b := range []*gfx.Buffer{d.position, d.normal, d.index} {
		if b != nil {
			d.ctx.DeleteBuffer(b)
		}
	}
	d.position, d.normal, d.index = nil, nil, nil
	d.count = 0
}

// ElementCount returns the number of indices drawn by Draw.
func (d *MeshDrawable) ElementCount() int {
	return d.count
}

// Bounds returns the model-space bounding box of the uploaded mesh.
func (d *MeshDrawable) Bounds() (min, max math3d.Vec3) {
	return d.min, d.max
}
