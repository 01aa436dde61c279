// Package render draws facet scenes: device-resident drawables, the camera,
// shader programs with staged uniforms, and the renderer that ties them
// together on a gfx.Context.
package render

import (
	"fmt"

	"github.com/taigrr/facet/pkg/gfx"
	"github.com/taigrr/facet/pkg/math3d"
)

// CullingStats tracks frustum culling for the last frame.
type CullingStats struct {
	MeshesTested int // Total drawables tested for culling
	MeshesCulled int // Drawables culled (not rendered)
	MeshesDrawn  int // Drawables that passed culling
}

// Renderer clears the device and draws drawables with a shader program.
type Renderer struct {
	ctx          *gfx.Context
	CullingStats CullingStats

	// DisableFrustumCulling draws every drawable regardless of its bounds.
	DisableFrustumCulling bool
}

// NewRenderer creates a renderer on ctx with depth testing enabled. Faces
// are not culled.
func NewRenderer(ctx *gfx.Context) *Renderer {
	ctx.Enable(gfx.DepthTest)
	return &Renderer{ctx: ctx}
}

// Context returns the device the renderer draws on.
func (r *Renderer) Context() *gfx.Context { return r.ctx }

// SetClearColor sets the color Clear fills the framebuffer with.
func (r *Renderer) SetClearColor(red, green, blue, alpha float64) {
	r.ctx.ClearColor(red, green, blue, alpha)
}

// SetSize resizes the drawing surface and resets the viewport to cover it.
func (r *Renderer) SetSize(width, height int) error {
	if err := r.ctx.Resize(width, height); err != nil {
		return fmt.Errorf("renderer resize: %w", err)
	}
	r.ctx.SetViewport(0, 0, width, height)
	return nil
}

// Clear starts a frame: it resets the per-frame counters and clears color
// and depth.
func (r *Renderer) Clear() {
	r.ctx.ResetStats()
	r.CullingStats = CullingStats{}
	r.ctx.Clear(gfx.ColorBufferBit | gfx.DepthBufferBit)
}

// Render draws each drawable in order with prog, seen through camera. Each
// drawable uses the identity model matrix.
func (r *Renderer) Render(camera *Camera, prog *ShaderProgram, drawables ...Drawable) {
	viewProj := camera.ViewProjectionMatrix()
	frustum := camera.Frustum()
	model := math3d.Identity()

	for _, d := range drawables {
		r.CullingStats.MeshesTested++
		if !r.DisableFrustumCulling {
			lo, hi := d.Bounds()
			if !frustum.IntersectAABB(NewAABB(lo, hi).Transform(model)) {
				r.CullingStats.MeshesCulled++
				continue
			}
		}
		r.CullingStats.MeshesDrawn++

		prog.SetModelMatrix(model)
		prog.SetViewProjMatrix(viewProj)
		prog.Draw(d)
	}
}

// Stats returns the device counters for the frame so far.
func (r *Renderer) Stats() gfx.Stats {
	return r.ctx.Stats()
}
