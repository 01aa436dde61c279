package render

import (
	"github.com/taigrr/facet/pkg/gfx"
	"github.com/taigrr/facet/pkg/math3d"
)

// Overlay colors.
var (
	BoundsColor = gfx.RGB(255, 255, 255)
	AxisXColor  = gfx.RGB(230, 60, 60)
	AxisYColor  = gfx.RGB(60, 200, 60)
	AxisZColor  = gfx.RGB(70, 110, 240)
)

// lineReach bounds how far outside the viewport (in NDC) a line endpoint may
// lie and still be drawn.
const lineReach = 2.0

// Wireframe draws debug lines over a rendered frame: drawable bounds and the
// world axes. Lines ignore the depth buffer.
type Wireframe struct {
	camera *Camera
	ctx    *gfx.Context
}

// NewWireframe creates a wireframe overlay drawing through camera onto ctx.
func NewWireframe(camera *Camera, ctx *gfx.Context) *Wireframe {
	return &Wireframe{camera: camera, ctx: ctx}
}

// project maps a world point to framebuffer coordinates through the current
// viewport.
func (w *Wireframe) project(p math3d.Vec3) (x, y int, ok bool) {
	clip := w.camera.ViewProjectionMatrix().MulVec4(p.Vec4(1))
	if clip.W <= w.camera.Near {
		return 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if ndc.X < -lineReach || ndc.X > lineReach || ndc.Y < -lineReach || ndc.Y > lineReach {
		return 0, 0, false
	}
	vp := w.ctx.Viewport()
	x = vp.X + int((ndc.X+1)*0.5*float64(vp.Width))
	y = vp.Y + int((1-ndc.Y)*0.5*float64(vp.Height))
	return x, y, true
}

// DrawLine3D draws a world-space line. Lines with an endpoint behind the
// camera or far off screen are skipped.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, c gfx.Color) {
	x1, y1, ok1 := w.project(p1)
	x2, y2, ok2 := w.project(p2)
	if !ok1 || !ok2 {
		return
	}
	w.ctx.Framebuffer().DrawLine(x1, y1, x2, y2, c)
}

var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // min z
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // max z
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DrawAABB draws the 12 edges of box.
func (w *Wireframe) DrawAABB(box AABB, c gfx.Color) {
	var corners [8]math3d.Vec3
	for i := range corners {
		corners[i] = math3d.V3(
			selectComponent(i&1 != 0, box.Max.X, box.Min.X),
			selectComponent(i&2 != 0, box.Max.Y, box.Min.Y),
			selectComponent(i&4 != 0, box.Max.Z, box.Min.Z),
		)
	}
	for _, e := range boxEdges {
		w.DrawLine3D(corners[e[0]], corners[e[1]], c)
	}
}

// DrawBounds outlines the bounding box of each drawable.
func (w *Wireframe) DrawBounds(drawables ...Drawable) {
	for _, d := range drawables {
		lo, hi := d.Bounds()
		w.DrawAABB(NewAABB(lo, hi), BoundsColor)
	}
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Vec3{}
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), AxisXColor)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), AxisYColor)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), AxisZColor)
}
