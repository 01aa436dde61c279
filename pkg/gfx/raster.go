package gfx

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// minClipW is the smallest clip-space w accepted. Triangles with a vertex at
// or behind the eye plane are dropped.
const minClipW = 1e-6

// screenVertex holds a vertex after the vertex stage and viewport transform.
type screenVertex struct {
	Clip     math3d.Vec4 // Clip-space position
	X, Y     float64     // Window coordinates
	Z        float64     // NDC depth
	InvW     float64     // 1/w for perspective-correct interpolation
	Varyings Varyings
}

// DrawElements draws count indices from the bound index buffer as a triangle
// list, running the bound program's vertex kernel once per referenced vertex
// and its fragment kernel once per covered pixel.
func (c *Context) DrawElements(count int) {
	p := c.program
	pos := c.attribs[AttribPosition]
	if p == nil || pos == nil || c.index == nil {
		c.logger.Warn("draw without a complete binding",
			"program", p != nil, "position", pos != nil, "index", c.index != nil)
		return
	}

	indices := c.index.indices
	count = min(count, len(indices))
	count -= count % 3
	c.stats.DrawCalls++
	c.stats.Program = p.Label
	if count <= 0 || c.viewport.Width == 0 || c.viewport.Height == 0 {
		return
	}

	var normals []math3d.Vec3
	if nb := c.attribs[AttribNormal]; nb != nil {
		normals = nb.vec3s
	}

	// vertex stage, computed lazily and shared between triangles
	shaded := make([]screenVertex, len(pos.vec3s))
	done := make([]bool, len(pos.vec3s))
	vertex := func(i uint32) *screenVertex {
		if int(i) >= len(shaded) {
			return nil
		}
		if !done[i] {
			in := VertexInput{Position: math3d.V4FromV3(pos.vec3s[i], 1)}
			if int(i) < len(normals) {
				in.Normal = math3d.V4FromV3(normals[i], 0)
			}
			shaded[i] = c.toScreen(p.Vertex.vertex(&p.Uniforms, in))
			done[i] = true
		}
		return &shaded[i]
	}

	for t := 0; t < count; t += 3 {
		c.stats.Triangles++
		v0, v1, v2 := vertex(indices[t]), vertex(indices[t+1]), vertex(indices[t+2])
		if v0 == nil || v1 == nil || v2 == nil {
			continue
		}
		c.rasterize(p, [3]*screenVertex{v0, v1, v2})
	}
}

// toScreen maps a vertex kernel output through the perspective divide and
// the viewport. Window y grows downward.
func (c *Context) toScreen(out VertexOutput) screenVertex {
	sv := screenVertex{Clip: out.Position, Varyings: out.Varyings}
	w := out.Position.W
	if w <= minClipW {
		return sv
	}
	sv.InvW = 1 / w
	ndc := out.Position.PerspectiveDivide()
	vp := c.viewport
	sv.X = float64(vp.X) + (ndc.X+1)*0.5*float64(vp.Width)
	sv.Y = float64(vp.Y) + (1-ndc.Y)*0.5*float64(vp.Height)
	sv.Z = ndc.Z
	return sv
}

// outsideClipVolume reports whether all three vertices lie outside the same
// clip plane.
func outsideClipVolume(sv [3]*screenVertex) bool {
	var left, right, bottom, top, near, far int
	for _, v := range sv {
		p := v.Clip
		if p.X < -p.W {
			left++
		}
		if p.X > p.W {
			right++
		}
		if p.Y < -p.W {
			bottom++
		}
		if p.Y > p.W {
			top++
		}
		if p.Z < -p.W {
			near++
		}
		if p.Z > p.W {
			far++
		}
	}
	return left == 3 || right == 3 || bottom == 3 || top == 3 || near == 3 || far == 3
}

// edgeCoeffs returns A, B, C for edge(x, y) = A*x + B*y + C, the doubled
// signed area of the triangle (v0, v1, p).
func edgeCoeffs(x0, y0, x1, y1 float64) (a, b, cc float64) {
	return y0 - y1, x1 - x0, x0*y1 - x1*y0
}

// rasterize fills one triangle with incremental edge functions.
func (c *Context) rasterize(p *Program, sv [3]*screenVertex) {
	for _, v := range sv {
		if v.Clip.W <= minClipW {
			return
		}
	}
	if outsideClipVolume(sv) {
		return
	}

	// Window y points down, so counter-clockwise in NDC has negative area.
	area2 := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if area2 == 0 {
		return
	}
	if area2 > 0 && c.caps[CullFace] {
		return
	}

	vp := c.viewport
	fb := c.fb
	minX := max(vp.X, 0, int(math.Floor(min(sv[0].X, sv[1].X, sv[2].X))))
	maxX := min(vp.X+vp.Width-1, fb.Width-1, int(math.Ceil(max(sv[0].X, sv[1].X, sv[2].X))))
	minY := max(vp.Y, 0, int(math.Floor(min(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := min(vp.Y+vp.Height-1, fb.Height-1, int(math.Ceil(max(sv[0].Y, sv[1].Y, sv[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}
	c.stats.Rasterized++

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	a0, b0, c0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	a1, b1, c1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	a2, b2, c2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)
	invArea := 1 / area2

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	e0Row := a0*px + b0*py + c0
	e1Row := a1*px + b1*py + c1
	e2Row := a2*px + b2*py + c2

	depthTest := c.caps[DepthTest]
	fragment := p.Fragment.fragment
	var in Varyings

	for y := minY; y <= maxY; y++ {
		e0, e1, e2 := e0Row, e1Row, e2Row

		for x := minX; x <= maxX; x++ {
			bc0, bc1, bc2 := e0*invArea, e1*invArea, e2*invArea
			e0 += a0
			e1 += a1
			e2 += a2

			// Check if inside triangle (either winding)
			if bc0 < 0 || bc1 < 0 || bc2 < 0 {
				continue
			}

			z := bc0*sv[0].Z + bc1*sv[1].Z + bc2*sv[2].Z
			if z < -1 || z > 1 {
				continue
			}
			if depthTest && !fb.depthTest(x, y, z) {
				continue
			}

			// Perspective-correct weights
			w0, w1, w2 := bc0*sv[0].InvW, bc1*sv[1].InvW, bc2*sv[2].InvW
			sum := w0 + w1 + w2
			if sum == 0 {
				continue
			}
			w0, w1, w2 = w0/sum, w1/sum, w2/sum
			for k := range in {
				in[k] = sv[0].Varyings[k].Scale(w0).
					Add(sv[1].Varyings[k].Scale(w1)).
					Add(sv[2].Varyings[k].Scale(w2))
			}

			fb.SetPixel(x, y, ColorFromVec4(fragment(&p.Uniforms, in)))
			c.stats.Fragments++
		}

		e0Row += b0
		e1Row += b1
		e2Row += b2
	}
}
