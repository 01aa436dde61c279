package shaders

import (
	"math"

	"github.com/taigrr/facet/pkg/gfx"
	"github.com/taigrr/facet/pkg/math3d"
)

// Varying slots written by the vertex kernels.
const (
	varyWorld  = iota // world-space position
	varyNormal        // world-space normal
	varyExtra         // per-variant values (heat, terrain height)
)

// transform applies the model and view-projection matrices shared by all
// vertex kernels.
func transform(u *gfx.UniformBlock, pos, nor math3d.Vec4) gfx.VertexOutput {
	var out gfx.VertexOutput
	world := u.Mat4(UModel).MulVec4(pos)
	out.Varyings[varyWorld] = world
	out.Varyings[varyNormal] = u.Mat4(UModelInvTr).MulVec4(nor)
	out.Position = u.Mat4(UViewProj).MulVec4(world)
	return out
}

// Lambert

var lambertLightPos = math3d.V3(5, 5, 3)

const (
	lambertAmbient   = 0.2
	lambertShininess = 32
	lambertSpecular  = 0.5
)

func lambertVertex(u *gfx.UniformBlock, in gfx.VertexInput) gfx.VertexOutput {
	return transform(u, in.Position, in.Normal)
}

func lambertFragment(u *gfx.UniformBlock, in gfx.Varyings) math3d.Vec4 {
	world := in[varyWorld].Vec3()
	n := in[varyNormal].Vec3().Normalize()
	l := lambertLightPos.Sub(world).Normalize()
	v := u.Vec3(UCameraPos).Sub(world).Normalize()
	h := l.Add(v).Normalize()

	diffuse := math3d.Clamp(n.Dot(l), 0, 1)
	spec := math.Pow(max(n.Dot(h), 0), lambertShininess) * lambertSpecular

	color := u.Vec4(UColor)
	rgb := color.Vec3().Scale(diffuse + lambertAmbient).
		Add(u.Vec4(USpecColor).Vec3().Scale(spec))
	return rgb.Vec4(color.W)
}

// Fireball

const (
	fireballFrequency = 2.0
	fireballSpeed     = 0.015
	fireballAmplitude = 0.35
	fireballRim       = 0.6
)

func fireballVertex(u *gfx.UniformBlock, in gfx.VertexInput) gfx.VertexOutput {
	t := u.Float(UTime) * fireballSpeed
	p := in.Position.Vec3()
	heat := FBM(p.Scale(fireballFrequency).Add(math3d.Splat3(t)))
	displaced := p.Add(in.Normal.Vec3().Scale(heat * fireballAmplitude))

	out := transform(u, displaced.Vec4(1), in.Normal)
	out.Varyings[varyExtra] = math3d.V4(heat, 0, 0, 0)
	return out
}

func fireballFragment(u *gfx.UniformBlock, in gfx.Varyings) math3d.Vec4 {
	t := math3d.Smoothstep(0.25, 0.75, in[varyExtra].X)
	color := u.Vec4(UColor).Vec3()
	spec := u.Vec4(USpecColor).Vec3()
	base := color.Lerp(spec, t)

	n := in[varyNormal].Vec3().Normalize()
	v := u.Vec3(UCameraPos).Sub(in[varyWorld].Vec3()).Normalize()
	edge := 1 - max(n.Dot(v), 0)

	rgb := base.Scale(0.7 + 0.6*t).Add(spec.Scale(edge * edge * fireballRim))
	return rgb.Vec4(1).Clamp01()
}

// Planet

const (
	planetFrequency = 1.8
	planetSeaLevel  = 0.5
	planetRelief    = 0.4
	planetSunScale  = 50.0
	planetAmbient   = 0.12
	planetFogNear   = 4.0
	planetFogFar    = 6.5
)

var planetSunDir = math3d.V3(1, 1, 1).Normalize()

// BiomeRamp maps terrain height to surface color. It is bound as the
// planet fragment stage's biome_ramp texture.
var BiomeRamp = gfx.NewRamp(256,
	gfx.RampStop{At: 0.00, Color: math3d.V4(0.02, 0.05, 0.25, 1)}, // deep ocean
	gfx.RampStop{At: 0.48, Color: math3d.V4(0.05, 0.30, 0.60, 1)}, // shallows
	gfx.RampStop{At: 0.50, Color: math3d.V4(0.76, 0.70, 0.50, 1)}, // beach
	gfx.RampStop{At: 0.56, Color: math3d.V4(0.20, 0.55, 0.20, 1)}, // grassland
	gfx.RampStop{At: 0.70, Color: math3d.V4(0.10, 0.35, 0.12, 1)}, // forest
	gfx.RampStop{At: 0.80, Color: math3d.V4(0.45, 0.40, 0.38, 1)}, // rock
	gfx.RampStop{At: 0.90, Color: math3d.V4(0.95, 0.95, 0.97, 1)}, // snow
)

// PlanetHeight returns the raw terrain height at a unit direction; values
// below the sea level are ocean.
func PlanetHeight(dir math3d.Vec3) float64 {
	return FBM(dir.Scale(planetFrequency))
}

func planetVertex(u *gfx.UniformBlock, in gfx.VertexInput) gfx.VertexOutput {
	n := in.Normal.Vec3().Normalize()
	h := PlanetHeight(n)
	land := max(h-planetSeaLevel, 0)
	displaced := in.Position.Vec3().Add(n.Scale(land * planetRelief))

	out := transform(u, displaced.Vec4(1), in.Normal)
	out.Varyings[varyExtra] = math3d.V4(h, land, 0, 0)
	return out
}

func planetFragment(u *gfx.UniformBlock, in gfx.Varyings) math3d.Vec4 {
	biome := BiomeRamp.Sample(in[varyExtra].X).Vec3()

	n := in[varyNormal].Vec3().Normalize()
	sun := max(n.Dot(planetSunDir), 0) * (u.Float(USunIntensity) / planetSunScale)
	lit := biome.Scale(planetAmbient + sun)

	world := in[varyWorld].Vec3()
	fog := math3d.Smoothstep(planetFogNear, planetFogFar, world.Distance(u.Vec3(UCameraPos)))
	rgb := lit.Lerp(u.Vec4(UFogColor).Vec3(), fog)
	return rgb.Vec4(1).Clamp01()
}
