package shaders

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/naga"
	"github.com/taigrr/facet/pkg/gfx"
	"github.com/taigrr/facet/pkg/math3d"
)

func TestSourcesCompileWithNaga(t *testing.T) {
	for _, v := range Variants() {
		for stage, source := range map[string]string{"vertex": v.VertexSource, "fragment": v.FragmentSource} {
			t.Run(v.Name+" "+stage, func(t *testing.T) {
				spirv, err := naga.Compile(source)
				if err != nil {
					if strings.Contains(err.Error(), "not yet implemented") || strings.Contains(err.Error(), "not supported") {
						t.Skipf("naga feature not yet implemented: %v", err)
					}
					t.Fatalf("compile: %v", err)
				}
				if len(spirv) < 4 {
					t.Fatal("SPIR-V output too short")
				}
				magic := uint32(spirv[0]) | uint32(spirv[1])<<8 | uint32(spirv[2])<<16 | uint32(spirv[3])<<24
				if magic != 0x07230203 {
					t.Errorf("SPIR-V magic = %#x, want 0x07230203", magic)
				}
			})
		}
	}
}

func TestSourcesContainExpectedContent(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		required []string
	}{
		{"lambert vertex", Lambert.VertexSource, []string{"@vertex", "vs_main", "view_proj", "model_inv_tr"}},
		{"lambert fragment", Lambert.FragmentSource, []string{"@fragment", "fs_main", "spec_color", "camera_pos"}},
		{"fireball vertex", Fireball.VertexSource, []string{"@vertex", "fn fbm", "u.time"}},
		{"fireball fragment", Fireball.FragmentSource, []string{"@fragment", "smoothstep", "spec_color"}},
		{"planet vertex", Planet.VertexSource, []string{"@vertex", "fn fbm", "SEA_LEVEL"}},
		{"planet fragment", Planet.FragmentSource, []string{"@fragment", "sun_intensity", "fog_color", "textureSample"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, req := range tc.required {
				if !strings.Contains(tc.source, req) {
					t.Errorf("%s missing %q", tc.name, req)
				}
			}
			if !strings.Contains(tc.source, "@group(0) @binding(0) var<uniform> u: Uniforms;") {
				t.Errorf("%s missing the uniform block binding", tc.name)
			}
		})
	}
}

func TestBuildLinksEveryVariant(t *testing.T) {
	ctx, err := gfx.NewContext(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range Variants() {
		t.Run(v.Name, func(t *testing.T) {
			prog, err := Build(ctx, v)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if prog.Label != v.Name {
				t.Errorf("label = %q, want %q", prog.Label, v.Name)
			}
		})
	}
}

type rejectCompiler struct{}

func (rejectCompiler) Compile(string) ([]byte, error) { return nil, errors.New("syntax error") }

func TestBuildReportsCompileFailure(t *testing.T) {
	ctx, err := gfx.NewContext(4, 4, gfx.WithCompiler(rejectCompiler{}))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Build(ctx, Planet)
	if !errors.Is(err, gfx.ErrShaderCompile) {
		t.Errorf("err = %v, want ErrShaderCompile", err)
	}
	if err != nil && !strings.Contains(err.Error(), "planet") {
		t.Errorf("error %q does not name the variant", err)
	}
}

func TestNoise(t *testing.T) {
	points := []math3d.Vec3{
		{}, {X: 0.5, Y: 0.25, Z: 0.75}, {X: -3.2, Y: 7.1, Z: 0.01}, {X: 100, Y: -42.5, Z: 13},
	}
	for _, p := range points {
		n := ValueNoise(p)
		if n < 0 || n >= 1 {
			t.Errorf("ValueNoise(%v) = %v, outside [0, 1)", p, n)
		}
		if ValueNoise(p) != n {
			t.Errorf("ValueNoise(%v) is not deterministic", p)
		}
		f := FBM(p)
		if f < 0 || f >= 1 {
			t.Errorf("FBM(%v) = %v, outside [0, 1)", p, f)
		}
	}

	// lattice points return the hash itself
	if got, want := ValueNoise(math3d.V3(2, 3, 4)), hash3(math3d.V3(2, 3, 4)); got != want {
		t.Errorf("ValueNoise at lattice = %v, want %v", got, want)
	}
}

// uniformsFor returns a block populated the way the renderer populates it.
func uniformsFor(t *testing.T, v Variant, set func(ctx *gfx.Context)) (*gfx.Context, *gfx.Program) {
	t.Helper()
	ctx, err := gfx.NewContext(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := Build(ctx, v)
	if err != nil {
		t.Fatal(err)
	}
	ctx.UseProgram(prog)
	ctx.UniformMatrix4(UModel, math3d.Identity())
	ctx.UniformMatrix4(UModelInvTr, math3d.Identity())
	ctx.UniformMatrix4(UViewProj, math3d.Identity())
	ctx.Uniform3f(UCameraPos, math3d.V3(0, 0, 5))
	set(ctx)
	return ctx, prog
}

func TestLambertLitSideIsBrighter(t *testing.T) {
	_, prog := uniformsFor(t, Lambert, func(ctx *gfx.Context) {
		ctx.Uniform4f(UColor, math3d.V4(1, 0, 0, 1))
		ctx.Uniform4f(USpecColor, math3d.V4(0, 0, 0, 1))
	})

	shade := func(n math3d.Vec3) math3d.Vec4 {
		var in gfx.Varyings
		in[varyWorld] = n.Vec4(1)
		in[varyNormal] = n.Vec4(0)
		return lambertFragment(&prog.Uniforms, in)
	}

	lit := shade(lambertLightPos.Normalize())
	dark := shade(lambertLightPos.Normalize().Scale(-1))
	if lit.X <= dark.X {
		t.Errorf("lit red %v <= unlit red %v", lit.X, dark.X)
	}
	if math.Abs(dark.X-lambertAmbient) > 1e-9 {
		t.Errorf("unlit red = %v, want ambient %v", dark.X, lambertAmbient)
	}
	if lit.Y != 0 || lit.Z != 0 {
		t.Errorf("lit color %v picked up green or blue", lit)
	}
}

func TestFireballBlendsByHeat(t *testing.T) {
	_, prog := uniformsFor(t, Fireball, func(ctx *gfx.Context) {
		ctx.Uniform4f(UColor, math3d.V4(1, 0, 0, 1))
		ctx.Uniform4f(USpecColor, math3d.V4(1, 1, 0, 1))
	})

	tests := []struct {
		name string
		heat float64
		want math3d.Vec4
	}{
		{"cold is diffuse", 0, math3d.V4(0.7, 0, 0, 1)},
		{"hot is specular", 1, math3d.V4(1, 1, 0, 1)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// facing the camera, so no rim term
			var in gfx.Varyings
			in[varyWorld] = math3d.V4(0, 0, 1, 1)
			in[varyNormal] = math3d.V4(0, 0, 1, 0)
			in[varyExtra] = math3d.V4(tc.heat, 0, 0, 0)
			got := fireballFragment(&prog.Uniforms, in)
			if !got.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("color = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFireballDisplacesAlongNormal(t *testing.T) {
	_, prog := uniformsFor(t, Fireball, func(ctx *gfx.Context) {
		ctx.Uniform1f(UTime, 120)
	})

	in := gfx.VertexInput{Position: math3d.V4(0, 1, 0, 1), Normal: math3d.V4(0, 1, 0, 0)}
	out := fireballVertex(&prog.Uniforms, in)

	heat := out.Varyings[varyExtra].X
	want := math3d.V4(0, 1+heat*fireballAmplitude, 0, 1)
	if !out.Position.ApproxEqual(want, 1e-12) {
		t.Errorf("position = %v, want %v", out.Position, want)
	}
	if heat < 0 || heat >= 1 {
		t.Errorf("heat = %v, outside [0, 1)", heat)
	}
}

func TestPlanetSunAndFog(t *testing.T) {
	fogColor := math3d.V4(55.0/255, 85.0/255, 135.0/255, 1)

	tests := []struct {
		name      string
		intensity float64
		world     math3d.Vec3
		want      func(biome math3d.Vec3) math3d.Vec3
	}{
		{"no sun is ambient only", 0, math3d.V3(0, 0, 1), func(b math3d.Vec3) math3d.Vec3 {
			return b.Scale(planetAmbient)
		}},
		{"far surface is fog", 50, math3d.V3(0, 0, -10), func(math3d.Vec3) math3d.Vec3 {
			return fogColor.Vec3()
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, prog := uniformsFor(t, Planet, func(ctx *gfx.Context) {
				ctx.Uniform1f(USunIntensity, tc.intensity)
				ctx.Uniform4f(UFogColor, fogColor)
			})

			var in gfx.Varyings
			in[varyWorld] = tc.world.Vec4(1)
			in[varyNormal] = math3d.V4(0, 0, 1, 0)
			in[varyExtra] = math3d.V4(0, 0, 0, 0)
			got := planetFragment(&prog.Uniforms, in)

			want := tc.want(BiomeRamp.Sample(0).Vec3()).Vec4(1)
			if !got.ApproxEqual(want, 1e-9) {
				t.Errorf("color = %v, want %v", got, want)
			}
		})
	}
}

func TestPlanetSunIntensityBrightens(t *testing.T) {
	shade := func(intensity float64) math3d.Vec4 {
		_, prog := uniformsFor(t, Planet, func(ctx *gfx.Context) {
			ctx.Uniform1f(USunIntensity, intensity)
		})
		var in gfx.Varyings
		in[varyWorld] = planetSunDir.Vec4(1)
		in[varyNormal] = planetSunDir.Vec4(0)
		in[varyExtra] = math3d.V4(0.6, 0.1, 0, 0)
		return planetFragment(&prog.Uniforms, in)
	}

	dim, bright := shade(10), shade(50)
	if bright.Y <= dim.Y {
		t.Errorf("intensity 50 green %v <= intensity 10 green %v", bright.Y, dim.Y)
	}
}

func TestPlanetOceanIsFlat(t *testing.T) {
	_, prog := uniformsFor(t, Planet, func(*gfx.Context) {})

	// find a direction below sea level
	var dir math3d.Vec3
	found := false
	for i := range 200 {
		a := float64(i) * 0.37
		d := math3d.V3(math.Cos(a), math.Sin(a*1.3), math.Sin(a)).Normalize()
		if PlanetHeight(d) < planetSeaLevel {
			dir, found = d, true
			break
		}
	}
	if !found {
		t.Skip("no ocean direction sampled")
	}

	out := planetVertex(&prog.Uniforms, gfx.VertexInput{Position: dir.Vec4(1), Normal: dir.Vec4(0)})
	if !out.Position.ApproxEqual(dir.Vec4(1), 1e-12) {
		t.Errorf("ocean vertex moved from %v to %v", dir, out.Position)
	}
	if out.Varyings[varyExtra].Y != 0 {
		t.Errorf("ocean land height = %v, want 0", out.Varyings[varyExtra].Y)
	}
}
