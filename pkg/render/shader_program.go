package render

import (
	"github.com/taigrr/facet/pkg/gfx"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/shaders"
)

// ShaderProgram is a linked program plus the uniform values staged for its
// next draw. Setters only record values; Draw pushes every value the
// variant reads.
type ShaderProgram struct {
	ctx     *gfx.Context
	variant shaders.Variant
	prog    *gfx.Program

	model     math3d.Mat4
	viewProj  math3d.Mat4
	color     math3d.Vec4
	specular  math3d.Vec4
	fog       math3d.Vec4
	cameraPos math3d.Vec3
	intensity float64
	time      float64
}

// NewShaderProgram compiles and links variant on ctx. The error wraps
// gfx.ErrShaderCompile.
func NewShaderProgram(ctx *gfx.Context, variant shaders.Variant) (*ShaderProgram, error) {
	prog, err := shaders.Build(ctx, variant)
	if err != nil {
		return nil, err
	}
	return &ShaderProgram{
		ctx:      ctx,
		variant:  variant,
		prog:     prog,
		model:    math3d.Identity(),
		viewProj: math3d.Identity(),
		color:    math3d.V4(1, 1, 1, 1),
		specular: math3d.V4(1, 1, 1, 1),
		fog:      math3d.V4(0, 0, 0, 1),
	}, nil
}

// Name returns the variant name.
func (p *ShaderProgram) Name() string { return p.variant.Name }

// Program returns the linked device program.
func (p *ShaderProgram) Program() *gfx.Program { return p.prog }

// SetTime stages the tick counter read by animated variants.
func (p *ShaderProgram) SetTime(t float64) { p.time = t }

// SetCameraPos stages the eye position used for specular and fog.
func (p *ShaderProgram) SetCameraPos(v math3d.Vec3) { p.cameraPos = v }

// SetGeometryColor stages the diffuse color, components in [0, 1].
func (p *ShaderProgram) SetGeometryColor(v math3d.Vec4) { p.color = v }

// SetGeometrySpecular stages the specular color, components in [0, 1].
func (p *ShaderProgram) SetGeometrySpecular(v math3d.Vec4) { p.specular = v }

// SetFogColor stages the color distant fragments fade to.
func (p *ShaderProgram) SetFogColor(v math3d.Vec4) { p.fog = v }

// SetSunIntensity stages the sun light scale.
func (p *ShaderProgram) SetSunIntensity(v float64) { p.intensity = v }

// SetModelMatrix stages the object-to-world transform. The inverse
// transpose is derived from it on Use.
func (p *ShaderProgram) SetModelMatrix(m math3d.Mat4) { p.model = m }

// SetViewProjMatrix stages the camera's combined view-projection matrix.
func (p *ShaderProgram) SetViewProjMatrix(m math3d.Mat4) { p.viewProj = m }

// GeometryColor returns the staged diffuse color.
func (p *ShaderProgram) GeometryColor() math3d.Vec4 { return p.color }

// GeometrySpecular returns the staged specular color.
func (p *ShaderProgram) GeometrySpecular() math3d.Vec4 { return p.specular }

// FogColor returns the staged fog color.
func (p *ShaderProgram) FogColor() math3d.Vec4 { return p.fog }

// SunIntensity returns the staged sun intensity.
func (p *ShaderProgram) SunIntensity() float64 { return p.intensity }

// Time returns the staged time.
func (p *ShaderProgram) Time() float64 { return p.time }

// Use binds the program and pushes the staged uniforms.
func (p *ShaderProgram) Use() {
	p.ctx.UseProgram(p.prog)
	p.push()
}

func (p *ShaderProgram) push() {
	for _, name := range p.variant.Uniforms {
		switch name {
		case shaders.UModel:
			p.ctx.UniformMatrix4(name, p.model)
		case shaders.UModelInvTr:
			p.ctx.UniformMatrix4(name, p.model.NormalMatrix())
		case shaders.UViewProj:
			p.ctx.UniformMatrix4(name, p.viewProj)
		case shaders.UColor:
			p.ctx.Uniform4f(name, p.color)
		case shaders.USpecColor:
			p.ctx.Uniform4f(name, p.specular)
		case shaders.UFogColor:
			p.ctx.Uniform4f(name, p.fog)
		case shaders.USunIntensity:
			p.ctx.Uniform1f(name, p.intensity)
		case shaders.UTime:
			p.ctx.Uniform1f(name, p.time)
		case shaders.UCameraPos:
			p.ctx.Uniform3f(name, p.cameraPos)
		}
	}
}

// Draw binds the program, pushes the staged uniforms and draws d.
func (p *ShaderProgram) Draw(d Drawable) {
	p.Use()
	d.Draw()
}
