package gfx

import (
	"fmt"
	"strings"

	"github.com/gogpu/naga"
	"github.com/taigrr/facet/pkg/math3d"
)

// MaxVaryings is the number of vec4 varyings a vertex kernel can pass to
// the fragment kernel.
const MaxVaryings = 4

// Varyings are the per-vertex values interpolated across a triangle.
type Varyings [MaxVaryings]math3d.Vec4

// VertexInput holds the attributes fetched for one vertex. Position has
// w = 1 and Normal has w = 0.
type VertexInput struct {
	Position math3d.Vec4
	Normal   math3d.Vec4
}

// VertexOutput is the result of a vertex kernel: a clip-space position and
// the varyings handed to rasterization.
type VertexOutput struct {
	Position math3d.Vec4
	Varyings Varyings
}

// VertexFunc executes a vertex shader for one vertex.
type VertexFunc func(u *UniformBlock, in VertexInput) VertexOutput

// FragmentFunc executes a fragment shader for one fragment and returns its
// linear RGBA color.
type FragmentFunc func(u *UniformBlock, in Varyings) math3d.Vec4

// ShaderStage identifies the pipeline stage a shader runs in.
type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderStage(%d)", int(s))
	}
}

// entryAttr is the WGSL attribute that marks the stage's entry point.
func (s ShaderStage) entryAttr() string {
	if s == FragmentStage {
		return "@fragment"
	}
	return "@vertex"
}

// Compiler validates and compiles shader source text into a module binary.
type Compiler interface {
	Compile(source string) ([]byte, error)
}

// NagaCompiler compiles WGSL to SPIR-V with naga.
type NagaCompiler struct{}

// Compile implements Compiler.
func (NagaCompiler) Compile(source string) ([]byte, error) {
	return naga.Compile(source)
}

// Shader is a compiled shader stage: its source, the compiled module and the
// kernel that executes it on the device.
type Shader struct {
	Stage  ShaderStage
	Source string
	Module []byte

	vertex   VertexFunc
	fragment FragmentFunc
}

// Program is a linked vertex + fragment pair with its uniform storage.
type Program struct {
	Label    string
	Vertex   *Shader
	Fragment *Shader
	Uniforms UniformBlock
}

// UniformBlock stores the named uniform values of a program. Reads of unset
// names return the zero value (identity for matrices).
type UniformBlock struct {
	floats map[string]float64
	vec3s  map[string]math3d.Vec3
	vec4s  map[string]math3d.Vec4
	mat4s  map[string]math3d.Mat4
}

func newUniformBlock() UniformBlock {
	return UniformBlock{
		floats: make(map[string]float64),
		vec3s:  make(map[string]math3d.Vec3),
		vec4s:  make(map[string]math3d.Vec4),
		mat4s:  make(map[string]math3d.Mat4),
	}
}

// Float returns the float uniform name.
func (u *UniformBlock) Float(name string) float64 { return u.floats[name] }

// Vec3 returns the vec3 uniform name.
func (u *UniformBlock) Vec3(name string) math3d.Vec3 { return u.vec3s[name] }

// Vec4 returns the vec4 uniform name.
func (u *UniformBlock) Vec4(name string) math3d.Vec4 { return u.vec4s[name] }

// Mat4 returns the mat4 uniform name, or the identity when unset.
func (u *UniformBlock) Mat4(name string) math3d.Mat4 {
	if m, ok := u.mat4s[name]; ok {
		return m
	}
	return math3d.Identity()
}

// Has reports whether any uniform called name has been set.
func (u *UniformBlock) Has(name string) bool {
	if _, ok := u.floats[name]; ok {
		return true
	}
	if _, ok := u.vec3s[name]; ok {
		return true
	}
	if _, ok := u.vec4s[name]; ok {
		return true
	}
	_, ok := u.mat4s[name]
	return ok
}

// CompileVertexShader compiles source as a vertex stage executed by fn.
func (c *Context) CompileVertexShader(source string, fn VertexFunc) (*Shader, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: vertex shader has no kernel", ErrShaderCompile)
	}
	s, err := c.compile(VertexStage, source)
	if err != nil {
		return nil, err
	}
	s.vertex = fn
	return s, nil
}

// CompileFragmentShader compiles source as a fragment stage executed by fn.
func (c *Context) CompileFragmentShader(source string, fn FragmentFunc) (*Shader, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: fragment shader has no kernel", ErrShaderCompile)
	}
	s, err := c.compile(FragmentStage, source)
	if err != nil {
		return nil, err
	}
	s.fragment = fn
	return s, nil
}

func (c *Context) compile(stage ShaderStage, source string) (*Shader, error) {
	if !strings.Contains(source, stage.entryAttr()) {
		return nil, fmt.Errorf("%w: %s source has no %s entry point", ErrShaderCompile, stage, stage.entryAttr())
	}
	module, err := c.compiler.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrShaderCompile, stage, err)
	}
	c.logger.Debug("shader compiled", "stage", stage.String(), "module_bytes", len(module))
	return &Shader{Stage: stage, Source: source, Module: module}, nil
}

// LinkProgram links a vertex and fragment shader into a program.
func (c *Context) LinkProgram(label string, vs, fs *Shader) (*Program, error) {
	if vs == nil || vs.Stage != VertexStage || vs.vertex == nil {
		return nil, fmt.Errorf("%w: link %s: missing vertex stage", ErrShaderCompile, label)
	}
	if fs == nil || fs.Stage != FragmentStage || fs.fragment == nil {
		return nil, fmt.Errorf("%w: link %s: missing fragment stage", ErrShaderCompile, label)
	}
	c.logger.Debug("program linked", "label", label)
	return &Program{
		Label:    label,
		Vertex:   vs,
		Fragment: fs,
		Uniforms: newUniformBlock(),
	}, nil
}

// UseProgram makes p the program for subsequent uniform writes and draws.
// Passing nil unbinds.
func (c *Context) UseProgram(p *Program) {
	c.program = p
}

// CurrentProgram returns the bound program, or nil.
func (c *Context) CurrentProgram() *Program {
	return c.program
}

// Uniform1f sets a float uniform on the bound program.
func (c *Context) Uniform1f(name string, v float64) {
	if p := c.boundForUniform(name); p != nil {
		p.Uniforms.floats[name] = v
	}
}

// Uniform3f sets a vec3 uniform on the bound program.
func (c *Context) Uniform3f(name string, v math3d.Vec3) {
	if p := c.boundForUniform(name); p != nil {
		p.Uniforms.vec3s[name] = v
	}
}

// Uniform4f sets a vec4 uniform on the bound program.
func (c *Context) Uniform4f(name string, v math3d.Vec4) {
	if p := c.boundForUniform(name); p != nil {
		p.Uniforms.vec4s[name] = v
	}
}

// UniformMatrix4 sets a mat4 uniform on the bound program.
func (c *Context) UniformMatrix4(name string, m math3d.Mat4) {
	if p := c.boundForUniform(name); p != nil {
		p.Uniforms.mat4s[name] = m
	}
}

func (c *Context) boundForUniform(name string) *Program {
	if c.program == nil {
		c.logger.Warn("uniform write without a bound program", "uniform", name)
	}
	return c.program
}
