// Package shaders holds facet's shader programs: WGSL vertex/fragment source
// pairs embedded at build time, and the kernels that execute each stage on
// the software device.
package shaders

import (
	_ "embed"
	"fmt"

	"github.com/taigrr/facet/pkg/gfx"
)

// Uniform names shared by every program. They map onto the fields of the
// WGSL Uniforms struct.
const (
	UModel        = "u_Model"        // model
	UModelInvTr   = "u_ModelInvTr"   // model_inv_tr
	UViewProj     = "u_ViewProj"     // view_proj
	UColor        = "u_Color"        // color
	USpecColor    = "u_SpecColor"    // spec_color
	UFogColor     = "u_FogColor"     // fog_color
	USunIntensity = "u_SunIntensity" // sun_intensity
	UTime         = "u_Time"         // time
	UCameraPos    = "u_CameraPos"    // camera_pos
)

//go:embed wgsl/lambert.vert.wgsl
var lambertVertWGSL string

//go:embed wgsl/lambert.frag.wgsl
var lambertFragWGSL string

//go:embed wgsl/fireball.vert.wgsl
var fireballVertWGSL string

//go:embed wgsl/fireball.frag.wgsl
var fireballFragWGSL string

//go:embed wgsl/planet.vert.wgsl
var planetVertWGSL string

//go:embed wgsl/planet.frag.wgsl
var planetFragWGSL string

// Variant is one shader program: its two source texts, the kernels that run
// them, and the uniforms the kernels read.
type Variant struct {
	Name           string
	VertexSource   string
	FragmentSource string
	Vertex         gfx.VertexFunc
	Fragment       gfx.FragmentFunc
	Uniforms       []string
}

// String returns the variant name.
func (v Variant) String() string { return v.Name }

var transformUniforms = []string{UModel, UModelInvTr, UViewProj}

var (
	// Lambert shades with diffuse + ambient light and a specular highlight.
	Lambert = Variant{
		Name:           "lambert",
		VertexSource:   lambertVertWGSL,
		FragmentSource: lambertFragWGSL,
		Vertex:         lambertVertex,
		Fragment:       lambertFragment,
		Uniforms:       append([]string{UColor, USpecColor, UCameraPos}, transformUniforms...),
	}

	// Fireball displaces the surface with animated noise and colors it by
	// displacement from diffuse to specular.
	Fireball = Variant{
		Name:           "fireball",
		VertexSource:   fireballVertWGSL,
		FragmentSource: fireballFragWGSL,
		Vertex:         fireballVertex,
		Fragment:       fireballFragment,
		Uniforms:       append([]string{UColor, USpecColor, UCameraPos, UTime}, transformUniforms...),
	}

	// Planet raises noise terrain above a sea level, colors it by biome,
	// lights it with the sun and fogs it with distance.
	Planet = Variant{
		Name:           "planet",
		VertexSource:   planetVertWGSL,
		FragmentSource: planetFragWGSL,
		Vertex:         planetVertex,
		Fragment:       planetFragment,
		Uniforms:       append([]string{UFogColor, USunIntensity, UCameraPos}, transformUniforms...),
	}
)

// Variants returns every program variant.
func Variants() []Variant {
	return []Variant{Lambert, Fireball, Planet}
}

// Build compiles and links the variant on the device.
func Build(ctx *gfx.Context, v Variant) (*gfx.Program, error) {
	vs, err := ctx.CompileVertexShader(v.VertexSource, v.Vertex)
	if err != nil {
		return nil, fmt.Errorf("%s vertex: %w", v.Name, err)
	}
	fs, err := ctx.CompileFragmentShader(v.FragmentSource, v.Fragment)
	if err != nil {
		return nil, fmt.Errorf("%s fragment: %w", v.Name, err)
	}
	prog, err := ctx.LinkProgram(v.Name, vs, fs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v.Name, err)
	}
	return prog, nil
}
