// Package app runs the facet demo: it owns the scene, the camera, the three
// shader programs and the parameters edited by the control panel, and
// renders one frame per Tick.
//
// App is not safe for concurrent use. Handlers, Dispatch, Resize and Tick
// must all be called from the goroutine that drives the frame loop.
package app

import (
	"fmt"
	"log/slog"

	"github.com/taigrr/facet/pkg/gfx"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
	"github.com/taigrr/facet/pkg/shaders"
)

// Scene layout.
var (
	CameraPosition = math3d.V3(0, 0, 5)
	CameraTarget   = math3d.V3(0, 0, 0)
)

const (
	sphereRadius = 1.0
	cubeSize     = 2.0
	axisLength   = 1.5
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger used by the app.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFrameRate sets the tick rate the camera springs are tuned for.
func WithFrameRate(fps int) Option {
	return func(a *App) {
		if fps > 0 {
			a.fps = fps
		}
	}
}

// WithBackground sets the clear color. The default is a dark gray.
func WithBackground(c Color) Option {
	return func(a *App) {
		a.background = c.Clamp().Vec4()
	}
}

// FrameStats describes the last rendered frame.
type FrameStats struct {
	Time    float64
	Shader  ShaderKind
	Shape   ShapeKind
	Device  gfx.Stats
	Culling render.CullingStats
}

// App is the demo application state.
type App struct {
	params Params
	time   float64
	queue  []Command

	ctx      *gfx.Context
	renderer *render.Renderer
	camera   *render.Camera
	overlay  *render.Wireframe

	lambert  *render.ShaderProgram
	fireball *render.ShaderProgram
	planet   *render.ShaderProgram

	icosphere *render.MeshDrawable
	square    *render.MeshDrawable
	cube      *render.MeshDrawable

	background math3d.Vec4
	showBounds bool
	fps        int
	logger     *slog.Logger
}

// New builds the programs and the scene on ctx and applies params. A shader
// that fails to build is returned as an error wrapping gfx.ErrShaderCompile.
func New(ctx *gfx.Context, params Params, opts ...Option) (*App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: no graphics context", gfx.ErrUnsupportedContext)
	}
	a := &App{
		params:     params.Normalize(),
		ctx:        ctx,
		background: math3d.V4(0.1, 0.1, 0.1, 1),
		fps:        30,
		logger:     gfx.Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	var err error
	if a.lambert, err = render.NewShaderProgram(ctx, shaders.Lambert); err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	if a.fireball, err = render.NewShaderProgram(ctx, shaders.Fireball); err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}
	if a.planet, err = render.NewShaderProgram(ctx, shaders.Planet); err != nil {
		return nil, fmt.Errorf("build program: %w", err)
	}

	a.loadScene()

	a.camera = render.NewCamera(CameraPosition, CameraTarget)
	a.camera.SetFrameRate(a.fps)
	a.renderer = render.NewRenderer(ctx)
	a.renderer.SetClearColor(a.background.X, a.background.Y, a.background.Z, a.background.W)
	a.overlay = render.NewWireframe(a.camera, ctx)

	a.pushDiffuse()
	a.pushSpecular()
	a.pushSunIntensity()
	a.pushFog()

	if err := a.Resize(ctx.Width(), ctx.Height()); err != nil {
		return nil, err
	}
	a.logger.Info("app ready", "shader", a.params.Shader.String(), "shape", a.params.Shape.String(),
		"tessellation", a.params.Tessellation)
	return a, nil
}

// Params returns a copy of the current parameters.
func (a *App) Params() Params { return a.params }

// Time returns the tick counter.
func (a *App) Time() float64 { return a.time }

// Camera returns the scene camera.
func (a *App) Camera() *render.Camera { return a.camera }

// Context returns the graphics device.
func (a *App) Context() *gfx.Context { return a.ctx }

// Framebuffer returns the frame rendered by the last Tick.
func (a *App) Framebuffer() *gfx.Framebuffer { return a.ctx.Framebuffer() }

// Program returns the shader program for k.
func (a *App) Program(k ShaderKind) *render.ShaderProgram {
	switch k {
	case ShaderLambert:
		return a.lambert
	case ShaderFireball:
		return a.fireball
	case ShaderPlanet:
		return a.planet
	}
	panic(fmt.Sprintf("app: unknown shader kind %d", int(k)))
}

// Drawable returns the drawable for k.
func (a *App) Drawable(k ShapeKind) render.Drawable {
	switch k {
	case ShapeIcosphere:
		return a.icosphere
	case ShapeSquare:
		return a.square
	case ShapeCube:
		return a.cube
	}
	panic(fmt.Sprintf("app: unknown shape kind %d", int(k)))
}

// Dispatch queues cmd for the next Tick.
func (a *App) Dispatch(cmd Command) {
	a.queue = append(a.queue, cmd)
}

// Pending returns the number of queued commands.
func (a *App) Pending() int { return len(a.queue) }

func (a *App) drain() {
	for _, cmd := range a.queue {
		switch cmd.Kind {
		case CmdLoadScene:
			a.loadScene()
		case CmdOrbit:
			a.camera.Orbit(cmd.Azimuth, cmd.Elevation)
		case CmdZoom:
			a.camera.Zoom(cmd.Delta)
		default:
			a.logger.Warn("unknown command", "kind", cmd.Kind.String())
		}
	}
	a.queue = a.queue[:0]
}

// loadScene rebuilds every drawable at the current tessellation.
func (a *App) loadScene() {
	a.destroyScene()
	origin := math3d.Vec3{}
	a.icosphere = render.NewIcosphere(a.ctx, origin, sphereRadius, a.params.Tessellation)
	a.square = render.NewSquare(a.ctx, origin)
	a.cube = render.NewCube(a.ctx, origin, cubeSize)
	a.icosphere.Create()
	a.square.Create()
	a.cube.Create()
	a.logger.Info("scene loaded", "tessellation", a.params.Tessellation,
		"icosphere_elements", a.icosphere.ElementCount())
}

func (a *App) destroyScene() {
	for _, d := range []*render.MeshDrawable{a.icosphere, a.square, a.cube} {
		if d != nil {
			d.Destroy()
		}
	}
}

// Tick renders one frame: it applies queued commands, advances time and
// the camera, then draws the selected shape with the selected program.
func (a *App) Tick() {
	a.drain()
	a.time++
	a.camera.Update()

	a.ctx.SetViewport(0, 0, a.ctx.Width(), a.ctx.Height())
	a.renderer.Clear()

	prog := a.Program(a.params.Shader)
	shape := a.Drawable(a.params.Shape)
	prog.SetTime(a.time)
	prog.SetCameraPos(a.camera.Position)
	a.renderer.Render(a.camera, prog, shape)

	if a.showBounds {
		a.overlay.DrawBounds(shape)
		a.overlay.DrawAxes(axisLength)
	}
}

// Stats returns statistics for the last frame.
func (a *App) Stats() FrameStats {
	return FrameStats{
		Time:    a.time,
		Shader:  a.params.Shader,
		Shape:   a.params.Shape,
		Device:  a.renderer.Stats(),
		Culling: a.renderer.CullingStats,
	}
}

// Resize resizes the surface and updates the camera projection for the new
// aspect ratio.
func (a *App) Resize(width, height int) error {
	if err := a.renderer.SetSize(width, height); err != nil {
		return err
	}
	a.camera.SetAspectRatio(float64(width) / float64(height))
	a.camera.UpdateProjectionMatrix()
	a.logger.Debug("resized", "width", width, "height", height)
	return nil
}

// ToggleBounds shows or hides the bounds and axes overlay.
func (a *App) ToggleBounds() { a.showBounds = !a.showBounds }

// ShowBounds reports whether the bounds overlay is drawn.
func (a *App) ShowBounds() bool { return a.showBounds }

// Close releases the scene's device buffers.
func (a *App) Close() {
	a.destroyScene()
}

// SetShader selects the program used from the next Tick on.
func (a *App) SetShader(k ShaderKind) {
	if !k.Valid() {
		a.logger.Warn("ignoring unknown shader", "kind", int(k))
		return
	}
	a.params.Shader = k
}

// SetShape selects the drawable rendered from the next Tick on.
func (a *App) SetShape(k ShapeKind) {
	if !k.Valid() {
		a.logger.Warn("ignoring unknown shape", "kind", int(k))
		return
	}
	a.params.Shape = k
}

// SetTessellation sets the icosphere subdivision level used by the next
// LoadScene command.
func (a *App) SetTessellation(n int) {
	a.params.Tessellation = min(max(n, 0), MaxTessellation)
}

// SetSunIntensity sets the planet's sun intensity.
func (a *App) SetSunIntensity(v float64) {
	a.params.SunIntensity = math3d.Clamp(v, 0, MaxSunIntensity)
	a.pushSunIntensity()
}

// SetDiffuse sets the diffuse color of the lambert and fireball programs.
func (a *App) SetDiffuse(c Color) {
	a.params.Diffuse = c.Clamp()
	a.pushDiffuse()
}

// SetSpecular sets the specular color of the lambert and fireball programs.
func (a *App) SetSpecular(c Color) {
	a.params.Specular = c.Clamp()
	a.pushSpecular()
}

// SetFog sets the planet's fog color.
func (a *App) SetFog(c Color) {
	a.params.Fog = c.Clamp()
	a.pushFog()
}

func (a *App) pushDiffuse() {
	v := a.params.Diffuse.Vec4()
	a.lambert.SetGeometryColor(v)
	a.fireball.SetGeometryColor(v)
}

func (a *App) pushSpecular() {
	v := a.params.Specular.Vec4()
	a.lambert.SetGeometrySpecular(v)
	a.fireball.SetGeometrySpecular(v)
}

func (a *App) pushSunIntensity() {
	a.planet.SetSunIntensity(a.params.SunIntensity)
}

func (a *App) pushFog() {
	a.planet.SetFogColor(a.params.Fog.Vec4())
}
