package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/facet/pkg/math3d"
)

// Projection defaults.
const (
	DefaultFOV  = 45.0 // degrees
	DefaultNear = 0.1
	DefaultFar  = 1000.0
)

// Orbit limits.
const (
	MinDistance  = 2.0
	MaxDistance  = 50.0
	maxElevation = math.Pi/2 - 0.01

	springFrequency = 6.0
	springDamping   = 1.0
	settleEpsilon   = 1e-4
)

// orbitAxis is one spring-smoothed orbit coordinate.
type orbitAxis struct {
	pos, vel, target float64
	spring           harmonica.Spring
}

func (a *orbitAxis) update() {
	a.pos, a.vel = a.spring.Update(a.pos, a.vel, a.target)
	if math.Abs(a.pos-a.target) < settleEpsilon && math.Abs(a.vel) < settleEpsilon {
		a.pos, a.vel = a.target, 0
	}
}

func (a *orbitAxis) settled() bool {
	return a.pos == a.target && a.vel == 0
}

// Camera looks from Position at Target. Orbit and Zoom move it on a sphere
// around the target, smoothed by springs advanced in Update.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	Up       math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64
	Far         float64

	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4

	azimuth, elevation, distance orbitAxis
	orbiting                     bool
}

// NewCamera creates a camera at position looking at target with the default
// projection. View and projection are computed immediately.
func NewCamera(position, target math3d.Vec3) *Camera {
	c := &Camera{
		Position:    position,
		Target:      target,
		Up:          math3d.Up(),
		FOV:         math3d.Radians(DefaultFOV),
		AspectRatio: 1,
		Near:        DefaultNear,
		Far:         DefaultFar,
	}
	c.SetFrameRate(30)
	c.resetOrbit()
	c.Update()
	c.UpdateProjectionMatrix()
	return c
}

// SetFrameRate retunes the orbit springs for fps updates per second.
func (c *Camera) SetFrameRate(fps int) {
	fps = max(fps, 1)
	for _, a := range []*orbitAxis{&c.azimuth, &c.elevation, &c.distance} {
		a.spring = harmonica.NewSpring(harmonica.FPS(fps), springFrequency, springDamping)
	}
}

// resetOrbit derives the spherical orbit coordinates from the current
// position.
func (c *Camera) resetOrbit() {
	offset := c.Position.Sub(c.Target)
	dist := offset.Len()
	var az, el float64
	if dist > 0 {
		az = math.Atan2(offset.X, offset.Z)
		el = math.Asin(math3d.Clamp(offset.Y/dist, -1, 1))
	}
	c.azimuth.pos, c.azimuth.target, c.azimuth.vel = az, az, 0
	c.elevation.pos, c.elevation.target, c.elevation.vel = el, el, 0
	c.distance.pos, c.distance.target, c.distance.vel = dist, dist, 0
}

// Orbit turns the camera around the target by the given angles in radians.
// Elevation stops just short of the poles.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.orbiting = true
	c.azimuth.target += dAzimuth
	c.elevation.target = math3d.Clamp(c.elevation.target+dElevation, -maxElevation, maxElevation)
}

// Zoom moves the camera toward (negative delta) or away from the target,
// proportionally to the current distance.
func (c *Camera) Zoom(delta float64) {
	c.orbiting = true
	c.distance.target = math3d.Clamp(c.distance.target*(1+delta), MinDistance, MaxDistance)
}

// Settled reports whether no orbit or zoom motion is pending.
func (c *Camera) Settled() bool {
	return c.azimuth.settled() && c.elevation.settled() && c.distance.settled()
}

// Update advances the orbit springs and recomputes the view matrix. Without
// orbit input the position is left exactly where it was set.
func (c *Camera) Update() {
	if c.orbiting {
		c.azimuth.update()
		c.elevation.update()
		c.distance.update()

		az, el, dist := c.azimuth.pos, c.elevation.pos, c.distance.pos
		c.Position = c.Target.Add(math3d.V3(
			dist*math.Cos(el)*math.Sin(az),
			dist*math.Sin(el),
			dist*math.Cos(el)*math.Cos(az),
		))
	}
	c.viewMatrix = math3d.LookAt(c.Position, c.Target, c.Up)
}

// SetAspectRatio sets the aspect ratio used by the next
// UpdateProjectionMatrix.
func (c *Camera) SetAspectRatio(aspect float64) {
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return
	}
	c.AspectRatio = aspect
}

// UpdateProjectionMatrix recomputes the perspective projection.
func (c *Camera) UpdateProjectionMatrix() {
	c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
}

// ViewMatrix returns the view matrix computed by the last Update.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return c.viewMatrix
}

// ProjectionMatrix returns the matrix computed by the last
// UpdateProjectionMatrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.projMatrix.Mul(c.viewMatrix)
}

// Distance returns the current distance to the target.
func (c *Camera) Distance() float64 {
	return c.Position.Distance(c.Target)
}
