// Package gfx is a software graphics device for facet: a framebuffer with a
// depth buffer, buffer objects, compiled programs with uniform storage, and a
// programmable triangle pipeline. Frames are read back as images or
// presented to a terminal.
package gfx

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/taigrr/facet/pkg/math3d"
)

var (
	// ErrUnsupportedContext is returned when the device cannot be created
	// for the requested surface.
	ErrUnsupportedContext = errors.New("gfx: unsupported graphics context")

	// ErrShaderCompile is returned when a shader fails to compile or a
	// program fails to link.
	ErrShaderCompile = errors.New("gfx: shader compile failed")
)

// Capability is a pipeline feature toggled with Enable and Disable.
type Capability int

const (
	DepthTest Capability = iota // Reject fragments behind the stored depth
	CullFace                    // Skip clockwise (back-facing) triangles
)

// ClearMask selects the buffers Clear resets.
type ClearMask uint8

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

// Attribute slots read by DrawElements.
const (
	AttribPosition = iota
	AttribNormal
	numAttribs
)

// Buffer is a device buffer object holding either vertex attributes or
// triangle indices.
type Buffer struct {
	id      int
	vec3s   []math3d.Vec3
	indices []uint32
	deleted bool
}

// Len returns the number of elements stored in the buffer.
func (b *Buffer) Len() int {
	return max(len(b.vec3s), len(b.indices))
}

// Viewport is the framebuffer rectangle NDC is mapped onto. X and Y are the
// top-left corner in framebuffer pixels.
type Viewport struct {
	X, Y, Width, Height int
}

// Stats counts the work done since the last ResetStats.
type Stats struct {
	DrawCalls   int
	Triangles   int    // Triangles submitted
	Rasterized  int    // Triangles that survived clipping and culling
	Fragments   int    // Fragments written
	Program     string // Label of the program used by the last draw
	LiveBuffers int
}

// Option configures a Context.
type Option func(*Context)

// WithCompiler sets the shader compiler. The default is NagaCompiler.
func WithCompiler(c Compiler) Option {
	return func(ctx *Context) {
		if c != nil {
			ctx.compiler = c
		}
	}
}

// WithLogger sets the logger used by the context.
func WithLogger(l *slog.Logger) Option {
	return func(ctx *Context) {
		if l != nil {
			ctx.logger = l
		}
	}
}

// Context is the graphics device. It is not safe for concurrent use.
type Context struct {
	fb         *Framebuffer
	viewport   Viewport
	clearColor math3d.Vec4
	caps       [2]bool

	program *Program
	attribs [numAttribs]*Buffer
	index   *Buffer

	nextBufferID int
	liveBuffers  int
	stats        Stats

	compiler Compiler
	logger   *slog.Logger
}

// NewContext creates a device with a width x height framebuffer. It returns
// ErrUnsupportedContext when either dimension is not positive.
func NewContext(width, height int, opts ...Option) (*Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", ErrUnsupportedContext, width, height)
	}
	c := &Context{
		fb:         NewFramebuffer(width, height),
		viewport:   Viewport{Width: width, Height: height},
		clearColor: math3d.V4(0, 0, 0, 1),
		compiler:   NagaCompiler{},
		logger:     Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.fb.ClearDepth()
	return c, nil
}

// Width returns the framebuffer width.
func (c *Context) Width() int { return c.fb.Width }

// Height returns the framebuffer height.
func (c *Context) Height() int { return c.fb.Height }

// Framebuffer returns the color and depth storage.
func (c *Context) Framebuffer() *Framebuffer { return c.fb }

// Resize reallocates the framebuffer. The viewport is left unchanged.
func (c *Context) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: surface %dx%d", ErrUnsupportedContext, width, height)
	}
	if width == c.fb.Width && height == c.fb.Height {
		return nil
	}
	c.fb = NewFramebuffer(width, height)
	c.fb.ClearDepth()
	c.logger.Debug("surface resized", "width", width, "height", height)
	return nil
}

// SetViewport sets the rectangle NDC maps onto.
func (c *Context) SetViewport(x, y, width, height int) {
	c.viewport = Viewport{X: x, Y: y, Width: max(width, 0), Height: max(height, 0)}
}

// Viewport returns the current viewport.
func (c *Context) Viewport() Viewport { return c.viewport }

// ClearColor sets the color Clear fills the color buffer with.
func (c *Context) ClearColor(r, g, b, a float64) {
	c.clearColor = math3d.V4(r, g, b, a)
}

// Clear resets the selected buffers.
func (c *Context) Clear(mask ClearMask) {
	if mask&ColorBufferBit != 0 {
		c.fb.Fill(ColorFromVec4(c.clearColor))
	}
	if mask&DepthBufferBit != 0 {
		c.fb.ClearDepth()
	}
}

// Enable turns on a capability.
func (c *Context) Enable(capability Capability) { c.setCap(capability, true) }

// Disable turns off a capability.
func (c *Context) Disable(capability Capability) { c.setCap(capability, false) }

// IsEnabled reports whether a capability is on.
func (c *Context) IsEnabled(capability Capability) bool {
	if int(capability) < 0 || int(capability) >= len(c.caps) {
		return false
	}
	return c.caps[capability]
}

func (c *Context) setCap(capability Capability, on bool) {
	if int(capability) < 0 || int(capability) >= len(c.caps) {
		return
	}
	c.caps[capability] = on
}

// CreateBuffer allocates an empty buffer object.
func (c *Context) CreateBuffer() *Buffer {
	c.nextBufferID++
	c.liveBuffers++
	c.logger.Debug("buffer created", "id", c.nextBufferID)
	return &Buffer{id: c.nextBufferID}
}

// BufferData replaces the contents of b with vertex attributes.
func (c *Context) BufferData(b *Buffer, data []math3d.Vec3) {
	if b == nil || b.deleted {
		c.logger.Warn("buffer data on a released buffer")
		return
	}
	b.vec3s = append(b.vec3s[:0], data...)
	b.indices = nil
}

// BufferIndexData replaces the contents of b with triangle indices.
func (c *Context) BufferIndexData(b *Buffer, indices []uint32) {
	if b == nil || b.deleted {
		c.logger.Warn("index data on a released buffer")
		return
	}
	b.indices = append(b.indices[:0], indices...)
	b.vec3s = nil
}

// DeleteBuffer releases b and unbinds it wherever it is bound. Deleting a
// buffer twice is a no-op.
func (c *Context) DeleteBuffer(b *Buffer) {
	if b == nil || b.deleted {
		return
	}
	b.deleted = true
	b.vec3s, b.indices = nil, nil
	c.liveBuffers--
	c.logger.Debug("buffer released", "id", b.id)
	for i, a := range c.attribs {
		if a == b {
			c.attribs[i] = nil
		}
	}
	if c.index == b {
		c.index = nil
	}
}

// BindAttribute binds a vertex buffer to an attribute slot.
func (c *Context) BindAttribute(slot int, b *Buffer) {
	if slot < 0 || slot >= numAttribs {
		c.logger.Warn("bind to unknown attribute slot", "slot", slot)
		return
	}
	c.attribs[slot] = b
}

// BindIndexBuffer binds the index buffer used by DrawElements.
func (c *Context) BindIndexBuffer(b *Buffer) {
	c.index = b
}

// Stats returns the counters accumulated since the last ResetStats.
func (c *Context) Stats() Stats {
	s := c.stats
	s.LiveBuffers = c.liveBuffers
	return s
}

// ResetStats zeroes the per-frame counters.
func (c *Context) ResetStats() {
	c.stats = Stats{}
}
