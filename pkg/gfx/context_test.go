package gfx

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
)

const (
	testVertexSource   = "@vertex fn vs_main() -> @builtin(position) vec4<f32> { return vec4<f32>(0.0, 0.0, 0.0, 1.0); }"
	testFragmentSource = "@fragment fn fs_main() -> @location(0) vec4<f32> { return vec4<f32>(1.0, 1.0, 1.0, 1.0); }"
)

// acceptCompiler accepts any source without invoking naga.
type acceptCompiler struct{}

func (acceptCompiler) Compile(string) ([]byte, error) { return []byte{0x03, 0x02, 0x23, 0x07}, nil }

// failingCompiler rejects every source.
type failingCompiler struct{}

func (failingCompiler) Compile(string) ([]byte, error) { return nil, errors.New("unexpected token") }

func newTestContext(t *testing.T, width, height int) *Context {
	t.Helper()
	c, err := NewContext(width, height, WithCompiler(acceptCompiler{}))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return c
}

func TestNewContextRejectsEmptySurface(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewContext(tc.width, tc.height)
			if !errors.Is(err, ErrUnsupportedContext) {
				t.Errorf("err = %v, want ErrUnsupportedContext", err)
			}
			if c != nil {
				t.Error("context returned alongside error")
			}
		})
	}
}

func TestResize(t *testing.T) {
	c := newTestContext(t, 4, 4)
	if err := c.Resize(10, 6); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if c.Width() != 10 || c.Height() != 6 {
		t.Errorf("size = %dx%d, want 10x6", c.Width(), c.Height())
	}
	if err := c.Resize(0, 6); !errors.Is(err, ErrUnsupportedContext) {
		t.Errorf("Resize(0, 6) = %v, want ErrUnsupportedContext", err)
	}
}

func TestClear(t *testing.T) {
	c := newTestContext(t, 3, 2)
	c.ClearColor(0.1, 0.1, 0.1, 1)
	c.Clear(ColorBufferBit)

	want := ColorFromVec4(math3d.V4(0.1, 0.1, 0.1, 1))
	for y := range 2 {
		for x := range 3 {
			if got := c.Framebuffer().GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCapabilities(t *testing.T) {
	c := newTestContext(t, 1, 1)
	if c.IsEnabled(DepthTest) || c.IsEnabled(CullFace) {
		t.Fatal("capabilities should start disabled")
	}
	c.Enable(DepthTest)
	if !c.IsEnabled(DepthTest) || c.IsEnabled(CullFace) {
		t.Error("Enable(DepthTest) changed the wrong capability")
	}
	c.Disable(DepthTest)
	if c.IsEnabled(DepthTest) {
		t.Error("Disable(DepthTest) had no effect")
	}
	c.Enable(Capability(42))
	if c.IsEnabled(Capability(42)) {
		t.Error("unknown capability reported enabled")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		compile func(c *Context) error
	}{
		{"compiler rejects vertex", func(*Context) error {
			c, _ := NewContext(1, 1, WithCompiler(failingCompiler{}))
			_, err := c.CompileVertexShader(testVertexSource, passthroughVS)
			return err
		}},
		{"vertex source without entry point", func(c *Context) error {
			_, err := c.CompileVertexShader(testFragmentSource, passthroughVS)
			return err
		}},
		{"fragment source without entry point", func(c *Context) error {
			_, err := c.CompileFragmentShader(testVertexSource, flatFS)
			return err
		}},
		{"missing kernel", func(c *Context) error {
			_, err := c.CompileFragmentShader(testFragmentSource, nil)
			return err
		}},
		{"link swapped stages", func(c *Context) error {
			vs, _ := c.CompileVertexShader(testVertexSource, passthroughVS)
			fs, _ := c.CompileFragmentShader(testFragmentSource, flatFS)
			_, err := c.LinkProgram("swapped", fs, vs)
			return err
		}},
		{"link nil shader", func(c *Context) error {
			vs, _ := c.CompileVertexShader(testVertexSource, passthroughVS)
			_, err := c.LinkProgram("nil", vs, nil)
			return err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(t, 1, 1)
			if err := tc.compile(c); !errors.Is(err, ErrShaderCompile) {
				t.Errorf("err = %v, want ErrShaderCompile", err)
			}
		})
	}
}

func TestUniformsAreStoredPerProgram(t *testing.T) {
	c := newTestContext(t, 1, 1)
	a := createTestProgram(t, c, passthroughVS, flatFS)
	c.Uniform1f("u_Time", 3)
	c.Uniform3f("u_CameraPos", math3d.V3(0, 0, 5))

	b := createTestProgram(t, c, passthroughVS, flatFS)
	c.Uniform1f("u_Time", 7)

	if got := a.Uniforms.Float("u_Time"); got != 3 {
		t.Errorf("program a u_Time = %v, want 3", got)
	}
	if got := b.Uniforms.Float("u_Time"); got != 7 {
		t.Errorf("program b u_Time = %v, want 7", got)
	}
	if !a.Uniforms.Has("u_CameraPos") || b.Uniforms.Has("u_CameraPos") {
		t.Error("u_CameraPos leaked between programs")
	}
	if got := b.Uniforms.Mat4("u_Model"); got != math3d.Identity() {
		t.Errorf("unset matrix = %v, want identity", got)
	}

	// without a bound program the write is dropped
	c.UseProgram(nil)
	c.Uniform1f("u_Time", 99)
	if a.Uniforms.Float("u_Time") == 99 || b.Uniforms.Float("u_Time") == 99 {
		t.Error("uniform written with no program bound")
	}
}

func TestDeleteBufferUnbinds(t *testing.T) {
	c := newTestContext(t, 4, 4)
	createTestProgram(t, c, passthroughVS, flatFS)
	uploadTriangles(c, coverAll, make([]math3d.Vec3, 3), []uint32{0, 1, 2})
	if got := c.Stats().LiveBuffers; got != 3 {
		t.Fatalf("live buffers = %d, want 3", got)
	}

	c.DeleteBuffer(c.attribs[AttribPosition])
	c.DeleteBuffer(c.index)
	if got := c.Stats().LiveBuffers; got != 1 {
		t.Errorf("live buffers = %d, want 1", got)
	}

	c.DrawElements(3)
	if got := c.Stats().DrawCalls; got != 0 {
		t.Errorf("draw with released buffers counted %d calls", got)
	}
}

func TestDeleteBufferTwice(t *testing.T) {
	c := newTestContext(t, 1, 1)
	b := c.CreateBuffer()
	c.DeleteBuffer(b)
	c.DeleteBuffer(b)
	c.DeleteBuffer(nil)
	if got := c.Stats().LiveBuffers; got != 0 {
		t.Errorf("live buffers = %d, want 0", got)
	}
}

func TestTerminalSize(t *testing.T) {
	w, h := TerminalSize(80, 24)
	if w != 80 || h != 48 {
		t.Errorf("TerminalSize(80, 24) = %dx%d, want 80x48", w, h)
	}
}

func TestSavePNG(t *testing.T) {
	c := newTestContext(t, 5, 3)
	c.ClearColor(1, 0, 0, 1)
	c.Clear(ColorBufferBit)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := c.Framebuffer().SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 5 || b.Dy() != 3 {
		t.Errorf("image size = %v, want 5x3", b)
	}
	r, g, _, _ := img.At(2, 1).RGBA()
	if r>>8 != 255 || g>>8 != 0 {
		t.Errorf("pixel = %v, want red", img.At(2, 1))
	}
}

func TestColorFromVec4Clamps(t *testing.T) {
	got := ColorFromVec4(math3d.V4(2, -1, 0.5, 1))
	want := Color{R: 255, G: 0, B: 128, A: 255}
	if got != want {
		t.Errorf("ColorFromVec4 = %v, want %v", got, want)
	}
}

func TestRampSample(t *testing.T) {
	black := math3d.V4(0, 0, 0, 1)
	white := math3d.V4(1, 1, 1, 1)
	ramp := NewRamp(256, RampStop{At: 1, Color: white}, RampStop{At: 0, Color: black})

	tests := []struct {
		name string
		wrap WrapMode
		u    float64
		want float64
	}{
		{"start", WrapClamp, 0, 0},
		{"middle", WrapClamp, 0.5, 0.5},
		{"end", WrapClamp, 1, 1},
		{"clamped below", WrapClamp, -2, 0},
		{"clamped above", WrapClamp, 3, 1},
		{"repeat", WrapRepeat, 1.25, 0.25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ramp.Wrap = tc.wrap
			got := ramp.Sample(tc.u)
			if !got.ApproxEqual(math3d.V4(tc.want, tc.want, tc.want, 1), 1e-9) {
				t.Errorf("Sample(%v) = %v, want gray %v", tc.u, got, tc.want)
			}
		})
	}
}

func TestRampStopsHoldOutsideRange(t *testing.T) {
	sea := math3d.V4(0, 0, 1, 1)
	land := math3d.V4(0, 1, 0, 1)
	ramp := NewRamp(11, RampStop{At: 0.3, Color: sea}, RampStop{At: 0.7, Color: land})
	ramp.Filter = FilterNearest

	if got := ramp.Sample(0.1); got != sea {
		t.Errorf("below first stop = %v, want %v", got, sea)
	}
	if got := ramp.Sample(0.9); got != land {
		t.Errorf("above last stop = %v, want %v", got, land)
	}
}
