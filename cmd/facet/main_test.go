package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/facet/pkg/app"
	"github.com/taigrr/facet/pkg/config"
	"github.com/taigrr/facet/pkg/geometry"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	out, err := execute(t, "config", "--shader", "lambert", "--shape", "cube", "--tessellation", "3")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg, err := config.Parse([]byte(out))
	if err != nil {
		t.Fatalf("output does not parse: %v\n%s", err, out)
	}
	if cfg.Shader != app.ShaderLambert || cfg.Shape != app.ShapeCube || cfg.Tessellation != 3 {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestConfigCommandRejectsBadFlags(t *testing.T) {
	tests := [][]string{
		{"config", "--shader", "phong"},
		{"config", "--shape", "torus"},
		{"config", "--tessellation", "12"},
		{"config", "--sun-intensity", "500"},
		{"config", "--log-level", "loud"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args[1:], " "), func(t *testing.T) {
			if _, err := execute(t, args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestExportThenInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sphere.glb")
	if _, err := execute(t, "export", "--shape", "icosphere", "--tessellation", "1", "-o", path); err != nil {
		t.Fatalf("export: %v", err)
	}

	m, err := geometry.ReadGLB(path)
	if err != nil {
		t.Fatalf("ReadGLB: %v", err)
	}
	if m.VertexCount() != 42 || m.TriangleCount() != 80 {
		t.Errorf("exported %d vertices, %d triangles, want 42, 80", m.VertexCount(), m.TriangleCount())
	}

	out, err := execute(t, "inspect", path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"vertices:  42", "triangles: 80", "closed:    true"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildShapeCounts(t *testing.T) {
	tests := []struct {
		kind      app.ShapeKind
		vertices  int
		triangles int
	}{
		{app.ShapeIcosphere, 12, 20},
		{app.ShapeSquare, 4, 2},
		{app.ShapeCube, 24, 12},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			m := buildShape(tc.kind, 0)
			if m.VertexCount() != tc.vertices || m.TriangleCount() != tc.triangles {
				t.Errorf("got %d/%d, want %d/%d", m.VertexCount(), m.TriangleCount(), tc.vertices, tc.triangles)
			}
		})
	}
}
