// Package config loads facet's YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/taigrr/facet/pkg/app"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

// Limits checked by Validate.
const (
	MaxFPS  = 240
	MaxSize = 8192
)

// Config is the file format. Colors are [r, g, b, a] with r, g, b in
// [0, 255] and a in [0, 1].
type Config struct {
	FPS        int       `yaml:"fps"`
	Background app.Color `yaml:"background"`

	// Size of headless snapshots, in pixels
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Shader       app.ShaderKind `yaml:"shader"`
	Shape        app.ShapeKind  `yaml:"shape"`
	Tessellation int            `yaml:"tessellation"`
	SunIntensity float64        `yaml:"sunIntensity"`
	Diffuse      app.Color      `yaml:"diffuse"`
	Specular     app.Color      `yaml:"specular"`
	Fog          app.Color      `yaml:"fog"`

	LogFile  string `yaml:"logFile,omitempty"`
	LogLevel string `yaml:"logLevel"`
}

// Default returns the built-in configuration.
func Default() Config {
	p := app.DefaultParams()
	return Config{
		FPS:          30,
		Background:   app.Color{25.5, 25.5, 25.5, 1},
		Width:        640,
		Height:       360,
		Shader:       p.Shader,
		Shape:        p.Shape,
		Tessellation: p.Tessellation,
		SunIntensity: p.SunIntensity,
		Diffuse:      p.Diffuse,
		Specular:     p.Specular,
		Fog:          p.Fog,
		LogLevel:     "info",
	}
}

// Load reads the file at path over the defaults and validates the result.
// Unknown keys are errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("loaded config", "path", path, "size", len(data))
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.FPS > 0 && c.FPS <= MaxFPS, "fps %d outside [1, %d]", c.FPS, MaxFPS)
	check(c.Width > 0 && c.Width <= MaxSize, "width %d outside [1, %d]", c.Width, MaxSize)
	check(c.Height > 0 && c.Height <= MaxSize, "height %d outside [1, %d]", c.Height, MaxSize)
	check(c.Shader.Valid(), "unknown shader %d", int(c.Shader))
	check(c.Shape.Valid(), "unknown shape %d", int(c.Shape))
	check(c.Tessellation >= 0 && c.Tessellation <= app.MaxTessellation,
		"tessellation %d outside [0, %d]", c.Tessellation, app.MaxTessellation)
	check(c.SunIntensity >= 0 && c.SunIntensity <= app.MaxSunIntensity,
		"sunIntensity %v outside [0, %v]", c.SunIntensity, app.MaxSunIntensity)
	for _, f := range []struct {
		name string
		col  app.Color
	}{
		{"background", c.Background},
		{"diffuse", c.Diffuse},
		{"specular", c.Specular},
		{"fog", c.Fog},
	} {
		check(f.col.Clamp() == f.col, "%s %v outside [0-255, 0-255, 0-255, 0-1]", f.name, f.col)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// Params returns the application parameters the file selects.
func (c Config) Params() app.Params {
	return app.Params{
		Tessellation: c.Tessellation,
		Shader:       c.Shader,
		Shape:        c.Shape,
		SunIntensity: c.SunIntensity,
		Diffuse:      c.Diffuse,
		Specular:     c.Specular,
		Fog:          c.Fog,
	}
}

// ParseLevel parses a log level name: debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
