// facet - procedural meshes and shaders in your terminal.
//
// Renders an icosphere, square or cube with one of three shader programs
// (lambert, fireball, planet) and lets you tune the scene from a control
// panel.
//
// Controls:
//
//	Up/Down     - Move panel focus
//	Left/Right  - Adjust focused control
//	Enter       - Load Scene (rebuild meshes at the current tessellation)
//	Tab         - Show/hide the panel
//	B           - Toggle bounds overlay
//	Mouse drag  - Orbit the camera
//	Scroll, +/- - Zoom
//	Esc, Ctrl-C - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/app"
	"github.com/taigrr/facet/pkg/config"
	"github.com/taigrr/facet/pkg/gfx"
)

var version = "dev"

// options are the persistent flags shared by every command.
type options struct {
	configPath   string
	logLevel     string
	logFile      string
	fps          int
	shader       string
	shape        string
	tessellation int
	sunIntensity float64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "facet",
		Short: "Procedural meshes and shaders in your terminal",
		Long: "facet renders an icosphere, square or cube with a lambert, fireball or planet\n" +
			"shader, and exposes tessellation, colors and sun intensity on a control panel.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runInteractive(cmd.Context(), cfg)
		},
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML config file")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	f.IntVar(&opts.fps, "fps", 0, "target frames per second")
	f.StringVar(&opts.shader, "shader", "", "shader: lambert, fireball, planet")
	f.StringVar(&opts.shape, "shape", "", "shape: icosphere, square, cube")
	f.IntVar(&opts.tessellation, "tessellation", -1, "icosphere subdivision level (0-8)")
	f.Float64Var(&opts.sunIntensity, "sun-intensity", -1, "planet sun intensity (0-200)")

	root.AddCommand(
		newSnapshotCmd(opts),
		newExportCmd(opts),
		newInspectCmd(opts),
		newConfigCmd(opts),
	)
	return root
}

// load reads the config file, if any, and applies flags that were set.
func (o *options) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if flags.Changed("fps") {
		cfg.FPS = o.fps
	}
	if flags.Changed("shader") {
		k, err := app.ParseShaderKind(o.shader)
		if err != nil {
			return cfg, err
		}
		cfg.Shader = k
	}
	if flags.Changed("shape") {
		k, err := app.ParseShapeKind(o.shape)
		if err != nil {
			return cfg, err
		}
		cfg.Shape = k
	}
	if flags.Changed("tessellation") {
		cfg.Tessellation = o.tessellation
	}
	if flags.Changed("sun-intensity") {
		cfg.SunIntensity = o.sunIntensity
	}
	return cfg, cfg.Validate()
}

// setupLogger installs a text logger at the configured level for the
// process and the graphics device. Logs go to the configured file, or to
// fallback when none is set. The returned closer releases the file.
func setupLogger(cfg config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	w, closer := fallback, func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gfx.SetLogger(logger)
	return logger, closer, nil
}
