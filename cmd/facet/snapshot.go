package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/app"
	"github.com/taigrr/facet/pkg/config"
	"github.com/taigrr/facet/pkg/gfx"
)

func newSnapshotCmd(opts *options) *cobra.Command {
	var (
		out    string
		frames int
		width  int
		height int
		bounds bool
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render frames off-screen and save the last one as PNG",
		Example: "  facet snapshot --shader fireball --frames 90 -o fireball.png\n" +
			"  facet snapshot --shape cube --shader lambert --bounds",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				cfg.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Height = height
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if frames < 1 {
				return fmt.Errorf("frames must be at least 1, got %d", frames)
			}
			return snapshot(cfg, out, frames, bounds)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "output", "o", "facet.png", "output PNG path")
	f.IntVarP(&frames, "frames", "n", 1, "number of ticks to render")
	f.IntVar(&width, "width", 0, "image width (default from config)")
	f.IntVar(&height, "height", 0, "image height (default from config)")
	f.BoolVar(&bounds, "bounds", false, "draw the bounds overlay")
	return cmd
}

func snapshot(cfg config.Config, out string, frames int, bounds bool) error {
	logger, closeLog, err := setupLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	dev, err := gfx.NewContext(cfg.Width, cfg.Height, gfx.WithLogger(logger))
	if err != nil {
		return err
	}
	a, err := app.New(dev, cfg.Params(),
		app.WithLogger(logger),
		app.WithFrameRate(cfg.FPS),
		app.WithBackground(cfg.Background),
	)
	if err != nil {
		return err
	}
	defer a.Close()
	if bounds {
		a.ToggleBounds()
	}

	pb := progressbar.Default(int64(frames), "rendering")
	defer pb.Close()
	for range frames {
		a.Tick()
		pb.Add(1)
	}

	if err := a.Framebuffer().SavePNG(out); err != nil {
		return err
	}
	s := a.Stats()
	logger.Info("snapshot saved", "path", out, "frames", frames,
		"shader", s.Shader.String(), "shape", s.Shape.String(),
		"triangles", s.Device.Rasterized, "fragments", s.Device.Fragments)
	return nil
}
