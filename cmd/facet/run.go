package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/taigrr/facet/pkg/app"
	"github.com/taigrr/facet/pkg/config"
	"github.com/taigrr/facet/pkg/gfx"
	"golang.org/x/sync/errgroup"
)

// Input tuning.
const (
	orbitPerCell = 0.05 // radians per cell dragged
	zoomStep     = 0.1
)

var errQuit = errors.New("quit")

// fpsCounter measures the presented frame rate over one-second windows.
type fpsCounter struct {
	frames int
	since  time.Time
	fps    float64
}

func (f *fpsCounter) frame() {
	f.frames++
	elapsed := time.Since(f.since)
	if elapsed >= time.Second {
		f.fps = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.since = time.Now()
	}
}

// viewer owns the terminal side of an interactive session.
type viewer struct {
	term   *uv.Terminal
	app    *app.App
	panel  *app.Panel
	fps    fpsCounter
	logger *slog.Logger

	cols, rows int

	dragging bool
	lastX    int
	lastY    int
}

func runInteractive(ctx context.Context, cfg config.Config) error {
	logger, closeLog, err := setupLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	term := uv.DefaultTerminal()
	cols, rows, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	w, h := gfx.TerminalSize(cols, rows)
	dev, err := gfx.NewContext(w, h, gfx.WithLogger(logger))
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

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(cols, rows)
	fmt.Fprint(os.Stdout, ansi.SetWindowTitle("facet"))
	fmt.Fprint(os.Stdout, ansi.SetMode(ansi.ModeMouseAnyEvent, ansi.ModeMouseExtSgr))
	defer func() {
		fmt.Fprint(os.Stdout, ansi.ResetMode(ansi.ModeMouseAnyEvent, ansi.ModeMouseExtSgr))
		term.ExitAltScreen()
		term.ShowCursor()
		if err := term.Shutdown(context.Background()); err != nil {
			logger.Warn("terminal shutdown", "err", err)
		}
	}()

	v := &viewer{
		term:   term,
		app:    a,
		panel:  app.NewPanel(a),
		fps:    fpsCounter{since: time.Now()},
		logger: logger,
		cols:   cols,
		rows:   rows,
	}

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan uv.Event, 64)
	g.Go(func() error {
		src := term.Events()
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-src:
				if !ok {
					return nil
				}
				select {
				case events <- ev:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	g.Go(func() error {
		return v.loop(ctx, events, time.Second/time.Duration(cfg.FPS))
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	logger.Info("bye", "frames", a.Time())
	return nil
}

// loop applies input as it arrives and renders one frame per tick until
// ctx is done or the user quits.
func (v *viewer) loop(ctx context.Context, events <-chan uv.Event, frame time.Duration) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := v.handle(ev); err != nil {
				return err
			}
		case <-ticker.C:
			if err := v.frame(); err != nil {
				return err
			}
		}
	}
}

func (v *viewer) handle(ev uv.Event) error {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.resize(ev.Width, ev.Height)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return errQuit
		case ev.MatchString("up", "k"):
			v.panel.Prev()
		case ev.MatchString("down", "j"):
			v.panel.Next()
		case ev.MatchString("left", "h"):
			v.panel.Adjust(-1)
		case ev.MatchString("right", "l"):
			v.panel.Adjust(1)
		case ev.MatchString("enter", "space"):
			v.panel.Activate()
		case ev.MatchString("tab"):
			v.panel.Toggle()
		case ev.MatchString("b"):
			v.app.ToggleBounds()
		case ev.MatchString("+", "="):
			v.app.Dispatch(app.Zoom(-zoomStep))
		case ev.MatchString("-", "_"):
			v.app.Dispatch(app.Zoom(zoomStep))
		}

	case uv.MouseClickEvent:
		v.dragging = true
		v.lastX, v.lastY = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		v.dragging = false

	case uv.MouseMotionEvent:
		if !v.dragging {
			return nil
		}
		dx, dy := ev.X-v.lastX, ev.Y-v.lastY
		v.lastX, v.lastY = ev.X, ev.Y
		if dx != 0 || dy != 0 {
			v.app.Dispatch(app.Orbit(-float64(dx)*orbitPerCell, float64(dy)*orbitPerCell))
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.app.Dispatch(app.Zoom(-zoomStep))
		case uv.MouseWheelDown:
			v.app.Dispatch(app.Zoom(zoomStep))
		}
	}
	return nil
}

func (v *viewer) resize(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		return
	}
	v.cols, v.rows = cols, rows
	v.term.Erase()
	v.term.Resize(cols, rows)
	if err := v.app.Resize(gfx.TerminalSize(cols, rows)); err != nil {
		v.logger.Warn("resize", "cols", cols, "rows", rows, "err", err)
	}
}

// frame renders one tick and presents it with the panel drawn on top.
func (v *viewer) frame() error {
	v.app.Tick()

	area := uv.Rect(0, 0, v.cols, v.rows)
	v.app.Framebuffer().Draw(v.term, area)
	if view := v.panel.View(v.fps.fps); view != "" {
		pw := min(lipgloss.Width(view), v.cols-1)
		ph := min(lipgloss.Height(view), v.rows-1)
		uv.NewStyledString(view).Draw(v.term, uv.Rect(1, 1, pw, ph))
	}
	if err := v.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	v.fps.frame()
	return nil
}
