// Package game runs the viewer: window, renderer, input and the world loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/debug"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/scene"
	"github.com/Faultbox/meadow/internal/engine/window"
	"github.com/Faultbox/meadow/internal/game/world"
	"github.com/Faultbox/meadow/internal/logger"
)

// Game is the running viewer.
type Game struct {
	running  bool
	log      *zap.Logger
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	world    *world.World
	shots    *debug.Screenshots
}

// New opens the window, sets up rendering and generates the world. seed must
// already be resolved.
func New(cfg *config.Config, seed int64) (*Game, error) {
	g := &Game{log: logger.Named("game")}

	g.log.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int64("seed", seed),
	)

	var err error
	g.world, err = world.New(cfg, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	g.window, err = window.New(window.Config{
		Title:      "Meadow",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created
	dw, dh := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:           dw,
		Height:          dh,
		ClearColor:      cfg.Render.ClearColor,
		Grass:           cfg.Render.Grass,
		BackfaceCulling: cfg.Render.BackfaceCulling,
		LightDir:        lighting.LightDirection(cfg.Render.SunAzimuth, cfg.Render.SunElevation),
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if err := g.renderer.Load(g.world.Mesh()); err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to upload terrain: %w", err)
	}

	// Pointer deltas are measured in window coordinates.
	ww, wh := g.window.Size()
	g.world.Apply(input.Action{Kind: input.KindResize, Width: ww, Height: wh})

	g.input = input.New()
	g.shots = debug.NewScreenshots(cfg.Render.ScreenshotDir, "meadow")
	return g, nil
}

// Run drives the loop until the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.running = true

	frames := 0
	fpsTimer := time.Now()

	g.log.Info("starting loop")

	for g.running {
		capture := false
		for _, a := range g.input.Poll() {
			switch a.Kind {
			case input.KindQuit:
				g.running = false
			case input.KindScreenshot:
				capture = true
			case input.KindResize:
				g.world.Apply(a)
				g.renderer.Resize(g.window.DrawableSize())
			default:
				g.world.Apply(a)
			}
		}
		if !g.running {
			break
		}

		frame, err := g.world.Step()
		if err != nil {
			return fmt.Errorf("step %d: %w", frame.Tick, err)
		}

		err = g.renderer.Draw(frame.Indices, scene.View{
			ViewProj: frame.Projection.Mul(frame.View),
			Wind:     frame.Wind,
			Mode:     frame.Mode,
		})
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}

		if capture {
			g.screenshot()
		}

		g.window.SwapBuffers()

		frames++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			g.log.Debug("fps",
				zap.Float64("fps", float64(frames)/elapsed.Seconds()),
				zap.Int("level", frame.Level),
				zap.Int("indices", len(frame.Indices)),
			)
			frames = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// screenshot saves the frame just drawn. Failures are logged, not fatal.
func (g *Game) screenshot() {
	pixels, w, h := g.renderer.Capture()
	path, err := g.shots.Save(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer and window.
func (g *Game) Close() {
	g.log.Info("closing")

	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
