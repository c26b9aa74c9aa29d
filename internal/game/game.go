// Package game implements the viewer's main loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/village-viewer/internal/config"
	"github.com/Faultbox/village-viewer/internal/engine/debug"
	"github.com/Faultbox/village-viewer/internal/engine/input"
	"github.com/Faultbox/village-viewer/internal/engine/renderer"
	"github.com/Faultbox/village-viewer/internal/engine/window"
	"github.com/Faultbox/village-viewer/internal/game/world"
	"github.com/Faultbox/village-viewer/internal/logger"
)

// Game is the main viewer instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	world    *world.World
	scene    *resources
	shots    *debug.ScreenshotCapture
	log      *zap.Logger
}

// New creates the window and GL context, then loads every asset.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}

	g.log.Info("initializing viewer",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	var err error
	g.window, err = window.New(window.Config{
		Title:      cfg.Graphics.Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Cursor:     cfg.Camera.StartCursor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The drawable can be larger than the requested size on high-DPI screens.
	width, height := g.window.DrawableSize()

	// Create renderer (AFTER window, since OpenGL context must exist)
	g.renderer, err = renderer.New(renderer.Config{
		Width:       width,
		Height:      height,
		SRGB:        cfg.Graphics.SRGB,
		ClearColor:  cfg.Graphics.ClearColor,
		CheckErrors: cfg.Debug.CheckGLErrors,
	})
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.scene, err = loadResources(cfg)
	if err != nil {
		g.Close()
		return nil, err
	}

	g.world = world.New(cfg)
	g.world.HandleResize(width, height)
	g.shots = debug.NewScreenshotCapture(cfg.Debug.ScreenshotDir, "village")

	g.log.Info("viewer initialized successfully")
	return g, nil
}

// World returns the simulated scene state.
func (g *Game) World() *world.World {
	return g.world
}

// Run starts the main loop and returns when the window closes.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting render loop")

	for g.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		g.window.PollEvents(g)
		g.world.Update(now)

		if g.world.CloseRequested() {
			g.window.SetShouldClose(true)
		}
		if g.window.ShouldClose() {
			g.running = false
			break
		}

		g.render()
		if g.world.TakeScreenshotRequest() {
			g.screenshot()
		}
		g.window.SwapBuffers()
		g.renderer.End()

		g.scene.reloadShaders()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.config.Debug.ShowFPS {
				g.window.SetTitle(fmt.Sprintf("%s - %d fps", g.config.Graphics.Title, frameCount))
			}
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Stringer("intro", g.world.Intro.Phase()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	g.log.Info("render loop finished", zap.Uint64("frames", g.world.Frames()))
	return nil
}

// render draws the current frame.
func (g *Game) render() {
	g.renderer.SetPolygonMode(polygonMode(g.world.Polygon))
	g.renderer.Begin()

	u := collectUniforms(g.world)
	g.scene.drawObjects(u, g.world.Pipeline)
	g.scene.drawSky(g.world.Pipeline)
}

// screenshot reads the back buffer, so it must run before the swap.
func (g *Game) screenshot() {
	img := g.renderer.ReadPixels()
	path, err := g.shots.CaptureFramebuffer(img)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// HandleKey forwards a key transition to the world.
func (g *Game) HandleKey(key input.Key, pressed bool) {
	g.world.HandleKey(key, pressed)
}

// HandleMouseMove forwards cursor motion to the world.
func (g *Game) HandleMouseMove(x, y float64) {
	g.world.HandleMouseMove(x, y)
}

// HandleScroll forwards wheel motion to the world.
func (g *Game) HandleScroll(dy float64) {
	g.world.HandleScroll(dy)
}

// HandleResize resizes the viewport and the projection aspect.
func (g *Game) HandleResize(width, height int) {
	g.renderer.Resize(width, height)
	g.world.HandleResize(width, height)
}

// Close cleans up viewer resources.
func (g *Game) Close() {
	g.log.Info("closing viewer")

	if g.scene != nil {
		g.scene.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func polygonMode(m world.PolygonMode) renderer.PolygonMode {
	switch m {
	case world.PolygonLine:
		return renderer.Line
	case world.PolygonPoint:
		return renderer.Point
	default:
		return renderer.Fill
	}
}
