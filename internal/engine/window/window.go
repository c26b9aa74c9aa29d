// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/village-viewer/internal/engine/input"
	"github.com/Faultbox/village-viewer/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Cursor is where the virtual cursor starts.
	Cursor [2]float64
}

// Handler receives input and resize events from PollEvents.
type Handler interface {
	HandleKey(key input.Key, pressed bool)
	HandleMouseMove(x, y float64)
	HandleScroll(dy float64)
	HandleResize(width, height int)
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config      Config
	sdlWindow   *sdl.Window
	glContext   sdl.GLContext
	cursor      Cursor
	shouldClose bool
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		cursor: Cursor{X: cfg.Cursor[0], Y: cfg.Cursor[1]},
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	// The cursor is hidden and captured; motion arrives as deltas.
	if sdl.SetRelativeMouseMode(true) < 0 {
		logger.Warn("relative mouse mode unavailable", zap.Error(sdl.GetError()))
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// PollEvents drains the SDL event queue into h.
func (w *Window) PollEvents(h Handler) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.shouldClose = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				h.HandleResize(w.DrawableSize())
			}

		case *sdl.MouseMotionEvent:
			x, y := w.cursor.Add(e.XRel, e.YRel)
			h.HandleMouseMove(x, y)

		case *sdl.MouseWheelEvent:
			dy := float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			h.HandleScroll(dy)

		case *sdl.KeyboardEvent:
			// Held keys are polled every frame, so OS auto-repeat adds nothing.
			if e.Repeat != 0 {
				continue
			}
			h.HandleKey(input.Key(e.Keysym.Scancode), e.State == sdl.PRESSED)
		}
	}
}

// ShouldClose reports whether the window was asked to close.
func (w *Window) ShouldClose() bool {
	return w.shouldClose
}

// SetShouldClose marks the window for closing.
func (w *Window) SetShouldClose(v bool) {
	w.shouldClose = v
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Cursor is a virtual pointer position driven by relative mouse motion, so
// mouse look never stops at the screen edge.
type Cursor struct {
	X, Y float64
}

// Add moves the cursor by a relative motion and returns the new position.
func (c *Cursor) Add(dx, dy int32) (float64, float64) {
	c.X += float64(dx)
	c.Y += float64(dy)
	return c.X, c.Y
}
