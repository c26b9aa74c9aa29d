// Package renderer owns the global OpenGL state of the viewer.
package renderer

import (
	"fmt"
	"image"
	"path/filepath"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/village-viewer/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	SRGB       bool
	ClearColor [3]float32
	// CheckErrors drains glGetError after every frame.
	CheckErrors bool
}

// PolygonMode selects how triangles are rasterized.
type PolygonMode uint32

const (
	Fill  PolygonMode = gl.FILL
	Line  PolygonMode = gl.LINE
	Point PolygonMode = gl.POINT
)

// Renderer handles frame setup for the scene.
type Renderer struct {
	config  Config
	polygon PolygonMode
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:  cfg,
		polygon: Fill,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("glsl", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION))),
	)

	if cfg.SRGB {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close logs renderer shutdown. GPU objects are owned by their packages.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame, reporting any pending GL errors at the
// caller's location.
func (r *Renderer) End() {
	if r.config.CheckErrors {
		r.drainErrors(callerSite(1))
	}
}

// SetPolygonMode switches rasterization for both faces. It is a no-op when
// the mode is unchanged.
func (r *Renderer) SetPolygonMode(mode PolygonMode) {
	if mode == r.polygon {
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, uint32(mode))
	r.polygon = mode
}

// CheckErrors drains the GL error queue, logging each error with the
// location of the caller. It returns the number of errors found.
func (r *Renderer) CheckErrors() int {
	return r.drainErrors(callerSite(1))
}

func (r *Renderer) drainErrors(site string) int {
	n := 0
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		logger.Warn("OpenGL error",
			zap.Uint32("code", code),
			zap.String("error", ErrorName(code)),
			zap.String("at", site),
		)
		n++
	}
	return n
}

// callerSite returns file:line of the caller skip frames above the function
// calling callerSite.
func callerSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(code uint32) string {
	switch code {
	case gl.NO_ERROR:
		return "NO_ERROR"
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

// ReadPixels returns the back buffer as a bottom-up RGBA image.
func (r *Renderer) ReadPixels() *image.RGBA {
	w, h := r.config.Width, r.config.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	return img
}
