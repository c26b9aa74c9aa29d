// Package world holds the viewer's render context: every piece of mutable
// scene state, the input bindings that change it, and the per-frame update
// that turns it into matrices for the renderer.
package world

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/village-viewer/internal/config"
	"github.com/Faultbox/village-viewer/internal/engine/animation"
	"github.com/Faultbox/village-viewer/internal/engine/camera"
	"github.com/Faultbox/village-viewer/internal/engine/fog"
	"github.com/Faultbox/village-viewer/internal/engine/input"
	"github.com/Faultbox/village-viewer/internal/engine/lighting"
	"github.com/Faultbox/village-viewer/internal/engine/transform"
	"github.com/Faultbox/village-viewer/internal/logger"
)

// PolygonMode selects how triangles are rasterized.
type PolygonMode int

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// String returns the mode name.
func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "fill"
	case PolygonLine:
		return "line"
	case PolygonPoint:
		return "point"
	default:
		return "unknown"
	}
}

// World is the single render context of the viewer.
type World struct {
	Camera   *camera.Camera
	Keys     *input.State
	Look     *input.MouseLook
	Zoom     *input.Zoom
	Props    animation.Spinner
	Intro    *animation.Intro
	Lights   *lighting.Rig
	Fog      *fog.Fog
	Pipeline *transform.Pipeline

	SceneAngle   float32
	Polygon      PolygonMode
	ShowDepthMap bool

	projection transform.Projection
	width      int
	height     int

	speed       float32
	sceneStep   float32
	lightStep   float32
	startCursor [2]float64
	bookmark    string

	frames     uint64
	closing    bool
	screenshot bool
}

// New builds the world from configuration.
func New(cfg *config.Config) *World {
	cc := cfg.Camera

	cam := camera.New(vec3(cc.Position), vec3(cc.Target), vec3(cc.Up))

	lights := make([]lighting.PointLight, 0, len(cfg.Lighting.PointLights))
	for _, pl := range cfg.Lighting.PointLights {
		lights = append(lights, lighting.PointLight{Position: vec3(pl.Position), Color: vec3(pl.Color)})
	}
	rig := lighting.NewRig(lighting.DirectionalLight{
		Direction: vec3(cfg.Lighting.Direction),
		Color:     vec3(cfg.Lighting.Color),
	}, lights)

	f := fog.New(0)
	f.Max = cfg.Fog.Max
	f.Step = cfg.Fog.Step
	f.Set(cfg.Fog.Density)

	intro := animation.NewIntro(animation.IntroTimeline{
		RetreatEnd:    cfg.Intro.RetreatEnd.Duration,
		ApproachStart: cfg.Intro.ApproachStart.Duration,
		ApproachEnd:   cfg.Intro.ApproachEnd.Duration,
	})
	if !cfg.Intro.Enabled {
		intro.Disable()
	}

	pipeline := transform.NewPipeline(vec3(cfg.Scene.PropPivotA), vec3(cfg.Scene.PropPivotB))
	pipeline.SharedNormalMatrix = cfg.Graphics.SharedNormalMatrix

	return &World{
		Camera:   cam,
		Keys:     input.New(),
		Look:     input.NewMouseLook(cam.Yaw, 0, cc.Sensitivity),
		Zoom:     input.NewZoom(cc.FOV, cc.MinFOV, cc.MaxFOV),
		Props:    animation.Spinner{Step: cfg.Scene.PropStep},
		Intro:    intro,
		Lights:   rig,
		Fog:      f,
		Pipeline: pipeline,

		projection: transform.Projection{Near: cc.Near, Far: cc.Far},
		width:      cfg.Graphics.Width,
		height:     cfg.Graphics.Height,

		speed:       cc.Speed,
		sceneStep:   cfg.Scene.SceneStep,
		lightStep:   cfg.Lighting.AngleStep,
		startCursor: cc.StartCursor,
		bookmark:    cc.BookmarkFile,
	}
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

// HandleKey records a key transition and runs press-edge actions.
func (w *World) HandleKey(key input.Key, pressed bool) {
	w.Keys.SetKey(key, pressed)
	if !pressed {
		return
	}

	switch key {
	case input.KeyEscape:
		w.closing = true
	case input.KeyM:
		w.ShowDepthMap = !w.ShowDepthMap
		logger.Debug("depth map view", zap.Bool("enabled", w.ShowDepthMap))
	case input.KeyF12:
		w.screenshot = true
	case input.KeyF5:
		if err := w.SaveBookmark(); err != nil {
			logger.Warn("failed to save camera bookmark", zap.String("path", w.bookmark), zap.Error(err))
		}
	case input.KeyF9:
		if err := w.LoadBookmark(); err != nil {
			logger.Warn("failed to load camera bookmark", zap.String("path", w.bookmark), zap.Error(err))
		}
	}
}

// HandleMouseMove feeds a cursor position into mouse look and points the
// camera at the result.
func (w *World) HandleMouseMove(x, y float64) {
	yaw, pitch := w.Look.Move(x, y)
	w.Camera.Rotate(pitch, yaw)
}

// HandleScroll zooms by changing the field of view.
func (w *World) HandleScroll(dy float64) {
	w.Zoom.Scroll(dy)
}

// HandleResize records the new drawable size.
func (w *World) HandleResize(width, height int) {
	w.width = width
	w.height = height
}

// Size returns the current drawable size.
func (w *World) Size() (int, int) {
	return w.width, w.height
}

// Update advances the world by one frame.
func (w *World) Update(now time.Time) {
	w.applyHeldKeys()

	w.Props.Advance()

	if w.frames == 0 {
		w.HandleMouseMove(w.startCursor[0], w.startCursor[1])
	}

	if dir, ok := w.Intro.Step(now); ok {
		w.Camera.Move(dir, w.speed)
	}

	w.Pipeline.Update(
		w.Camera.ViewMatrix(),
		w.projection.Matrix(w.Zoom.FOV, w.width, w.height),
		transform.Angles{
			Scene: w.SceneAngle,
			Props: w.Props.Angle,
			Light: w.Lights.Sun.Angle,
		},
		w.Lights.Sun.Direction,
	)

	w.frames++
}

func (w *World) applyHeldKeys() {
	k := w.Keys

	if k.Held(input.KeyW) {
		w.Camera.Move(camera.Forward, w.speed)
	}
	if k.Held(input.KeyS) {
		w.Camera.Move(camera.Backward, w.speed)
	}
	if k.Held(input.KeyA) {
		w.Camera.Move(camera.Left, w.speed)
	}
	if k.Held(input.KeyD) {
		w.Camera.Move(camera.Right, w.speed)
	}

	if k.Held(input.KeyQ) {
		w.SceneAngle -= w.sceneStep
	}
	if k.Held(input.KeyE) {
		w.SceneAngle += w.sceneStep
	}

	if k.Held(input.KeyF) {
		w.Fog.Increase()
	}
	if k.Held(input.KeyG) {
		w.Fog.Decrease()
	}

	if k.Held(input.KeyJ) {
		w.Polygon = PolygonFill
	}
	if k.Held(input.KeyK) {
		w.Polygon = PolygonLine
	}
	if k.Held(input.KeyL) {
		w.Polygon = PolygonPoint
	}

	if k.Held(input.KeyO) {
		w.Lights.Enabled = true
	}
	if k.Held(input.KeyP) {
		w.Lights.Enabled = false
	}

	if k.Held(input.KeyN) {
		w.Lights.Sun.Rotate(w.lightStep)
	}
	if k.Held(input.KeyM) {
		w.Lights.Sun.Rotate(-w.lightStep)
	}
}

// Frames returns the number of completed updates.
func (w *World) Frames() uint64 {
	return w.frames
}

// CloseRequested reports whether the user asked to quit.
func (w *World) CloseRequested() bool {
	return w.closing
}

// TakeScreenshotRequest returns and clears the pending screenshot request.
func (w *World) TakeScreenshotRequest() bool {
	r := w.screenshot
	w.screenshot = false
	return r
}

// SaveBookmark writes the camera pose to the bookmark file.
func (w *World) SaveBookmark() error {
	if err := camera.SaveBookmark(w.bookmark, w.Camera.Snapshot()); err != nil {
		return err
	}
	logger.Info("camera bookmark saved", zap.String("path", w.bookmark))
	return nil
}

// LoadBookmark restores the camera pose from the bookmark file. Mouse look
// continues from the restored angles.
func (w *World) LoadBookmark() error {
	s, err := camera.LoadBookmark(w.bookmark)
	if err != nil {
		return err
	}
	w.Camera.Restore(s)
	w.Look.Yaw = w.Camera.Yaw
	w.Look.Pitch = w.Camera.Pitch
	logger.Info("camera bookmark loaded", zap.String("path", w.bookmark))
	return nil
}
