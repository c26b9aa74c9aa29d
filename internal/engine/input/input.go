// Package input tracks keyboard, mouse and scroll state between frames.
package input

import "github.com/Faultbox/village-viewer/pkg/mathx"

// State is the set of currently held keys. It persists across frames so
// held keys can drive continuous, per-frame updates.
type State struct {
	pressed [MaxKeys]bool
}

// New creates an empty input state.
func New() *State {
	return &State{}
}

// SetKey records a key transition. Codes outside the table are ignored.
func (s *State) SetKey(key Key, pressed bool) {
	if int(key) >= MaxKeys {
		return
	}
	s.pressed[key] = pressed
}

// Held reports whether key is currently down.
func (s *State) Held(key Key) bool {
	if int(key) >= MaxKeys {
		return false
	}
	return s.pressed[key]
}

// Reset releases every key.
func (s *State) Reset() {
	s.pressed = [MaxKeys]bool{}
}

// MouseLook turns cursor movement into accumulated yaw and pitch degrees.
type MouseLook struct {
	Yaw         float32
	Pitch       float32
	Sensitivity float32

	MinPitch float32
	MaxPitch float32

	lastX, lastY float64
	seeded       bool
}

// NewMouseLook creates a mouse look starting at the given orientation.
func NewMouseLook(yaw, pitch, sensitivity float32) *MouseLook {
	return &MouseLook{
		Yaw:         yaw,
		Pitch:       pitch,
		Sensitivity: sensitivity,
		MinPitch:    -89.0,
		MaxPitch:    89.0,
	}
}

// Move consumes a cursor position and returns the updated yaw and pitch.
// The first sample only seeds the last position, so it never rotates.
// Screen Y grows downwards, hence the inverted vertical delta.
func (m *MouseLook) Move(x, y float64) (yaw, pitch float32) {
	if !m.seeded {
		m.lastX = x
		m.lastY = y
		m.seeded = true
	}

	dx := float32(x-m.lastX) * m.Sensitivity
	dy := float32(m.lastY-y) * m.Sensitivity
	m.lastX = x
	m.lastY = y

	m.Yaw += dx
	m.Pitch += dy

	m.Pitch = mathx.Clamp(m.Pitch, m.MinPitch, m.MaxPitch)

	return m.Yaw, m.Pitch
}

// Seeded reports whether a cursor sample has been seen.
func (m *MouseLook) Seeded() bool {
	return m.seeded
}

// Zoom holds the field of view driven by the scroll wheel.
type Zoom struct {
	FOV    float32 // degrees
	MinFOV float32
	MaxFOV float32
}

// NewZoom creates a zoom with the given starting FOV and bounds.
func NewZoom(fov, minFOV, maxFOV float32) *Zoom {
	z := &Zoom{FOV: fov, MinFOV: minFOV, MaxFOV: maxFOV}
	z.clamp()
	return z
}

// Scroll narrows the field of view for positive dy and widens it for
// negative dy.
func (z *Zoom) Scroll(dy float64) float32 {
	z.FOV -= float32(dy)
	z.clamp()
	return z.FOV
}

func (z *Zoom) clamp() {
	z.FOV = mathx.Clamp(z.FOV, z.MinFOV, z.MaxFOV)
}
