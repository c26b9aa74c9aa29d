// Package camera provides the free-flying camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/village-viewer/pkg/mathx"
)

// Pitch limits in degrees. Going past ±90 flips the up vector.
const (
	MinPitch = -89.0
	MaxPitch = 89.0
)

// Direction selects the axis used by Move.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Camera is a yaw/pitch camera that flies freely through the scene.
// Yaw and Pitch are in degrees and are the source of truth for Front.
type Camera struct {
	Position mgl32.Vec3
	Front    mgl32.Vec3
	Up       mgl32.Vec3

	Yaw   float32
	Pitch float32
}

// New creates a camera at position looking towards target.
// Yaw and pitch are derived from the initial look direction.
func New(position, target, up mgl32.Vec3) *Camera {
	front := target.Sub(position).Normalize()

	yaw := float32(mgl32.RadToDeg(float32(gomath.Atan2(float64(front.Z()), float64(front.X())))))
	pitch := float32(mgl32.RadToDeg(float32(gomath.Asin(float64(mathx.Clamp(front.Y(), -1, 1))))))

	return &Camera{
		Position: position,
		Front:    front,
		Up:       up,
		Yaw:      yaw,
		Pitch:    mathx.Clamp(pitch, MinPitch, MaxPitch),
	}
}

// Rotate sets the orientation from absolute pitch and yaw degrees and
// recomputes the unit front vector.
func (c *Camera) Rotate(pitch, yaw float32) {
	c.Pitch = mathx.Clamp(pitch, MinPitch, MaxPitch)
	c.Yaw = yaw

	yawRad := float64(mgl32.DegToRad(c.Yaw))
	pitchRad := float64(mgl32.DegToRad(c.Pitch))

	c.Front = mgl32.Vec3{
		float32(gomath.Cos(yawRad) * gomath.Cos(pitchRad)),
		float32(gomath.Sin(pitchRad)),
		float32(gomath.Sin(yawRad) * gomath.Cos(pitchRad)),
	}.Normalize()
}

// Move translates the camera along the front axis or strafes along the
// right axis, scaled by speed.
func (c *Camera) Move(dir Direction, speed float32) {
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.Front.Mul(speed))
	case Backward:
		c.Position = c.Position.Sub(c.Front.Mul(speed))
	case Left:
		c.Position = c.Position.Sub(c.Right().Mul(speed))
	case Right:
		c.Position = c.Position.Add(c.Right().Mul(speed))
	}
}

// Right returns the normalized strafe axis.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front.Cross(c.Up).Normalize()
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}
