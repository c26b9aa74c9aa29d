// Package lighting holds the directional and point lights of the scene and
// the switch that turns lighting on and off.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// LightAngleStep is the rotation applied per key event, in degrees.
const LightAngleStep = 2

// DirectionalLight is a light at infinity, rotated about the X axis by
// Angle degrees before being brought into eye space.
type DirectionalLight struct {
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Angle     float32
}

// Rotate changes the light angle by delta degrees.
func (d *DirectionalLight) Rotate(delta float32) {
	d.Angle += delta
}

// Rig is every light in the scene. Enabled switches the point lights; the
// sun is always on.
type Rig struct {
	Sun     DirectionalLight
	Points  *PointLightBuffer
	Enabled bool
}

// NewRig creates a rig with the sun and the given point lights.
// Point lights start switched off.
func NewRig(sun DirectionalLight, points []PointLight) *Rig {
	r := &Rig{
		Sun:    sun,
		Points: NewPointLightBuffer(),
	}
	r.Points.SetLights(points)
	return r
}

// DefaultRig returns the village lighting: a white sun along (0,1,1) and two
// yellow lamps.
func DefaultRig() *Rig {
	return NewRig(
		DirectionalLight{
			Direction: mgl32.Vec3{0, 1, 1},
			Color:     mgl32.Vec3{1, 1, 1},
		},
		[]PointLight{
			{Position: mgl32.Vec3{-5.77464, 2.01812, -0.85487}, Color: mgl32.Vec3{1, 1, 0}},
			{Position: mgl32.Vec3{-5.77464, 2.01812, -5.8723}, Color: mgl32.Vec3{1, 1, 0}},
		},
	)
}

// EnabledFactor is the point light switch as uploaded to the shader:
// 1 when on, 0 otherwise.
func (r *Rig) EnabledFactor() float32 {
	if r.Enabled {
		return 1
	}
	return 0
}
