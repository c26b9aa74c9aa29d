package lighting

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/village-viewer/pkg/mathx"
)

// MaxPointLights is the size of the point light arrays in the shader.
const MaxPointLights = 2

// PointLight is a point light source for GPU upload.
type PointLight struct {
	Position mgl32.Vec3 // world position
	Color    mgl32.Vec3 // RGB color (0-1 range)
}

// PointLightBuffer holds lights for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	light.Color = clampColor(light.Color)
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	for _, l := range lights {
		if !b.AddLight(l) {
			break
		}
	}
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Position[:])
	}
	return result
}

// GetColors returns colors as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		copy(result[i*3:], light.Color[:])
	}
	return result
}

// EyePositions returns the light positions transformed by view, flattened
// like GetPositions.
func (b *PointLightBuffer) EyePositions(view mgl32.Mat4) []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		p := mgl32.TransformCoordinate(light.Position, view)
		copy(result[i*3:], p[:])
	}
	return result
}

func clampColor(c mgl32.Vec3) mgl32.Vec3 {
	for i := range c {
		c[i] = mathx.Clamp01(c[i])
	}
	return c
}
