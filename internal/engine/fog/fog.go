// Package fog holds the exponential fog density adjusted at runtime.
package fog

import (
	"math"

	"github.com/Faultbox/village-viewer/pkg/mathx"
)

// Default bounds and step for the fog density.
const (
	DefaultMin  = 0.0
	DefaultMax  = 0.3
	DefaultStep = 0.002
)

// Fog is a clamped density value.
type Fog struct {
	Density float32
	Min     float32
	Max     float32
	Step    float32
}

// New creates fog with the default bounds and the given starting density.
func New(density float32) *Fog {
	f := &Fog{Min: DefaultMin, Max: DefaultMax, Step: DefaultStep}
	f.Set(density)
	return f
}

// Set assigns the density, clamped to [Min, Max].
func (f *Fog) Set(density float32) {
	f.Density = mathx.Clamp(density, f.Min, f.Max)
}

// Increase thickens the fog by one step.
func (f *Fog) Increase() float32 {
	f.Set(f.Density + f.Step)
	return f.Density
}

// Decrease thins the fog by one step.
func (f *Fog) Decrease() float32 {
	f.Set(f.Density - f.Step)
	return f.Density
}

// Factor returns the visibility exp(-(density*distance)^2) approximation
// used by the fragment shader, for logging and tests.
func (f *Fog) Factor(distance float32) float32 {
	d := f.Density * distance
	return mathx.Clamp01(float32(math.Exp(-float64(d * d))))
}
