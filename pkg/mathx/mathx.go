// Package mathx holds small numeric helpers shared by the engine packages.
package mathx

import "golang.org/x/exp/constraints"

// Clamp returns f limited to the range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// Clamp01 limits f to [0, 1].
func Clamp01[T constraints.Float](f T) T {
	return Clamp(f, 0, 1)
}
