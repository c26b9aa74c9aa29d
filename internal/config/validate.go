package config

import (
	"errors"
	"fmt"
)

// Validate reports settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Camera.MinFOV <= 0 || c.Camera.MinFOV > c.Camera.MaxFOV {
		errs = append(errs, fmt.Errorf("camera: invalid fov range [%v, %v]", c.Camera.MinFOV, c.Camera.MaxFOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Fog.Max < 0 || c.Fog.Max > MaxFogDensity {
		errs = append(errs, fmt.Errorf("fog: max density %v outside [0, %v]", c.Fog.Max, MaxFogDensity))
	}
	if c.Intro.RetreatEnd.Duration > c.Intro.ApproachStart.Duration || c.Intro.ApproachStart.Duration > c.Intro.ApproachEnd.Duration {
		errs = append(errs, fmt.Errorf("intro: timeline out of order (%v, %v, %v)",
			c.Intro.RetreatEnd, c.Intro.ApproachStart, c.Intro.ApproachEnd))
	}
	if c.Assets.Root == "" {
		errs = append(errs, errors.New("assets: empty root"))
	}

	return errors.Join(errs...)
}
