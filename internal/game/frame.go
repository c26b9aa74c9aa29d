package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/village-viewer/internal/engine/shader"
	"github.com/Faultbox/village-viewer/internal/game/world"
)

// frameUniforms are the per-frame values shared by every object.
type frameUniforms struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4

	LightDir   mgl32.Vec3
	LightColor mgl32.Vec3

	PointPositions []float32 // eye space
	PointColors    []float32
	IsLight        float32

	FogDensity float32
}

func collectUniforms(w *world.World) frameUniforms {
	p := w.Pipeline
	return frameUniforms{
		View:           p.View,
		Projection:     p.Projection,
		LightDir:       p.LightDir,
		LightColor:     w.Lights.Sun.Color,
		PointPositions: w.Lights.Points.EyePositions(p.View),
		PointColors:    w.Lights.Points.GetColors(),
		IsLight:        w.Lights.EnabledFactor(),
		FogDensity:     w.Fog.Density,
	}
}

func (u frameUniforms) apply(prog *shader.Program) {
	prog.SetMat4("view", u.View)
	prog.SetMat4("projection", u.Projection)
	prog.SetVec3("lightDir", u.LightDir)
	prog.SetVec3("lightColor", u.LightColor)
	prog.SetVec3Array("pointLightPosition", u.PointPositions)
	prog.SetVec3Array("pointLightColor", u.PointColors)
	prog.SetFloat("is_light", u.IsLight)
	prog.SetFloat("fogDensity", u.FogDensity)
}
