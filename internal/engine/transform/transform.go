// Package transform computes the per-frame model, view, projection and
// normal matrices for the viewer's objects.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectID tags a renderable object.
type ObjectID int

const (
	ObjectScene ObjectID = iota
	ObjectPropA
	ObjectPropB

	numObjects
)

// String returns the object name used in logs.
func (id ObjectID) String() string {
	switch id {
	case ObjectScene:
		return "scene"
	case ObjectPropA:
		return "prop_a"
	case ObjectPropB:
		return "prop_b"
	default:
		return "unknown"
	}
}

// Objects lists every object in draw order.
var Objects = [...]ObjectID{ObjectScene, ObjectPropA, ObjectPropB}

var (
	AxisX = mgl32.Vec3{1, 0, 0}
	AxisY = mgl32.Vec3{0, 1, 0}
	AxisZ = mgl32.Vec3{0, 0, 1}
)

// Rotate returns a rotation of angle degrees about axis.
func Rotate(angle float32, axis mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3D(mgl32.DegToRad(angle), axis.Normalize())
}

// PivotRotate rotates by angle degrees about axis through pivot instead of
// through the origin: translate(p) * rotate * translate(-p).
func PivotRotate(pivot mgl32.Vec3, angle float32, axis mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pivot.X(), pivot.Y(), pivot.Z()).
		Mul4(Rotate(angle, axis)).
		Mul4(mgl32.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z()))
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of view*model.
func NormalMatrix(view, model mgl32.Mat4) mgl32.Mat3 {
	return view.Mul4(model).Mat3().Inv().Transpose()
}

// EyeLightDirection rotates base about X by angle degrees and brings the
// result into eye space with the inverse-transpose of the view rotation.
func EyeLightDirection(view mgl32.Mat4, angle float32, base mgl32.Vec3) mgl32.Vec3 {
	m := view.Mul4(Rotate(angle, AxisX)).Mat3().Inv().Transpose()
	return m.Mul3x1(base)
}

// Projection describes the perspective frustum.
type Projection struct {
	Near float32
	Far  float32
}

// Matrix returns the perspective matrix for fov degrees and the given
// drawable size. A zero height is treated as 1.
func (p Projection) Matrix(fov float32, width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	if width <= 0 {
		width = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, p.Near, p.Far)
}

// Object describes how one renderable is placed in the world.
type Object struct {
	Pivot mgl32.Vec3
	Axis  mgl32.Vec3
}

// Model returns the model matrix for the given rotation angle in degrees.
// A zero pivot rotates about the origin.
func (o Object) Model(angle float32) mgl32.Mat4 {
	if o.Pivot == (mgl32.Vec3{}) {
		return Rotate(angle, o.Axis)
	}
	return PivotRotate(o.Pivot, angle, o.Axis)
}

// Pipeline holds the matrices uploaded for a frame.
type Pipeline struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4

	// LightDir is the directional light in eye space.
	LightDir mgl32.Vec3

	// SharedNormalMatrix makes every object use the scene's normal matrix.
	SharedNormalMatrix bool

	objects [numObjects]Object
	models  [numObjects]mgl32.Mat4
	normals [numObjects]mgl32.Mat3
}

// NewPipeline creates a pipeline for the scene and the two pivoting props.
func NewPipeline(pivotA, pivotB mgl32.Vec3) *Pipeline {
	p := &Pipeline{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
	}
	p.objects[ObjectScene] = Object{Axis: AxisY}
	p.objects[ObjectPropA] = Object{Pivot: pivotA, Axis: AxisZ}
	p.objects[ObjectPropB] = Object{Pivot: pivotB, Axis: AxisZ}

	for _, id := range Objects {
		p.models[id] = mgl32.Ident4()
		p.normals[id] = mgl32.Ident3()
	}
	return p
}

// Angles are the per-frame inputs to Update, all in degrees.
type Angles struct {
	Scene float32
	Props float32
	Light float32
}

// Update recomputes every matrix from the camera view, projection and
// current angles.
func (p *Pipeline) Update(view, projection mgl32.Mat4, angles Angles, baseLightDir mgl32.Vec3) {
	p.View = view
	p.Projection = projection

	p.models[ObjectScene] = p.objects[ObjectScene].Model(angles.Scene)
	p.models[ObjectPropA] = p.objects[ObjectPropA].Model(angles.Props)
	p.models[ObjectPropB] = p.objects[ObjectPropB].Model(angles.Props)

	sceneNormal := NormalMatrix(view, p.models[ObjectScene])
	for _, id := range Objects {
		if p.SharedNormalMatrix || id == ObjectScene {
			p.normals[id] = sceneNormal
			continue
		}
		p.normals[id] = NormalMatrix(view, p.models[id])
	}

	p.LightDir = EyeLightDirection(view, angles.Light, baseLightDir)
}

// Model returns the model matrix of an object.
func (p *Pipeline) Model(id ObjectID) mgl32.Mat4 {
	return p.models[id]
}

// Normal returns the normal matrix of an object.
func (p *Pipeline) Normal(id ObjectID) mgl32.Mat3 {
	return p.normals[id]
}

// SkyboxView strips translation so the sky stays centred on the camera.
func (p *Pipeline) SkyboxView() mgl32.Mat4 {
	return p.View.Mat3().Mat4()
}
