// Package model loads Wavefront OBJ meshes with their MTL materials and
// uploads them for drawing.
package model

// Vertex represents a mesh vertex with position, normal, and texture coordinates.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Group is a run of indices drawn with one material.
type Group struct {
	Material   string
	StartIndex int32
	IndexCount int32
}

// Mesh holds the complete mesh data ready for GPU upload.
type Mesh struct {
	Name      string
	Vertices  []Vertex
	Indices   []uint32
	Groups    []Group
	Materials map[string]*Material
	Bounds    Bounds
}

// Material is the subset of MTL the viewer shades with.
type Material struct {
	Name        string
	Ambient     [3]float32
	Diffuse     [3]float32
	Specular    [3]float32
	Shininess   float32
	Opacity     float32
	DiffuseMap  string // resolved against the asset root
	SpecularMap string
}

// NewMaterial returns a material with MTL defaults.
func NewMaterial(name string) *Material {
	return &Material{
		Name:     name,
		Diffuse:  [3]float32{0.8, 0.8, 0.8},
		Specular: [3]float32{0, 0, 0},
		Opacity:  1,
	}
}

// Bounds holds the axis-aligned bounding box of the mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// emptyBounds is inverted so the first Extend sets both corners.
func emptyBounds() Bounds {
	return Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p [3]float32) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
