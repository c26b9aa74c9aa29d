package model

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/village-viewer/internal/engine/shader"
	"github.com/Faultbox/village-viewer/internal/engine/texture"
)

// Texture units used by the basic program.
const (
	DiffuseUnit  = 0
	SpecularUnit = 1
)

// TextureLoader returns the texture for an asset path, or nil to use a
// fallback.
type TextureLoader func(name string) *texture.Texture

type drawGroup struct {
	Group
	diffuse  *texture.Texture
	specular *texture.Texture
}

// GPUMesh is a mesh uploaded to vertex and index buffers.
type GPUMesh struct {
	Name string

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	groups     []drawGroup
}

// Upload creates GL buffers for m and resolves its material maps through
// load. Groups whose material has no map use white for diffuse and black
// for specular.
func Upload(m *Mesh, load TextureLoader, white, black *texture.Texture) (*GPUMesh, error) {
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		return nil, fmt.Errorf("mesh %s is empty", m.Name)
	}

	g := &GPUMesh{Name: m.Name, indexCount: int32(len(m.Indices))}
	vertexSize := int(unsafe.Sizeof(Vertex{}))

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	for _, grp := range m.Groups {
		dg := drawGroup{Group: grp, diffuse: white, specular: black}
		if mat, ok := m.Materials[grp.Material]; ok {
			if t := loadMap(load, mat.DiffuseMap); t != nil {
				dg.diffuse = t
			}
			if t := loadMap(load, mat.SpecularMap); t != nil {
				dg.specular = t
			}
		}
		g.groups = append(g.groups, dg)
	}

	return g, nil
}

func loadMap(load TextureLoader, name string) *texture.Texture {
	if name == "" || load == nil {
		return nil
	}
	return load(name)
}

// Draw issues one draw call per material group. The program must already
// be in use with its matrices set.
func (g *GPUMesh) Draw(prog *shader.Program) {
	prog.SetInt("diffuseTexture", DiffuseUnit)
	prog.SetInt("specularTexture", SpecularUnit)

	gl.BindVertexArray(g.vao)
	for _, grp := range g.groups {
		grp.diffuse.Bind(DiffuseUnit)
		grp.specular.Bind(SpecularUnit)
		gl.DrawElementsWithOffset(gl.TRIANGLES, grp.IndexCount, gl.UNSIGNED_INT, uintptr(grp.StartIndex*4))
	}
	gl.BindVertexArray(0)
}

// Delete frees the GL buffers. Textures are owned by the loader.
func (g *GPUMesh) Delete() {
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		g.vao, g.vbo, g.ebo = 0, 0, 0
	}
}
