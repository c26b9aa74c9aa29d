// Package skybox draws a cubemapped sky around the camera.
package skybox

import (
	"fmt"
	"image"
	"path"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/village-viewer/internal/engine/shader"
	"github.com/Faultbox/village-viewer/internal/engine/texture"
	"github.com/Faultbox/village-viewer/internal/logger"
)

// FaceSuffixes are appended to the base name to find each face, in cubemap
// order (+X, -X, +Y, -Y, +Z, -Z).
var FaceSuffixes = [texture.CubeFaces]string{"rt", "lf", "up", "dn", "bk", "ft"}

// FaceNames returns the asset paths of the six faces, e.g. skybox/hills_rt.tga.
func FaceNames(dir, base, ext string) [texture.CubeFaces]string {
	var names [texture.CubeFaces]string
	for i, s := range FaceSuffixes {
		names[i] = path.Join(dir, base+"_"+s+ext)
	}
	return names
}

// Source reads asset files by slash-separated path.
type Source interface {
	Load(name string) ([]byte, error)
}

// Skybox is a unit cube sampled with a cubemap.
type Skybox struct {
	vao     uint32
	vbo     uint32
	cubemap uint32
}

// 36 positions for a unit cube seen from inside.
var cubeVertices = []float32{
	-1, 1, -1, -1, -1, -1, 1, -1, -1,
	1, -1, -1, 1, 1, -1, -1, 1, -1,

	-1, -1, 1, -1, -1, -1, -1, 1, -1,
	-1, 1, -1, -1, 1, 1, -1, -1, 1,

	1, -1, -1, 1, -1, 1, 1, 1, 1,
	1, 1, 1, 1, 1, -1, 1, -1, -1,

	-1, -1, 1, -1, 1, 1, 1, 1, 1,
	1, 1, 1, 1, -1, 1, -1, -1, 1,

	-1, 1, -1, 1, 1, -1, 1, 1, 1,
	1, 1, 1, -1, 1, 1, -1, 1, -1,

	-1, -1, -1, -1, -1, 1, 1, -1, -1,
	1, -1, -1, -1, -1, 1, 1, -1, 1,
}

// Load decodes the six faces named by dir, base and ext from src and
// uploads them as a cubemap.
func Load(src Source, dir, base, ext string, srgb bool) (*Skybox, error) {
	var faces [texture.CubeFaces]*image.RGBA
	for i, name := range FaceNames(dir, base, ext) {
		data, err := src.Load(name)
		if err != nil {
			return nil, fmt.Errorf("loading skybox face: %w", err)
		}
		img, err := texture.Decode(name, data)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", name, err)
		}
		faces[i] = img
	}

	cubemap, err := texture.UploadCubemap(faces, srgb)
	if err != nil {
		return nil, err
	}

	s := &Skybox{cubemap: cubemap}
	gl.GenVertexArrays(1, &s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindVertexArray(s.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.BindVertexArray(0)

	logger.Info("skybox loaded",
		zap.String("base", base),
		zap.Int("size", faces[0].Rect.Dx()))

	return s, nil
}

// Draw renders the sky with view stripped of translation. It must be drawn
// after the scene so only uncovered pixels at the far plane pass.
func (s *Skybox) Draw(prog *shader.Program, view, projection mgl32.Mat4) {
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)

	prog.Use()
	prog.SetMat4("view", view)
	prog.SetMat4("projection", projection)
	prog.SetInt("skybox", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.cubemap)

	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(cubeVertices)/3))
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

// Delete frees the GPU resources.
func (s *Skybox) Delete() {
	gl.DeleteVertexArrays(1, &s.vao)
	gl.DeleteBuffers(1, &s.vbo)
	gl.DeleteTextures(1, &s.cubemap)
}
