package shader

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Source is the GLSL text of one program.
type Source struct {
	Name     string
	Vertex   string
	Fragment string
}

// Load reads name.vert and name.frag from fsys.
func Load(fsys fs.FS, name string) (Source, error) {
	vert, err := fs.ReadFile(fsys, name+".vert")
	if err != nil {
		return Source{}, fmt.Errorf("reading %s vertex shader: %w", name, err)
	}
	frag, err := fs.ReadFile(fsys, name+".frag")
	if err != nil {
		return Source{}, fmt.Errorf("reading %s fragment shader: %w", name, err)
	}
	return Source{Name: name, Vertex: string(vert), Fragment: string(frag)}, nil
}

// ProgramName maps a shader file path to the program it belongs to, or ""
// when the file is not a shader stage.
func ProgramName(file string) string {
	base := path.Base(strings.ReplaceAll(file, "\\", "/"))
	ext := path.Ext(base)
	switch ext {
	case ".vert", ".frag":
		return strings.TrimSuffix(base, ext)
	default:
		return ""
	}
}
