// Package shaders provides embedded GLSL shader sources.
package shaders

import "embed"

// Program names. Each program is stored as <name>.vert and <name>.frag.
const (
	Basic  = "basic"
	Skybox = "skybox"
)

// FS holds every shader stage.
//
//go:embed *.vert *.frag
var FS embed.FS
