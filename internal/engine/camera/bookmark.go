package camera

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Snapshot is the persisted part of a camera. Front is not stored; it is
// rebuilt from Yaw and Pitch on restore.
type Snapshot struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
}

// Snapshot captures position and orientation.
func (c *Camera) Snapshot() Snapshot {
	return Snapshot{
		Position: [3]float32(c.Position),
		Yaw:      c.Yaw,
		Pitch:    c.Pitch,
	}
}

// Restore applies a snapshot. Up is left untouched.
func (c *Camera) Restore(s Snapshot) {
	c.Position = mgl32.Vec3(s.Position)
	c.Rotate(s.Pitch, s.Yaw)
}

// SaveBookmark writes a snapshot to path as YAML.
func SaveBookmark(path string, s Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding bookmark: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// LoadBookmark reads a snapshot previously written by SaveBookmark.
func LoadBookmark(path string) (Snapshot, error) {
	var s Snapshot

	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("decoding bookmark %s: %w", path, err)
	}
	return s, nil
}
