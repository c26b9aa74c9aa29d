package window

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/village-viewer/internal/engine/input"
)

func TestCursorAccumulates(t *testing.T) {
	c := Cursor{X: 400, Y: 100}

	moves := []struct {
		dx, dy int32
		x, y   float64
	}{
		{0, 0, 400, 100},
		{10, -5, 410, 95},
		{-600, 0, -190, 95},
		{0, 2000, -190, 2095},
	}
	for _, m := range moves {
		x, y := c.Add(m.dx, m.dy)
		if x != m.x || y != m.y {
			t.Errorf("Add(%d,%d) = (%v,%v), want (%v,%v)", m.dx, m.dy, x, y, m.x, m.y)
		}
	}
}

func TestScancodesMatchKeys(t *testing.T) {
	tests := []struct {
		scancode sdl.Scancode
		key      input.Key
	}{
		{sdl.SCANCODE_W, input.KeyW},
		{sdl.SCANCODE_A, input.KeyA},
		{sdl.SCANCODE_S, input.KeyS},
		{sdl.SCANCODE_D, input.KeyD},
		{sdl.SCANCODE_Q, input.KeyQ},
		{sdl.SCANCODE_E, input.KeyE},
		{sdl.SCANCODE_F, input.KeyF},
		{sdl.SCANCODE_G, input.KeyG},
		{sdl.SCANCODE_J, input.KeyJ},
		{sdl.SCANCODE_K, input.KeyK},
		{sdl.SCANCODE_L, input.KeyL},
		{sdl.SCANCODE_M, input.KeyM},
		{sdl.SCANCODE_N, input.KeyN},
		{sdl.SCANCODE_O, input.KeyO},
		{sdl.SCANCODE_P, input.KeyP},
		{sdl.SCANCODE_ESCAPE, input.KeyEscape},
		{sdl.SCANCODE_F5, input.KeyF5},
		{sdl.SCANCODE_F9, input.KeyF9},
		{sdl.SCANCODE_F12, input.KeyF12},
	}
	for _, tt := range tests {
		if input.Key(tt.scancode) != tt.key {
			t.Errorf("scancode %d does not map to key %d", tt.scancode, tt.key)
		}
	}
}
