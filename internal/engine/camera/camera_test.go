package camera

import (
	gomath "math"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func newTestCamera() *Camera {
	return New(
		mgl32.Vec3{-1.00754, 0.707724, 2.29122},
		mgl32.Vec3{-1.00754, 0.0, 1.35013},
		mgl32.Vec3{0, 1, 0},
	)
}

func TestNewLooksAtTarget(t *testing.T) {
	pos := mgl32.Vec3{0, 0, 3}
	cam := New(pos, mgl32.Vec3{0, 0, -10}, mgl32.Vec3{0, 1, 0})

	want := mgl32.Vec3{0, 0, -1}
	if !cam.Front.ApproxEqualThreshold(want, epsilon) {
		t.Errorf("Front = %v, want %v", cam.Front, want)
	}
	if abs(cam.Yaw+90) > epsilon {
		t.Errorf("Yaw = %f, want -90", cam.Yaw)
	}
	if abs(cam.Pitch) > epsilon {
		t.Errorf("Pitch = %f, want 0", cam.Pitch)
	}
}

func TestRotateClampsPitch(t *testing.T) {
	cam := newTestCamera()

	for _, pitch := range []float32{-1000, -90, -89, -45, 0, 12.5, 89, 90, 1000} {
		for _, yaw := range []float32{-270, -90, 0, 33, 180, 720} {
			cam.Rotate(pitch, yaw)

			if cam.Pitch < MinPitch || cam.Pitch > MaxPitch {
				t.Errorf("Rotate(%v, %v): pitch %v out of range", pitch, yaw, cam.Pitch)
			}
			if l := cam.Front.Len(); abs(l-1) > epsilon {
				t.Errorf("Rotate(%v, %v): |front| = %v, want 1", pitch, yaw, l)
			}
		}
	}
}

func TestRotateFrontVector(t *testing.T) {
	tests := []struct {
		name       string
		pitch, yaw float32
		want       mgl32.Vec3
	}{
		{"looking down -Z", 0, -90, mgl32.Vec3{0, 0, -1}},
		{"looking down +X", 0, 0, mgl32.Vec3{1, 0, 0}},
		{"looking down +Z", 0, 90, mgl32.Vec3{0, 0, 1}},
		{"tilted up", 45, 0, mgl32.Vec3{float32(gomath.Sqrt2 / 2), float32(gomath.Sqrt2 / 2), 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newTestCamera()
			cam.Rotate(tt.pitch, tt.yaw)
			if !cam.Front.ApproxEqualThreshold(tt.want, epsilon) {
				t.Errorf("Front = %v, want %v", cam.Front, tt.want)
			}
		})
	}
}

func TestMoveStaysInFrontRightPlane(t *testing.T) {
	cam := newTestCamera()
	cam.Rotate(20, -60)
	up := cam.Up

	// The plane spanned by front and right has normal front x right.
	normal := cam.Front.Cross(cam.Right()).Normalize()
	start := cam.Position

	moves := []Direction{Forward, Left, Left, Backward, Right, Forward, Forward, Right, Backward}
	for _, dir := range moves {
		cam.Move(dir, 0.1)
	}

	offset := cam.Position.Sub(start)
	if d := abs(offset.Dot(normal)); d > epsilon {
		t.Errorf("position left the front/right plane by %v", d)
	}
	if cam.Up != up {
		t.Errorf("Up changed: got %v, want %v", cam.Up, up)
	}
}

func TestMoveDistances(t *testing.T) {
	tests := []struct {
		dir  Direction
		want mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, -0.5}},
		{Backward, mgl32.Vec3{0, 0, 0.5}},
		{Left, mgl32.Vec3{-0.5, 0, 0}},
		{Right, mgl32.Vec3{0.5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			cam := New(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
			cam.Rotate(0, -90)
			cam.Move(tt.dir, 0.5)
			if !cam.Position.ApproxEqualThreshold(tt.want, epsilon) {
				t.Errorf("Position = %v, want %v", cam.Position, tt.want)
			}
		})
	}
}

func TestViewMatrixIsPure(t *testing.T) {
	cam := newTestCamera()
	cam.Rotate(-10, -95)

	before := *cam
	a := cam.ViewMatrix()
	b := cam.ViewMatrix()

	if a != b {
		t.Error("ViewMatrix returned different results for the same state")
	}
	if *cam != before {
		t.Error("ViewMatrix mutated the camera")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	cam := newTestCamera()
	cam.Rotate(-17.3, -101.2)
	cam.Move(Forward, 1.25)
	cam.Move(Left, 0.4)
	want := cam.ViewMatrix()

	path := filepath.Join(t.TempDir(), "bookmarks", "camera.yaml")
	if err := SaveBookmark(path, cam.Snapshot()); err != nil {
		t.Fatalf("SaveBookmark: %v", err)
	}

	snap, err := LoadBookmark(path)
	if err != nil {
		t.Fatalf("LoadBookmark: %v", err)
	}

	restored := New(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	restored.Restore(snap)

	got := restored.ViewMatrix()
	if !got.ApproxEqualThreshold(want, epsilon) {
		t.Errorf("view matrix after restore:\n%v\nwant:\n%v", got, want)
	}
}

func TestLoadBookmarkMissing(t *testing.T) {
	if _, err := LoadBookmark(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing bookmark")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
