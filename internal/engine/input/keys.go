package input

// Key identifies a physical key. Values follow the USB HID usage table,
// which is also what SDL scancodes use, so the window layer can convert
// with a plain cast.
type Key uint16

// MaxKeys bounds the held-key table.
const MaxKeys = 512

const (
	KeyUnknown Key = 0

	KeyA Key = 4
	KeyD Key = 7
	KeyE Key = 8
	KeyF Key = 9
	KeyG Key = 10
	KeyJ Key = 13
	KeyK Key = 14
	KeyL Key = 15
	KeyM Key = 16
	KeyN Key = 17
	KeyO Key = 18
	KeyP Key = 19
	KeyQ Key = 20
	KeyS Key = 22
	KeyW Key = 26

	KeyEscape Key = 41

	KeyF5  Key = 62
	KeyF9  Key = 66
	KeyF12 Key = 69
)
