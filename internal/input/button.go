package input

import "fmt"

// Button identifies an engine-level button on any input device. ASCII-capable
// keyboard buttons occupy their character code so that a button can be turned
// back into a keystroke when no input context is available.
type Button int16

const ButtonNone Button = -1

const (
	KeyBackspace Button = 8
	KeyTab       Button = 9
	KeyEnter     Button = 13
	KeyEscape    Button = 27
	KeySpace     Button = 32
)

// Named keys without an ASCII equivalent.
const (
	KeyF1 Button = 256 + iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyInsert
	KeyDelete
	KeyShift
	KeyControl
	KeyAlt
	KeyMeta
	KeyCapsLock
	KeyShiftLock
)

const (
	mouseBase Button = 512

	WheelUp   Button = 528
	WheelDown Button = 529
)

// ASCIIKey returns the button for a printable ASCII character.
func ASCIIKey(r byte) Button {
	return Button(r)
}

// MouseButton returns the button for the zero-based pointer button ordinal.
func MouseButton(n int) Button {
	if n < 0 || n >= 16 {
		return ButtonNone
	}
	return mouseBase + Button(n)
}

// ASCIIEquivalent reports the character a button produces without any input
// context, if it has one.
func (b Button) ASCIIEquivalent() (byte, bool) {
	switch b {
	case KeyBackspace, KeyTab, KeyEnter, KeyEscape:
		return byte(b), true
	}
	if b >= 32 && b < 127 {
		return byte(b), true
	}
	return 0, false
}

func (b Button) String() string {
	switch {
	case b == ButtonNone:
		return "none"
	case b == WheelUp:
		return "wheel_up"
	case b == WheelDown:
		return "wheel_down"
	case b >= mouseBase && b < mouseBase+16:
		return fmt.Sprintf("mouse%d", int(b-mouseBase)+1)
	case b >= 33 && b < 127:
		return string(rune(b))
	}
	switch b {
	case KeyBackspace:
		return "backspace"
	case KeyTab:
		return "tab"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "escape"
	case KeySpace:
		return "space"
	case KeyLeft:
		return "arrow_left"
	case KeyUp:
		return "arrow_up"
	case KeyRight:
		return "arrow_right"
	case KeyDown:
		return "arrow_down"
	case KeyPageUp:
		return "page_up"
	case KeyPageDown:
		return "page_down"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyInsert:
		return "insert"
	case KeyDelete:
		return "delete"
	case KeyShift:
		return "shift"
	case KeyControl:
		return "control"
	case KeyAlt:
		return "alt"
	case KeyMeta:
		return "meta"
	case KeyCapsLock:
		return "caps_lock"
	case KeyShiftLock:
		return "shift_lock"
	}
	if b >= KeyF1 && b <= KeyF12 {
		return fmt.Sprintf("f%d", int(b-KeyF1)+1)
	}
	return fmt.Sprintf("button(%d)", int(b))
}
