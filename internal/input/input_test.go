package input

import "testing"

func TestASCIIEquivalent(t *testing.T) {
	for _, tc := range []struct {
		b    Button
		want byte
		ok   bool
	}{
		{ASCIIKey('a'), 'a', true},
		{KeySpace, ' ', true},
		{KeyEnter, '\r', true},
		{KeyBackspace, '\b', true},
		{KeyF1, 0, false},
		{KeyShift, 0, false},
		{MouseButton(0), 0, false},
		{ButtonNone, 0, false},
	} {
		got, ok := tc.b.ASCIIEquivalent()
		if got != tc.want || ok != tc.ok {
			t.Errorf("%v.ASCIIEquivalent() = %q,%t want %q,%t", tc.b, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMouseButtonBounds(t *testing.T) {
	if MouseButton(0) == ButtonNone || MouseButton(15) == ButtonNone {
		t.Fatal("valid ordinals must map")
	}
	if MouseButton(16) != ButtonNone || MouseButton(-1) != ButtonNone {
		t.Fatal("out-of-range ordinals must map to none")
	}
	if MouseButton(0) == MouseButton(1) {
		t.Fatal("ordinals must be distinct")
	}
}

func TestDevicePollClears(t *testing.T) {
	d := NewKeyboardPointer("test")

	d.ButtonDown(ASCIIKey('x'))
	d.ButtonUp(ASCIIKey('x'))
	d.Keystroke('x')

	if got := d.PollButtons(); len(got) != 2 {
		t.Fatalf("buttons = %v", got)
	}
	if got := d.PollButtons(); got != nil {
		t.Fatal("poll must clear pending buttons")
	}
	if got := d.PollKeystrokes(); string(got) != "x" {
		t.Fatalf("keystrokes = %q", string(got))
	}
	if got := d.PollKeystrokes(); got != nil {
		t.Fatal("poll must clear pending keystrokes")
	}
}

func TestDeviceIgnoresButtonNone(t *testing.T) {
	d := NewPointerOnly("test")
	d.ButtonDown(ButtonNone)
	d.ButtonUp(ButtonNone)
	if got := d.PollButtons(); got != nil {
		t.Fatalf("buttons = %v", got)
	}
}

func TestPointerLeaveKeepsCoordinate(t *testing.T) {
	d := NewPointerOnly("test")
	d.SetPointerInWindow(4, 5)
	d.SetPointerOutOfWindow()

	p := d.Pointer()
	if p.InWindow {
		t.Fatal("pointer should be out of window")
	}
	d.SetPointerInWindow(6, 7)
	p = d.Pointer()
	if !p.InWindow || p.X != 6 || p.Y != 7 {
		t.Fatalf("pointer = %+v", p)
	}
}
