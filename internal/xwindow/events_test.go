package xwindow

import (
	"log/slog"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/ryngard/xsurface/internal/input"
	"github.com/ryngard/xsurface/internal/xdisplay"
)

// testKeymap: keycode 8 is 'a'/'A', keycode 9 is Escape, keycode 10 is left
// shift.
func newTestKeymap() *keymap {
	return &keymap{
		first:   8,
		perCode: 2,
		syms: []xproto.Keysym{
			0x61, 0x41,
			xkEscape, 0,
			xkShiftL, 0,
		},
	}
}

func newTestWindow() *Window {
	km := newTestKeymap()
	return &Window{
		UUID:    "test",
		log:     slog.Default(),
		display: &xdisplay.Display{Atoms: testAtoms},
		devices: []*input.Device{input.NewKeyboardPointer("keyboard_mouse")},
		keymap:  km,
		ic:      newInputContext(km),
	}
}

// drain mirrors the ProcessEvents inner loop, including the one-event
// key-release holdback.
func (w *Window) drain(events ...xgb.Event) {
	var held *xproto.KeyReleaseEvent
	for _, ev := range events {
		held = w.translate(ev, held)
	}
	if held != nil {
		w.handleKeyRelease(*held)
	}
}

func press(code xproto.Keycode, t xproto.Timestamp, state uint16) xproto.KeyPressEvent {
	return xproto.KeyPressEvent{Detail: code, Time: t, State: state, EventX: 3, EventY: 4}
}

func release(code xproto.Keycode, t xproto.Timestamp) xproto.KeyReleaseEvent {
	return xproto.KeyReleaseEvent(press(code, t, 0))
}

func TestKeyRepeatCoalesced(t *testing.T) {
	w := newTestWindow()

	// Server auto-repeat: release immediately followed by a press of the
	// same key at the same time.
	w.drain(
		press(8, 100, 0),
		release(8, 200),
		press(8, 200, 0),
		release(8, 300),
	)

	got := w.devices[0].PollButtons()
	want := []input.ButtonEvent{
		{Button: input.ASCIIKey('a'), Down: true},
		{Button: input.ASCIIKey('a'), Down: true},
		{Button: input.ASCIIKey('a'), Down: false},
	}
	if len(got) != len(want) {
		t.Fatalf("button events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("button event %d = %v, want %v", i, got[i], want[i])
		}
	}

	keys := w.devices[0].PollKeystrokes()
	if string(keys) != "aa" {
		t.Fatalf("keystrokes = %q, want repeat to retype", string(keys))
	}
}

func TestKeyReleaseNotCoalescedAcrossGap(t *testing.T) {
	w := newTestWindow()

	// Distinct tap-tap: the press comes too late to be a repeat.
	w.drain(
		press(8, 100, 0),
		release(8, 200),
		press(8, 260, 0),
		release(8, 300),
	)

	got := w.devices[0].PollButtons()
	wantDown := []bool{true, false, true, false}
	if len(got) != len(wantDown) {
		t.Fatalf("button events = %v", got)
	}
	for i, down := range wantDown {
		if got[i].Down != down {
			t.Fatalf("event %d down = %t, want %t", i, got[i].Down, down)
		}
	}
}

func TestKeyReleaseNotCoalescedAcrossKeys(t *testing.T) {
	w := newTestWindow()

	w.drain(
		press(8, 100, 0),
		release(8, 200),
		press(9, 200, 0),
	)

	got := w.devices[0].PollButtons()
	if len(got) != 3 {
		t.Fatalf("button events = %v", got)
	}
	if got[1].Down || got[1].Button != input.ASCIIKey('a') {
		t.Fatal("a-release must not be swallowed by a different key's press")
	}
	if !got[2].Down || got[2].Button != input.KeyEscape {
		t.Fatalf("escape press = %v", got[2])
	}
}

func TestTrailingReleaseFlushed(t *testing.T) {
	w := newTestWindow()

	// A release at the end of the drain has no successor; it must still
	// land this tick.
	w.drain(press(8, 100, 0), release(8, 150))

	got := w.devices[0].PollButtons()
	if len(got) != 2 || got[1].Down {
		t.Fatalf("button events = %v", got)
	}
}

func TestShiftedKeystroke(t *testing.T) {
	w := newTestWindow()

	w.drain(press(8, 100, xproto.ModMaskShift))

	if keys := w.devices[0].PollKeystrokes(); string(keys) != "A" {
		t.Fatalf("keystrokes = %q", string(keys))
	}
	// The button stays the unshifted key.
	got := w.devices[0].PollButtons()
	if len(got) != 1 || got[0].Button != input.ASCIIKey('a') {
		t.Fatalf("button events = %v", got)
	}
}

func TestDegradedKeystrokeWithoutInputContext(t *testing.T) {
	w := newTestWindow()
	w.ic = nil

	w.drain(press(8, 100, xproto.ModMaskShift))

	// No composition: the keystroke falls back to the button's character.
	if keys := w.devices[0].PollKeystrokes(); string(keys) != "a" {
		t.Fatalf("keystrokes = %q", string(keys))
	}
}

func TestPointerEvents(t *testing.T) {
	w := newTestWindow()

	w.drain(xproto.MotionNotifyEvent{EventX: 11, EventY: 22})
	p := w.devices[0].Pointer()
	if !p.InWindow || p.X != 11 || p.Y != 22 {
		t.Fatalf("pointer = %+v", p)
	}

	w.drain(xproto.LeaveNotifyEvent{EventX: 1, EventY: 1})
	if w.devices[0].Pointer().InWindow {
		t.Fatal("pointer should be out of window after leave")
	}

	w.drain(xproto.EnterNotifyEvent{EventX: 5, EventY: 6})
	p = w.devices[0].Pointer()
	if !p.InWindow || p.X != 5 || p.Y != 6 {
		t.Fatalf("pointer = %+v", p)
	}
}

func TestMouseButtonsAndWheel(t *testing.T) {
	w := newTestWindow()

	w.drain(
		xproto.ButtonPressEvent{Detail: 1, EventX: 1, EventY: 1},
		xproto.ButtonReleaseEvent{Detail: 1, EventX: 1, EventY: 1},
		xproto.ButtonPressEvent{Detail: 4, EventX: 1, EventY: 1},
		xproto.ButtonPressEvent{Detail: 5, EventX: 1, EventY: 1},
	)

	got := w.devices[0].PollButtons()
	want := []input.ButtonEvent{
		{Button: input.MouseButton(0), Down: true},
		{Button: input.MouseButton(0), Down: false},
		{Button: input.WheelUp, Down: true},
		{Button: input.WheelDown, Down: true},
	}
	if len(got) != len(want) {
		t.Fatalf("button events = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFocusTracksForeground(t *testing.T) {
	w := newTestWindow()

	w.drain(xproto.FocusInEvent{})
	if !w.Properties().Foreground() {
		t.Fatal("focus in should set foreground")
	}
	if len(w.notify) == 0 {
		t.Fatal("server-originated change must queue a notification")
	}

	w.drain(xproto.FocusOutEvent{})
	if w.Properties().Foreground() {
		t.Fatal("focus out should clear foreground")
	}
}

func TestConfigureAdoptsSizeWhenResizable(t *testing.T) {
	w := newTestWindow()
	w.properties.SetSize(800, 600)
	w.awaitingConfigure = true

	w.drain(xproto.ConfigureNotifyEvent{X: 30, Y: 40, Width: 1024, Height: 768})

	if w.awaitingConfigure {
		t.Fatal("configure must clear the awaiting latch")
	}
	p := w.Properties()
	if wd, ht := p.Size(); wd != 1024 || ht != 768 {
		t.Fatalf("size = %dx%d, want adopted", wd, ht)
	}
	if x, y := p.Origin(); x != 30 || y != 40 {
		t.Fatalf("origin = %d,%d, want adopted", x, y)
	}
}

func TestConfigureMatchingFixedSizeAdoptsNothing(t *testing.T) {
	w := newTestWindow()
	w.properties.SetSize(800, 600)
	w.properties.SetFixedSize(true)

	w.drain(xproto.ConfigureNotifyEvent{X: 50, Y: 50, Width: 800, Height: 600})

	p := w.Properties()
	if p.HasOrigin() {
		t.Fatal("fixed-size match must not adopt geometry")
	}
	if wd, ht := p.Size(); wd != 800 || ht != 600 {
		t.Fatalf("size = %dx%d", wd, ht)
	}
}

func TestReconcileConfigure(t *testing.T) {
	for _, tc := range []struct {
		name         string
		fixed        bool
		wantW, wantH uint32
		gotW, gotH   uint16
		adopt        bool
		correct      bool
	}{
		{"resizable adopts", false, 800, 600, 1024, 768, true, false},
		{"resizable adopts same", false, 800, 600, 800, 600, true, false},
		{"fixed mismatch corrects", true, 800, 600, 1024, 768, false, true},
		{"fixed match settles", true, 800, 600, 800, 600, false, false},
	} {
		adopt, correct := reconcileConfigure(tc.fixed, tc.wantW, tc.wantH, tc.gotW, tc.gotH)
		if adopt != tc.adopt || correct != tc.correct {
			t.Fatalf("%s: adopt=%t correct=%t, want %t %t",
				tc.name, adopt, correct, tc.adopt, tc.correct)
		}
	}
}

func TestCloseRequestIntercepted(t *testing.T) {
	w := newTestWindow()
	w.interceptClose = true
	w.wid = 99 // pretend open; the intercept path must not touch the wire

	w.drain(xproto.ClientMessageEvent{
		Format: 32,
		Window: 99,
		Type:   testAtoms.WMProtocols,
		Data: xproto.ClientMessageDataUnionData32New(
			[]uint32{uint32(testAtoms.WMDeleteWindow), 0, 0, 0, 0}),
	})

	if len(w.notify) != 1 {
		t.Fatalf("queued notifications = %d, want close request", len(w.notify))
	}
	if w.wid != 99 {
		t.Fatal("intercepted close must leave the window up")
	}
}

func TestForeignClientMessageIgnored(t *testing.T) {
	w := newTestWindow()
	w.interceptClose = true

	w.drain(xproto.ClientMessageEvent{
		Format: 32,
		Type:   testAtoms.NetWMState,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	})

	if len(w.notify) != 0 {
		t.Fatal("unrelated client messages must be ignored")
	}
}
