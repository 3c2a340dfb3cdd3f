// Package input is the device-agnostic sink the window core pushes translated
// events into. The engine drains each device once per frame.
package input

import "sync"

type Pointer struct {
	X        int32
	Y        int32
	InWindow bool
}

type ButtonEvent struct {
	Button Button
	Down   bool
}

// Device is one slot in a window's input device list. Slot 0 is always the
// combined keyboard and system pointer; raw pointer devices are appended after
// it as they are discovered.
type Device struct {
	name        string
	hasKeyboard bool

	mu         sync.Mutex
	pointer    Pointer
	buttons    []ButtonEvent
	keystrokes []rune
}

func NewKeyboardPointer(name string) *Device {
	return &Device{name: name, hasKeyboard: true}
}

func NewPointerOnly(name string) *Device {
	return &Device{name: name}
}

func (d *Device) Name() string { return d.name }

func (d *Device) HasKeyboard() bool { return d.hasKeyboard }

func (d *Device) SetPointerInWindow(x, y int32) {
	d.mu.Lock()
	d.pointer = Pointer{X: x, Y: y, InWindow: true}
	d.mu.Unlock()
}

// SetPointerOutOfWindow marks the pointer outside the window. The coordinate is
// undefined until the pointer re-enters.
func (d *Device) SetPointerOutOfWindow() {
	d.mu.Lock()
	d.pointer.InWindow = false
	d.mu.Unlock()
}

func (d *Device) Pointer() Pointer {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pointer
}

func (d *Device) ButtonDown(b Button) {
	if b == ButtonNone {
		return
	}
	d.mu.Lock()
	d.buttons = append(d.buttons, ButtonEvent{Button: b, Down: true})
	d.mu.Unlock()
}

func (d *Device) ButtonUp(b Button) {
	if b == ButtonNone {
		return
	}
	d.mu.Lock()
	d.buttons = append(d.buttons, ButtonEvent{Button: b, Down: false})
	d.mu.Unlock()
}

func (d *Device) Keystroke(r rune) {
	d.mu.Lock()
	d.keystrokes = append(d.keystrokes, r)
	d.mu.Unlock()
}

// PollButtons returns and clears the pending button transitions.
func (d *Device) PollButtons() []ButtonEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	events := d.buttons
	d.buttons = nil
	return events
}

// PollKeystrokes returns and clears the pending keystrokes.
func (d *Device) PollKeystrokes() []rune {
	d.mu.Lock()
	defer d.mu.Unlock()
	keys := d.keystrokes
	d.keystrokes = nil
	return keys
}
