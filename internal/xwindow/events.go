package xwindow

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/ryngard/xsurface/internal/bus"
	"github.com/ryngard/xsurface/internal/input"
)

// keyRepeatTolerance is the maximum server-time distance, in milliseconds,
// between a key release and a matching press for the pair to count as key
// repeat rather than a real release.
var keyRepeatTolerance xproto.Timestamp = 1

// Mouse wheel scrolls arrive as presses of these core buttons.
const (
	wheelUpDetail   xproto.Button = 4
	wheelDownDetail xproto.Button = 5
)

// ProcessEvents applies pending property requests, polls raw pointer devices
// and drains this window's share of the server event queue. Call once per
// frame from the window's owning goroutine.
func (w *Window) ProcessEvents() {
	w.applyRequested()

	if w.wid == 0 {
		return
	}

	w.pollRawMice()

	events := w.display.Take(w.wid)
	if len(events) > 0 {
		w.display.Lock()
		// The server auto-repeats a held key as release/press pairs. A
		// release is held back one event so a matching press can fold
		// the pair into a repeat.
		var held *xproto.KeyReleaseEvent
		for _, ev := range events {
			held = w.translate(ev, held)
		}
		if held != nil {
			w.handleKeyRelease(*held)
		}
		w.display.Unlock()
	}

	w.flushNotifications()
}

func (w *Window) translate(ev xgb.Event, held *xproto.KeyReleaseEvent) *xproto.KeyReleaseEvent {
	if held != nil {
		if press, ok := ev.(xproto.KeyPressEvent); ok &&
			press.Detail == held.Detail &&
			press.Time-held.Time <= keyRepeatTolerance {
			// Key repeat: no release, just another press.
			w.handleKeystroke(press)
			w.handleKeyPress(press)
			return nil
		}
		w.handleKeyRelease(*held)
	}

	switch ev := ev.(type) {
	case xproto.KeyPressEvent:
		w.handleKeystroke(ev)
		w.handleKeyPress(ev)

	case xproto.KeyReleaseEvent:
		return &ev

	case xproto.ButtonPressEvent:
		w.pointerMoved(int32(ev.EventX), int32(ev.EventY))
		w.devices[0].ButtonDown(pointerButtonFor(ev.Detail))

	case xproto.ButtonReleaseEvent:
		w.pointerMoved(int32(ev.EventX), int32(ev.EventY))
		w.devices[0].ButtonUp(pointerButtonFor(ev.Detail))

	case xproto.MotionNotifyEvent:
		w.pointerMoved(int32(ev.EventX), int32(ev.EventY))

	case xproto.EnterNotifyEvent:
		w.devices[0].SetPointerInWindow(int32(ev.EventX), int32(ev.EventY))

	case xproto.LeaveNotifyEvent:
		w.devices[0].SetPointerOutOfWindow()

	case xproto.FocusInEvent:
		w.foregroundChanged(true)

	case xproto.FocusOutEvent:
		w.foregroundChanged(false)

	case xproto.ConfigureNotifyEvent:
		w.handleConfigure(ev)

	case xproto.MapNotifyEvent:
		w.handleMap()

	case xproto.UnmapNotifyEvent:
		w.minimizedChanged(true)

	case xproto.ClientMessageEvent:
		w.handleClientMessage(ev)

	case xproto.ReparentNotifyEvent:
		// The window manager reparenting us into its frame. Expected.

	case xproto.DestroyNotifyEvent:
		w.log.Debug("window destroyed by server")

	default:
		w.log.Error("unhandled X event", "event", ev)
	}
	return nil
}

// reconcileConfigure decides what to do with a size reported by the server.
// A fixed-size window never adopts a mismatched size; it asks the server to
// correct it instead.
func reconcileConfigure(fixed bool, wantW, wantH uint32, gotW, gotH uint16) (adopt, correct bool) {
	if fixed {
		if uint32(gotW) != wantW || uint32(gotH) != wantH {
			return false, true
		}
		return false, false
	}
	return true, false
}

func (w *Window) handleConfigure(ev xproto.ConfigureNotifyEvent) {
	w.stateMu.Lock()
	w.awaitingConfigure = false
	fixed := w.properties.FixedSize()
	wantW, wantH := w.properties.Size()
	w.stateMu.Unlock()

	adopt, correct := reconcileConfigure(fixed, wantW, wantH, ev.Width, ev.Height)
	if correct {
		w.requestSize(wantW, wantH)
		return
	}
	if adopt {
		var delta Properties
		delta.SetOrigin(int32(ev.X), int32(ev.Y))
		delta.SetSize(uint32(ev.Width), uint32(ev.Height))
		w.systemChangedProperties(delta)
	}
}

func (w *Window) handleMap() {
	w.minimizedChanged(false)
	// Newly mapped windows do not get focus from every window manager.
	// Ask for it so keyboard input works immediately.
	xproto.SetInputFocus(w.display.Conn(),
		xproto.InputFocusPointerRoot, w.wid, xproto.TimeCurrentTime)
}

func (w *Window) handleClientMessage(ev xproto.ClientMessageEvent) {
	if ev.Format != 32 || ev.Type != w.display.Atoms.WMProtocols {
		return
	}
	if xproto.Atom(ev.Data.Data32[0]) != w.display.Atoms.WMDeleteWindow {
		return
	}

	if w.interceptClose {
		// The embedding application decides; the window stays up until
		// it reacts to the notification.
		w.queueNotification(func() {
			bus.Publish(bus.WindowCloseRequested{UUID: w.UUID})
		})
		return
	}
	w.closeLocked()
}

func pointerButtonFor(detail xproto.Button) input.Button {
	switch detail {
	case wheelUpDetail:
		return input.WheelUp
	case wheelDownDetail:
		return input.WheelDown
	}
	return input.MouseButton(int(detail) - 1)
}

func (w *Window) pointerMoved(x, y int32) {
	w.devices[0].SetPointerInWindow(x, y)
}

func (w *Window) handleKeystroke(ev xproto.KeyPressEvent) {
	w.pointerMoved(int32(ev.EventX), int32(ev.EventY))
	if w.ic != nil {
		for _, r := range w.ic.Compose(ev.Detail, ev.State) {
			w.devices[0].Keystroke(r)
		}
		return
	}
	// Degraded path: no input context, synthesize from the button.
	if ch, ok := w.buttonFor(ev.Detail).ASCIIEquivalent(); ok {
		w.devices[0].Keystroke(rune(ch))
	}
}

func (w *Window) handleKeyPress(ev xproto.KeyPressEvent) {
	w.pointerMoved(int32(ev.EventX), int32(ev.EventY))
	w.devices[0].ButtonDown(w.buttonFor(ev.Detail))
}

func (w *Window) handleKeyRelease(ev xproto.KeyReleaseEvent) {
	w.pointerMoved(int32(ev.EventX), int32(ev.EventY))
	w.devices[0].ButtonUp(w.buttonFor(ev.Detail))
}

// buttonFor maps a keycode through the unshifted keysym column.
func (w *Window) buttonFor(code xproto.Keycode) input.Button {
	if w.keymap == nil {
		return input.ButtonNone
	}
	return buttonForKeysym(w.keymap.lookup(code, 0))
}

func (w *Window) foregroundChanged(fg bool) {
	var delta Properties
	delta.SetForeground(fg)
	w.systemChangedProperties(delta)
}

func (w *Window) minimizedChanged(min bool) {
	var delta Properties
	delta.SetMinimized(min)
	w.systemChangedProperties(delta)
}

// systemChangedProperties records a server-originated property change and
// queues the notification for after the drain, outside the display lock.
func (w *Window) systemChangedProperties(delta Properties) {
	w.stateMu.Lock()
	w.properties.Merge(delta)
	w.stateMu.Unlock()

	w.queueNotification(func() {
		bus.Publish(bus.WindowPropertiesChanged{UUID: w.UUID})
	})
}

func (w *Window) queueNotification(fn func()) {
	w.notify = append(w.notify, fn)
}

func (w *Window) flushNotifications() {
	pending := w.notify
	w.notify = nil
	for _, fn := range pending {
		fn()
	}
}
