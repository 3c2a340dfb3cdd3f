package xwindow

import (
	"github.com/jezek/xgb/xproto"

	"github.com/ryngard/xsurface/internal/xdisplay"
)

// Chrome is the subset of window properties the window manager negotiates
// over: decorations, fullscreen and stacking.
type Chrome struct {
	Fullscreen  bool
	Undecorated bool
	HasZOrder   bool
	ZOrder      ZOrder
}

// stateAction pairs an EWMH state atom with the add or remove action atom
// that asserts or retracts it.
type stateAction struct {
	State  xproto.Atom
	Action xproto.Atom
}

// wmWire is the fully resolved wire form of a Chrome: the window type and
// state atom lists to publish, the state transitions to send once the window
// is mapped, and the legacy class hint for managers that predate EWMH.
type wmWire struct {
	Types   []xproto.Atom
	States  []xproto.Atom
	Actions []stateAction
	// WindowClass is set when the legacy no-decorations convention applies.
	WindowClass string
}

// buildChrome resolves a Chrome against the interned atom set. Both the
// modern EWMH vocabulary and the legacy conventions are emitted so that
// either kind of window manager honors the request.
func buildChrome(atoms xdisplay.Atoms, c Chrome) wmWire {
	var w wmWire

	if c.Fullscreen {
		w.Types = append(w.Types, atoms.NetWMWindowTypeFullscreen)
		w.States = append(w.States, atoms.NetWMStateFullscreen)
		w.Actions = append(w.Actions, stateAction{atoms.NetWMStateFullscreen, atoms.NetWMStateAdd})
	} else {
		w.Actions = append(w.Actions, stateAction{atoms.NetWMStateFullscreen, atoms.NetWMStateRemove})
	}

	if c.Undecorated && !c.Fullscreen {
		w.Types = append(w.Types, atoms.NetWMWindowTypeSplash)
		w.WindowClass = "Undecorated"
	}

	if c.HasZOrder {
		switch c.ZOrder {
		case ZBottom:
			w.States = append(w.States, atoms.NetWMStateBelow)
			w.Actions = append(w.Actions,
				stateAction{atoms.NetWMStateBelow, atoms.NetWMStateAdd},
				stateAction{atoms.NetWMStateAbove, atoms.NetWMStateRemove})
		case ZNormal:
			w.Actions = append(w.Actions,
				stateAction{atoms.NetWMStateBelow, atoms.NetWMStateRemove},
				stateAction{atoms.NetWMStateAbove, atoms.NetWMStateRemove})
		case ZTop:
			w.States = append(w.States, atoms.NetWMStateAbove)
			w.Actions = append(w.Actions,
				stateAction{atoms.NetWMStateAbove, atoms.NetWMStateAdd},
				stateAction{atoms.NetWMStateBelow, atoms.NetWMStateRemove})
		}
	}

	return w
}

// WM_NORMAL_HINTS flag bits.
const (
	hintUSPosition uint32 = 1 << 0
	hintUSSize     uint32 = 1 << 1
	hintPMinSize   uint32 = 1 << 4
	hintPMaxSize   uint32 = 1 << 5
)

// WM_HINTS flag bits and initial states.
const (
	hintStateHint uint32 = 1 << 1

	wmStateNormal uint32 = 1
	wmStateIconic uint32 = 3
)

func putCard32(b []byte, i int, v uint32) {
	b[i*4] = byte(v)
	b[i*4+1] = byte(v >> 8)
	b[i*4+2] = byte(v >> 16)
	b[i*4+3] = byte(v >> 24)
}

// sizeHintsBytes encodes a WM_NORMAL_HINTS property for the given properties.
// ok is false when nothing geometric is specified.
func sizeHintsBytes(p Properties) (data []byte, ok bool) {
	// 18 CARD32 fields: flags, x, y, width, height, min w/h, max w/h,
	// increments, aspect, base size, gravity.
	b := make([]byte, 18*4)
	var flags uint32
	if p.HasOrigin() {
		flags |= hintUSPosition
		x, y := p.Origin()
		putCard32(b, 1, uint32(x))
		putCard32(b, 2, uint32(y))
	}
	if p.HasSize() {
		flags |= hintUSSize
		w, h := p.Size()
		putCard32(b, 3, w)
		putCard32(b, 4, h)
		if p.FixedSize() {
			flags |= hintPMinSize | hintPMaxSize
			putCard32(b, 5, w)
			putCard32(b, 6, h)
			putCard32(b, 7, w)
			putCard32(b, 8, h)
		}
	}
	if flags == 0 {
		return nil, false
	}
	putCard32(b, 0, flags)
	return b, true
}

// wmHintsBytes encodes a WM_HINTS property carrying the initial map state.
func wmHintsBytes(minimized bool) []byte {
	// 9 CARD32 fields: flags, input, initial_state, pixmaps, positions,
	// mask, window_group.
	b := make([]byte, 9*4)
	putCard32(b, 0, hintStateHint)
	state := wmStateNormal
	if minimized {
		state = wmStateIconic
	}
	putCard32(b, 2, state)
	return b
}

// classBytes encodes a WM_CLASS property: instance and class name, each
// NUL-terminated.
func classBytes(instance, class string) []byte {
	b := make([]byte, 0, len(instance)+len(class)+2)
	b = append(b, instance...)
	b = append(b, 0)
	b = append(b, class...)
	b = append(b, 0)
	return b
}

func atomBytes(atoms []xproto.Atom) []byte {
	b := make([]byte, len(atoms)*4)
	for i, a := range atoms {
		putCard32(b, i, uint32(a))
	}
	return b
}
