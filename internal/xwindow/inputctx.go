package xwindow

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// keymap is the server's keycode to keysym table, fetched once at window
// creation. Column 0 holds the unshifted keysym for each keycode.
type keymap struct {
	first   xproto.Keycode
	perCode int
	syms    []xproto.Keysym
}

func newKeymap(conn *xgb.Conn, setup *xproto.SetupInfo) (*keymap, error) {
	first := setup.MinKeycode
	count := byte(setup.MaxKeycode - setup.MinKeycode + 1)
	reply, err := xproto.GetKeyboardMapping(conn, first, count).Reply()
	if err != nil {
		return nil, fmt.Errorf("get keyboard mapping: %w", err)
	}
	if reply.KeysymsPerKeycode == 0 {
		return nil, fmt.Errorf("keyboard mapping has no keysym columns")
	}
	return &keymap{
		first:   first,
		perCode: int(reply.KeysymsPerKeycode),
		syms:    reply.Keysyms,
	}, nil
}

func (k *keymap) lookup(code xproto.Keycode, column int) xproto.Keysym {
	if code < k.first || column >= k.perCode {
		return 0
	}
	idx := (int(code)-int(k.first))*k.perCode + column
	if idx >= len(k.syms) {
		return 0
	}
	return k.syms[idx]
}

// inputContext composes text keystrokes from key presses. It understands the
// shift and lock modifiers and the Latin-1 and Unicode keysym ranges; dead
// keys and multi-key composition are out of its reach, which matches what a
// server-side-only client can do.
type inputContext struct {
	keymap *keymap
}

func newInputContext(km *keymap) *inputContext {
	if km == nil {
		return nil
	}
	return &inputContext{keymap: km}
}

// Compose returns the characters produced by a key press, or nil when the key
// has no text meaning.
func (ic *inputContext) Compose(code xproto.Keycode, state uint16) []rune {
	column := 0
	if state&(xproto.ModMaskShift|xproto.ModMaskLock) != 0 {
		column = 1
	}
	sym := ic.keymap.lookup(code, column)
	if sym == 0 && column != 0 {
		sym = ic.keymap.lookup(code, 0)
	}
	r, ok := keysymRune(sym)
	if !ok {
		return nil
	}
	return []rune{r}
}

func keysymRune(sym xproto.Keysym) (rune, bool) {
	switch {
	case sym >= 0x20 && sym <= 0x7e:
		return rune(sym), true
	case sym >= 0xa0 && sym <= 0xff:
		// Latin-1 keysyms coincide with their code points.
		return rune(sym), true
	case sym&0x01000000 != 0:
		return rune(sym &^ 0x01000000), true
	}
	switch sym {
	case xkBackSpace:
		return '\b', true
	case xkTab:
		return '\t', true
	case xkReturn, xkKPEnter:
		return '\r', true
	case xkEscape:
		return 0x1b, true
	case xkDelete:
		return 0x7f, true
	}
	return 0, false
}
