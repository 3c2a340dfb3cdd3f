package xwindow

import (
	"testing"

	"github.com/jezek/xgb/xproto"

	"github.com/ryngard/xsurface/internal/input"
)

func TestButtonForKeysym(t *testing.T) {
	for _, tc := range []struct {
		sym  xproto.Keysym
		want input.Button
	}{
		{0x61, input.ASCIIKey('a')},
		{0x20, input.KeySpace},
		{0x7e, input.ASCIIKey('~')},
		{xkBackSpace, input.KeyBackspace},
		{xkReturn, input.KeyEnter},
		{xkKPEnter, input.KeyEnter},
		{xkEscape, input.KeyEscape},
		{xkF1, input.KeyF1},
		{xkF12, input.KeyF12},
		{xkLeft, input.KeyLeft},
		{xkKPLeft, input.KeyLeft},
		{xkPrior, input.KeyPageUp},
		{xkKPNext, input.KeyPageDown},
		{xkDelete, input.KeyDelete},
		{xkKPDelete, input.KeyDelete},
		{xkShiftL, input.KeyShift},
		{xkShiftR, input.KeyShift},
		{xkControlR, input.KeyControl},
		{xkMetaL, input.KeyMeta},
		{xkAltR, input.KeyAlt},
		{xkCapsLock, input.KeyCapsLock},
		{0, input.ButtonNone},
		{0xff7f, input.ButtonNone}, // Num_Lock, untracked
	} {
		if got := buttonForKeysym(tc.sym); got != tc.want {
			t.Errorf("buttonForKeysym(%#x) = %v, want %v", tc.sym, got, tc.want)
		}
	}
}

func TestKeysymRune(t *testing.T) {
	for _, tc := range []struct {
		sym  xproto.Keysym
		want rune
		ok   bool
	}{
		{0x61, 'a', true},
		{0xe9, 'é', true},        // Latin-1
		{0x01000394, 'Δ', true},  // Unicode keysym
		{xkReturn, '\r', true},
		{xkTab, '\t', true},
		{xkShiftL, 0, false},
		{0, 0, false},
	} {
		got, ok := keysymRune(tc.sym)
		if ok != tc.ok || got != tc.want {
			t.Errorf("keysymRune(%#x) = %q,%t want %q,%t", tc.sym, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInputContextComposeFallsBackToUnshifted(t *testing.T) {
	ic := newInputContext(&keymap{
		first:   8,
		perCode: 2,
		syms:    []xproto.Keysym{0x31, 0}, // '1' with no shifted column
	})

	got := ic.Compose(8, xproto.ModMaskShift)
	if string(got) != "1" {
		t.Fatalf("compose = %q", string(got))
	}
}

func TestInputContextComposeOutOfRange(t *testing.T) {
	ic := newInputContext(&keymap{first: 8, perCode: 1, syms: []xproto.Keysym{0x61}})

	if got := ic.Compose(200, 0); got != nil {
		t.Fatalf("compose out of range = %q", string(got))
	}
	if got := ic.Compose(7, 0); got != nil {
		t.Fatalf("compose below first keycode = %q", string(got))
	}
}
