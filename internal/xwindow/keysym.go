package xwindow

import (
	"github.com/jezek/xgb/xproto"

	"github.com/ryngard/xsurface/internal/input"
)

// X keysym values we translate. Everything in the Latin-1 printable range maps
// straight through to its character button.
const (
	xkBackSpace xproto.Keysym = 0xff08
	xkTab       xproto.Keysym = 0xff09
	xkReturn    xproto.Keysym = 0xff0d
	xkEscape    xproto.Keysym = 0xff1b

	xkHome   xproto.Keysym = 0xff50
	xkLeft   xproto.Keysym = 0xff51
	xkUp     xproto.Keysym = 0xff52
	xkRight  xproto.Keysym = 0xff53
	xkDown   xproto.Keysym = 0xff54
	xkPrior  xproto.Keysym = 0xff55
	xkNext   xproto.Keysym = 0xff56
	xkEnd    xproto.Keysym = 0xff57
	xkInsert xproto.Keysym = 0xff63
	xkDelete xproto.Keysym = 0xffff

	xkKPHome   xproto.Keysym = 0xff95
	xkKPLeft   xproto.Keysym = 0xff96
	xkKPUp     xproto.Keysym = 0xff97
	xkKPRight  xproto.Keysym = 0xff98
	xkKPDown   xproto.Keysym = 0xff99
	xkKPPrior  xproto.Keysym = 0xff9a
	xkKPNext   xproto.Keysym = 0xff9b
	xkKPEnd    xproto.Keysym = 0xff9c
	xkKPInsert xproto.Keysym = 0xff9e
	xkKPDelete xproto.Keysym = 0xff9f
	xkKPEnter  xproto.Keysym = 0xff8d

	xkF1  xproto.Keysym = 0xffbe
	xkF12 xproto.Keysym = 0xffc9

	xkShiftL    xproto.Keysym = 0xffe1
	xkShiftR    xproto.Keysym = 0xffe2
	xkControlL  xproto.Keysym = 0xffe3
	xkControlR  xproto.Keysym = 0xffe4
	xkCapsLock  xproto.Keysym = 0xffe5
	xkShiftLock xproto.Keysym = 0xffe6
	xkMetaL     xproto.Keysym = 0xffe7
	xkMetaR     xproto.Keysym = 0xffe8
	xkAltL      xproto.Keysym = 0xffe9
	xkAltR      xproto.Keysym = 0xffea
)

// buttonForKeysym maps an X keysym to the engine button it stands for, or
// ButtonNone for keysyms we do not track.
func buttonForKeysym(sym xproto.Keysym) input.Button {
	if sym >= 0x20 && sym <= 0x7e {
		return input.ASCIIKey(byte(sym))
	}
	if sym >= xkF1 && sym <= xkF12 {
		return input.KeyF1 + input.Button(sym-xkF1)
	}
	switch sym {
	case xkBackSpace:
		return input.KeyBackspace
	case xkTab:
		return input.KeyTab
	case xkReturn, xkKPEnter:
		return input.KeyEnter
	case xkEscape:
		return input.KeyEscape
	case xkHome, xkKPHome:
		return input.KeyHome
	case xkLeft, xkKPLeft:
		return input.KeyLeft
	case xkUp, xkKPUp:
		return input.KeyUp
	case xkRight, xkKPRight:
		return input.KeyRight
	case xkDown, xkKPDown:
		return input.KeyDown
	case xkPrior, xkKPPrior:
		return input.KeyPageUp
	case xkNext, xkKPNext:
		return input.KeyPageDown
	case xkEnd, xkKPEnd:
		return input.KeyEnd
	case xkInsert, xkKPInsert:
		return input.KeyInsert
	case xkDelete, xkKPDelete:
		return input.KeyDelete
	case xkShiftL, xkShiftR:
		return input.KeyShift
	case xkControlL, xkControlR:
		return input.KeyControl
	case xkAltL, xkAltR:
		return input.KeyAlt
	case xkMetaL, xkMetaR:
		return input.KeyMeta
	case xkCapsLock:
		return input.KeyCapsLock
	case xkShiftLock:
		return input.KeyShiftLock
	}
	return input.ButtonNone
}
