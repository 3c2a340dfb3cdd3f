package xwindow

import (
	"testing"

	"github.com/jezek/xgb/xproto"

	"github.com/ryngard/xsurface/internal/xdisplay"
)

// Distinct dummy atom values so list membership is checkable.
var testAtoms = xdisplay.Atoms{
	WMProtocols:               1,
	WMDeleteWindow:            2,
	WMChangeState:             3,
	NetWMWindowType:           10,
	NetWMWindowTypeSplash:     11,
	NetWMWindowTypeFullscreen: 12,
	NetWMState:                20,
	NetWMStateFullscreen:      21,
	NetWMStateAbove:           22,
	NetWMStateBelow:           23,
	NetWMStateAdd:             24,
	NetWMStateRemove:          25,
}

func hasAtom(list []xproto.Atom, a xproto.Atom) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

func hasAction(list []stateAction, a stateAction) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}

func TestBuildChromeFullscreen(t *testing.T) {
	w := buildChrome(testAtoms, Chrome{Fullscreen: true})

	if !hasAtom(w.Types, testAtoms.NetWMWindowTypeFullscreen) {
		t.Fatal("fullscreen window type missing")
	}
	if !hasAtom(w.States, testAtoms.NetWMStateFullscreen) {
		t.Fatal("fullscreen state missing")
	}
	if !hasAction(w.Actions, stateAction{testAtoms.NetWMStateFullscreen, testAtoms.NetWMStateAdd}) {
		t.Fatal("fullscreen add action missing")
	}
	if w.WindowClass != "" {
		t.Fatal("fullscreen must not use the legacy undecorated class")
	}
}

func TestBuildChromeWindowedRetractsFullscreen(t *testing.T) {
	w := buildChrome(testAtoms, Chrome{})

	if hasAtom(w.States, testAtoms.NetWMStateFullscreen) {
		t.Fatal("windowed chrome must not claim the fullscreen state")
	}
	if !hasAction(w.Actions, stateAction{testAtoms.NetWMStateFullscreen, testAtoms.NetWMStateRemove}) {
		t.Fatal("windowed chrome must retract fullscreen")
	}
}

func TestBuildChromeUndecorated(t *testing.T) {
	w := buildChrome(testAtoms, Chrome{Undecorated: true})

	if !hasAtom(w.Types, testAtoms.NetWMWindowTypeSplash) {
		t.Fatal("undecorated window type missing")
	}
	if w.WindowClass != "Undecorated" {
		t.Fatalf("legacy class = %q", w.WindowClass)
	}

	// Fullscreen subsumes undecorated; both conventions would conflict.
	w = buildChrome(testAtoms, Chrome{Fullscreen: true, Undecorated: true})
	if hasAtom(w.Types, testAtoms.NetWMWindowTypeSplash) || w.WindowClass != "" {
		t.Fatal("fullscreen must suppress the undecorated conventions")
	}
}

func TestBuildChromeZOrder(t *testing.T) {
	w := buildChrome(testAtoms, Chrome{HasZOrder: true, ZOrder: ZTop})
	if !hasAtom(w.States, testAtoms.NetWMStateAbove) {
		t.Fatal("top z order should claim the above state")
	}
	if !hasAction(w.Actions, stateAction{testAtoms.NetWMStateBelow, testAtoms.NetWMStateRemove}) {
		t.Fatal("top z order must retract below")
	}

	w = buildChrome(testAtoms, Chrome{HasZOrder: true, ZOrder: ZNormal})
	if hasAtom(w.States, testAtoms.NetWMStateAbove) || hasAtom(w.States, testAtoms.NetWMStateBelow) {
		t.Fatal("normal z order should claim no stacking state")
	}
	if !hasAction(w.Actions, stateAction{testAtoms.NetWMStateAbove, testAtoms.NetWMStateRemove}) ||
		!hasAction(w.Actions, stateAction{testAtoms.NetWMStateBelow, testAtoms.NetWMStateRemove}) {
		t.Fatal("normal z order must retract both stacking states")
	}

	w = buildChrome(testAtoms, Chrome{})
	if hasAction(w.Actions, stateAction{testAtoms.NetWMStateAbove, testAtoms.NetWMStateRemove}) {
		t.Fatal("unspecified z order must leave stacking untouched")
	}
}

func card32(b []byte, i int) uint32 {
	return uint32(b[i*4]) | uint32(b[i*4+1])<<8 | uint32(b[i*4+2])<<16 | uint32(b[i*4+3])<<24
}

func TestSizeHintsBytes(t *testing.T) {
	var p Properties
	if _, ok := sizeHintsBytes(p); ok {
		t.Fatal("no geometry, no hints")
	}

	p.SetOrigin(-5, 7)
	p.SetSize(300, 200)
	data, ok := sizeHintsBytes(p)
	if !ok {
		t.Fatal("hints expected")
	}
	if len(data) != 18*4 {
		t.Fatalf("hint length %d", len(data))
	}
	flags := card32(data, 0)
	if flags != hintUSPosition|hintUSSize {
		t.Fatalf("flags %#x", flags)
	}
	if int32(card32(data, 1)) != -5 || int32(card32(data, 2)) != 7 {
		t.Fatal("position fields wrong")
	}
	if card32(data, 3) != 300 || card32(data, 4) != 200 {
		t.Fatal("size fields wrong")
	}

	p.SetFixedSize(true)
	data, _ = sizeHintsBytes(p)
	flags = card32(data, 0)
	if flags&(hintPMinSize|hintPMaxSize) != hintPMinSize|hintPMaxSize {
		t.Fatal("fixed size must pin min and max")
	}
	if card32(data, 5) != 300 || card32(data, 7) != 300 ||
		card32(data, 6) != 200 || card32(data, 8) != 200 {
		t.Fatal("min/max must equal the requested size")
	}
}

func TestWMHintsBytes(t *testing.T) {
	data := wmHintsBytes(false)
	if len(data) != 9*4 {
		t.Fatalf("hint length %d", len(data))
	}
	if card32(data, 0) != hintStateHint || card32(data, 2) != wmStateNormal {
		t.Fatal("normal initial state expected")
	}
	if card32(wmHintsBytes(true), 2) != wmStateIconic {
		t.Fatal("iconic initial state expected")
	}
}

func TestClassBytes(t *testing.T) {
	got := classBytes("xsurface", "Undecorated")
	want := "xsurface\x00Undecorated\x00"
	if string(got) != want {
		t.Fatalf("class property %q", got)
	}
}
