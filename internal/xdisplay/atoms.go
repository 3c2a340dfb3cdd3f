package xdisplay

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Atoms is the window-manager atom set shared by every window on the
// connection. Interned once at connect time.
type Atoms struct {
	WMProtocols               xproto.Atom
	WMDeleteWindow            xproto.Atom
	WMChangeState             xproto.Atom
	NetWMWindowType           xproto.Atom
	NetWMWindowTypeSplash     xproto.Atom
	NetWMWindowTypeFullscreen xproto.Atom
	NetWMState                xproto.Atom
	NetWMStateFullscreen      xproto.Atom
	NetWMStateAbove           xproto.Atom
	NetWMStateBelow           xproto.Atom
	NetWMStateAdd             xproto.Atom
	NetWMStateRemove          xproto.Atom
}

func internAtoms(conn *xgb.Conn) (Atoms, error) {
	var atoms Atoms
	for _, bind := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"WM_PROTOCOLS", &atoms.WMProtocols},
		{"WM_DELETE_WINDOW", &atoms.WMDeleteWindow},
		{"WM_CHANGE_STATE", &atoms.WMChangeState},
		{"_NET_WM_WINDOW_TYPE", &atoms.NetWMWindowType},
		{"_NET_WM_WINDOW_TYPE_SPLASH", &atoms.NetWMWindowTypeSplash},
		{"_NET_WM_WINDOW_TYPE_FULLSCREEN", &atoms.NetWMWindowTypeFullscreen},
		{"_NET_WM_STATE", &atoms.NetWMState},
		{"_NET_WM_STATE_FULLSCREEN", &atoms.NetWMStateFullscreen},
		{"_NET_WM_STATE_ABOVE", &atoms.NetWMStateAbove},
		{"_NET_WM_STATE_BELOW", &atoms.NetWMStateBelow},
		{"_NET_WM_STATE_ADD", &atoms.NetWMStateAdd},
		{"_NET_WM_STATE_REMOVE", &atoms.NetWMStateRemove},
	} {
		atom, err := internAtom(conn, bind.name)
		if err != nil {
			return Atoms{}, fmt.Errorf("intern %s: %w", bind.name, err)
		}
		*bind.dst = atom
	}
	return atoms, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}
