// Package xdisplay owns the shared X connection: screen information, the WM
// atom set, cursor resources, the GLX current-context cache, and the event
// pump that routes server events to per-window queues.
//
// The connection is shared by every window and by the draw loop, so all
// outbound protocol work is serialized by a single connection lock. Lock
// sections never nest; Go mutexes are not re-entrant.
package xdisplay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/glx"
	"github.com/jezek/xgb/xproto"
)

type Display struct {
	conn   *xgb.Conn
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo

	Atoms   Atoms
	Current Current

	glyphCursor  xproto.Cursor
	hiddenCursor xproto.Cursor

	mu sync.Mutex // serializes outbound protocol access

	routeMu sync.Mutex
	routes  map[xproto.Window][]xgb.Event
}

// Open connects to the X server named by display (empty means $DISPLAY),
// initializes the GLX extension and interns the WM atom set.
func Open(display string) (*Display, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := glx.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("glx init: %w", err)
	}
	if _, err := glx.QueryVersion(conn, 1, 4).Reply(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("glx version: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	atoms, err := internAtoms(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	glyph, err := createGlyphCursor(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("glyph cursor: %w", err)
	}
	hidden, err := createHiddenCursor(conn, screen.Root)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("hidden cursor: %w", err)
	}

	return &Display{
		conn:         conn,
		setup:        setup,
		screen:       screen,
		Atoms:        atoms,
		glyphCursor:  glyph,
		hiddenCursor: hidden,
		routes:       make(map[xproto.Window][]xgb.Event),
	}, nil
}

func (d *Display) Conn() *xgb.Conn             { return d.conn }
func (d *Display) Setup() *xproto.SetupInfo    { return d.setup }
func (d *Display) Screen() *xproto.ScreenInfo  { return d.screen }
func (d *Display) Root() xproto.Window         { return d.screen.Root }
func (d *Display) GlyphCursor() xproto.Cursor  { return d.glyphCursor }
func (d *Display) HiddenCursor() xproto.Cursor { return d.hiddenCursor }

// ScreenSize returns the root screen size in pixels.
func (d *Display) ScreenSize() (uint32, uint32) {
	return uint32(d.screen.WidthInPixels), uint32(d.screen.HeightInPixels)
}

// Lock serializes protocol access across windows and the draw loop.
func (d *Display) Lock() { d.mu.Lock() }

func (d *Display) Unlock() { d.mu.Unlock() }

// Sync forces a round trip so the server observes everything sent so far.
// Required after destroying the last window on a connection.
func (d *Display) Sync() { d.conn.Sync() }

func (d *Display) Close() { d.conn.Close() }

// Register adds a per-window event queue before the window is mapped, so no
// early event is lost.
func (d *Display) Register(wid xproto.Window) {
	d.routeMu.Lock()
	if _, ok := d.routes[wid]; !ok {
		d.routes[wid] = nil
	}
	d.routeMu.Unlock()
}

func (d *Display) Unregister(wid xproto.Window) {
	d.routeMu.Lock()
	delete(d.routes, wid)
	d.routeMu.Unlock()
}

// Take drains the queued events for a window without blocking. Bounds the
// per-tick cost to events already received.
func (d *Display) Take(wid xproto.Window) []xgb.Event {
	d.routeMu.Lock()
	events := d.routes[wid]
	if events != nil {
		d.routes[wid] = nil
	}
	d.routeMu.Unlock()
	return events
}

// Pump blocks in WaitForEvent and routes every event to its window's queue.
// Runs as a supervised service; returns nil when the connection closes.
func (d *Display) Pump(ctx context.Context) error {
	log := slog.With("package", "xdisplay")
	for {
		ev, err := d.conn.WaitForEvent()
		if ev == nil && err == nil {
			log.Debug("exit: connection closed")
			return nil
		}

		if err != nil {
			// X protocol errors are per-request and recoverable.
			log.Error("X error", "error", err)
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		wid, ok := eventWindow(ev)
		if !ok {
			log.Debug("unrouteable event", "event", ev)
			continue
		}

		d.routeMu.Lock()
		if _, registered := d.routes[wid]; registered {
			d.routes[wid] = append(d.routes[wid], ev)
		} else {
			log.Debug("event for unknown window", "wid", wid)
		}
		d.routeMu.Unlock()
	}
}

// eventWindow extracts the destination window from every event kind the core
// subscribes to.
func eventWindow(ev xgb.Event) (xproto.Window, bool) {
	switch ev := ev.(type) {
	case xproto.ConfigureNotifyEvent:
		return ev.Window, true
	case xproto.ButtonPressEvent:
		return ev.Event, true
	case xproto.ButtonReleaseEvent:
		return ev.Event, true
	case xproto.MotionNotifyEvent:
		return ev.Event, true
	case xproto.KeyPressEvent:
		return ev.Event, true
	case xproto.KeyReleaseEvent:
		return ev.Event, true
	case xproto.EnterNotifyEvent:
		return ev.Event, true
	case xproto.LeaveNotifyEvent:
		return ev.Event, true
	case xproto.FocusInEvent:
		return ev.Event, true
	case xproto.FocusOutEvent:
		return ev.Event, true
	case xproto.MapNotifyEvent:
		return ev.Window, true
	case xproto.UnmapNotifyEvent:
		return ev.Window, true
	case xproto.ReparentNotifyEvent:
		return ev.Window, true
	case xproto.DestroyNotifyEvent:
		return ev.Window, true
	case xproto.ClientMessageEvent:
		return ev.Window, true
	default:
		return 0, false
	}
}
