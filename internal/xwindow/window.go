// Package xwindow is the X11 window core: it owns native window lifecycle,
// window-manager hint negotiation, translation of server events into engine
// input, raw pointer devices, and the per-frame rendering handshake.
package xwindow

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jezek/xgb/xproto"

	"github.com/ryngard/xsurface/internal/bus"
	"github.com/ryngard/xsurface/internal/input"
	"github.com/ryngard/xsurface/internal/render"
	"github.com/ryngard/xsurface/internal/xdisplay"
)

var (
	// ErrWindowCreateFailed means the server rejected window creation or
	// mapping.
	ErrWindowCreateFailed = errors.New("xwindow: window create failed")

	// ErrPropertiesUnsatisfiable means a window was created but its
	// realized rendering context violates the request, so it was torn
	// down again.
	ErrPropertiesUnsatisfiable = errors.New("xwindow: framebuffer properties unsatisfiable")
)

// Window is one native window on the shared display connection.
//
// Open, Close, RequestProperties and ProcessEvents belong to the window's
// owning goroutine. BeginFrame, EndFrame and BeginFlip belong to the draw
// loop; the display lock serializes the two sides on the wire.
type Window struct {
	UUID string

	log     *slog.Logger
	display *xdisplay.Display

	fbRequest      render.Properties
	interceptClose bool

	stateMu           sync.Mutex
	properties        Properties
	awaitingConfigure bool
	flipPending       bool
	open              bool

	reqMu     sync.Mutex
	requested Properties

	fb       render.Properties
	ctx      *render.Context
	shareCtx *render.Context
	wid      xproto.Window
	colormap xproto.Colormap
	keymap   *keymap
	ic       *inputContext
	devices  []*input.Device
	mice     []*rawMouse
	notify   []func()
}

// New builds a window around the display connection. props is the initial
// window state applied at Open; fb is the requested framebuffer. When
// interceptClose is set, a window-manager close request is published on the
// bus instead of closing the window.
func New(d *xdisplay.Display, uuid string, fb render.Properties, props Properties, interceptClose bool) *Window {
	return &Window{
		UUID:           uuid,
		log:            slog.With("package", "xwindow", "window", uuid),
		display:        d,
		fbRequest:      fb,
		interceptClose: interceptClose,
		properties:     props,
		devices:        []*input.Device{input.NewKeyboardPointer("keyboard_mouse")},
	}
}

// Open creates and maps the native window. Idempotent while open. The
// rendering context of a previously closed window is reused as the share
// list, so GPU objects survive a re-open.
func (w *Window) Open() error {
	w.display.Lock()
	defer w.display.Unlock()

	if w.open {
		return nil
	}

	props := w.snapshotProperties()
	if !props.HasOrigin() {
		props.SetOrigin(0, 0)
	}
	if !props.HasSize() {
		props.SetSize(100, 100)
	}
	if props.Fullscreen() {
		sw, sh := w.display.ScreenSize()
		props.SetUndecorated(true)
		props.SetOrigin(0, 0)
		props.SetSize(sw, sh)
	}

	ctx := w.shareCtx
	if ctx != nil && !ctx.Properties().Subsumes(w.fbRequest) {
		ctx = nil
	}
	if ctx == nil {
		var err error
		ctx, err = render.New(w.display, w.fbRequest, w.shareCtx)
		if err != nil {
			return err
		}
	}
	w.ctx = ctx
	w.shareCtx = ctx
	w.fb = ctx.Properties()

	w.setupColormap(ctx.Visual())

	conn := w.display.Conn()
	screen := w.display.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return fmt.Errorf("%w: window id: %v", ErrWindowCreateFailed, err)
	}

	eventMask := uint32(xproto.EventMaskKeyPress |
		xproto.EventMaskKeyRelease |
		xproto.EventMaskButtonPress |
		xproto.EventMaskButtonRelease |
		xproto.EventMaskEnterWindow |
		xproto.EventMaskLeaveWindow |
		xproto.EventMaskPointerMotion |
		xproto.EventMaskFocusChange |
		xproto.EventMaskStructureNotify)

	cursor := w.display.GlyphCursor()
	if props.CursorHidden() {
		cursor = w.display.HiddenCursor()
	}

	// Value list order follows ascending attribute bits.
	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask)
	values := []uint32{screen.BlackPixel, 0, eventMask}
	if w.colormap != 0 {
		mask |= xproto.CwColormap
		values = append(values, uint32(w.colormap))
	}
	mask |= xproto.CwCursor
	values = append(values, uint32(cursor))

	x, y := props.Origin()
	width, height := props.Size()
	depth := visualDepth(screen, ctx.Visual().VisualID)

	err = xproto.CreateWindowChecked(conn, depth, wid, w.display.Root(),
		int16(x), int16(y), uint16(width), uint16(height), 0,
		xproto.WindowClassInputOutput, ctx.Visual().VisualID,
		mask, values).Check()
	if err != nil {
		w.closeLocked()
		return fmt.Errorf("%w: %v", ErrWindowCreateFailed, err)
	}

	// Register before mapping so no early event is dropped.
	w.display.Register(wid)
	w.wid = wid

	w.setWMProperties(props, false)

	if km, err := newKeymap(conn, w.display.Setup()); err != nil {
		w.log.Warn("keyboard mapping unavailable, text input degraded", "error", err)
	} else {
		w.keymap = km
		w.ic = newInputContext(km)
	}

	if err := ctx.MakeCurrent(wid); err != nil {
		w.closeLocked()
		return fmt.Errorf("%w: %v", ErrWindowCreateFailed, err)
	}
	ctx.ResetIfNew()

	if err := w.fbRequest.VerifyPolicy(ctx.Direct()); err != nil {
		w.closeLocked()
		return fmt.Errorf("%w: %v", ErrPropertiesUnsatisfiable, err)
	}

	if err := xproto.MapWindowChecked(conn, wid).Check(); err != nil {
		w.closeLocked()
		return fmt.Errorf("%w: map: %v", ErrWindowCreateFailed, err)
	}

	w.markOpen(props)

	if props.RawMice() {
		w.openRawMice()
	}

	w.log.Info("window open", "size", fmt.Sprintf("%dx%d", width, height),
		"direct", ctx.Direct())
	return nil
}

// markOpen commits the resolved open-time state. AwaitingConfigure stays
// clear here: it latches only when a geometry request goes out, so a window
// mapped without a window manager (no synthetic ConfigureNotify coming) still
// renders.
func (w *Window) markOpen(props Properties) {
	w.stateMu.Lock()
	w.properties = props
	w.open = true
	w.stateMu.Unlock()
}

// Close destroys the native window. The rendering context survives as the
// share source for a later Open. Safe to call on a closed window.
func (w *Window) Close() {
	w.display.Lock()
	w.closeLocked()
	w.display.Unlock()
	w.flushNotifications()
}

// closeLocked tears the native window down with the display lock held. Also
// serves as the cleanup path for a failed Open.
func (w *Window) closeLocked() {
	wasOpen := w.open

	w.closeRawMice()
	// Drop the raw device slots so a re-open's discovery pass does not
	// stack dead slots behind the keyboard.
	w.devices = w.devices[:1]

	if w.ctx != nil {
		w.ctx.ReleaseCurrent()
		w.ctx = nil
	}
	w.ic = nil
	w.keymap = nil

	conn := w.display.Conn()
	if w.wid != 0 {
		w.display.Unregister(w.wid)
		xproto.DestroyWindow(conn, w.wid)
		w.wid = 0
		// Make sure the destroy is processed before the engine assumes
		// the window is gone.
		w.display.Sync()
	}
	if w.colormap != 0 {
		xproto.FreeColormap(conn, w.colormap)
		w.colormap = 0
	}

	w.stateMu.Lock()
	w.open = false
	w.awaitingConfigure = false
	w.flipPending = false
	w.stateMu.Unlock()

	if wasOpen {
		w.log.Info("window closed")
		w.queueNotification(func() {
			bus.Publish(bus.WindowClosed{UUID: w.UUID})
		})
	}
}

// Destroy closes the window and releases the shared rendering context. The
// window cannot be reopened afterwards.
func (w *Window) Destroy() {
	w.display.Lock()
	w.closeLocked()
	if w.shareCtx != nil {
		w.shareCtx.Destroy()
		w.shareCtx = nil
	}
	w.display.Unlock()
	w.flushNotifications()
}

// RequestProperties records a property delta to apply on the next
// ProcessEvents tick. Callable from any goroutine.
func (w *Window) RequestProperties(delta Properties) {
	w.reqMu.Lock()
	w.requested.Merge(delta)
	w.reqMu.Unlock()
}

func (w *Window) applyRequested() {
	w.reqMu.Lock()
	req := w.requested
	w.requested = Properties{}
	w.reqMu.Unlock()

	if !req.Specified() {
		return
	}

	if !w.IsOpen() {
		// Stash for the next Open.
		w.stateMu.Lock()
		w.properties.Merge(req)
		w.stateMu.Unlock()
		return
	}

	w.applyNow(req)
}

// applyNow pushes a property delta at the live window. Attributes the server
// echoes back (geometry, map state, focus) are not adopted here; they land
// through their notify events.
func (w *Window) applyNow(req Properties) {
	w.log.Debug("applying properties", "delta", req.String())

	if req.Fullscreen() {
		sw, sh := w.display.ScreenSize()
		req.SetUndecorated(true)
		req.SetOrigin(0, 0)
		req.SetSize(sw, sh)
	}

	w.stateMu.Lock()
	wm := w.properties
	wm.Merge(req)
	adopted := req
	adopted.ClearOrigin()
	adopted.ClearSize()
	adopted.ClearMinimized()
	adopted.ClearForeground()
	if adopted.Specified() {
		w.properties.Merge(adopted)
	}
	w.stateMu.Unlock()

	w.display.Lock()
	defer w.display.Unlock()

	conn := w.display.Conn()

	// Value list order follows ascending configure bits.
	var mask uint16
	var values []uint32
	if req.HasOrigin() {
		x, y := req.Origin()
		mask |= xproto.ConfigWindowX | xproto.ConfigWindowY
		values = append(values, uint32(x), uint32(y))
	}
	if req.HasSize() {
		width, height := req.Size()
		mask |= xproto.ConfigWindowWidth | xproto.ConfigWindowHeight
		values = append(values, width, height)
	}
	if req.HasZOrder() && req.ZOrder() != ZNormal {
		mask |= xproto.ConfigWindowStackMode
		if req.ZOrder() == ZBottom {
			values = append(values, xproto.StackModeBelow)
		} else {
			values = append(values, xproto.StackModeAbove)
		}
	}
	if mask != 0 {
		xproto.ConfigureWindow(conn, w.wid, mask, values)
		if req.HasOrigin() || req.HasSize() {
			w.stateMu.Lock()
			w.awaitingConfigure = true
			w.stateMu.Unlock()
		}
	}

	if req.HasMinimized() {
		if req.Minimized() {
			w.sendClientMessage(w.display.Atoms.WMChangeState,
				[]uint32{wmStateIconic, 0, 0, 0, 0})
		} else {
			xproto.MapWindow(conn, w.wid)
		}
	}

	if req.HasCursorHidden() {
		cursor := w.display.GlyphCursor()
		if req.CursorHidden() {
			cursor = w.display.HiddenCursor()
		}
		xproto.ChangeWindowAttributes(conn, w.wid,
			xproto.CwCursor, []uint32{uint32(cursor)})
	}

	if req.HasForeground() && req.Foreground() {
		xproto.SetInputFocus(conn, xproto.InputFocusPointerRoot,
			w.wid, xproto.TimeCurrentTime)
	}

	w.setWMProperties(wm, true)
}

// requestSize asks the server to resize the window. Display lock held.
func (w *Window) requestSize(width, height uint32) {
	xproto.ConfigureWindow(w.display.Conn(), w.wid,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{width, height})
	w.stateMu.Lock()
	w.awaitingConfigure = true
	w.stateMu.Unlock()
}

// setWMProperties publishes the window-manager facing properties: title,
// EWMH type and state vocabularies, size and state hints, the legacy
// undecorated class, and the close protocol. When the window is already
// mapped, state changes additionally go to the root as client messages,
// because mapped-window property writes are ignored by EWMH managers.
// Display lock held.
func (w *Window) setWMProperties(props Properties, alreadyMapped bool) {
	conn := w.display.Conn()
	atoms := w.display.Atoms

	if props.HasTitle() {
		title := []byte(props.Title())
		xproto.ChangeProperty(conn, xproto.PropModeReplace, w.wid,
			xproto.AtomWmName, xproto.AtomString, 8,
			uint32(len(title)), title)
	}

	wire := buildChrome(atoms, Chrome{
		Fullscreen:  props.Fullscreen(),
		Undecorated: props.Undecorated(),
		HasZOrder:   props.HasZOrder(),
		ZOrder:      props.ZOrder(),
	})

	xproto.ChangeProperty(conn, xproto.PropModeReplace, w.wid,
		atoms.NetWMWindowType, xproto.AtomAtom, 32,
		uint32(len(wire.Types)), atomBytes(wire.Types))
	xproto.ChangeProperty(conn, xproto.PropModeReplace, w.wid,
		atoms.NetWMState, xproto.AtomAtom, 32,
		uint32(len(wire.States)), atomBytes(wire.States))

	if data, ok := sizeHintsBytes(props); ok {
		xproto.ChangeProperty(conn, xproto.PropModeReplace, w.wid,
			xproto.AtomWmNormalHints, xproto.AtomWmSizeHints, 32,
			uint32(len(data)/4), data)
	}

	hints := wmHintsBytes(props.Minimized())
	xproto.ChangeProperty(conn, xproto.PropModeReplace, w.wid,
		xproto.AtomWmHints, xproto.AtomWmHints, 32,
		uint32(len(hints)/4), hints)

	if wire.WindowClass != "" {
		class := classBytes("xsurface", wire.WindowClass)
		xproto.ChangeProperty(conn, xproto.PropModeReplace, w.wid,
			xproto.AtomWmClass, xproto.AtomString, 8,
			uint32(len(class)), class)
	}

	xproto.ChangeProperty(conn, xproto.PropModeReplace, w.wid,
		atoms.WMProtocols, xproto.AtomAtom, 32,
		1, atomBytes([]xproto.Atom{atoms.WMDeleteWindow}))

	if alreadyMapped {
		for _, a := range wire.Actions {
			w.sendClientMessage(atoms.NetWMState,
				[]uint32{uint32(a.Action), uint32(a.State), 0, 1, 0})
		}
	}
}

// sendClientMessage sends a 32-bit client message about this window to the
// root, where the window manager listens. Display lock held.
func (w *Window) sendClientMessage(kind xproto.Atom, data []uint32) {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.wid,
		Type:   kind,
		Data:   xproto.ClientMessageDataUnionData32New(data),
	}
	xproto.SendEvent(w.display.Conn(), true, w.display.Root(),
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()))
}

// MovePointer repositions a pointer device to window coordinates. The system
// pointer is only moved while the window has focus and the pointer is inside
// it, so a background window cannot yank the cursor. Raw devices track
// position internally and always accept the move.
func (w *Window) MovePointer(deviceIndex int, x, y int32) bool {
	if deviceIndex == 0 {
		w.stateMu.Lock()
		ok := w.open && w.properties.Foreground()
		w.stateMu.Unlock()
		if !ok || !w.devices[0].Pointer().InWindow {
			return false
		}

		w.display.Lock()
		xproto.WarpPointer(w.display.Conn(), xproto.WindowNone, w.wid,
			0, 0, 0, 0, int16(x), int16(y))
		w.display.Unlock()
		w.devices[0].SetPointerInWindow(x, y)
		return true
	}

	if deviceIndex < 0 || deviceIndex >= len(w.devices) {
		return false
	}
	w.devices[deviceIndex].SetPointerInWindow(x, y)
	return true
}

// Properties returns a snapshot of the current window state.
func (w *Window) Properties() Properties {
	return w.snapshotProperties()
}

func (w *Window) snapshotProperties() Properties {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	return w.properties
}

func (w *Window) IsOpen() bool {
	w.stateMu.Lock()
	defer w.stateMu.Unlock()
	return w.open
}

// Framebuffer reports the realized framebuffer properties, valid once the
// window has been opened.
func (w *Window) Framebuffer() render.Properties { return w.fb }

// Devices returns the input device list. Slot 0 is the keyboard and system
// pointer; raw pointer devices follow.
func (w *Window) Devices() []*input.Device { return w.devices }
