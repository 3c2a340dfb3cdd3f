package render

import (
	"fmt"
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/glx"
	"github.com/jezek/xgb/xproto"
	"github.com/ryngard/xsurface/internal/xdisplay"
)

// GLX server string names.
const (
	glxVendor  = 0x1
	glxVersion = 0x2
)

// Context is a GLX rendering context. A context may outlive the window it was
// created for and serve as the share list of its successor, so GPU-side
// objects survive a window re-open.
type Context struct {
	display *xdisplay.Display
	ctx     glx.Context
	visual  VisualConfig
	fb      Properties
	direct  bool

	fresh   bool // reset not yet performed; requires a current context
	drawFB  Properties
	inFrame bool
}

// New creates a context for the requested framebuffer properties. When share
// is non-nil the new context shares GPU objects with it.
func New(d *xdisplay.Display, req Properties, share *Context) (*Context, error) {
	conn := d.Conn()

	configs, err := VisualConfigs(conn, conn.DefaultScreen)
	if err != nil {
		return nil, err
	}

	visual, ok := ChooseVisual(configs, req)
	if !ok {
		return nil, ErrNoVisual
	}

	ctxid, err := glx.NewContextId(conn)
	if err != nil {
		return nil, fmt.Errorf("context id: %w", err)
	}

	var shareList glx.Context
	if share != nil {
		shareList = share.ctx
	}

	if err := glx.CreateContextChecked(conn, ctxid, visual.VisualID,
		uint32(conn.DefaultScreen), shareList, true).Check(); err != nil {
		return nil, fmt.Errorf("create context: %w", err)
	}

	direct := false
	if reply, err := glx.IsDirect(conn, ctxid).Reply(); err == nil {
		direct = reply.IsDirect
	}

	return &Context{
		display: d,
		ctx:     ctxid,
		visual:  visual,
		fb:      visual.Properties(),
		direct:  direct,
		fresh:   true,
	}, nil
}

// Properties reports the realized framebuffer properties.
func (c *Context) Properties() Properties { return c.fb }

func (c *Context) Visual() VisualConfig { return c.visual }

// Direct reports whether the context renders directly (the hardware path).
func (c *Context) Direct() bool { return c.direct }

// MakeCurrent binds the context to the drawable, consulting the connection's
// current-context cache to skip the round trip when already bound.
func (c *Context) MakeCurrent(drawable xproto.Window) error {
	if c.display.Current.Matches(drawable, c.ctx) {
		return nil
	}

	reply, err := glx.MakeCurrent(c.display.Conn(), glx.Drawable(drawable),
		c.ctx, c.display.Current.Tag()).Reply()
	if err != nil {
		return fmt.Errorf("make current: %w", err)
	}

	c.display.Current.Set(drawable, c.ctx, reply.ContextTag)
	return nil
}

// ReleaseCurrent unbinds the context from whatever drawable it is bound to.
func (c *Context) ReleaseCurrent() {
	if tag := c.display.Current.Tag(); tag != 0 {
		glx.MakeCurrent(c.display.Conn(), 0, 0, tag).Reply()
	}
	c.display.Current.Invalidate(0, c.ctx)
}

// ResetIfNew performs the one-time setup that requires a current context:
// first binding after creation. Logs the server's GLX identity once.
func (c *Context) ResetIfNew() {
	if !c.fresh {
		return
	}
	c.fresh = false

	conn := c.display.Conn()
	vendor := queryServerString(conn, conn.DefaultScreen, glxVendor)
	version := queryServerString(conn, conn.DefaultScreen, glxVersion)
	slog.Debug("GLX context reset",
		"vendor", vendor, "version", version, "direct", c.direct)
}

// SetDrawProperties records the framebuffer properties of the window being
// drawn this frame.
func (c *Context) SetDrawProperties(fb Properties) { c.drawFB = fb }

func (c *Context) BeginFrame() bool {
	c.inFrame = true
	return true
}

func (c *Context) EndFrame() {
	c.inFrame = false
}

// SwapBuffers presents the back buffer of the drawable. Uses the cached
// context tag; swapping does not require the context to be current.
func (c *Context) SwapBuffers(drawable xproto.Window) {
	glx.SwapBuffers(c.display.Conn(), c.display.Current.Tag(), glx.Drawable(drawable))
}

// Destroy releases the server-side context. Safe to call once only.
func (c *Context) Destroy() {
	c.display.Current.Invalidate(0, c.ctx)
	glx.DestroyContext(c.display.Conn(), c.ctx)
}

func queryServerString(conn *xgb.Conn, screen int, name uint32) string {
	reply, err := glx.QueryServerString(conn, uint32(screen), name).Reply()
	if err != nil {
		return ""
	}
	return string(reply.String)
}
