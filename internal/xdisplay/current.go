package xdisplay

import (
	"sync"

	"github.com/jezek/xgb/glx"
	"github.com/jezek/xgb/xproto"
)

// Current caches the drawable/context pair most recently made current on this
// connection, plus the GLX context tag the server handed back. MakeCurrent is a
// round trip, so frame setup consults the cache first and only speaks to the
// server on a mismatch.
type Current struct {
	mu       sync.Mutex
	drawable xproto.Window
	context  glx.Context
	tag      glx.ContextTag
}

func (c *Current) Matches(drawable xproto.Window, context glx.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drawable == drawable && c.context == context && c.context != 0
}

func (c *Current) Set(drawable xproto.Window, context glx.Context, tag glx.ContextTag) {
	c.mu.Lock()
	c.drawable = drawable
	c.context = context
	c.tag = tag
	c.mu.Unlock()
}

// Tag returns the context tag of the last make-current, for requests such as
// SwapBuffers that name the context without re-asserting currency.
func (c *Current) Tag() glx.ContextTag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tag
}

// Invalidate forgets the cached binding if it involves the given context or
// drawable. Called when either side is destroyed.
func (c *Current) Invalidate(drawable xproto.Window, context glx.Context) {
	c.mu.Lock()
	if c.drawable == drawable || c.context == context {
		c.drawable = 0
		c.context = 0
		c.tag = 0
	}
	c.mu.Unlock()
}
