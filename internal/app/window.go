package app

import (
	"github.com/ryngard/xsurface/internal/config"
	"github.com/ryngard/xsurface/internal/render"
	"github.com/ryngard/xsurface/internal/xwindow"
)

// windowProperties maps a window's config entry onto the sparse property
// model. Only configured attributes become specified.
func windowProperties(cw config.Window) (xwindow.Properties, error) {
	var p xwindow.Properties

	if cw.Title != "" {
		p.SetTitle(cw.Title)
	}
	if cw.X != nil && cw.Y != nil {
		p.SetOrigin(*cw.X, *cw.Y)
	}
	if cw.Width != 0 && cw.Height != 0 {
		p.SetSize(cw.Width, cw.Height)
	}
	if cw.Fullscreen {
		p.SetFullscreen(true)
	}
	if cw.Undecorated {
		p.SetUndecorated(true)
	}
	if cw.Minimized {
		p.SetMinimized(true)
	}
	if cw.FixedSize {
		p.SetFixedSize(true)
	}
	if cw.HideCursor {
		p.SetCursorHidden(true)
	}
	if cw.RawMice {
		p.SetRawMice(true)
	}
	if cw.ZOrder != "" {
		z, err := xwindow.ParseZOrder(cw.ZOrder)
		if err != nil {
			return p, err
		}
		p.SetZOrder(z)
	}

	return p, nil
}

// framebufferProperties maps a window's config entry onto a framebuffer
// request. Zero-valued bit counts mean no constraint.
func framebufferProperties(cw config.Window) render.Properties {
	return render.Properties{
		RGBA:          true,
		DoubleBuffer:  !cw.SingleBuffer,
		ColorBits:     cw.ColorBits,
		AlphaBits:     cw.AlphaBits,
		DepthBits:     cw.DepthBits,
		StencilBits:   cw.StencilBits,
		ForceHardware: cw.ForceHardware,
		ForceSoftware: cw.ForceSoftware,
	}
}
