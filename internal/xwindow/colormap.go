package xwindow

import (
	"github.com/jezek/xgb/xproto"

	"github.com/ryngard/xsurface/internal/render"
)

// setupColormap creates the colormap the chosen visual needs. Dynamic palette
// visuals get a fully allocated map, static and decomposed ones an empty
// allocation. Failure is logged, not fatal: the window falls back to the
// default colormap and may render with wrong colors.
func (w *Window) setupColormap(visual render.VisualConfig) {
	var alloc byte
	switch visual.Class {
	case render.VisualPseudoColor:
		if visual.RGBA {
			// Some servers report true-color semantics on a palette
			// visual. Writing a palette there would be wrong, so
			// leave the default colormap in place.
			w.log.Warn("pseudocolor visual reports true-color semantics, skipping colormap")
			return
		}
		alloc = xproto.ColormapAllocAll
	case render.VisualTrueColor, render.VisualDirectColor,
		render.VisualStaticColor, render.VisualStaticGray, render.VisualGrayScale:
		alloc = xproto.ColormapAllocNone
	default:
		w.log.Error("could not allocate colormap for visual class", "class", visual.Class)
		return
	}

	conn := w.display.Conn()
	mid, err := xproto.NewColormapId(conn)
	if err != nil {
		w.log.Error("colormap id", "error", err)
		return
	}
	if err := xproto.CreateColormapChecked(conn, alloc, mid,
		w.display.Root(), visual.VisualID).Check(); err != nil {
		w.log.Error("create colormap", "error", err)
		return
	}
	w.colormap = mid
}

// visualDepth finds the bit depth the screen advertises for a visual.
func visualDepth(screen *xproto.ScreenInfo, visual xproto.Visualid) byte {
	for _, depth := range screen.AllowedDepths {
		for _, v := range depth.Visuals {
			if v.VisualId == visual {
				return depth.Depth
			}
		}
	}
	return screen.RootDepth
}
