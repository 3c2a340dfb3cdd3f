package xwindow

// FrameMode says why a frame is being drawn.
type FrameMode int

const (
	// FrameRender is a full render pass whose output will be presented.
	FrameRender FrameMode = iota
	// FrameRefresh redraws without presentation.
	FrameRefresh
)

// BeginFrame prepares the window for drawing: binds the rendering context and
// runs its one-time setup. Returns false when the window cannot accept a
// frame, which includes the gap between a resize request and the server's
// ConfigureNotify, where drawing would target a stale size.
func (w *Window) BeginFrame(mode FrameMode) bool {
	w.stateMu.Lock()
	ready := w.open && !w.awaitingConfigure
	w.stateMu.Unlock()
	if !ready {
		return false
	}

	w.display.Lock()
	defer w.display.Unlock()

	// ctx is mutated under the display lock; re-check after acquiring it in
	// case the window closed since the state check.
	if w.ctx == nil {
		return false
	}
	if err := w.ctx.MakeCurrent(w.wid); err != nil {
		w.log.Error("make current", "error", err)
		return false
	}
	w.ctx.ResetIfNew()
	w.ctx.SetDrawProperties(w.fb)
	return w.ctx.BeginFrame()
}

// EndFrame finishes drawing. A render frame arms presentation for the next
// BeginFlip.
func (w *Window) EndFrame(mode FrameMode) {
	w.display.Lock()
	if w.ctx != nil {
		w.ctx.EndFrame()
	}
	w.display.Unlock()
	if mode == FrameRender {
		w.stateMu.Lock()
		w.flipPending = true
		w.stateMu.Unlock()
	}
}

// BeginFlip presents the finished frame. Swapping rides the cached context
// tag, so no make-current round trip is needed even when another window's
// context became current in between.
func (w *Window) BeginFlip() {
	w.stateMu.Lock()
	pending := w.flipPending
	w.flipPending = false
	w.stateMu.Unlock()
	if !pending {
		return
	}

	w.display.Lock()
	if w.ctx != nil {
		w.ctx.SwapBuffers(w.wid)
	}
	w.display.Unlock()
}
