//go:build !linux

package xwindow

// Raw pointer devices come from the kernel input subsystem and exist on Linux
// only. Elsewhere the raw-mice property is accepted and does nothing.

func (w *Window) openRawMice() {
	w.log.Warn("raw pointer devices are not supported on this platform")
}

func (w *Window) pollRawMice() {}

func (w *Window) closeRawMice() {}
