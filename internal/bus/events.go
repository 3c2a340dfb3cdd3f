package bus

// WindowPropertiesChanged is published when the display server, rather than the
// engine, changed window state (resize, focus, map/unmap).
type WindowPropertiesChanged struct {
	UUID string
}

// WindowCloseRequested is published instead of closing when the engine asked to
// intercept window-manager close requests.
type WindowCloseRequested struct {
	UUID string
}

// WindowClosed is published after a window's native handle has been destroyed.
type WindowClosed struct {
	UUID string
}

// RawDeviceLost is published when a raw pointer device errored and was dropped.
type RawDeviceLost struct {
	UUID  string
	Label string
}
