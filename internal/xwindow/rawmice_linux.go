//go:build linux

package xwindow

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/ryngard/xsurface/internal/bus"
	"github.com/ryngard/xsurface/internal/input"
)

const rawDeviceCount = 64

// evdev ioctl numbers: read direction, 'E' type.
const (
	eviocgNameNr = 0x06
	eviocgUniqNr = 0x08
	eviocgBitNr  = 0x20
)

func evioc(nr, size uintptr) uintptr {
	return 2<<30 | size<<16 | 'E'<<8 | nr
}

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func evdevString(fd int, nr uintptr) (string, error) {
	buf := make([]byte, 256)
	if err := ioctl(fd, evioc(nr, uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return "", err
	}
	if i := strings.IndexByte(string(buf), 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf), nil
}

// evdevTypeBits reads the bitmask of event types the device emits.
func evdevTypeBits(fd int) ([]byte, error) {
	buf := make([]byte, 4)
	if err := ioctl(fd, evioc(eviocgBitNr, uintptr(len(buf))), unsafe.Pointer(&buf[0])); err != nil {
		return nil, err
	}
	return buf, nil
}

func testBit(bits []byte, n uint16) bool {
	i := int(n / 8)
	return i < len(bits) && bits[i]&(1<<(n%8)) != 0
}

func sanitizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, s)
}

// openRawMice scans the input device nodes and attaches every pointer-capable
// one as an extra input device. Needs read access to /dev/input, which
// usually means the input group or root.
func (w *Window) openRawMice() {
	anyPresent := false
	anyMice := false

	for i := 0; i < rawDeviceCount; i++ {
		path := fmt.Sprintf("/dev/input/event%d", i)
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			if errors.Is(err, unix.ENOENT) {
				break
			}
			anyPresent = true
			w.log.Error("open raw device", "path", path, "error", err)
			continue
		}
		anyPresent = true

		name, err := evdevString(fd, eviocgNameNr)
		if err != nil {
			w.log.Error("query raw device name", "path", path, "error", err)
			unix.Close(fd)
			continue
		}
		uniq, err := evdevString(fd, eviocgUniqNr)
		if err != nil {
			// Many devices have no unique identifier.
			uniq = ""
		}
		bits, err := evdevTypeBits(fd)
		if err != nil {
			w.log.Error("query raw device capabilities", "path", path, "error", err)
			unix.Close(fd)
			continue
		}

		if !testBit(bits, evRel) && !testBit(bits, evAbs) {
			unix.Close(fd)
			continue
		}

		label := sanitizeLabel(name)
		if uniq != "" {
			label += "." + sanitizeLabel(uniq)
		}

		dev := input.NewPointerOnly(label)
		w.devices = append(w.devices, dev)
		w.mice = append(w.mice, &rawMouse{fd: fd, label: label, device: dev})
		w.log.Info("attached raw pointer device", "path", path, "label", label)
		anyMice = true
	}

	if !anyPresent {
		w.log.Warn("no raw input device nodes found")
	} else if !anyMice {
		w.log.Warn("no pointer-capable raw input devices found")
	}
}

// pollRawMice drains every attached raw device. A device that errors is
// dropped for good; its input.Device slot stays so device indices are stable.
func (w *Window) pollRawMice() {
	for _, m := range w.mice {
		if m.closed {
			continue
		}

		chunk := make([]byte, 16*rawEventSize)
		for {
			n, err := unix.Read(m.fd, chunk)
			if n > 0 {
				m.buf = append(m.buf, chunk[:n]...)
				continue
			}
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				break
			}
			unix.Close(m.fd)
			m.closed = true
			w.log.Error("raw device lost", "label", m.label, "error", err)
			w.queueNotification(func() {
				bus.Publish(bus.RawDeviceLost{UUID: w.UUID, Label: m.label})
			})
			break
		}
		if m.closed {
			continue
		}

		events, rest := parseRawEvents(m.buf)
		m.buf = rest
		applyRawEvents(m.device, events)
	}
}

func (w *Window) closeRawMice() {
	for _, m := range w.mice {
		if !m.closed {
			unix.Close(m.fd)
			m.closed = true
		}
	}
	w.mice = nil
}
