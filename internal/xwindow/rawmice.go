package xwindow

import (
	"encoding/binary"

	"github.com/ryngard/xsurface/internal/input"
)

// Raw event stream record layout: struct input_event from the kernel's input
// subsystem, as seen by 64-bit userspace. 16 bytes of timestamp we ignore,
// then type, code, value.
const rawEventSize = 24

// Event types and codes we consume from raw pointer devices.
const (
	evKey uint16 = 0x01
	evRel uint16 = 0x02
	evAbs uint16 = 0x03

	relX uint16 = 0x00
	relY uint16 = 0x01
	absX uint16 = 0x00
	absY uint16 = 0x01

	btnMouse    uint16 = 0x110
	btnMouseEnd uint16 = 0x118
)

type rawEvent struct {
	Type  uint16
	Code  uint16
	Value int32
}

// rawMouse is one raw pointer device attached to a window.
type rawMouse struct {
	fd     int
	label  string
	device *input.Device
	buf    []byte
	closed bool
}

// parseRawEvents decodes complete records from buf and returns the remainder,
// which is a partial record carried to the next read.
func parseRawEvents(buf []byte) ([]rawEvent, []byte) {
	var events []rawEvent
	for len(buf) >= rawEventSize {
		rec := buf[:rawEventSize]
		buf = buf[rawEventSize:]
		events = append(events, rawEvent{
			Type:  binary.LittleEndian.Uint16(rec[16:]),
			Code:  binary.LittleEndian.Uint16(rec[18:]),
			Value: int32(binary.LittleEndian.Uint32(rec[20:])),
		})
	}
	return events, buf
}

// applyRawEvents folds decoded records into the device's pointer and button
// state. Raw devices are not clipped to the window, so the pointer is always
// reported in-window at its accumulated position.
func applyRawEvents(dev *input.Device, events []rawEvent) {
	p := dev.Pointer()
	x, y := p.X, p.Y
	moved := false

	for _, ev := range events {
		switch ev.Type {
		case evRel:
			switch ev.Code {
			case relX:
				x += ev.Value
				moved = true
			case relY:
				y += ev.Value
				moved = true
			}
		case evAbs:
			switch ev.Code {
			case absX:
				x = ev.Value
				moved = true
			case absY:
				y = ev.Value
				moved = true
			}
		case evKey:
			if ev.Code >= btnMouse && ev.Code < btnMouseEnd {
				b := input.MouseButton(int(ev.Code - btnMouse))
				if ev.Value != 0 {
					dev.ButtonDown(b)
				} else {
					dev.ButtonUp(b)
				}
			}
		}
	}

	if moved || !p.InWindow {
		dev.SetPointerInWindow(x, y)
	}
}
