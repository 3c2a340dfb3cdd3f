package xwindow

import (
	"encoding/binary"
	"testing"

	"github.com/ryngard/xsurface/internal/input"
)

func rawRecord(typ, code uint16, value int32) []byte {
	b := make([]byte, rawEventSize)
	binary.LittleEndian.PutUint16(b[16:], typ)
	binary.LittleEndian.PutUint16(b[18:], code)
	binary.LittleEndian.PutUint32(b[20:], uint32(value))
	return b
}

func TestParseRawEvents(t *testing.T) {
	var buf []byte
	buf = append(buf, rawRecord(evRel, relX, 5)...)
	buf = append(buf, rawRecord(evRel, relY, -3)...)
	buf = append(buf, rawRecord(evKey, btnMouse, 1)...)

	events, rest := parseRawEvents(buf)
	if len(rest) != 0 {
		t.Fatalf("rest = %d bytes", len(rest))
	}
	want := []rawEvent{
		{evRel, relX, 5},
		{evRel, relY, -3},
		{evKey, btnMouse, 1},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, events[i], want[i])
		}
	}
}

func TestParseRawEventsKeepsPartialRecord(t *testing.T) {
	buf := append(rawRecord(evRel, relX, 1), rawRecord(evRel, relY, 2)[:10]...)

	events, rest := parseRawEvents(buf)
	if len(events) != 1 {
		t.Fatalf("events = %v", events)
	}
	if len(rest) != 10 {
		t.Fatalf("rest = %d bytes, want the partial record", len(rest))
	}

	// The remainder completes on the next read.
	rest = append(rest, rawRecord(evRel, relY, 2)[10:]...)
	events, rest = parseRawEvents(rest)
	if len(events) != 1 || events[0] != (rawEvent{evRel, relY, 2}) {
		t.Fatalf("completed events = %v", events)
	}
	if len(rest) != 0 {
		t.Fatalf("rest = %d bytes", len(rest))
	}
}

func TestApplyRawEventsRelativeMotion(t *testing.T) {
	dev := input.NewPointerOnly("test")
	dev.SetPointerInWindow(100, 100)

	applyRawEvents(dev, []rawEvent{
		{evRel, relX, 7},
		{evRel, relY, -20},
	})

	p := dev.Pointer()
	if p.X != 107 || p.Y != 80 || !p.InWindow {
		t.Fatalf("pointer = %+v", p)
	}
}

func TestApplyRawEventsAbsoluteMotion(t *testing.T) {
	dev := input.NewPointerOnly("test")
	dev.SetPointerInWindow(100, 100)

	applyRawEvents(dev, []rawEvent{
		{evAbs, absX, 640},
		{evAbs, absY, 480},
		{evRel, relX, 1},
	})

	p := dev.Pointer()
	if p.X != 641 || p.Y != 480 {
		t.Fatalf("pointer = %+v", p)
	}
}

func TestApplyRawEventsButtons(t *testing.T) {
	dev := input.NewPointerOnly("test")

	applyRawEvents(dev, []rawEvent{
		{evKey, btnMouse, 1},
		{evKey, btnMouse + 1, 1},
		{evKey, btnMouse, 0},
		{evKey, 0x30, 1}, // not a pointer button
	})

	got := dev.PollButtons()
	want := []input.ButtonEvent{
		{Button: input.MouseButton(0), Down: true},
		{Button: input.MouseButton(1), Down: true},
		{Button: input.MouseButton(0), Down: false},
	}
	if len(got) != len(want) {
		t.Fatalf("button events = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApplyRawEventsNoMotionKeepsPointer(t *testing.T) {
	dev := input.NewPointerOnly("test")
	dev.SetPointerInWindow(10, 20)

	applyRawEvents(dev, []rawEvent{{evKey, btnMouse, 1}})

	p := dev.Pointer()
	if p.X != 10 || p.Y != 20 {
		t.Fatalf("pointer = %+v", p)
	}
}
