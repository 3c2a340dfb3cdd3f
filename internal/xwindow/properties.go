package xwindow

import (
	"fmt"
	"strings"
)

// ZOrder is the requested stacking position of a window.
type ZOrder int

const (
	ZBottom ZOrder = iota
	ZNormal
	ZTop
)

func (z ZOrder) String() string {
	switch z {
	case ZBottom:
		return "bottom"
	case ZTop:
		return "top"
	default:
		return "normal"
	}
}

func ParseZOrder(s string) (ZOrder, error) {
	switch strings.ToLower(s) {
	case "bottom":
		return ZBottom, nil
	case "", "normal":
		return ZNormal, nil
	case "top":
		return ZTop, nil
	}
	return ZNormal, fmt.Errorf("unknown z order %q", s)
}

const (
	specOrigin = 1 << iota
	specSize
	specTitle
	specFullscreen
	specUndecorated
	specMinimized
	specForeground
	specCursorHidden
	specZOrder
	specFixedSize
	specRawMice
)

// Properties is a sparse window attribute set. Every attribute is
// independently present or absent, so a Properties value can describe a full
// window state or a delta that changes a single attribute.
type Properties struct {
	specified uint32

	x, y          int32
	width, height uint32
	title         string
	fullscreen    bool
	undecorated   bool
	minimized     bool
	foreground    bool
	cursorHidden  bool
	fixedSize     bool
	rawMice       bool
	zOrder        ZOrder
}

// Specified reports whether any attribute is present.
func (p Properties) Specified() bool { return p.specified != 0 }

func (p *Properties) SetOrigin(x, y int32) {
	p.x, p.y = x, y
	p.specified |= specOrigin
}
func (p Properties) HasOrigin() bool      { return p.specified&specOrigin != 0 }
func (p Properties) Origin() (x, y int32) { return p.x, p.y }
func (p *Properties) ClearOrigin()        { p.specified &^= specOrigin }

func (p *Properties) SetSize(w, h uint32) {
	p.width, p.height = w, h
	p.specified |= specSize
}
func (p Properties) HasSize() bool       { return p.specified&specSize != 0 }
func (p Properties) Size() (w, h uint32) { return p.width, p.height }
func (p *Properties) ClearSize()         { p.specified &^= specSize }

func (p *Properties) SetTitle(title string) {
	p.title = title
	p.specified |= specTitle
}
func (p Properties) HasTitle() bool { return p.specified&specTitle != 0 }
func (p Properties) Title() string  { return p.title }
func (p *Properties) ClearTitle()   { p.specified &^= specTitle }

func (p *Properties) SetFullscreen(v bool) {
	p.fullscreen = v
	p.specified |= specFullscreen
}
func (p Properties) HasFullscreen() bool { return p.specified&specFullscreen != 0 }
func (p Properties) Fullscreen() bool    { return p.HasFullscreen() && p.fullscreen }
func (p *Properties) ClearFullscreen()   { p.specified &^= specFullscreen }

func (p *Properties) SetUndecorated(v bool) {
	p.undecorated = v
	p.specified |= specUndecorated
}
func (p Properties) HasUndecorated() bool { return p.specified&specUndecorated != 0 }
func (p Properties) Undecorated() bool    { return p.HasUndecorated() && p.undecorated }
func (p *Properties) ClearUndecorated()   { p.specified &^= specUndecorated }

func (p *Properties) SetMinimized(v bool) {
	p.minimized = v
	p.specified |= specMinimized
}
func (p Properties) HasMinimized() bool { return p.specified&specMinimized != 0 }
func (p Properties) Minimized() bool    { return p.HasMinimized() && p.minimized }
func (p *Properties) ClearMinimized()   { p.specified &^= specMinimized }

func (p *Properties) SetForeground(v bool) {
	p.foreground = v
	p.specified |= specForeground
}
func (p Properties) HasForeground() bool { return p.specified&specForeground != 0 }
func (p Properties) Foreground() bool    { return p.HasForeground() && p.foreground }
func (p *Properties) ClearForeground()   { p.specified &^= specForeground }

func (p *Properties) SetCursorHidden(v bool) {
	p.cursorHidden = v
	p.specified |= specCursorHidden
}
func (p Properties) HasCursorHidden() bool { return p.specified&specCursorHidden != 0 }
func (p Properties) CursorHidden() bool    { return p.HasCursorHidden() && p.cursorHidden }
func (p *Properties) ClearCursorHidden()   { p.specified &^= specCursorHidden }

func (p *Properties) SetZOrder(z ZOrder) {
	p.zOrder = z
	p.specified |= specZOrder
}
func (p Properties) HasZOrder() bool { return p.specified&specZOrder != 0 }
func (p Properties) ZOrder() ZOrder  { return p.zOrder }
func (p *Properties) ClearZOrder()   { p.specified &^= specZOrder }

func (p *Properties) SetFixedSize(v bool) {
	p.fixedSize = v
	p.specified |= specFixedSize
}
func (p Properties) HasFixedSize() bool { return p.specified&specFixedSize != 0 }
func (p Properties) FixedSize() bool    { return p.HasFixedSize() && p.fixedSize }
func (p *Properties) ClearFixedSize()   { p.specified &^= specFixedSize }

func (p *Properties) SetRawMice(v bool) {
	p.rawMice = v
	p.specified |= specRawMice
}
func (p Properties) HasRawMice() bool { return p.specified&specRawMice != 0 }
func (p Properties) RawMice() bool    { return p.HasRawMice() && p.rawMice }
func (p *Properties) ClearRawMice()   { p.specified &^= specRawMice }

// Merge overlays every attribute specified in delta onto p.
func (p *Properties) Merge(delta Properties) {
	if delta.HasOrigin() {
		p.SetOrigin(delta.Origin())
	}
	if delta.HasSize() {
		p.SetSize(delta.Size())
	}
	if delta.HasTitle() {
		p.SetTitle(delta.Title())
	}
	if delta.HasFullscreen() {
		p.SetFullscreen(delta.fullscreen)
	}
	if delta.HasUndecorated() {
		p.SetUndecorated(delta.undecorated)
	}
	if delta.HasMinimized() {
		p.SetMinimized(delta.minimized)
	}
	if delta.HasForeground() {
		p.SetForeground(delta.foreground)
	}
	if delta.HasCursorHidden() {
		p.SetCursorHidden(delta.cursorHidden)
	}
	if delta.HasZOrder() {
		p.SetZOrder(delta.zOrder)
	}
	if delta.HasFixedSize() {
		p.SetFixedSize(delta.fixedSize)
	}
	if delta.HasRawMice() {
		p.SetRawMice(delta.rawMice)
	}
}

func (p Properties) String() string {
	var b strings.Builder
	b.WriteString("properties(")
	sep := ""
	field := func(format string, args ...any) {
		b.WriteString(sep)
		fmt.Fprintf(&b, format, args...)
		sep = " "
	}
	if p.HasOrigin() {
		field("origin=%d,%d", p.x, p.y)
	}
	if p.HasSize() {
		field("size=%dx%d", p.width, p.height)
	}
	if p.HasTitle() {
		field("title=%q", p.title)
	}
	if p.HasFullscreen() {
		field("fullscreen=%t", p.fullscreen)
	}
	if p.HasUndecorated() {
		field("undecorated=%t", p.undecorated)
	}
	if p.HasMinimized() {
		field("minimized=%t", p.minimized)
	}
	if p.HasForeground() {
		field("foreground=%t", p.foreground)
	}
	if p.HasCursorHidden() {
		field("cursor_hidden=%t", p.cursorHidden)
	}
	if p.HasZOrder() {
		field("z_order=%s", p.zOrder)
	}
	if p.HasFixedSize() {
		field("fixed_size=%t", p.fixedSize)
	}
	if p.HasRawMice() {
		field("raw_mice=%t", p.rawMice)
	}
	b.WriteString(")")
	return b.String()
}
