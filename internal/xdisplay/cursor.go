// Cursor helpers forked from https://github.com/BurntSushi/xgbutil/blob/master/xcursor/xcursor.go
package xdisplay

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const leftPtr = 68 // cursor font glyph

// createGlyphCursor builds the standard left-pointer cursor from the X cursor
// font.
func createGlyphCursor(conn *xgb.Conn) (xproto.Cursor, error) {
	fontId, err := xproto.NewFontId(conn)
	if err != nil {
		return 0, err
	}

	cursorId, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.OpenFontChecked(conn, fontId,
		uint16(len("cursor")), "cursor").Check()
	if err != nil {
		return 0, err
	}

	err = xproto.CreateGlyphCursorChecked(conn, cursorId, fontId, fontId,
		leftPtr, leftPtr+1,
		0, 0, 0,
		0xffff, 0xffff, 0xffff).Check()
	if err != nil {
		return 0, err
	}

	err = xproto.CloseFontChecked(conn, fontId).Check()
	if err != nil {
		return 0, err
	}

	return cursorId, nil
}

// createHiddenCursor builds an invisible cursor from a blank 1x1 pixmap. The
// cursor-hidden window property swaps it in for the glyph cursor.
func createHiddenCursor(conn *xgb.Conn, root xproto.Window) (xproto.Cursor, error) {
	pixmapId, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, err
	}

	if err := xproto.CreatePixmapChecked(conn, 1, pixmapId,
		xproto.Drawable(root), 1, 1).Check(); err != nil {
		return 0, err
	}

	cursorId, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}

	err = xproto.CreateCursorChecked(conn, cursorId, pixmapId, pixmapId,
		0, 0, 0, 0, 0, 0, 0, 0).Check()
	if err != nil {
		return 0, err
	}

	xproto.FreePixmap(conn, pixmapId)

	return cursorId, nil
}
