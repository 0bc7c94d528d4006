package editor

import "github.com/kobzarvs/texed/internal/syntax"

func (e *Editor) rowLen(row int) int {
	if r := e.doc.Row(row); r != nil {
		return r.Len()
	}
	return 0
}

// clampCursor keeps the cursor on an existing row and no further right
// than the append position of that row.
func (e *Editor) clampCursor() {
	e.cy = min(max(e.cy, 0), max(e.doc.NumRows()-1, 0))
	e.cx = min(max(e.cx, 0), e.rowLen(e.cy))
}

// scroll adjusts the offsets so the cursor is inside the viewport.
func (e *Editor) scroll() {
	e.clampCursor()
	if e.cy < e.rowoff {
		e.rowoff = e.cy
	}
	if e.cy >= e.rowoff+e.screenRows {
		e.rowoff = e.cy - e.screenRows + 1
	}
	rx := 0
	if r := e.doc.Row(e.cy); r != nil {
		rx = r.RenderCol(e.cx)
	}
	if rx < e.coloff {
		e.coloff = rx
	}
	if rx >= e.coloff+e.screenCols {
		e.coloff = rx - e.screenCols + 1
	}
}

func (e *Editor) moveLeft() {
	if e.cx > 0 {
		e.cx--
		return
	}
	if e.cy == 0 {
		return
	}
	e.cy--
	e.cx = e.rowLen(e.cy)
}

func (e *Editor) moveRight() {
	if e.cx < e.rowLen(e.cy) {
		e.cx++
		return
	}
	if e.cy >= e.doc.NumRows()-1 {
		return
	}
	e.cy++
	e.cx = 0
}

func (e *Editor) moveUp() {
	if e.cy > 0 {
		e.cy--
	}
	e.clampCursor()
}

func (e *Editor) moveDown() {
	if e.cy < e.doc.NumRows()-1 {
		e.cy++
	}
	e.clampCursor()
}

func (e *Editor) moveLineEnd() {
	e.cx = e.rowLen(e.cy)
}

// moveWordRight skips the rest of the current word and the separators
// after it. At the end of a row it wraps to the start of the next one.
func (e *Editor) moveWordRight() {
	r := e.doc.Row(e.cy)
	if r == nil {
		return
	}
	line := r.Content()
	if e.cx >= len(line) {
		if e.cy < e.doc.NumRows()-1 {
			e.cy++
			e.cx = 0
		}
		return
	}
	i := e.cx
	for i < len(line) && !syntax.IsSeparator(line[i]) {
		i++
	}
	for i < len(line) && syntax.IsSeparator(line[i]) {
		i++
	}
	e.cx = i
}

// moveWordLeft goes to the start of the previous word. At column 0 it
// wraps to the end of the previous row.
func (e *Editor) moveWordLeft() {
	if e.cx == 0 {
		if e.cy > 0 {
			e.cy--
			e.cx = e.rowLen(e.cy)
		}
		return
	}
	r := e.doc.Row(e.cy)
	if r == nil {
		return
	}
	line := r.Content()
	i := min(e.cx, len(line))
	for i > 0 && syntax.IsSeparator(line[i-1]) {
		i--
	}
	for i > 0 && !syntax.IsSeparator(line[i-1]) {
		i--
	}
	e.cx = i
}

func (e *Editor) pageUp() {
	e.cy = e.rowoff
	for range e.screenRows {
		e.moveUp()
	}
}

func (e *Editor) pageDown() {
	e.cy = min(e.rowoff+e.screenRows-1, max(e.doc.NumRows()-1, 0))
	for range e.screenRows {
		e.moveDown()
	}
}

// scrollViewUp and scrollViewDown move the view by one row, dragging the
// cursor along only when it would leave the screen.
func (e *Editor) scrollViewUp() {
	if e.rowoff == 0 {
		return
	}
	e.rowoff--
	if e.cy >= e.rowoff+e.screenRows {
		e.cy = e.rowoff + e.screenRows - 1
	}
	e.clampCursor()
}

func (e *Editor) scrollViewDown() {
	if e.rowoff >= e.doc.NumRows()-1 {
		return
	}
	e.rowoff++
	if e.cy < e.rowoff {
		e.cy = e.rowoff
	}
	e.clampCursor()
}
