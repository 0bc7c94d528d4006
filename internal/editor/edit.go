package editor

import (
	"github.com/kobzarvs/texed/internal/undo"
)

// MoveTo, InsertByte and DeleteForward make the editor the replay target
// of its own undo log. They mutate without recording.

func (e *Editor) MoveTo(p undo.Position) {
	e.cy = p.Row
	e.cx = p.Col
	e.clampCursor()
}

func (e *Editor) InsertByte(c byte) error {
	if e.cy >= e.doc.NumRows() {
		if err := e.doc.InsertRow(e.doc.NumRows(), nil); err != nil {
			return err
		}
	}
	if c == '\n' {
		if err := e.doc.SplitRow(e.cy, e.cx); err != nil {
			return err
		}
		e.cy++
		e.cx = 0
		return nil
	}
	if err := e.doc.InsertChar(e.cy, e.cx, c); err != nil {
		return err
	}
	e.cx++
	return nil
}

func (e *Editor) DeleteForward() error {
	_, _, err := e.doc.DeleteCharAt(e.cy, e.cx)
	return err
}

func (e *Editor) insertChar(c byte) error {
	pos := e.Cursor()
	created := e.doc.NumRows() == 0
	if err := e.InsertByte(c); err != nil {
		return err
	}
	e.record(undo.Batch{undo.Insert{Char: c, Pos: pos}}, created)
	return nil
}

// record appends b to the history. created marks b as the batch that gave
// an empty document its first row; undoing it removes that row again.
func (e *Editor) record(b undo.Batch, created bool) {
	if len(b) == 0 {
		return
	}
	e.history.Record(b)
	if created {
		e.rowBatch = e.history.Next() - 1
	}
}

func (e *Editor) insertNewline() error {
	return e.insertChar('\n')
}

// deleteLeft is backspace. At column 0 it joins the row onto the previous
// one and the cursor lands on the join point.
func (e *Editor) deleteLeft() error {
	if e.cy >= e.doc.NumRows() {
		return nil
	}
	to := undo.Position{Row: e.cy, Col: e.cx - 1}
	if e.cx == 0 {
		if e.cy == 0 {
			return nil
		}
		to = undo.Position{Row: e.cy - 1, Col: e.rowLen(e.cy - 1)}
	}
	c, ok, err := e.doc.DeleteChar(e.cy, e.cx)
	if err != nil || !ok {
		return err
	}
	e.cy, e.cx = to.Row, to.Col
	e.history.Record(undo.Batch{undo.DeleteLeft{Char: c, Pos: to}})
	return nil
}

func (e *Editor) deleteRight() error {
	pos := e.Cursor()
	c, ok, err := e.doc.DeleteCharAt(e.cy, e.cx)
	if err != nil || !ok {
		return err
	}
	e.history.Record(undo.Batch{undo.DeleteRight{Char: c, Pos: pos}})
	return nil
}

// paste inserts the clipboard text at the cursor as one undo batch.
// Carriage returns are dropped.
func (e *Editor) paste() error {
	text, err := e.clip.Paste()
	if err != nil {
		e.SetMessage("Can't paste: %s", err)
		return nil
	}
	var batch undo.Batch
	created := e.doc.NumRows() == 0
	defer func() { e.record(batch, created) }()
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\r' {
			continue
		}
		pos := e.Cursor()
		if err := e.InsertByte(c); err != nil {
			return err
		}
		batch = append(batch, undo.Insert{Char: c, Pos: pos})
	}
	return nil
}
