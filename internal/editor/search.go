package editor

import (
	"bytes"

	"github.com/kobzarvs/texed/internal/syntax"
	"github.com/kobzarvs/texed/internal/terminal"
)

const maxQueryLen = 256

type searchState struct {
	query []byte
	// lastMatch is the row of the current match, -1 for none.
	lastMatch int

	savedRow int
	savedHL  []syntax.Class

	// cursor and scroll at entry, restored by esc
	cy, cx, rowoff, coloff int
	prevMode               Mode
}

func (e *Editor) startSearch() {
	e.search = searchState{
		lastMatch: -1,
		savedRow:  -1,
		cy:        e.cy,
		cx:        e.cx,
		rowoff:    e.rowoff,
		coloff:    e.coloff,
		prevMode:  e.mode,
	}
	e.mode = ModeSearch
	e.searchPrompt()
}

func (e *Editor) searchPrompt() {
	e.SetMessage("Search: %s (Use ESC/Arrows/Enter)", e.search.query)
}

// Query returns the current search query.
func (e *Editor) Query() string { return string(e.search.query) }

func (e *Editor) handleSearch(k terminal.Key) error {
	s := &e.search
	dir := 0
	switch {
	case k == terminal.KeyBackspace || k == terminal.KeyCtrlH || k == terminal.KeyDelete:
		if len(s.query) > 0 {
			s.query = s.query[:len(s.query)-1]
		}
		s.lastMatch = -1
	case k == terminal.KeyEsc || k == terminal.KeyEnter:
		if k == terminal.KeyEsc {
			e.cy, e.cx = s.cy, s.cx
			e.rowoff, e.coloff = s.rowoff, s.coloff
		}
		e.restoreMatch()
		e.mode = s.prevMode
		e.SetMessage("")
		return nil
	case k == terminal.KeyArrowRight || k == terminal.KeyArrowDown:
		dir = 1
	case k == terminal.KeyArrowLeft || k == terminal.KeyArrowUp:
		dir = -1
	case insertable(k):
		if len(s.query) < maxQueryLen {
			s.query = append(s.query, byte(k))
			s.lastMatch = -1
		}
	}
	if s.lastMatch == -1 {
		dir = 1
	}
	if dir != 0 {
		e.findNext(dir)
	}
	e.searchPrompt()
	return nil
}

// findNext searches rendered rows starting after the last match in
// direction dir, wrapping around the document. A match becomes the top
// row of the viewport and its span is painted with the match class.
func (e *Editor) findNext(dir int) {
	s := &e.search
	e.restoreMatch()
	if len(s.query) == 0 {
		return
	}
	n := e.doc.NumRows()
	current := s.lastMatch
	for range n {
		current += dir
		if current == -1 {
			current = n - 1
		} else if current == n {
			current = 0
		}
		r := e.doc.Row(current)
		off := bytes.Index(r.Rendered(), s.query)
		if off < 0 {
			continue
		}
		s.lastMatch = current
		s.savedRow = current
		s.savedHL = r.MarkMatch(off, len(s.query))

		e.cy = current
		e.cx = r.ContentCol(off)
		e.rowoff = current
		e.coloff = 0
		if end := off + len(s.query); end > e.screenCols {
			e.coloff = min(end-e.screenCols, off)
		}
		return
	}
}

func (e *Editor) restoreMatch() {
	s := &e.search
	if s.savedHL != nil {
		if r := e.doc.Row(s.savedRow); r != nil {
			r.RestoreHighlight(s.savedHL)
		}
	}
	s.savedHL = nil
	s.savedRow = -1
}
