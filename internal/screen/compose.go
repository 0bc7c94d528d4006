// Package screen turns the visible part of a document into one VT100
// escape-sequence frame.
package screen

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/texed/internal/buffer"
	"github.com/kobzarvs/texed/internal/syntax"
)

const (
	hideCursor = "\x1b[?25l"
	showCursor = "\x1b[?25h"
	home       = "\x1b[H"
	clearEOL   = "\x1b[0K"
	inverse    = "\x1b[7m"
	reset      = "\x1b[0m"
	defaultFG  = "\x1b[39m"
)

// View is everything a frame depends on.
type View struct {
	Doc *buffer.Document

	// Rows and Cols size the text area, which excludes the two status rows.
	Rows   int
	Cols   int
	RowOff int
	ColOff int

	// CursorRow and CursorCol are document coordinates; CursorCol is a
	// content column.
	CursorRow int
	CursorCol int

	Mode     string
	FileType string
	Branch   string
	Version  string

	Message        string
	MessageTime    time.Time
	MessageTimeout time.Duration
	Now            time.Time

	Palette *Palette
}

// Compose builds the full frame. The cursor is hidden while the frame is
// drawn and shown again once it is positioned.
func Compose(v *View) []byte {
	var b bytes.Buffer
	pal := v.Palette
	if pal == nil {
		pal = DefaultPalette()
	}

	b.WriteString(hideCursor)
	b.WriteString(home)
	for y := 0; y < v.Rows; y++ {
		filerow := v.RowOff + y
		row := v.Doc.Row(filerow)
		if row == nil {
			if v.Doc.NumRows() == 0 && y == v.Rows/3 {
				writeBanner(&b, v)
			} else {
				b.WriteString("~" + clearEOL + "\r\n")
			}
			continue
		}
		writeRow(&b, row, v.ColOff, v.Cols, pal)
		b.WriteString(defaultFG + clearEOL + "\r\n")
	}

	writeStatus(&b, v)
	writeMessage(&b, v)

	cy := v.CursorRow - v.RowOff + 1
	cx := 1
	if row := v.Doc.Row(v.CursorRow); row != nil {
		cx = row.RenderCol(v.CursorCol) - v.ColOff + 1
	}
	fmt.Fprintf(&b, "\x1b[%d;%dH", max(cy, 1), max(cx, 1))
	b.WriteString(showCursor)
	return b.Bytes()
}

func writeRow(b *bytes.Buffer, row *buffer.Row, coloff, cols int, pal *Palette) {
	rendered := row.Rendered()
	hl := row.Highlight()
	if coloff >= len(rendered) {
		return
	}
	end := min(coloff+cols, len(rendered))
	current := ""
	for j := coloff; j < end; j++ {
		c := rendered[j]
		switch hl[j] {
		case syntax.NonPrint:
			sym := byte('?')
			if c <= 26 {
				sym = '@' + c
			}
			b.WriteString(inverse)
			b.WriteByte(sym)
			b.WriteString(reset)
			current = ""
		default:
			seq := pal.Seq(hl[j])
			if seq != current {
				if seq == "" {
					b.WriteString(defaultFG)
				} else {
					b.WriteString(seq)
				}
				current = seq
			}
			b.WriteByte(c)
		}
	}
}

func writeBanner(b *bytes.Buffer, v *View) {
	welcome := "Texed editor -- version " + v.Version
	welcome = runewidth.Truncate(welcome, v.Cols, "")
	padding := (v.Cols - runewidth.StringWidth(welcome)) / 2
	if padding > 0 {
		b.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		b.WriteByte(' ')
	}
	b.WriteString(welcome)
	b.WriteString(clearEOL + "\r\n")
}

func writeStatus(b *bytes.Buffer, v *View) {
	b.WriteString(clearEOL)
	b.WriteString(inverse)

	modified := ""
	if v.Doc.Dirty > 0 {
		modified = "(modified)"
	}
	name := v.Doc.Filename
	if name == "" {
		name = "[No Name]"
	}
	left := fmt.Sprintf(" --%s-- %s - %d lines %s",
		v.Mode, runewidth.Truncate(name, 20, ""), v.Doc.NumRows(), modified)
	if v.Branch != "" {
		left += " [" + v.Branch + "]"
	}
	ft := v.FileType
	if ft == "" {
		ft = "no ft"
	}
	right := ft + " | " + strconv.Itoa(v.CursorRow+1) + "/" + strconv.Itoa(v.Doc.NumRows())

	left = runewidth.Truncate(left, v.Cols, "")
	b.WriteString(left)
	width := runewidth.StringWidth(left)
	rw := runewidth.StringWidth(right)
	for width < v.Cols {
		if v.Cols-width == rw {
			b.WriteString(right)
			break
		}
		b.WriteByte(' ')
		width++
	}
	b.WriteString(reset + "\r\n")
}

func writeMessage(b *bytes.Buffer, v *View) {
	b.WriteString(clearEOL)
	if v.Message == "" {
		return
	}
	timeout := v.MessageTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if v.Now.Sub(v.MessageTime) >= timeout {
		return
	}
	b.WriteString(runewidth.Truncate(v.Message, v.Cols, ""))
}
