package buffer

import (
	"slices"

	"github.com/kobzarvs/texed/internal/syntax"
)

const tabStop = 8

// Row is one line of the document together with its rendered form and
// highlight classes. The derived fields are rebuilt on every mutation.
type Row struct {
	idx      int
	content  []byte
	rendered []byte
	hl       []syntax.Class

	// open is the block comment state at the end of the line; openIn is
	// the incoming state the highlight was computed with.
	open   bool
	openIn bool
}

func (r *Row) Idx() int { return r.idx }
func (r *Row) Len() int { return len(r.content) }
func (r *Row) Content() []byte { return r.content }
func (r *Row) Rendered() []byte { return r.rendered }
func (r *Row) Highlight() []syntax.Class { return r.hl }
func (r *Row) OpenComment() bool { return r.open }
func (r *Row) String() string { return string(r.content) }

// renderLen returns the length of the rendered line without building it.
func renderLen(content []byte) int {
	rx := 0
	for _, c := range content {
		if c == '\t' {
			rx += tabStop - rx%tabStop
			continue
		}
		rx++
	}
	return rx
}

func (r *Row) render() error {
	n := renderLen(r.content)
	if uint64(n) > MaxRenderLen {
		return ErrOverflow
	}
	out := make([]byte, 0, n)
	for _, c := range r.content {
		if c == '\t' {
			out = append(out, ' ')
			for len(out)%tabStop != 0 {
				out = append(out, ' ')
			}
			continue
		}
		out = append(out, c)
	}
	r.rendered = out
	return nil
}

func (r *Row) highlight(desc *syntax.Descriptor, prevOpen bool) {
	hl, open := syntax.Highlight(desc, r.rendered, prevOpen)
	for i, c := range r.rendered {
		if c < 0x20 || c == 0x7f {
			hl[i] = syntax.NonPrint
		}
	}
	r.hl = hl
	r.open = open
	r.openIn = prevOpen
}

// RenderCol converts a content column to a rendered column. Columns past
// the end count as one cell each.
func (r *Row) RenderCol(col int) int {
	if col <= 0 {
		return 0
	}
	if col > len(r.content) {
		return renderLen(r.content) + col - len(r.content)
	}
	return renderLen(r.content[:col])
}

// ContentCol converts a rendered column back to the content column whose
// cell covers it.
func (r *Row) ContentCol(rcol int) int {
	rx := 0
	for i, c := range r.content {
		if c == '\t' {
			rx += tabStop - rx%tabStop
		} else {
			rx++
		}
		if rx > rcol {
			return i
		}
	}
	return len(r.content)
}

// MarkMatch paints n rendered cells starting at off with the match class
// and returns the classes it replaced.
func (r *Row) MarkMatch(off, n int) []syntax.Class {
	saved := slices.Clone(r.hl)
	end := min(off+n, len(r.hl))
	for i := max(off, 0); i < end; i++ {
		r.hl[i] = syntax.Match
	}
	return saved
}

// RestoreHighlight puts back classes returned by MarkMatch. It is ignored
// if the row was re-rendered in the meantime.
func (r *Row) RestoreHighlight(saved []syntax.Class) {
	if len(saved) == len(r.hl) {
		copy(r.hl, saved)
	}
}
