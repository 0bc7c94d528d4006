package buffer

import (
	"bytes"
	"errors"
	"math"
	"slices"

	"github.com/kobzarvs/texed/internal/syntax"
)

var (
	ErrOutOfRange = errors.New("buffer: position out of range")
	ErrOverflow   = errors.New("buffer: line too long to render")
	ErrNotFound   = errors.New("buffer: file not found")
)

// MaxRenderLen caps the rendered length of a single line.
var MaxRenderLen uint64 = math.MaxUint32

// Document is the ordered set of rows being edited.
type Document struct {
	rows     []*Row
	syntax   *syntax.Descriptor
	Filename string

	// Dirty counts mutations since the last load or save.
	Dirty int
}

func New(filename string, desc *syntax.Descriptor) *Document {
	return &Document{Filename: filename, syntax: desc}
}

func (d *Document) NumRows() int { return len(d.rows) }

func (d *Document) Syntax() *syntax.Descriptor { return d.syntax }

// Row returns row i or nil when i is out of range.
func (d *Document) Row(i int) *Row {
	if i < 0 || i >= len(d.rows) {
		return nil
	}
	return d.rows[i]
}

// SetSyntax switches the descriptor and re-highlights every row.
func (d *Document) SetSyntax(desc *syntax.Descriptor) {
	d.syntax = desc
	prev := false
	for _, r := range d.rows {
		r.highlight(desc, prev)
		prev = r.open
	}
}

func (d *Document) InsertRow(at int, content []byte) error {
	if at < 0 || at > len(d.rows) {
		return ErrOutOfRange
	}
	r := &Row{content: bytes.Clone(content)}
	if r.content == nil {
		r.content = []byte{}
	}
	if err := r.render(); err != nil {
		return err
	}
	d.rows = slices.Insert(d.rows, at, r)
	d.reindex(at)
	d.rehighlight(at)
	d.Dirty++
	return nil
}

// DeleteRow removes row at and reports whether there was such a row.
func (d *Document) DeleteRow(at int) bool {
	if at < 0 || at >= len(d.rows) {
		return false
	}
	d.rows = slices.Delete(d.rows, at, at+1)
	d.reindex(at)
	d.settle(at)
	d.Dirty++
	return true
}

// InsertChar inserts c before column col. A column past the end of the
// row is reached by padding with spaces first.
func (d *Document) InsertChar(row, col int, c byte) error {
	r := d.Row(row)
	if r == nil {
		return ErrOutOfRange
	}
	col = max(col, 0)
	if col > len(r.content) {
		pad := col - len(r.content)
		r.content = append(r.content, bytes.Repeat([]byte{' '}, pad)...)
		r.content = append(r.content, c)
	} else {
		r.content = slices.Insert(r.content, col, c)
	}
	d.Dirty++
	return d.update(row)
}

// DeleteChar removes the byte before col. At column 0 the row is joined
// onto the previous one and '\n' is returned as the deleted byte. ok is
// false when there was nothing to delete.
func (d *Document) DeleteChar(row, col int) (deleted byte, ok bool, err error) {
	r := d.Row(row)
	if r == nil {
		return 0, false, nil
	}
	col = min(max(col, 0), len(r.content))
	if col == 0 {
		if row == 0 {
			return 0, false, nil
		}
		if err := d.AppendString(row-1, r.content); err != nil {
			return 0, false, err
		}
		d.DeleteRow(row)
		return '\n', true, nil
	}
	deleted = r.content[col-1]
	r.content = slices.Delete(r.content, col-1, col)
	d.Dirty++
	return deleted, true, d.update(row)
}

// DeleteCharAt removes the byte under col. At the end of a row the next
// row is joined on and '\n' is returned.
func (d *Document) DeleteCharAt(row, col int) (deleted byte, ok bool, err error) {
	r := d.Row(row)
	if r == nil || col < 0 {
		return 0, false, nil
	}
	if col >= len(r.content) {
		if row+1 >= len(d.rows) {
			return 0, false, nil
		}
		return d.DeleteChar(row+1, 0)
	}
	return d.DeleteChar(row, col+1)
}

// SplitRow cuts row at col and moves the tail to a new row below.
func (d *Document) SplitRow(row, col int) error {
	r := d.Row(row)
	if r == nil {
		return ErrOutOfRange
	}
	col = min(max(col, 0), len(r.content))
	tail := bytes.Clone(r.content[col:])
	r.content = r.content[:col]
	d.Dirty++
	if err := d.update(row); err != nil {
		return err
	}
	return d.InsertRow(row+1, tail)
}

func (d *Document) AppendString(row int, s []byte) error {
	r := d.Row(row)
	if r == nil {
		return ErrOutOfRange
	}
	r.content = append(r.content, s...)
	d.Dirty++
	return d.update(row)
}

// FlatText joins the rows with '\n', ending the last row with one too.
func (d *Document) FlatText() []byte {
	size := 0
	for _, r := range d.rows {
		size += len(r.content) + 1
	}
	buf := make([]byte, 0, size)
	for _, r := range d.rows {
		buf = append(buf, r.content...)
		buf = append(buf, '\n')
	}
	return buf
}

func (d *Document) reindex(from int) {
	for i := from; i < len(d.rows); i++ {
		d.rows[i].idx = i
	}
}

func (d *Document) update(row int) error {
	if err := d.rows[row].render(); err != nil {
		return err
	}
	d.rehighlight(row)
	return nil
}

func (d *Document) incoming(i int) bool {
	return i > 0 && d.rows[i-1].open
}

// rehighlight recomputes row i and then every following row whose
// incoming comment state no longer matches its predecessor.
func (d *Document) rehighlight(i int) {
	for ; i < len(d.rows); i++ {
		d.rows[i].highlight(d.syntax, d.incoming(i))
		if i+1 < len(d.rows) && d.rows[i+1].openIn == d.rows[i].open {
			return
		}
	}
}

// settle re-highlights from row i only if its incoming state went stale.
func (d *Document) settle(i int) {
	if i < len(d.rows) && d.rows[i].openIn != d.incoming(i) {
		d.rehighlight(i)
	}
}
