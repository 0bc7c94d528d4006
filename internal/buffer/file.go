package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/kobzarvs/texed/internal/syntax"
)

// Load reads filename and splits it into lines, dropping '\r' before each
// '\n'. A missing file yields ErrNotFound.
func Load(filename string) ([][]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	lines := bytes.Split(data, []byte("\n"))
	for i, l := range lines {
		lines[i] = bytes.TrimSuffix(l, []byte("\r"))
	}
	return lines, nil
}

// Open loads filename into a new document. A missing file opens as an
// empty document that will be created on save.
func Open(filename string, db *syntax.DB) (*Document, error) {
	var desc *syntax.Descriptor
	if db != nil {
		desc = db.Select(filename)
	}
	d := New(filename, desc)
	lines, err := Load(filename)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return d, nil
		}
		return nil, err
	}
	for i, l := range lines {
		if err := d.InsertRow(i, l); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	d.Dirty = 0
	return d, nil
}

// Save writes the document to its file in a single write and clears the
// dirty counter. It returns the number of bytes written.
func (d *Document) Save() (int, error) {
	buf := d.FlatText()
	f, err := os.OpenFile(d.Filename, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	if err := f.Truncate(int64(len(buf))); err != nil {
		return 0, err
	}
	n, err := f.Write(buf)
	if err != nil {
		return n, err
	}
	if n != len(buf) {
		return n, io.ErrShortWrite
	}
	d.Dirty = 0
	return n, nil
}
