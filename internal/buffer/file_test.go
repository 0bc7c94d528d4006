package buffer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kobzarvs/texed/internal/syntax"
)

func TestLoadStripsCarriageReturns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo\r\n\r\nfour"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := make([]string, len(lines))
	for i, l := range lines {
		got[i] = string(l)
	}
	if strings.Join(got, "|") != "one|two||four" {
		t.Fatalf("lines = %q", got)
	}
}

func TestOpenMissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.c")
	if _, err := Load(path); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load error = %v, want ErrNotFound", err)
	}
	d, err := Open(path, syntax.NewDB())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.NumRows() != 0 || d.Dirty != 0 {
		t.Fatalf("rows = %d dirty = %d, want empty clean document", d.NumRows(), d.Dirty)
	}
	if d.Syntax() == nil || d.Syntax().Name != "C" {
		t.Fatalf("syntax = %v, want C", d.Syntax())
	}
}

func TestOpenAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\ngamma gamma gamma\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.NumRows() != 3 {
		t.Fatalf("rows = %d, want 3", d.NumRows())
	}
	if d.Dirty != 0 {
		t.Fatalf("Dirty = %d after open", d.Dirty)
	}
	d.DeleteRow(2)
	if d.Dirty == 0 {
		t.Fatalf("Dirty not bumped by DeleteRow")
	}
	n, err := d.Save()
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != len("alpha\nbeta\n") {
		t.Fatalf("Save wrote %d bytes", n)
	}
	if d.Dirty != 0 {
		t.Fatalf("Dirty = %d after save", d.Dirty)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "alpha\nbeta\n" {
		t.Fatalf("file = %q, want truncated content", data)
	}
}

func TestSaveFailure(t *testing.T) {
	d := New(filepath.Join(t.TempDir(), "missing", "dir", "f.txt"), nil)
	if err := d.InsertRow(0, []byte("x")); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if _, err := d.Save(); err == nil {
		t.Fatalf("Save into missing directory succeeded")
	}
	if d.Dirty == 0 {
		t.Fatalf("failed save cleared Dirty")
	}
}
