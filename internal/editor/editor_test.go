package editor

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/kobzarvs/texed/internal/buffer"
	"github.com/kobzarvs/texed/internal/config"
	"github.com/kobzarvs/texed/internal/screen"
	"github.com/kobzarvs/texed/internal/syntax"
	"github.com/kobzarvs/texed/internal/terminal"
	"github.com/kobzarvs/texed/internal/undo"
)

type memClipboard struct {
	text string
}

func (c *memClipboard) Copy(text string) error {
	c.text = text
	return nil
}

func (c *memClipboard) Paste() (string, error) {
	return c.text, nil
}

func newTestEditor(t *testing.T, lines ...string) *Editor {
	t.Helper()
	doc := buffer.New(filepath.Join(t.TempDir(), "test.txt"), nil)
	for i, l := range lines {
		if err := doc.InsertRow(i, []byte(l)); err != nil {
			t.Fatalf("InsertRow error: %v", err)
		}
	}
	doc.Dirty = 0
	e := New(config.Default(), doc, &memClipboard{})
	e.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	e.SetSize(12, 40)
	return e
}

func keyFor(t *testing.T, name string) terminal.Key {
	t.Helper()
	for k := terminal.Key(0); k < 256; k++ {
		if k.String() == name {
			return k
		}
	}
	for k := terminal.KeyArrowLeft; k <= terminal.KeyPageDown; k++ {
		if k.String() == name {
			return k
		}
	}
	t.Fatalf("no key named %q", name)
	return terminal.KeyNone
}

func press(t *testing.T, e *Editor, names ...string) bool {
	t.Helper()
	quit := false
	for _, name := range names {
		q, err := e.HandleKey(keyFor(t, name))
		if err != nil {
			t.Fatalf("HandleKey(%q) error: %v", name, err)
		}
		quit = q
	}
	return quit
}

func typeText(t *testing.T, e *Editor, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		if _, err := e.HandleKey(terminal.Key(s[i])); err != nil {
			t.Fatalf("HandleKey(%q) error: %v", s[i], err)
		}
	}
}

func lines(e *Editor) []string {
	out := make([]string, e.doc.NumRows())
	for i := range out {
		out[i] = e.doc.Row(i).String()
	}
	return out
}

func checkLines(t *testing.T, e *Editor, want ...string) {
	t.Helper()
	got := lines(e)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("lines = %q, want %q", got, want)
	}
}

func checkCursor(t *testing.T, e *Editor, row, col int) {
	t.Helper()
	if got := e.Cursor(); got != (undo.Position{Row: row, Col: col}) {
		t.Fatalf("cursor = %+v, want (%d,%d)", got, row, col)
	}
}

func TestInsertUndoRedo(t *testing.T) {
	e := newTestEditor(t, "")
	press(t, e, "i")
	typeText(t, e, "ab")
	checkLines(t, e, "ab")
	press(t, e, "esc", "u", "u")
	checkLines(t, e, "")
	checkCursor(t, e, 0, 0)
	press(t, e, "U", "ctrl+r")
	checkLines(t, e, "ab")
	checkCursor(t, e, 0, 2)
}

func TestInsertIntoEmptyDocument(t *testing.T) {
	e := newTestEditor(t)
	press(t, e, "i")
	typeText(t, e, "x")
	checkLines(t, e, "x")
	if e.doc.Dirty == 0 {
		t.Fatalf("document not dirty after insert")
	}
}

func TestUndoFirstInsertEmptiesDocument(t *testing.T) {
	e := newTestEditor(t)
	press(t, e, "i")
	typeText(t, e, "ab")
	press(t, e, "esc", "u", "u")
	if n := e.doc.NumRows(); n != 0 {
		t.Fatalf("NumRows = %d, want 0", n)
	}
	if got := e.doc.FlatText(); got != "" {
		t.Fatalf("FlatText = %q, want empty", got)
	}
	checkCursor(t, e, 0, 0)
	press(t, e, "U", "U")
	checkLines(t, e, "ab")
	press(t, e, "u", "u")
	if got := e.doc.FlatText(); got != "" {
		t.Fatalf("FlatText after second undo = %q, want empty", got)
	}
}

func TestUndoPasteIntoEmptyDocument(t *testing.T) {
	e := newTestEditor(t)
	e.clip.(*memClipboard).text = "x\ny"
	press(t, e, "p")
	checkLines(t, e, "x", "y")
	press(t, e, "u")
	if n := e.doc.NumRows(); n != 0 {
		t.Fatalf("NumRows = %d, want 0", n)
	}
}

func TestUndoKeepsExistingEmptyRow(t *testing.T) {
	e := newTestEditor(t, "")
	press(t, e, "i")
	typeText(t, e, "a")
	press(t, e, "esc", "u")
	if n := e.doc.NumRows(); n != 1 {
		t.Fatalf("NumRows = %d, want 1", n)
	}
	checkLines(t, e, "")
}

func TestNewlineSplitJoin(t *testing.T) {
	e := newTestEditor(t, "hello")
	press(t, e, "l", "l", "i", "enter")
	checkLines(t, e, "he", "llo")
	checkCursor(t, e, 1, 0)
	press(t, e, "backspace")
	checkLines(t, e, "hello")
	checkCursor(t, e, 0, 2)
}

func TestUndoNewline(t *testing.T) {
	e := newTestEditor(t, "hello")
	press(t, e, "l", "l", "i", "enter", "esc", "u")
	checkLines(t, e, "hello")
	checkCursor(t, e, 0, 2)
	press(t, e, "U")
	checkLines(t, e, "he", "llo")
	checkCursor(t, e, 1, 0)
}

func TestDeleteRightUndo(t *testing.T) {
	e := newTestEditor(t, "abc")
	press(t, e, "l", "x")
	checkLines(t, e, "ac")
	checkCursor(t, e, 0, 1)
	press(t, e, "u")
	checkLines(t, e, "abc")
	checkCursor(t, e, 0, 1)
}

func TestDeleteRightJoinsRows(t *testing.T) {
	e := newTestEditor(t, "ab", "cd")
	press(t, e, "$", "x")
	checkLines(t, e, "abcd")
	press(t, e, "u")
	checkLines(t, e, "ab", "cd")
	checkCursor(t, e, 0, 2)
}

func TestNewEditTruncatesRedo(t *testing.T) {
	e := newTestEditor(t, "")
	press(t, e, "i")
	typeText(t, e, "ab")
	press(t, e, "esc", "u")
	checkLines(t, e, "a")
	press(t, e, "i")
	typeText(t, e, "c")
	press(t, e, "esc", "U")
	checkLines(t, e, "ac")
	if e.Message() != "Already at newest change" {
		t.Fatalf("message = %q", e.Message())
	}
}

type snapshot struct {
	text   string
	cursor undo.Position
}

func snap(e *Editor) snapshot {
	return snapshot{text: string(e.doc.FlatText()), cursor: e.Cursor()}
}

func TestUndoRedoInverseLaw(t *testing.T) {
	e := newTestEditor(t, "x")
	press(t, e, "$", "i")

	var before []snapshot
	edit := func(name string) {
		before = append(before, snap(e))
		press(t, e, name)
	}
	edit("a")
	edit("b")
	edit("enter")
	edit("c")
	edit("backspace")
	edit("backspace")
	edit("tab")
	press(t, e, "left", "left")
	edit("del")
	after := snap(e)

	press(t, e, "esc")
	for i := len(before) - 1; i >= 0; i-- {
		press(t, e, "u")
		if got := snap(e); got != before[i] {
			t.Fatalf("after undo %d: %+v, want %+v", len(before)-i, got, before[i])
		}
	}
	for range before {
		press(t, e, "U")
	}
	if got := snap(e); got != after {
		t.Fatalf("after redo all: %+v, want %+v", got, after)
	}
}

func TestPasteIsOneBatch(t *testing.T) {
	e := newTestEditor(t, "ab")
	e.clip.(*memClipboard).text = "x\r\ny"
	press(t, e, "l", "p")
	checkLines(t, e, "ax", "yb")
	checkCursor(t, e, 1, 1)
	if e.history.Len() != 1 {
		t.Fatalf("history length = %d, want 1", e.history.Len())
	}
	press(t, e, "u")
	checkLines(t, e, "ab")
	checkCursor(t, e, 0, 1)
}

func TestYankLinePaste(t *testing.T) {
	e := newTestEditor(t, "one", "two")
	press(t, e, "y", "j", "0", "p")
	checkLines(t, e, "one", "one", "two")
}

func TestWordJumps(t *testing.T) {
	e := newTestEditor(t, "foo bar, baz", "next")
	for _, want := range []int{4, 9, 12} {
		press(t, e, "ctrl+right")
		checkCursor(t, e, 0, want)
	}
	press(t, e, "ctrl+right")
	checkCursor(t, e, 1, 0)
	press(t, e, "ctrl+left")
	checkCursor(t, e, 0, 12)
	for _, want := range []int{9, 4, 0} {
		press(t, e, "ctrl+left")
		checkCursor(t, e, 0, want)
	}
}

func TestMovesWrapAtLineEdges(t *testing.T) {
	e := newTestEditor(t, "ab", "cd")
	press(t, e, "right", "right", "right")
	checkCursor(t, e, 1, 0)
	press(t, e, "left")
	checkCursor(t, e, 0, 2)
	press(t, e, "h", "h", "h")
	checkCursor(t, e, 0, 0)
}

func TestVerticalMoveClampsColumn(t *testing.T) {
	e := newTestEditor(t, "long line", "ab", "")
	press(t, e, "$", "j")
	checkCursor(t, e, 1, 2)
	press(t, e, "j", "j", "j")
	checkCursor(t, e, 2, 0)
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	rows := make([]string, 30)
	for i := range rows {
		rows[i] = strings.Repeat("x", i)
	}
	e := newTestEditor(t, rows...)
	for range 15 {
		press(t, e, "j")
	}
	v := e.View()
	if v.RowOff != 6 {
		t.Fatalf("rowoff = %d, want 6", v.RowOff)
	}
	press(t, e, "ctrl+down")
	if v := e.View(); v.RowOff != 7 || v.CursorRow != 15 {
		t.Fatalf("after scroll down rowoff/row = %d/%d, want 7/15", v.RowOff, v.CursorRow)
	}
	press(t, e, "pgdn")
	if v := e.View(); v.CursorRow < v.RowOff || v.CursorRow >= v.RowOff+v.Rows {
		t.Fatalf("cursor row %d outside viewport at %d", v.CursorRow, v.RowOff)
	}
}

func TestHorizontalScroll(t *testing.T) {
	e := newTestEditor(t, strings.Repeat("a", 50))
	press(t, e, "$")
	if v := e.View(); v.ColOff != 11 {
		t.Fatalf("coloff = %d, want 11", v.ColOff)
	}
	press(t, e, "0")
	if v := e.View(); v.ColOff != 0 {
		t.Fatalf("coloff = %d, want 0", v.ColOff)
	}
}

func TestSearchWraps(t *testing.T) {
	e := newTestEditor(t, "foo", "bar", "foo")
	press(t, e, "/")
	typeText(t, e, "foo")
	checkCursor(t, e, 0, 0)
	if e.Message() != "Search: foo (Use ESC/Arrows/Enter)" {
		t.Fatalf("message = %q", e.Message())
	}
	press(t, e, "right")
	checkCursor(t, e, 2, 0)
	press(t, e, "right")
	checkCursor(t, e, 0, 0)
	press(t, e, "left")
	checkCursor(t, e, 2, 0)
	press(t, e, "enter")
	checkCursor(t, e, 2, 0)
	if e.Mode() != ModeNormal {
		t.Fatalf("mode = %v, want NORMAL", e.Mode())
	}
}

func hasMatch(r *buffer.Row) bool {
	for _, c := range r.Highlight() {
		if c == syntax.Match {
			return true
		}
	}
	return false
}

func TestSearchHighlightRestored(t *testing.T) {
	e := newTestEditor(t, "xx foo", "foo")
	press(t, e, "ctrl+f")
	typeText(t, e, "foo")
	r0 := e.doc.Row(0)
	if got := r0.Highlight()[3]; got != syntax.Match {
		t.Fatalf("match cell class = %v, want Match", got)
	}
	if r0.Highlight()[2] == syntax.Match {
		t.Fatalf("cell before the match painted")
	}
	press(t, e, "down")
	if hasMatch(r0) {
		t.Fatalf("row 0 keeps match highlight after next")
	}
	if !hasMatch(e.doc.Row(1)) {
		t.Fatalf("row 1 not highlighted")
	}
	press(t, e, "esc")
	if hasMatch(e.doc.Row(1)) {
		t.Fatalf("row 1 keeps match highlight after exit")
	}
}

func TestSearchEscRestoresCursor(t *testing.T) {
	e := newTestEditor(t, "foo", "bar", "baz foo")
	press(t, e, "j", "l", "/")
	typeText(t, e, "baz")
	checkCursor(t, e, 2, 0)
	press(t, e, "esc")
	checkCursor(t, e, 1, 1)
	if v := e.View(); v.RowOff != 0 {
		t.Fatalf("rowoff = %d, want 0", v.RowOff)
	}
}

func TestSearchBackspaceRestartsFromTop(t *testing.T) {
	e := newTestEditor(t, "ab", "abc", "abd")
	press(t, e, "/")
	typeText(t, e, "abd")
	checkCursor(t, e, 2, 0)
	press(t, e, "backspace")
	if e.Query() != "ab" {
		t.Fatalf("query = %q, want %q", e.Query(), "ab")
	}
	checkCursor(t, e, 0, 0)
}

func TestSearchScrollsMatchIntoView(t *testing.T) {
	e := newTestEditor(t, strings.Repeat(" ", 60)+"needle")
	press(t, e, "/")
	typeText(t, e, "needle")
	v := e.View()
	if v.CursorCol != 60 {
		t.Fatalf("cursor col = %d, want 60", v.CursorCol)
	}
	if v.ColOff != 26 {
		t.Fatalf("coloff = %d, want 26", v.ColOff)
	}
}

func TestSearchFromInsertReturnsToInsert(t *testing.T) {
	e := newTestEditor(t, "abc")
	press(t, e, "i", "ctrl+f")
	if e.Mode() != ModeSearch {
		t.Fatalf("mode = %v, want SEARCH", e.Mode())
	}
	press(t, e, "esc")
	if e.Mode() != ModeInsert {
		t.Fatalf("mode = %v, want INSERT", e.Mode())
	}
}

func TestQuitConfirmation(t *testing.T) {
	e := newTestEditor(t, "abc")
	if !press(t, e, "ctrl+q") {
		t.Fatalf("clean document did not quit")
	}

	e = newTestEditor(t, "abc")
	press(t, e, "x")
	if press(t, e, "ctrl+q") || press(t, e, "ctrl+q") {
		t.Fatalf("dirty document quit too early")
	}
	if !strings.Contains(e.Message(), "1 more times") {
		t.Fatalf("message = %q", e.Message())
	}
	press(t, e, "l")
	if press(t, e, "ctrl+q") {
		t.Fatalf("counter not reset by another key")
	}
	press(t, e, "ctrl+q")
	if !press(t, e, "ctrl+q") {
		t.Fatalf("dirty document did not quit after confirmation")
	}
}

func TestSave(t *testing.T) {
	e := newTestEditor(t, "abc")
	var saved *buffer.Document
	e.OnSave = func(doc *buffer.Document) { saved = doc }
	press(t, e, "x", "ctrl+s")
	if e.Message() != "3 bytes written on disk" {
		t.Fatalf("message = %q", e.Message())
	}
	if saved != e.doc {
		t.Fatalf("OnSave not called")
	}
	data, err := os.ReadFile(e.doc.Filename)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "bc\n" {
		t.Fatalf("file = %q, want %q", data, "bc\n")
	}
	if e.doc.Dirty != 0 {
		t.Fatalf("dirty = %d after save", e.doc.Dirty)
	}
}

func TestSaveFailureReported(t *testing.T) {
	e := newTestEditor(t, "abc")
	e.doc.Filename = filepath.Join(t.TempDir(), "missing", "f.txt")
	press(t, e, "ctrl+s")
	if !strings.HasPrefix(e.Message(), "Can't save! I/O error: ") {
		t.Fatalf("message = %q", e.Message())
	}
}

func TestViewComposes(t *testing.T) {
	e := newTestEditor(t, "hello")
	e.doc.Filename = "a.txt"
	e.SetSize(12, 80)
	e.SetFileType("Text")
	e.SetBranch("main")
	press(t, e, "i")
	frame := screen.Compose(e.View())
	for _, want := range []string{"--INSERT--", "[main]", "Text | 1/1", "hello"} {
		if !bytes.Contains(frame, []byte(want)) {
			t.Fatalf("frame missing %q: %q", want, frame)
		}
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestDefaultHotkeysTriggerActions(t *testing.T) {
	cfg := config.Default()
	for _, tc := range []struct {
		mode   Mode
		keymap map[string]string
	}{
		{ModeNormal, cfg.Keymap.Normal},
		{ModeInsert, cfg.Keymap.Insert},
	} {
		for _, key := range sortedKeys(tc.keymap) {
			t.Run(tc.mode.String()+"/"+key, func(t *testing.T) {
				e := newTestEditor(t, "one", "two", "three")
				e.mode = tc.mode
				var got []string
				e.actionHook = func(action string) {
					got = append(got, action)
				}
				press(t, e, key)
				if len(got) != 1 {
					t.Fatalf("actions = %v, want exactly one", got)
				}
				if got[0] != tc.keymap[key] {
					t.Fatalf("action = %q, want %q", got[0], tc.keymap[key])
				}
			})
		}
	}
}

func TestUserKeymapOverride(t *testing.T) {
	cfg := config.Default()
	cfg.Keymap.Normal["q"] = "quit"
	e := New(cfg, buffer.New("", nil), &memClipboard{})
	if !press(t, e, "q") {
		t.Fatalf("remapped key did not quit")
	}
}
