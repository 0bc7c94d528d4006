// Package editor is the edit controller: it owns the document, the cursor
// and viewport, the undo log and the modal key dispatch.
package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/kobzarvs/texed/internal/buffer"
	"github.com/kobzarvs/texed/internal/config"
	"github.com/kobzarvs/texed/internal/logger"
	"github.com/kobzarvs/texed/internal/screen"
	"github.com/kobzarvs/texed/internal/terminal"
	"github.com/kobzarvs/texed/internal/undo"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeSearch:
		return "SEARCH"
	}
	return "NORMAL"
}

const (
	actionMoveLeft    = "move_left"
	actionMoveRight   = "move_right"
	actionMoveUp      = "move_up"
	actionMoveDown    = "move_down"
	actionWordLeft    = "word_left"
	actionWordRight   = "word_right"
	actionScrollUp    = "scroll_up"
	actionScrollDown  = "scroll_down"
	actionLineStart   = "line_start"
	actionLineEnd     = "line_end"
	actionPageUp      = "page_up"
	actionPageDown    = "page_down"
	actionEnterInsert = "enter_insert"
	actionEnterNormal = "enter_normal"
	actionAppend      = "append"
	actionNewline     = "newline"
	actionBackspace   = "backspace"
	actionDeleteChar  = "delete_char"
	actionUndo        = "undo"
	actionRedo        = "redo"
	actionSearch      = "search"
	actionYankLine    = "yank_line"
	actionPaste       = "paste"
	actionSave        = "save"
	actionQuit        = "quit"
)

// Clipboard is where yank stores and paste reads text.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

type keymapSet struct {
	normal map[string]string
	insert map[string]string
}

type Editor struct {
	doc  *buffer.Document
	mode Mode

	keymap keymapSet

	// cy and cx are the cursor in document coordinates; cx is a content
	// column. rowoff is a row index, coloff a rendered column.
	cy, cx         int
	rowoff, coloff int
	screenRows     int
	screenCols     int

	history undo.Log
	clip    Clipboard
	palette *screen.Palette

	// rowBatch is the history index of the batch that created the first
	// row of an empty document, -1 if none.
	rowBatch int

	quitTimes int
	quitLeft  int

	msg        string
	msgTime    time.Time
	msgTimeout time.Duration
	now        func() time.Time

	fileType string
	branch   string

	search searchState

	// OnSave runs after the document was written successfully.
	OnSave func(doc *buffer.Document)

	actionHook func(action string)
}

func New(cfg config.Config, doc *buffer.Document, clip Clipboard) *Editor {
	normal := make(map[string]string, len(cfg.Keymap.Normal))
	for k, v := range cfg.Keymap.Normal {
		normal[k] = v
	}
	insert := make(map[string]string, len(cfg.Keymap.Insert))
	for k, v := range cfg.Keymap.Insert {
		insert[k] = v
	}
	quitTimes := cfg.Editor.QuitTimes
	if quitTimes < 1 {
		quitTimes = 1
	}
	return &Editor{
		doc:        doc,
		mode:       ModeNormal,
		keymap:     keymapSet{normal: normal, insert: insert},
		screenRows: 22,
		screenCols: 80,
		rowBatch:   -1,
		clip:       clip,
		palette:    screen.NewPalette(cfg.Theme.Colors()),
		quitTimes:  quitTimes,
		quitLeft:   quitTimes,
		msgTimeout: cfg.Editor.MessageDuration(),
		now:        time.Now,
		search:     searchState{lastMatch: -1, savedRow: -1},
	}
}

func (e *Editor) Document() *buffer.Document { return e.doc }
func (e *Editor) Mode() Mode { return e.mode }

// Cursor returns the cursor in document coordinates.
func (e *Editor) Cursor() undo.Position {
	return undo.Position{Row: e.cy, Col: e.cx}
}

func (e *Editor) SetFileType(ft string) { e.fileType = ft }
func (e *Editor) SetBranch(branch string) { e.branch = branch }

// SetSize sets the text area from the terminal size, keeping two rows for
// the status bar and the message line.
func (e *Editor) SetSize(rows, cols int) {
	e.screenRows = max(rows-2, 1)
	e.screenCols = max(cols, 1)
	e.scroll()
}

// SetMessage shows a status message; it expires after the configured
// message timeout.
func (e *Editor) SetMessage(format string, args ...any) {
	e.msg = fmt.Sprintf(format, args...)
	e.msgTime = e.now()
}

// Message returns the current status message, expired or not.
func (e *Editor) Message() string { return e.msg }

// HandleKey dispatches one keystroke. quit is true once the user asked to
// leave; err is only returned for failures that end the session.
func (e *Editor) HandleKey(k terminal.Key) (quit bool, err error) {
	if k == terminal.KeyNone {
		return false, nil
	}
	switch e.mode {
	case ModeSearch:
		err = e.handleSearch(k)
	case ModeInsert:
		quit, err = e.handleMapped(k, e.keymap.insert)
	default:
		quit, err = e.handleMapped(k, e.keymap.normal)
	}
	if err != nil {
		if errors.Is(err, buffer.ErrOverflow) {
			return false, err
		}
		logger.Debug("edit ignored", "key", k.String(), "err", err)
	}
	e.scroll()
	return quit, nil
}

func (e *Editor) handleMapped(k terminal.Key, keymap map[string]string) (bool, error) {
	action, ok := keymap[k.String()]
	if action != actionQuit {
		e.quitLeft = e.quitTimes
	}
	if !ok {
		if e.mode == ModeInsert && insertable(k) {
			return false, e.insertChar(byte(k))
		}
		return false, nil
	}
	return e.execAction(action)
}

func insertable(k terminal.Key) bool {
	return k.IsPrintable() || k == terminal.KeyTab || k >= 128 && k < 256
}

func (e *Editor) execAction(action string) (bool, error) {
	if e.actionHook != nil {
		e.actionHook(action)
	}
	switch action {
	case actionMoveLeft:
		e.moveLeft()
	case actionMoveRight:
		e.moveRight()
	case actionMoveUp:
		e.moveUp()
	case actionMoveDown:
		e.moveDown()
	case actionWordLeft:
		e.moveWordLeft()
	case actionWordRight:
		e.moveWordRight()
	case actionScrollUp:
		e.scrollViewUp()
	case actionScrollDown:
		e.scrollViewDown()
	case actionLineStart:
		e.cx = 0
	case actionLineEnd:
		e.moveLineEnd()
	case actionPageUp:
		e.pageUp()
	case actionPageDown:
		e.pageDown()
	case actionEnterInsert:
		e.mode = ModeInsert
	case actionEnterNormal:
		e.mode = ModeNormal
	case actionAppend:
		if e.cx < e.rowLen(e.cy) {
			e.cx++
		}
		e.mode = ModeInsert
	case actionNewline:
		return false, e.insertNewline()
	case actionBackspace:
		return false, e.deleteLeft()
	case actionDeleteChar:
		return false, e.deleteRight()
	case actionUndo:
		return false, e.Undo()
	case actionRedo:
		return false, e.Redo()
	case actionSearch:
		e.startSearch()
	case actionYankLine:
		e.yankLine()
	case actionPaste:
		return false, e.paste()
	case actionSave:
		e.Save()
	case actionQuit:
		return e.quit(), nil
	default:
		logger.Debug("unknown action", "action", action)
	}
	return false, nil
}

func (e *Editor) quit() bool {
	if e.doc.Dirty == 0 {
		return true
	}
	e.quitLeft--
	if e.quitLeft <= 0 {
		return true
	}
	e.SetMessage("WARNING!!! File has unsaved changes. Press quit %d more times to quit.", e.quitLeft)
	return false
}

func (e *Editor) Undo() error {
	ok, err := e.history.Undo(e)
	if !ok {
		e.SetMessage("Already at oldest change")
	}
	if err != nil {
		return err
	}
	if ok && e.history.Next() == e.rowBatch && e.doc.NumRows() == 1 && e.rowLen(0) == 0 {
		e.doc.DeleteRow(0)
		e.cy, e.cx = 0, 0
	}
	return nil
}

func (e *Editor) Redo() error {
	ok, err := e.history.Redo(e)
	if !ok {
		e.SetMessage("Already at newest change")
	}
	return err
}

// Save writes the document and reports the outcome on the message line.
func (e *Editor) Save() {
	n, err := e.doc.Save()
	if err != nil {
		logger.Warn("save failed", "file", e.doc.Filename, "err", err)
		e.SetMessage("Can't save! I/O error: %s", err)
		return
	}
	logger.Info("saved", "file", e.doc.Filename, "bytes", n)
	e.SetMessage("%d bytes written on disk", n)
	if e.OnSave != nil {
		e.OnSave(e.doc)
	}
}

func (e *Editor) yankLine() {
	r := e.doc.Row(e.cy)
	if r == nil {
		return
	}
	if err := e.clip.Copy(r.String() + "\n"); err != nil {
		e.SetMessage("Can't copy: %s", err)
		return
	}
	e.SetMessage("1 line yanked")
}

// View describes the current frame for the screen compositor.
func (e *Editor) View() *screen.View {
	return &screen.View{
		Doc:            e.doc,
		Rows:           e.screenRows,
		Cols:           e.screenCols,
		RowOff:         e.rowoff,
		ColOff:         e.coloff,
		CursorRow:      e.cy,
		CursorCol:      e.cx,
		Mode:           e.mode.String(),
		FileType:       e.fileType,
		Branch:         e.branch,
		Message:        e.msg,
		MessageTime:    e.msgTime,
		MessageTimeout: e.msgTimeout,
		Now:            e.now(),
		Palette:        e.palette,
	}
}
