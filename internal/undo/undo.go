// Package undo keeps the edit history as batches of byte-level records and
// replays them against a Target.
package undo

// Position is a cursor location in the document.
type Position struct {
	Row int
	Col int
}

// Target is what the log replays records against. InsertByte leaves the
// cursor after the inserted byte (a '\n' splits the row); DeleteForward
// removes the byte under the cursor (joining rows at end of line) and
// leaves the cursor in place.
type Target interface {
	MoveTo(p Position)
	InsertByte(c byte) error
	DeleteForward() error
}

// Record is one byte-level edit. Pos is always the edit point: the cursor
// before an insert, or the cursor after a delete.
type Record interface {
	undo(t Target) error
	redo(t Target) error
}

// Insert records c typed at Pos.
type Insert struct {
	Char byte
	Pos  Position
}

// DeleteLeft records c removed before the cursor; the cursor ended at Pos.
type DeleteLeft struct {
	Char byte
	Pos  Position
}

// DeleteRight records c removed under the cursor at Pos.
type DeleteRight struct {
	Char byte
	Pos  Position
}

func (r Insert) undo(t Target) error {
	t.MoveTo(r.Pos)
	return t.DeleteForward()
}

func (r Insert) redo(t Target) error {
	t.MoveTo(r.Pos)
	return t.InsertByte(r.Char)
}

func (r DeleteLeft) undo(t Target) error {
	t.MoveTo(r.Pos)
	return t.InsertByte(r.Char)
}

func (r DeleteLeft) redo(t Target) error {
	t.MoveTo(r.Pos)
	return t.DeleteForward()
}

func (r DeleteRight) undo(t Target) error {
	t.MoveTo(r.Pos)
	if err := t.InsertByte(r.Char); err != nil {
		return err
	}
	t.MoveTo(r.Pos)
	return nil
}

func (r DeleteRight) redo(t Target) error {
	t.MoveTo(r.Pos)
	return t.DeleteForward()
}

// Batch is one undoable unit.
type Batch []Record

// Log is the linear history. Batches before next can be undone, batches
// from next on can be redone.
type Log struct {
	batches []Batch
	next    int
}

// Record appends b, discarding anything that could still be redone.
func (l *Log) Record(b Batch) {
	if len(b) == 0 {
		return
	}
	l.batches = append(l.batches[:l.next], b)
	l.next++
}

// Undo reverts the most recent batch, replaying its records in reverse.
// It reports false when there is nothing to undo.
func (l *Log) Undo(t Target) (bool, error) {
	if l.next == 0 {
		return false, nil
	}
	l.next--
	b := l.batches[l.next]
	for i := len(b) - 1; i >= 0; i-- {
		if err := b[i].undo(t); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Redo re-applies the batch at next in recorded order.
func (l *Log) Redo(t Target) (bool, error) {
	if l.next == len(l.batches) {
		return false, nil
	}
	b := l.batches[l.next]
	for _, r := range b {
		if err := r.redo(t); err != nil {
			return true, err
		}
	}
	l.next++
	return true, nil
}

func (l *Log) CanUndo() bool { return l.next > 0 }
func (l *Log) CanRedo() bool { return l.next < len(l.batches) }
func (l *Log) Len() int { return len(l.batches) }
func (l *Log) Next() int { return l.next }

// Reset drops the whole history.
func (l *Log) Reset() {
	l.batches = nil
	l.next = 0
}
