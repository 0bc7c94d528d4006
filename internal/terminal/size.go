package terminal

import (
	"bytes"
	"fmt"
	"io"
)

// CursorPosition asks the terminal for the cursor position (ESC [ 6 n) and
// parses the ESC [ row ; col R reply. Positions are 1-based.
func CursorPosition(rw io.ReadWriter) (row, col int, err error) {
	if _, err := io.WriteString(rw, "\x1b[6n"); err != nil {
		return 0, 0, err
	}
	var reply []byte
	var b [1]byte
	for len(reply) < 32 {
		n, err := rw.Read(b[:])
		if n == 0 {
			if err != nil && err != io.EOF {
				return 0, 0, err
			}
			break
		}
		if b[0] == 'R' {
			break
		}
		reply = append(reply, b[0])
	}
	if len(reply) == 0 {
		return 0, 0, ErrNoReply
	}
	if !bytes.HasPrefix(reply, []byte("\x1b[")) {
		return 0, 0, ErrBadReply
	}
	if _, err := fmt.Sscanf(string(reply[2:]), "%d;%d", &row, &col); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadReply, reply)
	}
	return row, col, nil
}

// QuerySizeByCursor measures the terminal by pushing the cursor to the
// bottom-right corner and reading its position back. The cursor is put back
// where it was afterwards.
func QuerySizeByCursor(rw io.ReadWriter) (rows, cols int, err error) {
	origRow, origCol, err := CursorPosition(rw)
	if err != nil {
		return 0, 0, err
	}
	if _, err := io.WriteString(rw, "\x1b[999C\x1b[999B"); err != nil {
		return 0, 0, err
	}
	rows, cols, err = CursorPosition(rw)
	if err != nil {
		return 0, 0, err
	}
	if _, err := fmt.Fprintf(rw, "\x1b[%d;%dH", origRow, origCol); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}
