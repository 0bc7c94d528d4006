package terminal

import "errors"

var (
	ErrNotTerminal = errors.New("not a terminal")
	ErrNoReply     = errors.New("no cursor position reply")
	ErrBadReply    = errors.New("malformed cursor position reply")
)

// Error reports a failed terminal operation. Startup treats it as fatal.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "terminal: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
