//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Session owns a terminal switched to raw mode. Reads time out after
// roughly 100 ms so the caller can poll other work between keys.
type Session struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
	state *term.State
	dec   *Decoder

	closeOnce sync.Once
	closeErr  error
}

// Open switches in to raw mode. Close must be called on every exit path to
// give the user their terminal back.
func Open(in, out *os.File) (*Session, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, &Error{Op: "enter raw mode", Err: ErrNotTerminal}
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, &Error{Op: "enter raw mode", Err: err}
	}
	if err := setReadTimeout(fd, 0, 1); err != nil {
		_ = term.Restore(fd, state)
		return nil, &Error{Op: "set read timeout", Err: err}
	}
	s := &Session{
		in:    in,
		out:   out,
		inFd:  fd,
		outFd: int(out.Fd()),
		state: state,
	}
	s.dec = NewDecoder(fdReader(fd))
	return s, nil
}

// Close restores the terminal attributes saved by Open. Only the first call
// does anything.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if err := term.Restore(s.inFd, s.state); err != nil {
			s.closeErr = &Error{Op: "leave raw mode", Err: err}
		}
	})
	return s.closeErr
}

// ReadKey blocks for at most one read timeout and returns KeyNone when
// nothing was typed.
func (s *Session) ReadKey() (Key, error) {
	return s.dec.ReadKey()
}

// WindowSize returns the terminal size, falling back to the cursor
// position query when the ioctl is unavailable.
func (s *Session) WindowSize() (rows, cols int, err error) {
	cols, rows, err = term.GetSize(s.outFd)
	if err == nil && cols > 0 {
		return rows, cols, nil
	}
	rows, cols, err = QuerySizeByCursor(s)
	if err != nil {
		return 0, 0, &Error{Op: "window size", Err: err}
	}
	return rows, cols, nil
}

func (s *Session) Read(p []byte) (int, error) {
	return fdReader(s.inFd).Read(p)
}

func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

type fdReader int

func (r fdReader) Read(p []byte) (int, error) {
	n, err := unix.Read(int(r), p)
	if err == unix.EINTR || err == unix.EAGAIN {
		return 0, nil
	}
	if n < 0 {
		n = 0
	}
	return n, err
}

func setReadTimeout(fd int, vmin, vtime uint8) error {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return err
	}
	t.Cc[unix.VMIN] = vmin
	t.Cc[unix.VTIME] = vtime
	return unix.IoctlSetTermios(fd, ioctlSetTermios, t)
}
