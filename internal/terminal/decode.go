package terminal

import (
	"errors"
	"io"
)

// Decoder turns the raw byte stream of a terminal in raw mode into keys.
// A read that returns no data is treated as the 100 ms raw-mode timeout.
type Decoder struct {
	r   io.Reader
	buf [1]byte
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey returns the next key, or KeyNone when nothing arrived before the
// read timed out. An escape sequence cut short by a timeout or carrying an
// unknown final byte decodes as KeyEsc.
func (d *Decoder) ReadKey() (Key, error) {
	c, ok, err := d.readByte()
	if err != nil {
		return KeyNone, err
	}
	if !ok {
		return KeyNone, nil
	}
	if c != byte(KeyEsc) {
		return Key(c), nil
	}
	return d.readEscape()
}

func (d *Decoder) readEscape() (Key, error) {
	c, ok, err := d.readByte()
	if err != nil {
		return KeyNone, err
	}
	if !ok {
		return KeyEsc, nil
	}
	switch c {
	case '[':
		return d.readCSI()
	case 'O':
		c, ok, err := d.readByte()
		if err != nil {
			return KeyNone, err
		}
		if !ok {
			return KeyEsc, nil
		}
		return letterKey(c), nil
	}
	return KeyEsc, nil
}

const maxCSIParams = 8

// readCSI consumes parameter bytes up to and including the final byte of
// ESC [ ... so that unknown sequences never leak into later keys.
func (d *Decoder) readCSI() (Key, error) {
	var params [maxCSIParams]byte
	n := 0
	overflow := false
	for {
		c, ok, err := d.readByte()
		if err != nil {
			return KeyNone, err
		}
		if !ok {
			return KeyEsc, nil
		}
		if c >= 0x30 && c <= 0x3f {
			if n == len(params) {
				overflow = true
			} else {
				params[n] = c
				n++
			}
			continue
		}
		if overflow {
			return KeyEsc, nil
		}
		return csiKey(string(params[:n]), c), nil
	}
}

func csiKey(params string, final byte) Key {
	switch {
	case params == "":
		return letterKey(final)
	case final == '~' && len(params) == 1:
		return tildeKey(params[0])
	case params == "1;5":
		switch final {
		case 'A':
			return KeyCtrlArrowUp
		case 'B':
			return KeyCtrlArrowDown
		case 'C':
			return KeyCtrlArrowRight
		case 'D':
			return KeyCtrlArrowLeft
		}
	}
	return KeyEsc
}

func tildeKey(c byte) Key {
	switch c {
	case '1', '7':
		return KeyHome
	case '3':
		return KeyDelete
	case '4', '8':
		return KeyEnd
	case '5':
		return KeyPageUp
	case '6':
		return KeyPageDown
	}
	return KeyEsc
}

func letterKey(c byte) Key {
	switch c {
	case 'A':
		return KeyArrowUp
	case 'B':
		return KeyArrowDown
	case 'C':
		return KeyArrowRight
	case 'D':
		return KeyArrowLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyEsc
}

func (d *Decoder) readByte() (byte, bool, error) {
	n, err := d.r.Read(d.buf[:])
	if n == 1 {
		return d.buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0, false, nil
	}
	return 0, false, err
}
