package terminal

import "fmt"

// Key is one decoded keystroke. Plain bytes keep their value; special keys
// live above the byte range.
type Key int

const (
	KeyNone Key = -1

	KeyCtrlH     Key = 8
	KeyTab       Key = 9
	KeyEnter     Key = 13
	KeyEsc       Key = 27
	KeyBackspace Key = 127
)

const (
	KeyArrowLeft Key = iota + 1000
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyCtrlArrowLeft
	KeyCtrlArrowRight
	KeyCtrlArrowUp
	KeyCtrlArrowDown
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
)

// Ctrl returns the key produced by holding control with the letter c.
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// IsPrintable reports whether k is a plain printable byte.
func (k Key) IsPrintable() bool {
	return k >= 32 && k < 127
}

var specialNames = map[Key]string{
	KeyArrowLeft:      "left",
	KeyArrowRight:     "right",
	KeyArrowUp:        "up",
	KeyArrowDown:      "down",
	KeyCtrlArrowLeft:  "ctrl+left",
	KeyCtrlArrowRight: "ctrl+right",
	KeyCtrlArrowUp:    "ctrl+up",
	KeyCtrlArrowDown:  "ctrl+down",
	KeyDelete:         "del",
	KeyHome:           "home",
	KeyEnd:            "end",
	KeyPageUp:         "pgup",
	KeyPageDown:       "pgdn",
	KeyEnter:          "enter",
	KeyEsc:            "esc",
	KeyBackspace:      "backspace",
	KeyTab:            "tab",
	KeyCtrlH:          "ctrl+h",
}

// String returns the name used in keymaps: "ctrl+s", "left", "space", "x".
func (k Key) String() string {
	if name, ok := specialNames[k]; ok {
		return name
	}
	switch {
	case k == KeyNone:
		return "none"
	case k == ' ':
		return "space"
	case k >= 1 && k <= 26:
		return "ctrl+" + string(rune('a'+k-1))
	case k == 0:
		return "ctrl+space"
	case k < 32:
		return fmt.Sprintf("ctrl+%c", rune(k+64))
	case k < 256:
		return string(rune(k))
	}
	return fmt.Sprintf("key(%d)", int(k))
}
