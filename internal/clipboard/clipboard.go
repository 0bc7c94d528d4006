// Package clipboard backs yank and paste with the system clipboard, keeping
// an in-process register for when no clipboard tool is available.
package clipboard

import (
	"github.com/atotto/clipboard"

	"github.com/kobzarvs/texed/internal/logger"
)

type Clipboard struct {
	system   bool
	register string
}

// New returns a clipboard. With system false, or on a machine without a
// clipboard utility, only the internal register is used.
func New(system bool) *Clipboard {
	if system && clipboard.Unsupported {
		logger.Info("system clipboard unsupported, using internal register")
		system = false
	}
	return &Clipboard{system: system}
}

func (c *Clipboard) Copy(text string) error {
	c.register = text
	if !c.system {
		return nil
	}
	if err := clipboard.WriteAll(text); err != nil {
		logger.Warn("clipboard write failed", "err", err)
		return err
	}
	return nil
}

// Paste prefers the system clipboard and falls back to the register when
// reading it fails or it is empty.
func (c *Clipboard) Paste() (string, error) {
	if c.system {
		text, err := clipboard.ReadAll()
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			logger.Warn("clipboard read failed", "err", err)
		}
	}
	return c.register, nil
}
