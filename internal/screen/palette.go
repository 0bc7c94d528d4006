package screen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/texed/internal/syntax"
)

const numClasses = int(syntax.Match) + 1

// Palette maps highlight classes to SGR foreground sequences. An empty
// sequence means the terminal's default foreground.
type Palette struct {
	seqs [numClasses]string
}

var defaultColors = map[syntax.Class]string{
	syntax.Comment:   "teal",
	syntax.MLComment: "teal",
	syntax.Keyword1:  "olive",
	syntax.Keyword2:  "green",
	syntax.String:    "purple",
	syntax.Number:    "maroon",
	syntax.Match:     "navy",
}

func DefaultPalette() *Palette {
	return NewPalette(nil)
}

// NewPalette builds a palette from color names ("teal", "#ff8800",
// "default"). Classes missing from colors keep their default color.
func NewPalette(colors map[syntax.Class]string) *Palette {
	p := &Palette{}
	for c := syntax.Normal; int(c) < numClasses; c++ {
		if c == syntax.NonPrint {
			continue
		}
		fallback := tcell.ColorDefault
		if name, ok := defaultColors[c]; ok {
			fallback = tcell.GetColor(name)
		}
		p.seqs[c] = sgr(parseColor(colors[c], fallback))
	}
	return p
}

// Seq returns the escape sequence that selects the color of class c.
func (p *Palette) Seq(c syntax.Class) string {
	if int(c) >= numClasses {
		return ""
	}
	return p.seqs[c]
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// sgr renders c as an SGR foreground sequence: the 16 basic colors use
// 30-37 and 90-97, the rest of the palette 38;5;n and true color 38;2.
func sgr(c tcell.Color) string {
	if c == tcell.ColorDefault {
		return ""
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	}
	idx := paletteIndex(c)
	switch {
	case idx < 0:
		return ""
	case idx < 8:
		return fmt.Sprintf("\x1b[%dm", 30+idx)
	case idx < 16:
		return fmt.Sprintf("\x1b[%dm", 90+idx-8)
	}
	return fmt.Sprintf("\x1b[38;5;%dm", idx)
}

func paletteIndex(c tcell.Color) int {
	for i := 0; i < 256; i++ {
		if tcell.PaletteColor(i) == c {
			return i
		}
	}
	return -1
}
