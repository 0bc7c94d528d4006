package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/texed/internal/syntax"
)

type Keymap struct {
	Normal map[string]string `toml:"normal"`
	Insert map[string]string `toml:"insert"`
}

type EditorOptions struct {
	QuitTimes       int  `toml:"quit-times"`
	MessageTimeout  int  `toml:"message-timeout"`
	ShowGitBranch   bool `toml:"show-git-branch"`
	SyntaxCheck     bool `toml:"syntax-check"`
	SystemClipboard bool `toml:"system-clipboard"`
}

// MessageDuration is how long a status message stays on screen.
func (o EditorOptions) MessageDuration() time.Duration {
	return time.Duration(o.MessageTimeout) * time.Second
}

// Theme holds one color per highlight class. Values are color names or
// #rrggbb; Theme names a file under theme/ loaded underneath them.
type Theme struct {
	Theme            string `toml:"theme"`
	Normal           string `toml:"normal"`
	Comment          string `toml:"comment"`
	MultilineComment string `toml:"multiline-comment"`
	Keyword1         string `toml:"keyword1"`
	Keyword2         string `toml:"keyword2"`
	String           string `toml:"string"`
	Number           string `toml:"number"`
	Match            string `toml:"match"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			QuitTimes:       3,
			MessageTimeout:  5,
			ShowGitBranch:   true,
			SyntaxCheck:     true,
			SystemClipboard: true,
		},
		Theme: Theme{
			Comment:          "teal",
			MultilineComment: "teal",
			Keyword1:         "olive",
			Keyword2:         "green",
			String:           "purple",
			Number:           "maroon",
			Match:            "navy",
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"h":          "move_left",
				"j":          "move_down",
				"k":          "move_up",
				"l":          "move_right",
				"left":       "move_left",
				"down":       "move_down",
				"up":         "move_up",
				"right":      "move_right",
				"ctrl+left":  "word_left",
				"ctrl+right": "word_right",
				"ctrl+up":    "scroll_up",
				"ctrl+down":  "scroll_down",
				"home":       "line_start",
				"end":        "line_end",
				"0":          "line_start",
				"$":          "line_end",
				"pgup":       "page_up",
				"pgdn":       "page_down",
				"i":          "enter_insert",
				"a":          "append",
				"x":          "delete_char",
				"del":        "delete_char",
				"u":          "undo",
				"U":          "redo",
				"ctrl+r":     "redo",
				"/":          "search",
				"ctrl+f":     "search",
				"y":          "yank_line",
				"p":          "paste",
				"ctrl+v":     "paste",
				"ctrl+s":     "save",
				"ctrl+q":     "quit",
			},
			Insert: map[string]string{
				"esc":        "enter_normal",
				"left":       "move_left",
				"down":       "move_down",
				"up":         "move_up",
				"right":      "move_right",
				"ctrl+left":  "word_left",
				"ctrl+right": "word_right",
				"ctrl+up":    "scroll_up",
				"ctrl+down":  "scroll_down",
				"home":       "line_start",
				"end":        "line_end",
				"pgup":       "page_up",
				"pgdn":       "page_down",
				"enter":      "newline",
				"backspace":  "backspace",
				"ctrl+h":     "backspace",
				"del":        "delete_char",
				"ctrl+v":     "paste",
				"ctrl+s":     "save",
				"ctrl+f":     "search",
				"ctrl+q":     "quit",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	md, err := toml.Decode(string(data), &userCfg)
	if err != nil {
		return cfg, err
	}

	if userCfg.Editor.QuitTimes > 0 {
		cfg.Editor.QuitTimes = userCfg.Editor.QuitTimes
	}
	if userCfg.Editor.MessageTimeout > 0 {
		cfg.Editor.MessageTimeout = userCfg.Editor.MessageTimeout
	}
	if md.IsDefined("editor", "show-git-branch") {
		cfg.Editor.ShowGitBranch = userCfg.Editor.ShowGitBranch
	}
	if md.IsDefined("editor", "syntax-check") {
		cfg.Editor.SyntaxCheck = userCfg.Editor.SyntaxCheck
	}
	if md.IsDefined("editor", "system-clipboard") {
		cfg.Editor.SystemClipboard = userCfg.Editor.SystemClipboard
	}
	if userCfg.Theme.Theme != "" {
		cfg.Theme.Theme = userCfg.Theme.Theme
	}
	if cfg.Theme.Theme != "" {
		theme, err := LoadTheme(cfg.Theme.Theme)
		if err != nil {
			return cfg, err
		}
		mergeTheme(&cfg.Theme, theme)
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	for k, v := range userCfg.Keymap.Normal {
		cfg.Keymap.Normal[k] = v
	}
	for k, v := range userCfg.Keymap.Insert {
		cfg.Keymap.Insert[k] = v
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Normal != "" {
		dst.Normal = src.Normal
	}
	if src.Comment != "" {
		dst.Comment = src.Comment
	}
	if src.MultilineComment != "" {
		dst.MultilineComment = src.MultilineComment
	}
	if src.Keyword1 != "" {
		dst.Keyword1 = src.Keyword1
	}
	if src.Keyword2 != "" {
		dst.Keyword2 = src.Keyword2
	}
	if src.String != "" {
		dst.String = src.String
	}
	if src.Number != "" {
		dst.Number = src.Number
	}
	if src.Match != "" {
		dst.Match = src.Match
	}
}

func ThemePath(name string) (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "theme", name+".toml"), nil
}

func LoadTheme(name string) (Theme, error) {
	path, err := ThemePath(name)
	if err != nil {
		return Theme{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	var t Theme
	if _, err := toml.Decode(string(data), &t); err == nil {
		return t, nil
	}
	var wrap struct {
		Theme Theme `toml:"theme"`
	}
	if _, err := toml.Decode(string(data), &wrap); err != nil {
		return Theme{}, err
	}
	return wrap.Theme, nil
}

func ConfigDir() (string, error) {
	if v := os.Getenv("TEXED_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "texed"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "texed"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Colors keys the theme by highlight class.
func (t Theme) Colors() map[syntax.Class]string {
	return map[syntax.Class]string{
		syntax.Normal:    t.Normal,
		syntax.Comment:   t.Comment,
		syntax.MLComment: t.MultilineComment,
		syntax.Keyword1:  t.Keyword1,
		syntax.Keyword2:  t.Keyword2,
		syntax.String:    t.String,
		syntax.Number:    t.Number,
		syntax.Match:     t.Match,
	}
}
