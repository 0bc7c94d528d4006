package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kobzarvs/texed/internal/syntax"
)

// Language is one [[language]] entry of languages.toml.
type Language struct {
	Name              string   `toml:"name"`
	FileTypes         []string `toml:"file-types"`
	Keywords          []string `toml:"keywords"`
	Types             []string `toml:"types"`
	Comment           string   `toml:"comment"`
	BlockCommentStart string   `toml:"block-comment-start"`
	BlockCommentEnd   string   `toml:"block-comment-end"`
	HighlightStrings  bool     `toml:"highlight-strings"`
	HighlightNumbers  bool     `toml:"highlight-numbers"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

// Descriptor converts the entry into a highlighter descriptor. Bare file
// types such as "rs" become extension patterns; names containing a dot
// or no extension at all ("Makefile") match as substrings.
func (lang Language) Descriptor() syntax.Descriptor {
	d := syntax.Descriptor{
		Name:              lang.Name,
		SingleLineComment: lang.Comment,
		MultiLineStart:    lang.BlockCommentStart,
		MultiLineEnd:      lang.BlockCommentEnd,
	}
	for _, ft := range lang.FileTypes {
		if ft == "" {
			continue
		}
		if !strings.HasPrefix(ft, ".") && !strings.Contains(ft, ".") && strings.ToLower(ft) == ft {
			ft = "." + ft
		}
		d.FileMatch = append(d.FileMatch, ft)
	}
	d.Keywords = append(d.Keywords, lang.Keywords...)
	for _, t := range lang.Types {
		d.Keywords = append(d.Keywords, t+"|")
	}
	if lang.HighlightStrings {
		d.Flags |= syntax.HighlightStrings
	}
	if lang.HighlightNumbers {
		d.Flags |= syntax.HighlightNumbers
	}
	return d
}

// Descriptors converts every entry, in file order.
func (l Languages) Descriptors() []syntax.Descriptor {
	out := make([]syntax.Descriptor, 0, len(l.Languages))
	for _, lang := range l.Languages {
		out = append(out, lang.Descriptor())
	}
	return out
}

func LoadLanguages() (Languages, error) {
	path, err := LanguagesPath()
	if err != nil {
		return Languages{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Languages{}, nil
		}
		return Languages{}, err
	}

	var cfg Languages
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Languages{}, err
	}
	return cfg, nil
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
