package syntax

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// DB is the registry of syntax descriptors consulted when a file is opened.
type DB struct {
	entries []*Descriptor
}

// NewDB builds a registry from the built-in descriptors plus extra ones.
// An extra descriptor replaces a built-in with the same name.
func NewDB(extra ...Descriptor) *DB {
	db := &DB{}
	for _, d := range Builtin() {
		db.add(d)
	}
	for _, d := range extra {
		db.add(d)
	}
	return db
}

func (db *DB) add(d Descriptor) {
	for i, e := range db.entries {
		if strings.EqualFold(e.Name, d.Name) {
			db.entries[i] = &d
			return
		}
	}
	db.entries = append(db.entries, &d)
}

// Lookup finds a descriptor by name, ignoring case.
func (db *DB) Lookup(name string) *Descriptor {
	if name == "" {
		return nil
	}
	for _, d := range db.entries {
		if strings.EqualFold(d.Name, name) {
			return d
		}
	}
	return nil
}

// Select picks the descriptor for filename. Patterns are tried first; when
// none matches, the language guessed from the name is looked up. Nil means
// the file is not highlighted.
func (db *DB) Select(filename string) *Descriptor {
	if filename == "" {
		return nil
	}
	for _, d := range db.entries {
		if d.Matches(filename) {
			return d
		}
	}
	base := filepath.Base(filename)
	if lang, _ := enry.GetLanguageByFilename(base); lang != "" {
		if d := db.Lookup(lang); d != nil {
			return d
		}
	}
	if lang, _ := enry.GetLanguageByExtension(base); lang != "" {
		if d := db.Lookup(lang); d != nil {
			return d
		}
	}
	return nil
}

func (db *DB) Names() []string {
	names := make([]string, len(db.entries))
	for i, d := range db.entries {
		names[i] = d.Name
	}
	return names
}

// FileType names the language of a file for the status bar. content may
// be nil; it only helps when the name alone is ambiguous.
func FileType(filename string, content []byte) string {
	if filename == "" {
		return "no ft"
	}
	base := filepath.Base(filename)
	if lang := enry.GetLanguage(base, content); lang != "" {
		return lang
	}
	if ext := filepath.Ext(base); ext != "" {
		return strings.TrimPrefix(ext, ".")
	}
	return "no ft"
}
