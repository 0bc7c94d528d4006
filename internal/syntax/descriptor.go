package syntax

import "strings"

type Flags uint8

const (
	HighlightStrings Flags = 1 << iota
	HighlightNumbers
)

// Descriptor tells the highlighter how to scan one family of files.
// Keywords ending in '|' are secondary keywords (usually type names).
type Descriptor struct {
	Name              string
	FileMatch         []string
	Keywords          []string
	SingleLineComment string
	MultiLineStart    string
	MultiLineEnd      string
	Flags             Flags
}

// Matches reports whether filename is covered by one of the descriptor's
// patterns. Patterns starting with '.' match the file extension, others
// match anywhere in the name.
func (d *Descriptor) Matches(filename string) bool {
	for _, pat := range d.FileMatch {
		if pat == "" {
			continue
		}
		if strings.HasPrefix(pat, ".") {
			if strings.HasSuffix(filename, pat) {
				return true
			}
			continue
		}
		if strings.Contains(filename, pat) {
			return true
		}
	}
	return false
}

var builtin = []Descriptor{
	{
		Name:      "C",
		FileMatch: []string{".c", ".h", ".cpp", ".hpp", ".cc"},
		Keywords: []string{
			"auto", "break", "case", "continue", "default", "do", "else", "enum",
			"extern", "for", "goto", "if", "register", "return", "sizeof", "static",
			"struct", "switch", "typedef", "union", "volatile", "while", "NULL",

			"alignas", "alignof", "and", "and_eq", "asm", "bitand", "bitor", "class",
			"compl", "constexpr", "const_cast", "decltype", "delete", "dynamic_cast",
			"explicit", "export", "false", "friend", "inline", "mutable", "namespace",
			"new", "noexcept", "not", "not_eq", "nullptr", "operator", "or", "or_eq",
			"private", "protected", "public", "reinterpret_cast", "static_assert",
			"static_cast", "template", "this", "thread_local", "throw", "true", "try",
			"typeid", "typename", "virtual", "xor", "xor_eq",

			"int|", "long|", "double|", "float|", "char|", "unsigned|", "signed|",
			"void|", "short|", "const|", "bool|",
		},
		SingleLineComment: "//",
		MultiLineStart:    "/*",
		MultiLineEnd:      "*/",
		Flags:             HighlightStrings | HighlightNumbers,
	},
	{
		Name:      "Go",
		FileMatch: []string{".go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer", "else",
			"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
			"map", "package", "range", "return", "select", "struct", "switch", "type",
			"var", "nil", "true", "false", "iota",

			"bool|", "byte|", "complex64|", "complex128|", "error|", "float32|",
			"float64|", "int|", "int8|", "int16|", "int32|", "int64|", "rune|",
			"string|", "uint|", "uint8|", "uint16|", "uint32|", "uint64|", "uintptr|",
			"any|",
		},
		SingleLineComment: "//",
		MultiLineStart:    "/*",
		MultiLineEnd:      "*/",
		Flags:             HighlightStrings | HighlightNumbers,
	},
	{
		Name:      "Python",
		FileMatch: []string{".py"},
		Keywords: []string{
			"and", "as", "assert", "break", "class", "continue", "def", "del", "elif",
			"else", "except", "finally", "for", "from", "global", "if", "import", "in",
			"is", "lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
			"while", "with", "yield", "None", "True", "False",

			"int|", "float|", "str|", "bytes|", "list|", "dict|", "set|", "tuple|",
			"bool|", "object|",
		},
		SingleLineComment: "#",
		Flags:             HighlightStrings | HighlightNumbers,
	},
}

// Builtin returns copies of the descriptors compiled into the binary.
func Builtin() []Descriptor {
	out := make([]Descriptor, len(builtin))
	copy(out, builtin)
	return out
}
