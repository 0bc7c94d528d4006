package syntax

// Class is the highlight category of one rendered character.
type Class uint8

const (
	Normal Class = iota
	NonPrint
	Comment
	MLComment
	Keyword1
	Keyword2
	String
	Number
	Match
)

var classNames = [...]string{
	Normal:    "normal",
	NonPrint:  "nonprint",
	Comment:   "comment",
	MLComment: "multiline-comment",
	Keyword1:  "keyword1",
	Keyword2:  "keyword2",
	String:    "string",
	Number:    "number",
	Match:     "match",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// IsSeparator reports whether c ends a token: whitespace, NUL or one of
// ,.()+-/*=~%[];
func IsSeparator(c byte) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\v', '\f', '\r',
		',', '.', '(', ')', '+', '-', '/', '*', '=', '~', '%', '[', ']', ';':
		return true
	}
	return false
}
