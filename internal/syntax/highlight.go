package syntax

// Highlight classifies every byte of a rendered line. prevOpen says whether
// the previous line ended inside a block comment; the second result says
// whether this line does. A nil descriptor leaves everything Normal.
func Highlight(d *Descriptor, rendered []byte, prevOpen bool) ([]Class, bool) {
	hl := make([]Class, len(rendered))
	if d == nil {
		return hl, false
	}

	scs := d.SingleLineComment
	mcs := d.MultiLineStart
	mce := d.MultiLineEnd
	multiline := mcs != "" && mce != ""

	prevSep := true
	var quote byte
	inComment := prevOpen && multiline

	i := 0
	for i < len(rendered) {
		c := rendered[i]
		prevHL := Normal
		if i > 0 {
			prevHL = hl[i-1]
		}

		if scs != "" && quote == 0 && !inComment && hasPrefix(rendered[i:], scs) {
			fill(hl[i:], Comment)
			break
		}

		if multiline && quote == 0 {
			if inComment {
				hl[i] = MLComment
				if hasPrefix(rendered[i:], mce) {
					fill(hl[i:i+len(mce)], MLComment)
					i += len(mce)
					inComment = false
					prevSep = true
					continue
				}
				i++
				continue
			}
			if hasPrefix(rendered[i:], mcs) {
				fill(hl[i:i+len(mcs)], MLComment)
				i += len(mcs)
				inComment = true
				continue
			}
		}

		if d.Flags&HighlightStrings != 0 {
			if quote != 0 {
				hl[i] = String
				if c == '\\' && i+1 < len(rendered) {
					hl[i+1] = String
					i += 2
					prevSep = false
					continue
				}
				if c == quote {
					quote = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				quote = c
				hl[i] = String
				i++
				continue
			}
		}

		if d.Flags&HighlightNumbers != 0 {
			if (isDigit(c) && (prevSep || prevHL == Number)) || (c == '.' && prevHL == Number) {
				hl[i] = Number
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, class := matchKeyword(d.Keywords, rendered[i:]); n > 0 {
				fill(hl[i:i+n], class)
				i += n
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		i++
	}
	return hl, inComment
}

// matchKeyword returns the length and class of the keyword that forms a
// whole token at the start of b.
func matchKeyword(keywords []string, b []byte) (int, Class) {
	for _, kw := range keywords {
		class := Keyword1
		if n := len(kw); n > 0 && kw[n-1] == '|' {
			kw = kw[:n-1]
			class = Keyword2
		}
		if kw == "" || !hasPrefix(b, kw) {
			continue
		}
		if len(b) == len(kw) || IsSeparator(b[len(kw)]) {
			return len(kw), class
		}
	}
	return 0, Normal
}

func hasPrefix(b []byte, s string) bool {
	return len(b) >= len(s) && string(b[:len(s)]) == s
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func fill(hl []Class, c Class) {
	for i := range hl {
		hl[i] = c
	}
}
