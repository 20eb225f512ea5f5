package palette

import "strings"

type scanState int

const (
	stateCode scanState = iota
	stateLineComment
	stateBlockComment
	stateString
)

// stripComments removes // and /* */ comments from JSONC text. Comment
// markers inside string literals are left alone, as are escaped quotes.
// Newlines survive so json decode errors still point at useful lines.
func stripComments(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	state := stateCode
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch state {
		case stateCode:
			switch {
			case ch == '"':
				state = stateString
				out.WriteByte(ch)
			case ch == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				i++
			case ch == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				i++
			default:
				out.WriteByte(ch)
			}
		case stateLineComment:
			if ch == '\n' {
				state = stateCode
				out.WriteByte(ch)
			}
		case stateBlockComment:
			if ch == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateCode
				i++
			}
		case stateString:
			out.WriteByte(ch)
			if ch == '\\' && i+1 < len(src) {
				out.WriteByte(src[i+1])
				i++
			} else if ch == '"' {
				state = stateCode
			}
		}
	}
	return out.String()
}
