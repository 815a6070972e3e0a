// Package po reads and writes GNU gettext PO files.
package po

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEscape is wrapped by every EscapeError.
var ErrInvalidEscape = errors.New("invalid escape sequence")

// EscapeError reports a malformed escape sequence found by Unescape.
type EscapeError struct {
	Message string
	Offset  int // byte offset of the backslash
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}

// Unwrap returns ErrInvalidEscape.
func (e *EscapeError) Unwrap() error {
	return ErrInvalidEscape
}

const hexDigits = "0123456789ABCDEF"

// Escape converts raw text into the C-style escaped form used inside PO
// string literals. Non-ASCII text is left untouched.
func Escape(s string) string {
	if !NeedsEscaping(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\v':
			b.WriteString(`\v`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\a':
			b.WriteString(`\a`)
		case 0:
			// "\0" followed by a digit would read back as a longer octal escape.
			if i+1 < len(s) && isOctal(s[i+1]) {
				b.WriteString(`\000`)
			} else {
				b.WriteString(`\0`)
			}
		default:
			if c < 0x20 || c == 0x7f {
				b.WriteString(`\x`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0x0f])
			} else {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

// NeedsEscaping returns true if Escape would change s.
func NeedsEscaping(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || c == '"' || c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}

// QuoteAndEscape returns s escaped and wrapped in double quotes.
func QuoteAndEscape(s string) string {
	return `"` + Escape(s) + `"`
}

// Unescape decodes C-style escape sequences. A trailing backslash or a \x
// without hex digits is an error. Unknown sequences such as \z are kept as
// they are.
func Unescape(s string) (string, error) {
	return unescape(s, true)
}

// UnescapeLenient decodes escape sequences like Unescape, but keeps
// malformed sequences as literal text instead of failing.
func UnescapeLenient(s string) string {
	out, _ := unescape(s, false)
	return out
}

func unescape(s string, strict bool) (string, error) {
	if strings.IndexByte(s, '\\') < 0 {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			if strict {
				return "", &EscapeError{Message: "incomplete escape sequence at end of string", Offset: i}
			}
			b.WriteByte('\\')
			i++
			continue
		}

		next := s[i+1]
		switch next {
		case '\\', '"', '\'', '?':
			b.WriteByte(next)
			i += 2
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 'v':
			b.WriteByte('\v')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'a':
			b.WriteByte('\a')
			i += 2
		case '0', '1', '2', '3', '4', '5', '6', '7':
			value := int(next - '0')
			i += 2
			for n := 0; n < 2 && i < len(s) && isOctal(s[i]); n++ {
				v := value*8 + int(s[i]-'0')
				if v > 0xff {
					break
				}
				value = v
				i++
			}
			b.WriteRune(rune(value))
		case 'x':
			start := i
			i += 2
			value, n := 0, 0
			for n < 2 && i < len(s) {
				d := hexValue(s[i])
				if d < 0 {
					break
				}
				value = value*16 + d
				n++
				i++
			}
			if n == 0 {
				if strict {
					return "", &EscapeError{Message: "invalid hex escape sequence", Offset: start}
				}
				b.WriteString(`\x`)
				continue
			}
			b.WriteRune(rune(value))
		default:
			// Keep the backslash; the character itself is copied on the next turn.
			b.WriteByte('\\')
			i++
		}
	}
	return b.String(), nil
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
