package po

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// LexError is raised while scanning characters: unexpected character,
	// unterminated string, newline inside a string, unknown keyword.
	LexError ErrorKind = iota
	// StructuralError is raised when a token is not allowed where it was
	// found, e.g. a missing msgid or msgstr.
	StructuralError
)

func (k ErrorKind) String() string {
	if k == LexError {
		return "lex error"
	}
	return "structural error"
}

// ParseError is a located failure of the lexer or the parser.
type ParseError struct {
	Kind       ErrorKind
	Message    string
	Line       int
	Column     int
	SourceLine string
}

func (e *ParseError) Error() string {
	if e.SourceLine == "" {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d, column %d: %s\n\t%s", e.Line, e.Column, e.Message, e.SourceLine)
}

// Builder validation errors.
var (
	ErrMissingID         = errors.New("entry has no msgid")
	ErrSingularAndPlural = errors.New("entry has both msgstr and msgstr[N]")
	ErrPluralWithoutID   = errors.New("entry has msgstr[N] but no msgid_plural")
)

// ErrLineWidth is returned by WriterOptions.Validate.
var ErrLineWidth = errors.New("max line width must be at least 20")
