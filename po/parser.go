package po

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Parser builds a File from the tokens of a Lexer.
type Parser struct {
	lex      *Lexer
	opts     ParserOptions
	consumed int
}

// NewParser creates a parser reading from r. The parser owns r: if r is an
// io.Closer it is closed when Parse returns.
func NewParser(r io.Reader, opts ParserOptions) *Parser {
	return &Parser{
		lex:  NewLexer(r),
		opts: opts,
	}
}

// Parse reads entries until EOF. In strict mode the first malformed entry
// aborts with a *ParseError. Otherwise malformed entries are dropped and
// parsing resumes at the next token that can start an entry.
func (p *Parser) Parse() (file *File, err error) {
	defer func() {
		if cerr := p.Close(); cerr != nil && err == nil {
			file, err = nil, cerr
		}
	}()

	b := NewFileBuilder()
	for {
		tok, err := p.peek()
		if err == nil && tok.Kind == TokenEOF {
			break
		}

		var entry *Entry
		start := p.consumed
		if err == nil {
			entry, err = p.parseEntry()
		}
		if err != nil {
			if err := p.recover(err, start); err != nil {
				return nil, err
			}
			continue
		}
		if entry == nil {
			continue
		}
		if entry.IsObsolete() && !p.opts.PreserveObsolete {
			continue
		}
		b.Add(entry)
	}
	return b.Build(), nil
}

// Close releases the underlying reader.
func (p *Parser) Close() error {
	return p.lex.Close()
}

// recover returns err unchanged if it must abort the parse; otherwise it
// skips to the next plausible entry start.
func (p *Parser) recover(err error, start int) error {
	var perr *ParseError
	if !errors.As(err, &perr) {
		return err
	}
	if p.opts.Strict {
		if perr.Kind == StructuralError {
			perr.SourceLine = p.lex.lineAt(perr.Line, true)
		}
		return perr
	}

	log.WithFields(log.Fields{
		"line":   perr.Line,
		"column": perr.Column,
	}).Debugf("skipping malformed entry: %s", perr.Message)

	// A structural failure on the very first token would be hit again.
	if perr.Kind == StructuralError && p.consumed == start {
		if _, err := p.next(); err != nil {
			return p.recover(err, p.consumed)
		}
	}
	return p.skipToNextEntry()
}

// skipToNextEntry discards tokens until a comment, keyword or obsolete
// prefix, which is pushed back for the next parseEntry. This is a
// heuristic: the format has no explicit entry delimiter.
func (p *Parser) skipToNextEntry() error {
	for {
		tok, err := p.next()
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				// The lexer has consumed the offending input.
				continue
			}
			return err
		}
		if tok.Kind == TokenEOF || tok.Kind.IsComment() || tok.Kind.IsKeyword() ||
			tok.Kind == TokenObsoletePrefix {
			p.unread(tok)
			return nil
		}
	}
}

func (p *Parser) parseEntry() (*Entry, error) {
	b := NewEntryBuilder()

	obsolete, err := p.consumeObsoletePrefix()
	if err != nil {
		return nil, err
	}
	if err := p.parseComments(b, obsolete); err != nil {
		return nil, err
	}
	// Comments may precede the "#~ msgid" line of an obsolete entry.
	if ok, err := p.consumeObsoletePrefix(); err != nil {
		return nil, err
	} else if ok {
		obsolete = true
	}
	b.Obsolete(obsolete)

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenEOF:
		// Trailing comments without an entry.
		return nil, nil
	case TokenMsgctxt:
		p.next()
		s, err := p.parseString(tok, obsolete)
		if err != nil {
			return nil, err
		}
		b.Context(s)
		if tok, err = p.peekField(obsolete, TokenMsgid); err != nil {
			return nil, err
		}
	}

	if tok.Kind != TokenMsgid {
		return nil, p.structuralf(tok, "expected msgid, found %s", tok)
	}
	p.next()
	id, err := p.parseString(tok, obsolete)
	if err != nil {
		return nil, err
	}
	b.ID(id)

	if tok, err = p.peekField(obsolete, TokenMsgidPlural, TokenMsgstr); err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenMsgidPlural:
		p.next()
		pluralID, err := p.parseString(tok, obsolete)
		if err != nil {
			return nil, err
		}
		b.PluralID(pluralID)
		if err := p.parsePluralTranslations(b, obsolete); err != nil {
			return nil, err
		}
	case TokenMsgstr:
		p.next()
		s, err := p.parseString(tok, obsolete)
		if err != nil {
			return nil, err
		}
		b.Translation(s)
	default:
		return nil, p.structuralf(tok, "expected msgstr, found %s", tok)
	}

	entry, err := b.Build()
	if err != nil {
		return nil, p.structuralf(tok, "%v", err)
	}
	return entry, nil
}

type previousField int

const (
	previousNone previousField = iota
	previousContext
	previousID
	previousPluralID
)

func (p *Parser) parseComments(b *EntryBuilder, obsolete bool) error {
	last := previousNone
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if !tok.Kind.IsComment() {
			return nil
		}
		p.next()

		switch tok.Kind {
		case TokenTranslatorComment:
			b.AddTranslatorComment(tok.Text)
		case TokenExtractedComment:
			b.AddExtractedComment(tok.Text)
		case TokenReferenceComment:
			for _, ref := range strings.Fields(tok.Text) {
				b.AddReference(ref)
			}
		case TokenFlagComment:
			for _, flag := range strings.Split(tok.Text, ",") {
				if flag = strings.TrimSpace(flag); flag != "" {
					b.AddFlag(flag)
				}
			}
		case TokenPreviousComment:
			last = parsePrevious(b, tok.Text, last)
		}
	}
}

// parsePrevious decodes a "#|" comment. A line holding only quoted text
// continues the field set by the preceding "#|" line.
func parsePrevious(b *EntryBuilder, text string, last previousField) previousField {
	switch {
	case strings.HasPrefix(text, "msgctxt "):
		b.PreviousContext(unquoteSegments(text[len("msgctxt "):]))
		return previousContext
	case strings.HasPrefix(text, "msgid_plural "):
		b.PreviousPluralID(unquoteSegments(text[len("msgid_plural "):]))
		return previousPluralID
	case strings.HasPrefix(text, "msgid "):
		b.PreviousID(unquoteSegments(text[len("msgid "):]))
		return previousID
	case strings.HasPrefix(text, `"`):
		s := unquoteSegments(text)
		switch last {
		case previousContext:
			b.PreviousContext(*b.previousContext + s)
		case previousID:
			b.PreviousID(*b.previousID + s)
		case previousPluralID:
			b.PreviousPluralID(*b.previousPluralID + s)
		}
		return last
	}
	return previousNone
}

// unquoteSegments concatenates every quoted segment of s, unescaped.
func unquoteSegments(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		start := strings.IndexByte(s[i:], '"')
		if start < 0 {
			break
		}
		start += i
		end := start + 1
		escaped := false
		for ; end < len(s); end++ {
			c := s[end]
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				break
			}
		}
		if end >= len(s) {
			break
		}
		b.WriteString(UnescapeLenient(s[start+1 : end]))
		i = end + 1
	}
	return b.String()
}

func (p *Parser) parsePluralTranslations(b *EntryBuilder, obsolete bool) error {
	found := false
	for {
		tok, err := p.peekField(obsolete, TokenMsgstrPlural)
		if err != nil {
			return err
		}
		if tok.Kind != TokenMsgstrPlural {
			if !found {
				return p.structuralf(tok, "expected msgstr[N], found %s", tok)
			}
			return nil
		}
		p.next()
		s, err := p.parseString(tok, obsolete)
		if err != nil {
			return err
		}
		b.SetPluralTranslation(tok.Index, s)
		found = true
	}
}

// parseString concatenates the string tokens following keyword kw. In an
// obsolete entry, "#~" lines holding only a string are continuations.
func (p *Parser) parseString(kw Token, obsolete bool) (string, error) {
	var b strings.Builder
	n := 0
	for {
		tok, err := p.peek()
		if err != nil {
			return "", err
		}
		if n > 0 {
			if tok, err = p.peekField(obsolete, TokenString); err != nil {
				return "", err
			}
		}
		if tok.Kind != TokenString {
			if n == 0 {
				return "", p.structuralf(tok, "expected string after %s, found %s", kw, tok)
			}
			return b.String(), nil
		}
		p.next()
		b.WriteString(tok.Text)
		n++
	}
}

// consumeObsoletePrefix consumes a "#~" prefix if one is next.
func (p *Parser) consumeObsoletePrefix() (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if tok.Kind != TokenObsoletePrefix {
		return false, nil
	}
	p.next()
	return true, nil
}

// peekField peeks the next token of an entry. In an obsolete entry a "#~"
// prefix is looked through when one of the wanted kinds follows it;
// otherwise the prefix is left in place for the next entry.
func (p *Parser) peekField(obsolete bool, want ...TokenKind) (Token, error) {
	tok, err := p.peek()
	if err != nil || !obsolete || tok.Kind != TokenObsoletePrefix {
		return tok, err
	}
	p.next()
	after, err := p.peek()
	if err != nil {
		return after, err
	}
	for _, k := range want {
		if after.Kind == k {
			return after, nil
		}
	}
	p.unread(tok)
	return tok, nil
}

func (p *Parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *Parser) next() (Token, error) {
	tok, err := p.lex.Next()
	if err == nil {
		p.consumed++
	}
	return tok, err
}

func (p *Parser) unread(tok Token) {
	p.consumed--
	p.lex.Unread(tok)
}

func (p *Parser) structuralf(tok Token, format string, a ...interface{}) *ParseError {
	return &ParseError{
		Kind:       StructuralError,
		Message:    fmt.Sprintf(format, a...),
		Line:       tok.Line,
		Column:     tok.Column,
		SourceLine: p.lex.lineAt(tok.Line, false),
	}
}

// Parse parses a PO file from r, closing r if it is an io.Closer.
func Parse(r io.Reader, opts ParserOptions) (*File, error) {
	return NewParser(r, opts).Parse()
}

// ParseBytes parses PO data held in memory.
func ParseBytes(data []byte, opts ParserOptions) (*File, error) {
	return Parse(bytes.NewReader(data), opts)
}

// ParseString parses PO text held in a string.
func ParseString(s string, opts ParserOptions) (*File, error) {
	return Parse(strings.NewReader(s), opts)
}

// ParseFile opens and parses the PO file at path.
func ParseFile(path string, opts ParserOptions) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	file, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return file, nil
}
