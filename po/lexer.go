package po

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const eof rune = -1

// historyLines is how many completed lines are kept for error messages.
const historyLines = 8

var msgstrPluralRegex = regexp.MustCompile(`^msgstr\[([0-9]+)\]$`)

// Lexer turns a character stream into PO tokens. It keeps a deque of
// pending tokens so that callers can peek and push tokens back.
type Lexer struct {
	r      *bufio.Reader
	closer io.Closer
	err    error

	pushback []rune
	pending  []Token

	line     int
	column   int
	lineText []rune
	prevLine string
	prevCol  int
	history  map[int]string

	inObsoleteBlock bool
}

// NewLexer creates a lexer reading from r. If r is an io.Closer, Close
// closes it.
func NewLexer(r io.Reader) *Lexer {
	l := &Lexer{
		r:       bufio.NewReader(r),
		line:    1,
		history: make(map[int]string),
	}
	if c, ok := r.(io.Closer); ok {
		l.closer = c
	}
	return l
}

// Line returns the current 1-based line number.
func (l *Lexer) Line() int {
	return l.line
}

// Column returns the number of characters consumed on the current line.
func (l *Lexer) Column() int {
	return l.column
}

// InObsoleteBlock returns true after a "#~" prefix until the next blank line.
func (l *Lexer) InObsoleteBlock() bool {
	return l.inObsoleteBlock
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if len(l.pending) == 0 {
		tok, err := l.scanToken()
		if err != nil {
			return Token{}, err
		}
		l.pending = append(l.pending, tok)
	}
	return l.pending[0], nil
}

// Next consumes and returns the next token.
func (l *Lexer) Next() (Token, error) {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok, nil
	}
	return l.scanToken()
}

// Unread pushes tok back; it is returned by the next Peek or Next. Tokens
// pushed back in a row come out in reverse order.
func (l *Lexer) Unread(tok Token) {
	l.pending = append([]Token{tok}, l.pending...)
}

// Close closes the underlying reader if it is an io.Closer.
func (l *Lexer) Close() error {
	if l.closer == nil {
		return nil
	}
	c := l.closer
	l.closer = nil
	return c.Close()
}

func (l *Lexer) scanToken() (Token, error) {
	tok, err := l.scan()
	if l.err != nil {
		return Token{}, fmt.Errorf("read PO input: %w", l.err)
	}
	return tok, err
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespace()

	line, col := l.line, l.column+1
	ch := l.read()
	switch {
	case ch == eof:
		return Token{Kind: TokenEOF, Line: line, Column: col}, nil
	case ch == '#':
		return l.scanComment(line, col)
	case ch == '"':
		return l.scanString(line, col)
	case unicode.IsLetter(ch):
		l.unread(ch)
		return l.scanKeyword(line, col)
	}
	return Token{}, l.errorf(line, col, "unexpected character %q", ch)
}

func (l *Lexer) scanComment(line, col int) (Token, error) {
	var kind TokenKind

	ch := l.read()
	switch ch {
	case '~':
		next := l.read()
		if next == '|' {
			return Token{
				Kind:   TokenPreviousComment,
				Text:   strings.TrimSpace(l.readToEndOfLine()),
				Line:   line,
				Column: col,
			}, nil
		}
		for next == ' ' || next == '\t' {
			next = l.read()
		}
		switch {
		case next == '#':
			// Comment of an obsolete entry, e.g. "#~ #, fuzzy".
			return l.scanComment(line, col)
		case unicode.IsLetter(next) || next == '"':
			l.unread(next)
			l.inObsoleteBlock = true
			return Token{Kind: TokenObsoletePrefix, Line: line, Column: col}, nil
		}
		l.unread(next)
		kind = TokenTranslatorComment
	case '.':
		kind = TokenExtractedComment
	case ':':
		kind = TokenReferenceComment
	case ',':
		kind = TokenFlagComment
	case '|':
		kind = TokenPreviousComment
	default:
		l.unread(ch)
		kind = TokenTranslatorComment
	}

	content := l.readToEndOfLine()
	if kind == TokenTranslatorComment {
		// Keep indentation beyond the single separating space.
		content = strings.TrimPrefix(strings.TrimRightFunc(content, unicode.IsSpace), " ")
	} else {
		content = strings.TrimSpace(content)
	}
	return Token{Kind: kind, Text: content, Line: line, Column: col}, nil
}

func (l *Lexer) scanString(line, col int) (Token, error) {
	var b strings.Builder
	for {
		ch := l.read()
		switch ch {
		case eof:
			return Token{}, l.errorf(line, col, "unterminated string literal")
		case '\n', '\r':
			l.unread(ch)
			return Token{}, l.errorf(line, col, `newline in string literal (use \n for embedded newlines)`)
		case '"':
			return Token{
				Kind:   TokenString,
				Text:   UnescapeLenient(b.String()),
				Line:   line,
				Column: col,
			}, nil
		case '\\':
			b.WriteRune(ch)
			next := l.read()
			switch next {
			case eof:
				return Token{}, l.errorf(line, col, "unterminated string literal")
			case '\n', '\r':
				l.unread(next)
				return Token{}, l.errorf(line, col, `newline in string literal (use \n for embedded newlines)`)
			}
			b.WriteRune(next)
		default:
			b.WriteRune(ch)
		}
	}
}

func (l *Lexer) scanKeyword(line, col int) (Token, error) {
	var b strings.Builder
	for {
		ch := l.read()
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '[' || ch == ']' {
			b.WriteRune(ch)
			if ch == ']' {
				break
			}
			continue
		}
		l.unread(ch)
		break
	}

	keyword := b.String()
	tok := Token{Line: line, Column: col}
	switch keyword {
	case "msgctxt":
		tok.Kind = TokenMsgctxt
	case "msgid":
		tok.Kind = TokenMsgid
	case "msgid_plural":
		tok.Kind = TokenMsgidPlural
	case "msgstr":
		tok.Kind = TokenMsgstr
	default:
		m := msgstrPluralRegex.FindStringSubmatch(keyword)
		if m == nil {
			return Token{}, l.errorf(line, col, "unknown keyword %q", keyword)
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return Token{}, l.errorf(line, col, "invalid plural index in %q", keyword)
		}
		tok.Kind = TokenMsgstrPlural
		tok.Text = m[1]
		tok.Index = idx
	}
	return tok, nil
}

// skipWhitespace skips blanks and line breaks. Crossing a blank line ends
// the current obsolete block.
func (l *Lexer) skipWhitespace() {
	newlines := 0
	if l.column == 0 {
		newlines = 1
	}
	for {
		ch := l.read()
		switch ch {
		case ' ', '\t', '\r', '\uFEFF':
			continue
		case '\n':
			newlines++
			if newlines >= 2 {
				l.inObsoleteBlock = false
			}
			continue
		case eof:
			if newlines > 0 {
				l.inObsoleteBlock = false
			}
			return
		}
		l.unread(ch)
		return
	}
}

// readToEndOfLine returns the rest of the line and consumes the line break.
func (l *Lexer) readToEndOfLine() string {
	var b strings.Builder
	for {
		ch := l.read()
		switch ch {
		case eof, '\n':
			return b.String()
		case '\r':
			if next := l.read(); next != '\n' {
				l.unread(next)
			}
			return b.String()
		}
		b.WriteRune(ch)
	}
}

// sourceLine returns the full text of the current line without consuming
// its line break.
func (l *Lexer) sourceLine() string {
	for {
		ch := l.read()
		if ch == eof {
			break
		}
		if ch == '\n' {
			l.unread(ch)
			break
		}
	}
	return string(l.lineText)
}

// lineAt returns the text of line n if it is still known. For the current
// line, complete reads up to its end; otherwise only the part already
// scanned is returned.
func (l *Lexer) lineAt(n int, complete bool) string {
	if n == l.line {
		if complete {
			return l.sourceLine()
		}
		return string(l.lineText)
	}
	return l.history[n]
}

func (l *Lexer) errorf(line, col int, format string, a ...interface{}) *ParseError {
	return &ParseError{
		Kind:       LexError,
		Message:    fmt.Sprintf(format, a...),
		Line:       line,
		Column:     col,
		SourceLine: l.sourceLine(),
	}
}

func (l *Lexer) read() rune {
	var ch rune
	if n := len(l.pushback); n > 0 {
		ch = l.pushback[n-1]
		l.pushback = l.pushback[:n-1]
	} else {
		if l.err != nil {
			return eof
		}
		r, _, err := l.r.ReadRune()
		if err != nil {
			if err != io.EOF {
				l.err = err
			}
			return eof
		}
		ch = r
	}

	if ch == '\n' {
		l.prevLine, l.prevCol = string(l.lineText), l.column
		l.history[l.line] = l.prevLine
		delete(l.history, l.line-historyLines)
		l.line++
		l.column = 0
		l.lineText = l.lineText[:0]
	} else {
		l.column++
		if ch != '\r' {
			l.lineText = append(l.lineText, ch)
		}
	}
	return ch
}

func (l *Lexer) unread(ch rune) {
	if ch == eof {
		return
	}
	l.pushback = append(l.pushback, ch)
	if ch == '\n' {
		l.line--
		l.column = l.prevCol
		l.lineText = append(l.lineText[:0], []rune(l.prevLine)...)
		return
	}
	l.column--
	if ch != '\r' && len(l.lineText) > 0 {
		l.lineText = l.lineText[:len(l.lineText)-1]
	}
}
