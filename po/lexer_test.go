package po

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, input string) []Token {
	t.Helper()
	l := NewLexer(strings.NewReader(input))
	var tokens []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Kind == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerTokenKinds(t *testing.T) {
	input := `# translator note
#. extracted note
#: src/main.c:10 src/util.c:20
#, fuzzy, c-format
#| msgid "Old"
msgctxt "menu"
msgid "File"
msgid_plural "Files"
msgstr[0] "Fichier"
msgstr[1] "Fichiers"
`
	tokens := lexAll(t, input)
	assert.Equal(t, []TokenKind{
		TokenTranslatorComment,
		TokenExtractedComment,
		TokenReferenceComment,
		TokenFlagComment,
		TokenPreviousComment,
		TokenMsgctxt, TokenString,
		TokenMsgid, TokenString,
		TokenMsgidPlural, TokenString,
		TokenMsgstrPlural, TokenString,
		TokenMsgstrPlural, TokenString,
	}, kinds(tokens))

	assert.Equal(t, "translator note", tokens[0].Text)
	assert.Equal(t, "extracted note", tokens[1].Text)
	assert.Equal(t, "src/main.c:10 src/util.c:20", tokens[2].Text)
	assert.Equal(t, "fuzzy, c-format", tokens[3].Text)
	assert.Equal(t, `msgid "Old"`, tokens[4].Text)
	assert.Equal(t, "menu", tokens[6].Text)
	assert.Equal(t, 0, tokens[11].Index)
	assert.Equal(t, 1, tokens[13].Index)
	assert.Equal(t, "1", tokens[13].Text)
}

func TestLexerPositions(t *testing.T) {
	tokens := lexAll(t, "msgid \"a\"\n  msgstr \"b\"\n")
	require.Len(t, tokens, 4)

	for i, want := range []struct{ line, col int }{
		{1, 1}, {1, 7}, {2, 3}, {2, 10},
	} {
		assert.Equal(t, want.line, tokens[i].Line, "token %d line", i)
		assert.Equal(t, want.col, tokens[i].Column, "token %d column", i)
	}
}

func TestLexerUnescapesStrings(t *testing.T) {
	tokens := lexAll(t, `msgid "tab\there \"quoted\" \x41\101"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, "tab\there \"quoted\" AA", tokens[1].Text)
}

func TestLexerTranslatorCommentIndentation(t *testing.T) {
	tokens := lexAll(t, "#   indented  \n#\n#plain\n")
	require.Len(t, tokens, 3)
	assert.Equal(t, "  indented", tokens[0].Text)
	assert.Equal(t, "", tokens[1].Text)
	assert.Equal(t, "plain", tokens[2].Text)
}

func TestLexerObsolete(t *testing.T) {
	input := `#~ #, fuzzy
#~ # note
#~| msgid "Older"
#~ msgid "Old"
#~ msgstr ""
#~ "Ancien"
`
	l := NewLexer(strings.NewReader(input))
	assert.False(t, l.InObsoleteBlock())

	var got []TokenKind
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		if tok.Kind == TokenEOF {
			break
		}
		if tok.Kind == TokenObsoletePrefix {
			assert.True(t, l.InObsoleteBlock())
		}
		got = append(got, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenFlagComment,
		TokenTranslatorComment,
		TokenPreviousComment,
		TokenObsoletePrefix, TokenMsgid, TokenString,
		TokenObsoletePrefix, TokenMsgstr, TokenString,
		TokenObsoletePrefix, TokenString,
	}, got)
	assert.False(t, l.InObsoleteBlock())
}

func TestLexerObsoleteBlockEndsAtBlankLine(t *testing.T) {
	l := NewLexer(strings.NewReader("#~ msgid \"a\"\n\nmsgid \"b\"\n"))
	for i := 0; i < 3; i++ {
		_, err := l.Next()
		require.NoError(t, err)
	}
	assert.True(t, l.InObsoleteBlock())

	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenMsgid, tok.Kind)
	assert.False(t, l.InObsoleteBlock())
}

func TestLexerPeekAndUnread(t *testing.T) {
	l := NewLexer(strings.NewReader(`msgid "a"`))

	peeked, err := l.Peek()
	require.NoError(t, err)
	assert.Equal(t, TokenMsgid, peeked.Kind)

	next, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, peeked, next)

	str, err := l.Next()
	require.NoError(t, err)
	l.Unread(str)
	l.Unread(next)

	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenMsgid, tok.Kind)
	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenString, tok.Kind)
	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenEOF, tok.Kind)
}

func TestLexerCRLF(t *testing.T) {
	tokens := lexAll(t, "# note\r\nmsgid \"a\"\r\nmsgstr \"b\"\r\n")
	assert.Equal(t, []TokenKind{
		TokenTranslatorComment, TokenMsgid, TokenString, TokenMsgstr, TokenString,
	}, kinds(tokens))
	assert.Equal(t, "note", tokens[0].Text)
	assert.Equal(t, 3, tokens[3].Line)
}

func TestLexerErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		input   string
		message string
		line    int
		column  int
		source  string
	}{
		{
			name:    "unterminated string",
			input:   `msgid "abc`,
			message: "unterminated string literal",
			line:    1,
			column:  7,
			source:  `msgid "abc`,
		},
		{
			name:    "newline in string",
			input:   "msgid \"abc\ndef\"",
			message: "newline in string literal",
			line:    1,
			column:  7,
			source:  `msgid "abc`,
		},
		{
			name:    "unknown keyword",
			input:   "msgid \"a\"\nmsgfoo \"b\"\n",
			message: `unknown keyword "msgfoo"`,
			line:    2,
			column:  1,
			source:  `msgfoo "b"`,
		},
		{
			name:    "unexpected character",
			input:   "msgid \"a\"\nmsgstr @ \"b\"\n",
			message: "unexpected character '@'",
			line:    2,
			column:  8,
			source:  `msgstr @ "b"`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLexer(strings.NewReader(tc.input))
			var err error
			for err == nil {
				var tok Token
				tok, err = l.Next()
				if err == nil && tok.Kind == TokenEOF {
					t.Fatalf("expected an error for %q", tc.input)
				}
			}

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, LexError, perr.Kind)
			assert.Contains(t, perr.Message, tc.message)
			assert.Equal(t, tc.line, perr.Line)
			assert.Equal(t, tc.column, perr.Column)
			assert.Equal(t, tc.source, perr.SourceLine)
		})
	}
}

type closeRecorder struct {
	*strings.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestLexerClose(t *testing.T) {
	r := &closeRecorder{Reader: strings.NewReader("")}
	l := NewLexer(r)
	require.NoError(t, l.Close())
	assert.True(t, r.closed)
	require.NoError(t, l.Close())
}
