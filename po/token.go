package po

import "fmt"

// TokenKind tags a lexer token.
type TokenKind int

// Token kinds produced by the Lexer.
const (
	TokenEOF TokenKind = iota
	TokenMsgctxt
	TokenMsgid
	TokenMsgidPlural
	TokenMsgstr
	TokenMsgstrPlural // msgstr[N], N in Token.Index
	TokenString
	TokenTranslatorComment // "# text"
	TokenExtractedComment  // "#. text"
	TokenReferenceComment  // "#: file:line"
	TokenFlagComment       // "#, fuzzy"
	TokenPreviousComment   // "#| msgid ..." or "#~| msgid ..."
	TokenObsoletePrefix    // "#~" before a keyword or string
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:               "EOF",
	TokenMsgctxt:           "msgctxt",
	TokenMsgid:             "msgid",
	TokenMsgidPlural:       "msgid_plural",
	TokenMsgstr:            "msgstr",
	TokenMsgstrPlural:      "msgstr[N]",
	TokenString:            "string",
	TokenTranslatorComment: "translator comment",
	TokenExtractedComment:  "extracted comment",
	TokenReferenceComment:  "reference comment",
	TokenFlagComment:       "flag comment",
	TokenPreviousComment:   "previous comment",
	TokenObsoletePrefix:    "obsolete prefix",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsComment returns true for the five comment kinds.
func (k TokenKind) IsComment() bool {
	switch k {
	case TokenTranslatorComment, TokenExtractedComment, TokenReferenceComment,
		TokenFlagComment, TokenPreviousComment:
		return true
	}
	return false
}

// IsKeyword returns true for msgctxt, msgid, msgid_plural, msgstr and msgstr[N].
func (k TokenKind) IsKeyword() bool {
	switch k {
	case TokenMsgctxt, TokenMsgid, TokenMsgidPlural, TokenMsgstr, TokenMsgstrPlural:
		return true
	}
	return false
}

// Token is one lexical unit. Text holds the unescaped value of a string or
// the trimmed content of a comment. Line and Column are 1-based.
type Token struct {
	Kind   TokenKind
	Text   string
	Index  int
	Line   int
	Column int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenMsgstrPlural:
		return fmt.Sprintf("msgstr[%d]", t.Index)
	case TokenString:
		return fmt.Sprintf("string %q", t.Text)
	}
	return t.Kind.String()
}
