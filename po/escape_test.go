package po

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{`say "hi"`, `say \"hi\"`},
		{`C:\path`, `C:\\path`},
		{"a\nb", `a\nb`},
		{"tab\there", `tab\there`},
		{"\r\v\b\f\a", `\r\v\b\f\a`},
		{"\x00", `\0`},
		{"\x001", `\0001`},
		{"\x009", `\09`},
		{"\x01\x1f\x7f", `\x01\x1F\x7F`},
		{"héllo wörld", "héllo wörld"},
	} {
		assert.Equal(t, tc.want, Escape(tc.in), "Escape(%q)", tc.in)
	}
}

func TestNeedsEscaping(t *testing.T) {
	assert.False(t, NeedsEscaping("hello, wörld"))
	assert.True(t, NeedsEscaping("a\nb"))
	assert.True(t, NeedsEscaping(`a"b`))
	assert.True(t, NeedsEscaping(`a\b`))
	assert.True(t, NeedsEscaping("\x7f"))
}

func TestQuoteAndEscape(t *testing.T) {
	assert.Equal(t, `"line\n"`, QuoteAndEscape("line\n"))
	assert.Equal(t, `""`, QuoteAndEscape(""))
}

func TestUnescape(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want string
	}{
		{`\101`, "A"},
		{`\377`, "\u00FF"},
		{`\0`, "\x00"},
		{`\0001`, "\x001"},
		{`\x41`, "A"},
		{`\xab`, "\u00AB"},
		{`\xAB`, "\u00AB"},
		{`\x4`, "\x04"},
		{`\x414`, "A4"},
		{`\n\t\r\v\b\f\a`, "\n\t\r\v\b\f\a"},
		{`\"\\\'\?`, `"\'?`},
		{`\z`, `\z`},
		{`no escapes`, `no escapes`},
		{`\400`, "\x200"},
	} {
		got, err := Unescape(tc.in)
		require.NoError(t, err, "Unescape(%q)", tc.in)
		assert.Equal(t, tc.want, got, "Unescape(%q)", tc.in)
	}
}

func TestUnescapeStrictErrors(t *testing.T) {
	for _, tc := range []struct {
		in     string
		offset int
	}{
		{`abc\`, 3},
		{`\xZZ`, 0},
		{`ok \x`, 3},
	} {
		_, err := Unescape(tc.in)
		require.Error(t, err, "Unescape(%q)", tc.in)
		assert.True(t, errors.Is(err, ErrInvalidEscape))

		var escErr *EscapeError
		require.True(t, errors.As(err, &escErr))
		assert.Equal(t, tc.offset, escErr.Offset)
	}
}

func TestUnescapeLenient(t *testing.T) {
	assert.Equal(t, `abc\`, UnescapeLenient(`abc\`))
	assert.Equal(t, `\xZZ`, UnescapeLenient(`\xZZ`))
	assert.Equal(t, "A", UnescapeLenient(`\x41`))
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, s := range []string{
		"",
		"simple",
		"quote \" and backslash \\",
		"multi\nline\ntext\n",
		"\x00\x01\x02 control \x1b[0m",
		"nul then digits \x00123",
		"\x7f delete",
		"unicode: 日本語 ✓",
		`\n is literal`,
	} {
		got, err := Unescape(Escape(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}
