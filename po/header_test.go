package po

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeaderFromEntry(t *testing.T) {
	e := NewEntryBuilder().
		ID("").
		Translation("Project-Id-Version: demo 1.0\n" +
			"no colon here\n" +
			"Language: fr\n" +
			"Content-Type: text/plain; charset=ISO-8859-1\n" +
			"X-Custom:  spaced  \n" +
			"Language: de\n").
		AddTranslatorComment("comment").
		AddFlag("fuzzy").
		MustBuild()

	h, err := NewHeaderFromEntry(e)
	require.NoError(t, err)
	assert.Equal(t, []string{HeaderProjectIDVersion, HeaderLanguage, HeaderContentType, "X-Custom"}, h.Keys())
	assert.Equal(t, "de", h.Language())
	assert.Equal(t, "ISO-8859-1", h.Charset())
	v, ok := h.Field("X-Custom")
	assert.True(t, ok)
	assert.Equal(t, "spaced", v)
	_, ok = h.Field("Missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"comment"}, h.TranslatorComments())
	assert.True(t, h.IsFuzzy())

	_, err = NewHeaderFromEntry(NewEntryBuilder().ID("x").MustBuild())
	assert.Error(t, err)
}

func TestHeaderBuilder(t *testing.T) {
	h := NewHeaderBuilder().
		Set(HeaderProjectIDVersion, "demo").
		Set(HeaderLanguage, "pt_BR").
		SetPluralForms(PluralForms{NPlurals: 2, Expression: "(n > 1)"}).
		WithDefaults().
		Set(HeaderProjectIDVersion, "demo 2").
		Build()

	assert.Equal(t, []string{
		HeaderProjectIDVersion,
		HeaderLanguage,
		HeaderPluralForms,
		HeaderMIMEVersion,
		HeaderContentType,
		HeaderContentTransferEncoding,
	}, h.Keys())
	assert.Equal(t, "demo 2", h.ProjectIDVersion())
	assert.Equal(t, "UTF-8", h.Charset())
	assert.Equal(t, "8bit", h.ContentTransferEncoding())

	pf, ok := h.PluralForms()
	require.True(t, ok)
	assert.Equal(t, 2, pf.NPlurals)

	removed := h.ToBuilder().Remove(HeaderPluralForms).Build()
	_, ok = removed.PluralForms()
	assert.False(t, ok)
	assert.Len(t, h.Fields(), 6)
}

func TestHeaderToEntryRoundTrip(t *testing.T) {
	h := NewHeaderBuilder().
		Set(HeaderLanguage, "ja").
		Set(HeaderXGenerator, "po-codec").
		AddTranslatorComment("Japanese translation").
		AddFlag("fuzzy").
		Build()

	e := h.ToEntry()
	assert.True(t, e.IsHeader())
	body, _ := e.Translation()
	assert.Equal(t, "Language: ja\nX-Generator: po-codec\n", body)

	back, err := NewHeaderFromEntry(e)
	require.NoError(t, err)
	assert.True(t, h.Equal(back))
	assert.Equal(t, "po-codec", back.Generator())
}

func TestParsePluralForms(t *testing.T) {
	for _, tc := range []struct {
		in       string
		nplurals int
		expr     string
		ok       bool
	}{
		{"nplurals=2; plural=(n != 1);", 2, "(n != 1)", true},
		{"nplurals=1; plural=0;", 1, "0", true},
		{"  nplurals = 3 ; plural = n%10==1 && n%100!=11 ? 0 : 1  ", 3, "n%10==1 && n%100!=11 ? 0 : 1", true},
		{"NPLURALS=2; PLURAL=n>1;", 2, "n>1", true},
		{"nplurals=0; plural=0;", 0, "", false},
		{"plural=0;", 0, "", false},
		{"", 0, "", false},
	} {
		pf, err := ParsePluralForms(tc.in)
		if !tc.ok {
			assert.Error(t, err, "ParsePluralForms(%q)", tc.in)
			continue
		}
		require.NoError(t, err, "ParsePluralForms(%q)", tc.in)
		assert.Equal(t, tc.nplurals, pf.NPlurals)
		assert.Equal(t, tc.expr, pf.Expression)
	}

	assert.Equal(t, "nplurals=2; plural=(n != 1);", PluralForms{NPlurals: 2, Expression: "(n != 1)"}.String())
}
