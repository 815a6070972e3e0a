package po

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryBuilderValidation(t *testing.T) {
	_, err := NewEntryBuilder().Translation("x").Build()
	assert.True(t, errors.Is(err, ErrMissingID))

	_, err = NewEntryBuilder().ID("a").PluralID("b").Translation("x").SetPluralTranslation(0, "y").Build()
	assert.True(t, errors.Is(err, ErrSingularAndPlural))

	_, err = NewEntryBuilder().ID("a").SetPluralTranslation(0, "y").Build()
	assert.True(t, errors.Is(err, ErrPluralWithoutID))

	assert.Panics(t, func() { NewEntryBuilder().MustBuild() })
}

func TestEntryOptionalFields(t *testing.T) {
	e := NewEntryBuilder().ID("id").MustBuild()
	_, ok := e.Context()
	assert.False(t, ok)
	assert.False(t, e.HasContext())
	_, ok = e.Translation()
	assert.False(t, ok)
	assert.False(t, e.IsTranslated())

	e = NewEntryBuilder().Context("").ID("").Translation("").MustBuild()
	assert.True(t, e.HasContext())
	assert.False(t, e.IsHeader())
	tr, ok := e.Translation()
	assert.True(t, ok)
	assert.Equal(t, "", tr)
}

func TestEntryTranslationAt(t *testing.T) {
	singular := NewEntryBuilder().ID("a").Translation("b").MustBuild()
	s, ok := singular.TranslationAt(0)
	assert.True(t, ok)
	assert.Equal(t, "b", s)
	_, ok = singular.TranslationAt(1)
	assert.False(t, ok)

	plural := NewEntryBuilder().ID("a").PluralID("as").
		SetPluralTranslation(1, "two").MustBuild()
	assert.Equal(t, []string{"", "two"}, plural.PluralTranslations())
	s, ok = plural.TranslationAt(1)
	assert.True(t, ok)
	assert.Equal(t, "two", s)
	_, ok = plural.TranslationAt(2)
	assert.False(t, ok)
	assert.True(t, plural.IsTranslated())
}

func TestEntryIsImmutable(t *testing.T) {
	refs := []string{"a.c:1"}
	e := NewEntryBuilder().ID("a").References(refs).MustBuild()
	refs[0] = "changed"
	assert.Equal(t, []string{"a.c:1"}, e.References())

	got := e.References()
	got[0] = "changed"
	assert.Equal(t, []string{"a.c:1"}, e.References())
}

func TestEntryFlags(t *testing.T) {
	b := NewEntryBuilder().ID("a").AddFlag("fuzzy").AddFlag("c-format").AddFlag("fuzzy")
	e := b.MustBuild()
	assert.Equal(t, []string{"fuzzy", "c-format"}, e.Flags())
	assert.True(t, e.IsFuzzy())

	e = b.RemoveFlag("fuzzy").MustBuild()
	assert.False(t, e.IsFuzzy())
	assert.True(t, e.HasFlag("c-format"))
}

func TestEntryEqual(t *testing.T) {
	a := NewEntryBuilder().ID("a").Translation("b").Flags([]string{"x", "y"}).MustBuild()
	b := NewEntryBuilder().ID("a").Translation("b").Flags([]string{"y", "x"}).MustBuild()
	assert.True(t, a.Equal(b))

	c := NewEntryBuilder().ID("a").Translation("b").Flags([]string{"x", "y"}).Obsolete(true).MustBuild()
	assert.False(t, a.Equal(c))

	d := NewEntryBuilder().ID("a").MustBuild()
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
}

func TestEntryToBuilder(t *testing.T) {
	orig := NewEntryBuilder().
		Context("ctx").
		ID("file").
		PluralID("files").
		PluralTranslations([]string{"fichier", "fichiers"}).
		AddFlag("fuzzy").
		PreviousID("old").
		MustBuild()

	same, err := orig.ToBuilder().Build()
	require.NoError(t, err)
	assert.True(t, orig.Equal(same))

	changed := orig.ToBuilder().RemoveFlag("fuzzy").ClearPrevious().SetPluralTranslation(1, "dossiers").MustBuild()
	assert.False(t, changed.IsFuzzy())
	_, ok := changed.PreviousID()
	assert.False(t, ok)
	assert.Equal(t, []string{"fichier", "dossiers"}, changed.PluralTranslations())

	assert.True(t, orig.IsFuzzy())
	assert.Equal(t, []string{"fichier", "fichiers"}, orig.PluralTranslations())
}

func TestEntryString(t *testing.T) {
	e := NewEntryBuilder().Context("menu").ID("Open").Translation("Ouvrir").AddFlag("fuzzy").MustBuild()
	assert.Equal(t, `Entry{msgctxt="menu", msgid="Open", msgstr="Ouvrir", fuzzy}`, e.String())
}

func TestFileBuilderRouting(t *testing.T) {
	header := NewEntryBuilder().ID("").Translation("Language: de\n").MustBuild()
	active := NewEntryBuilder().ID("a").Translation("b").MustBuild()
	obsolete := NewEntryBuilder().ID("").Translation("x").Obsolete(true).MustBuild()

	f := NewFileBuilder().Add(active).Add(header).Add(obsolete).Build()
	require.NotNil(t, f.Header())
	assert.Equal(t, "de", f.Header().Language())
	assert.Equal(t, []*Entry{active}, f.Entries())
	assert.Equal(t, []*Entry{obsolete}, f.ObsoleteEntries())

	g := f.ToBuilder().ClearObsolete().SetHeader(nil).Build()
	assert.Nil(t, g.Header())
	assert.Empty(t, g.ObsoleteEntries())
	assert.Equal(t, 1, g.Len())
	assert.Len(t, f.ObsoleteEntries(), 1)

	assert.Equal(t, 0, f.ToBuilder().ClearEntries().Build().Len())
}

func TestFileQueries(t *testing.T) {
	b := NewFileBuilder()
	b.Add(NewEntryBuilder().ID("dup").Translation("1").MustBuild())
	b.Add(NewEntryBuilder().Context("c").ID("dup").Translation("2").AddFlag("fuzzy").MustBuild())
	b.Add(NewEntryBuilder().ID("empty").Translation("").AddFlag("no-c-format").MustBuild())
	f := b.Build()

	assert.Len(t, f.FindAllByID("dup"), 2)
	found := f.FindByID("dup")
	require.NotNil(t, found)
	assert.False(t, found.HasContext())
	assert.Len(t, f.FuzzyEntries(), 1)
	assert.Len(t, f.UntranslatedEntries(), 1)
	assert.Len(t, f.EntriesWithFlag("no-c-format"), 1)
	assert.Equal(t, 2, f.TranslatedCount())
}
