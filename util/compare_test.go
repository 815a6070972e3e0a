package util

import (
	"testing"

	"github.com/git-l10n/po-codec/po"
)

func TestCompareFiles(t *testing.T) {
	oldFile := parseTestPO(t, `msgid ""
msgstr "Language: de\n"

msgid "keep"
msgstr "behalten"

#: old.c:1
msgid "moved"
msgstr "verschoben"

msgid "change"
msgstr "alt"

msgid "delete"
msgstr "weg"

msgctxt "a"
msgid "ctx"
msgstr "A"
`)
	newFile := parseTestPO(t, `msgid ""
msgstr "Language: de\n"
"X-Generator: test\n"

msgid "add"
msgstr ""

msgid "keep"
msgstr "behalten"

#: new.c:9
msgid "moved"
msgstr "verschoben"

#, fuzzy
msgid "change"
msgstr "alt"

msgctxt "b"
msgid "ctx"
msgstr "A"

#~ msgid "delete"
#~ msgstr "weg"
`)

	stat, review := CompareFiles(oldFile, newFile)
	want := DiffStat{Added: 2, Changed: 1, Deleted: 2}
	if stat != want {
		t.Errorf("stat: want %+v, got %+v", want, stat)
	}
	if stat.String() != "2 added, 1 changed, 2 deleted" {
		t.Errorf("String(): got %q", stat.String())
	}

	var ids []string
	for _, e := range review.Entries() {
		ids = append(ids, EntryKey(e))
	}
	wantIDs := []string{"add", "change", "b\x04ctx"}
	if len(ids) != len(wantIDs) {
		t.Fatalf("review entries: want %q, got %q", wantIDs, ids)
	}
	for i := range ids {
		if ids[i] != wantIDs[i] {
			t.Errorf("review entry %d: want %q, got %q", i, wantIDs[i], ids[i])
		}
	}
	if review.Header() == nil || review.Header().Generator() != "test" {
		t.Errorf("review catalog should carry the new header")
	}

	stat, review = CompareFiles(newFile, newFile)
	if !stat.IsEmpty() || review.Len() != 0 {
		t.Errorf("identical files: got %+v, %d entries", stat, review.Len())
	}
}

func TestEntryKey(t *testing.T) {
	noCtx := po.NewEntryBuilder().ID("a").MustBuild()
	emptyCtx := po.NewEntryBuilder().Context("").ID("a").MustBuild()
	if EntryKey(noCtx) == EntryKey(emptyCtx) {
		t.Errorf("empty context and no context must not share a key")
	}
}

func TestEntriesEqual(t *testing.T) {
	base := po.NewEntryBuilder().ID("a").PluralID("as").PluralTranslations([]string{"x", "y"})
	e1 := base.MustBuild()
	for _, tc := range []struct {
		name  string
		other *po.Entry
		equal bool
	}{
		{"comments ignored", e1.ToBuilder().AddTranslatorComment("note").AddReference("a.c:1").MustBuild(), true},
		{"translation", e1.ToBuilder().SetPluralTranslation(1, "z").MustBuild(), false},
		{"plural id", e1.ToBuilder().PluralID("bs").MustBuild(), false},
		{"fuzzy", e1.ToBuilder().AddFlag(po.FlagFuzzy).MustBuild(), false},
		{"obsolete", e1.ToBuilder().Obsolete(true).MustBuild(), false},
		{"context", e1.ToBuilder().Context("").MustBuild(), false},
	} {
		if got := EntriesEqual(e1, tc.other); got != tc.equal {
			t.Errorf("%s: want %v, got %v", tc.name, tc.equal, got)
		}
	}
}
