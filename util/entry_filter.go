package util

import "github.com/git-l10n/po-codec/po"

// EntryStateFilter specifies which entry states to include.
// Used by cat and json to filter entries by translation state.
type EntryStateFilter struct {
	// Translated: msgstr not empty, not fuzzy
	Translated bool
	// Untranslated: msgstr empty
	Untranslated bool
	// Fuzzy: marked fuzzy in comments
	Fuzzy bool
	// WithObsolete: include obsolete entries (default true when no filter flags)
	WithObsolete bool
	// NoObsolete: exclude obsolete entries (overrides WithObsolete)
	NoObsolete bool
	// OnlySame: only entries where msgstr == msgid (mutually exclusive with others)
	OnlySame bool
	// OnlyObsolete: only obsolete entries (mutually exclusive with others)
	OnlyObsolete bool
}

// DefaultFilter returns the default filter: all states including obsolete.
func DefaultFilter() EntryStateFilter {
	return EntryStateFilter{WithObsolete: true}
}

// HasStateFilter returns true if any of --translated, --untranslated, --fuzzy was set.
func (f EntryStateFilter) HasStateFilter() bool {
	return f.Translated || f.Untranslated || f.Fuzzy
}

// IncludeObsolete returns true if obsolete entries should be included.
func (f EntryStateFilter) IncludeObsolete() bool {
	if f.NoObsolete {
		return false
	}
	return f.WithObsolete
}

// MatchEntryState returns true if the entry matches the filter.
func MatchEntryState(e *po.Entry, filter EntryStateFilter) bool {
	if filter.OnlySame {
		return IsSameEntry(e) && !e.IsObsolete()
	}
	if filter.OnlyObsolete {
		return e.IsObsolete()
	}

	if e.IsObsolete() {
		return filter.IncludeObsolete()
	}

	// Any of translated/untranslated/fuzzy: OR of those
	if filter.HasStateFilter() {
		matched := false
		if filter.Translated && e.IsTranslated() && !e.IsFuzzy() {
			matched = true
		}
		if filter.Untranslated && !e.IsTranslated() {
			matched = true
		}
		if filter.Fuzzy && e.IsFuzzy() {
			matched = true
		}
		return matched
	}

	return true
}

// FilterFile returns a copy of f holding only the entries that match the
// filter. The header is kept.
func FilterFile(f *po.File, filter EntryStateFilter) *po.File {
	b := f.ToBuilder().ClearEntries().ClearObsolete()
	for _, e := range f.Entries() {
		if MatchEntryState(e, filter) {
			b.Add(e)
		}
	}
	for _, e := range f.ObsoleteEntries() {
		if MatchEntryState(e, filter) {
			b.AddObsolete(e)
		}
	}
	return b.Build()
}

// IsSameEntry reports whether the (first) translation equals msgid, which
// usually means the message was copied rather than translated.
func IsSameEntry(e *po.Entry) bool {
	s, ok := e.TranslationAt(0)
	return ok && s == e.ID()
}

// ClearFuzzy removes the fuzzy marker from the active entries of f. With
// clearTranslation the translations of fuzzy entries are emptied as well,
// keeping the number of plural forms.
func ClearFuzzy(f *po.File, clearTranslation bool) *po.File {
	b := f.ToBuilder().ClearEntries()
	for _, e := range f.Entries() {
		if !e.IsFuzzy() {
			b.Add(e)
			continue
		}
		eb := e.ToBuilder().RemoveFlag(po.FlagFuzzy).ClearPrevious()
		if clearTranslation {
			if e.IsPlural() {
				eb.PluralTranslations(make([]string, len(e.PluralTranslations())))
			} else {
				eb.Translation("")
			}
		}
		b.Add(eb.MustBuild())
	}
	return b.Build()
}
