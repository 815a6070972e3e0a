package util

import (
	"fmt"
	"strings"

	"github.com/git-l10n/po-codec/po"
)

// PoReportStats holds statistics for a PO file.
type PoReportStats struct {
	Translated   int // Entries with non-empty translation, not fuzzy, not same as msgid
	Untranslated int // Entries with empty msgstr
	Same         int // Entries where msgstr equals msgid (suspect untranslated)
	Fuzzy        int // Entries with fuzzy flag
	Obsolete     int // Obsolete entries (#~ format)
}

// Total returns the number of active entries.
func (s *PoReportStats) Total() int {
	return s.Translated + s.Untranslated + s.Same + s.Fuzzy
}

// CountReportStats returns entry statistics of f. The header is not counted.
func CountReportStats(f *po.File) *PoReportStats {
	stats := &PoReportStats{Obsolete: len(f.ObsoleteEntries())}

	for _, e := range f.Entries() {
		switch {
		case e.IsFuzzy():
			stats.Fuzzy++
		case !e.IsTranslated():
			stats.Untranslated++
		case IsSameEntry(e):
			stats.Same++
		default:
			stats.Translated++
		}
	}
	return stats
}

// FormatMsgfmtStatistics formats stats the way "msgfmt --statistics" does,
// where same messages count as translated.
func FormatMsgfmtStatistics(stats *PoReportStats) string {
	var parts []string
	parts = appendCount(parts, stats.Translated+stats.Same, "translated message", "translated messages")
	parts = appendCount(parts, stats.Fuzzy, "fuzzy translation", "fuzzy translations")
	parts = appendCount(parts, stats.Untranslated, "untranslated message", "untranslated messages")
	if len(parts) == 0 {
		return "0 translated messages.\n"
	}
	return strings.Join(parts, ", ") + ".\n"
}

// FormatStatLine formats stats in one line, similar to msgfmt --statistics,
// but also includes same and obsolete. Only non-zero categories are shown.
func FormatStatLine(stats *PoReportStats) string {
	var parts []string
	parts = appendCount(parts, stats.Translated, "translated message", "translated messages")
	parts = appendCount(parts, stats.Fuzzy, "fuzzy translation", "fuzzy translations")
	parts = appendCount(parts, stats.Untranslated, "untranslated message", "untranslated messages")
	parts = appendCount(parts, stats.Same, "same message", "same messages")
	parts = appendCount(parts, stats.Obsolete, "obsolete entry", "obsolete entries")
	if len(parts) == 0 {
		return "0 translated messages.\n"
	}
	return strings.Join(parts, ", ") + ".\n"
}

func appendCount(parts []string, n int, singular, plural string) []string {
	switch {
	case n == 1:
		return append(parts, "1 "+singular)
	case n > 1:
		return append(parts, fmt.Sprintf("%d %s", n, plural))
	}
	return parts
}
