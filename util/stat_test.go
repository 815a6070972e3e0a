package util

import "testing"

func TestCountReportStats(t *testing.T) {
	stats := CountReportStats(parseTestPO(t, testPO))

	want := PoReportStats{Translated: 3, Untranslated: 1, Same: 1, Fuzzy: 1, Obsolete: 1}
	if *stats != want {
		t.Errorf("stats: want %+v, got %+v", want, *stats)
	}
	if stats.Total() != 6 {
		t.Errorf("total: want 6, got %d", stats.Total())
	}
}

func TestFormatMsgfmtStatistics(t *testing.T) {
	for _, tc := range []struct {
		stats PoReportStats
		want  string
	}{
		{PoReportStats{}, "0 translated messages.\n"},
		{PoReportStats{Translated: 1}, "1 translated message.\n"},
		{PoReportStats{Translated: 2, Same: 1, Fuzzy: 1, Untranslated: 3, Obsolete: 5},
			"3 translated messages, 1 fuzzy translation, 3 untranslated messages.\n"},
		{PoReportStats{Fuzzy: 2, Untranslated: 1}, "2 fuzzy translations, 1 untranslated message.\n"},
	} {
		if got := FormatMsgfmtStatistics(&tc.stats); got != tc.want {
			t.Errorf("FormatMsgfmtStatistics(%+v): want %q, got %q", tc.stats, tc.want, got)
		}
	}
}

func TestFormatStatLine(t *testing.T) {
	for _, tc := range []struct {
		stats PoReportStats
		want  string
	}{
		{PoReportStats{}, "0 translated messages.\n"},
		{PoReportStats{Translated: 3, Untranslated: 1, Same: 1, Fuzzy: 1, Obsolete: 1},
			"3 translated messages, 1 fuzzy translation, 1 untranslated message, 1 same message, 1 obsolete entry.\n"},
		{PoReportStats{Same: 2, Obsolete: 2}, "2 same messages, 2 obsolete entries.\n"},
	} {
		if got := FormatStatLine(&tc.stats); got != tc.want {
			t.Errorf("FormatStatLine(%+v): want %q, got %q", tc.stats, tc.want, got)
		}
	}
}
