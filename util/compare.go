package util

import (
	"fmt"
	"sort"
	"strings"

	"github.com/git-l10n/po-codec/po"
	log "github.com/sirupsen/logrus"
)

// DiffStat counts the differences between two catalogs.
type DiffStat struct {
	Added   int // Entries in new but not in old
	Changed int // Same key but different content
	Deleted int // Entries in old but not in new
}

// String formats the stat like "2 added, 1 changed, 0 deleted".
func (d DiffStat) String() string {
	return fmt.Sprintf("%d added, %d changed, %d deleted", d.Added, d.Changed, d.Deleted)
}

// IsEmpty reports whether there is no difference.
func (d DiffStat) IsEmpty() bool {
	return d.Added == 0 && d.Changed == 0 && d.Deleted == 0
}

// EntryKey identifies an entry by msgctxt and msgid. An entry with an empty
// context and one without context have different keys.
func EntryKey(e *po.Entry) string {
	if ctx, ok := e.Context(); ok {
		return ctx + "\x04" + e.ID()
	}
	return e.ID()
}

// EntriesEqual compares the message content of two entries. Comments and
// references are ignored, so moving a message in the sources does not count
// as a change.
func EntriesEqual(e1, e2 *po.Entry) bool {
	if e1.IsFuzzy() != e2.IsFuzzy() {
		return false
	}
	if e1.IsObsolete() != e2.IsObsolete() {
		return false
	}
	if EntryKey(e1) != EntryKey(e2) {
		return false
	}
	p1, ok1 := e1.PluralID()
	p2, ok2 := e2.PluralID()
	if ok1 != ok2 || p1 != p2 {
		return false
	}
	s1, ok1 := e1.Translation()
	s2, ok2 := e2.Translation()
	if ok1 != ok2 || s1 != s2 {
		return false
	}
	l1, l2 := e1.PluralTranslations(), e2.PluralTranslations()
	if len(l1) != len(l2) {
		return false
	}
	for i := range l1 {
		if l1[i] != l2[i] {
			return false
		}
	}
	return true
}

// CompareFiles compares the active entries of oldFile and newFile. It
// returns the stat and a catalog with the header of newFile holding the
// entries that are new or changed, in the order of newFile.
func CompareFiles(oldFile, newFile *po.File) (DiffStat, *po.File) {
	oldEntries := sortedByKey(oldFile.Entries())
	newEntries := sortedByKey(newFile.Entries())

	var stat DiffStat
	review := make(map[*po.Entry]bool)
	i, j := 0, 0
	for i < len(oldEntries) && j < len(newEntries) {
		cmp := strings.Compare(EntryKey(oldEntries[i]), EntryKey(newEntries[j]))
		if cmp < 0 {
			stat.Deleted++
			i++
		} else if cmp > 0 {
			stat.Added++
			review[newEntries[j]] = true
			j++
		} else {
			if !EntriesEqual(oldEntries[i], newEntries[j]) {
				stat.Changed++
				review[newEntries[j]] = true
			}
			i++
			j++
		}
	}
	stat.Deleted += len(oldEntries) - i
	for ; j < len(newEntries); j++ {
		stat.Added++
		review[newEntries[j]] = true
	}
	log.Debugf("compare stats: deleted=%d, added=%d, changed=%d", stat.Deleted, stat.Added, stat.Changed)

	b := po.NewFileBuilder().SetHeader(newFile.Header())
	for _, e := range newFile.Entries() {
		if review[e] {
			b.Add(e)
		}
	}
	return stat, b.Build()
}

func sortedByKey(entries []*po.Entry) []*po.Entry {
	sort.SliceStable(entries, func(i, j int) bool {
		return EntryKey(entries[i]) < EntryKey(entries[j])
	})
	return entries
}

