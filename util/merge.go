package util

import (
	"github.com/git-l10n/po-codec/po"
	log "github.com/sirupsen/logrus"
)

// MergeFiles concatenates catalogs like msgcat --use-first. The first header
// found is kept. For entries with the same msgctxt and msgid the first
// occurrence wins. Obsolete entries whose key is active in the result are
// dropped.
func MergeFiles(files ...*po.File) *po.File {
	var (
		b        = po.NewFileBuilder()
		active   = make(map[string]bool)
		obsolete = make(map[string]bool)
		dups     int
		header   *po.Header
	)

	for _, f := range files {
		if header == nil && f.Header() != nil {
			header = f.Header()
		}
		for _, e := range f.Entries() {
			key := EntryKey(e)
			if active[key] {
				dups++
				continue
			}
			active[key] = true
			b.Add(e)
		}
	}
	for _, f := range files {
		for _, e := range f.ObsoleteEntries() {
			key := EntryKey(e)
			if active[key] || obsolete[key] {
				continue
			}
			obsolete[key] = true
			b.AddObsolete(e)
		}
	}
	if dups > 0 {
		log.Debugf("merge: dropped %d duplicate entries", dups)
	}
	return b.SetHeader(header).Build()
}
