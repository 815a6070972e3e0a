package po

// File is an immutable parsed catalog: an optional header, the active
// entries and the obsolete entries, each in source order.
type File struct {
	header   *Header
	entries  []*Entry
	obsolete []*Entry
}

// Header returns the header, or nil if the catalog has none.
func (f *File) Header() *Header {
	return f.header
}

// Entries returns the active entries.
func (f *File) Entries() []*Entry {
	return cloneEntries(f.entries)
}

// ObsoleteEntries returns the "#~" entries.
func (f *File) ObsoleteEntries() []*Entry {
	return cloneEntries(f.obsolete)
}

// Len returns the number of active entries.
func (f *File) Len() int {
	return len(f.entries)
}

// FindByID returns the first active entry with msgid id.
func (f *File) FindByID(id string) *Entry {
	for _, e := range f.entries {
		if e.id == id {
			return e
		}
	}
	return nil
}

// FindByIDAndContext returns the first active entry matching msgid and
// msgctxt.
func (f *File) FindByIDAndContext(id, context string) *Entry {
	for _, e := range f.entries {
		if e.id == id && e.context != nil && *e.context == context {
			return e
		}
	}
	return nil
}

// FindAllByID returns every active entry with msgid id.
func (f *File) FindAllByID(id string) []*Entry {
	return f.filter(func(e *Entry) bool { return e.id == id })
}

// FuzzyEntries returns the active entries marked fuzzy.
func (f *File) FuzzyEntries() []*Entry {
	return f.filter((*Entry).IsFuzzy)
}

// UntranslatedEntries returns the active entries without a translation.
func (f *File) UntranslatedEntries() []*Entry {
	return f.filter(func(e *Entry) bool { return !e.IsTranslated() })
}

// EntriesWithFlag returns the active entries carrying flag.
func (f *File) EntriesWithFlag(flag string) []*Entry {
	return f.filter(func(e *Entry) bool { return e.HasFlag(flag) })
}

// TranslatedCount counts translated active entries.
func (f *File) TranslatedCount() int {
	return f.count((*Entry).IsTranslated)
}

// FuzzyCount counts fuzzy active entries.
func (f *File) FuzzyCount() int {
	return f.count((*Entry).IsFuzzy)
}

// UntranslatedCount counts active entries without a translation.
func (f *File) UntranslatedCount() int {
	return f.count(func(e *Entry) bool { return !e.IsTranslated() })
}

func (f *File) filter(match func(*Entry) bool) []*Entry {
	var out []*Entry
	for _, e := range f.entries {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f *File) count(match func(*Entry) bool) int {
	n := 0
	for _, e := range f.entries {
		if match(e) {
			n++
		}
	}
	return n
}

// ToBuilder returns a builder seeded with the contents of f.
func (f *File) ToBuilder() *FileBuilder {
	return &FileBuilder{
		header:   f.header,
		entries:  cloneEntries(f.entries),
		obsolete: cloneEntries(f.obsolete),
	}
}

// FileBuilder collects entries into a File.
type FileBuilder struct {
	header   *Header
	entries  []*Entry
	obsolete []*Entry
}

// NewFileBuilder returns an empty builder.
func NewFileBuilder() *FileBuilder {
	return &FileBuilder{}
}

// Add routes e: obsolete entries go to the obsolete list, the header entry
// becomes the Header and everything else is appended to the active list.
func (b *FileBuilder) Add(e *Entry) *FileBuilder {
	switch {
	case e.IsObsolete():
		b.obsolete = append(b.obsolete, e)
	case e.IsHeader():
		h, _ := NewHeaderFromEntry(e)
		b.header = h
	default:
		b.entries = append(b.entries, e)
	}
	return b
}

// SetHeader replaces the header; nil removes it.
func (b *FileBuilder) SetHeader(h *Header) *FileBuilder {
	b.header = h
	return b
}

// AddObsolete appends e to the obsolete list regardless of its shape.
func (b *FileBuilder) AddObsolete(e *Entry) *FileBuilder {
	b.obsolete = append(b.obsolete, e)
	return b
}

// ClearEntries drops all active entries.
func (b *FileBuilder) ClearEntries() *FileBuilder {
	b.entries = nil
	return b
}

// ClearObsolete drops all obsolete entries.
func (b *FileBuilder) ClearObsolete() *FileBuilder {
	b.obsolete = nil
	return b
}

// Build returns the File.
func (b *FileBuilder) Build() *File {
	return &File{
		header:   b.header,
		entries:  cloneEntries(b.entries),
		obsolete: cloneEntries(b.obsolete),
	}
}

func cloneEntries(list []*Entry) []*Entry {
	if len(list) == 0 {
		return nil
	}
	out := make([]*Entry, len(list))
	copy(out, list)
	return out
}
