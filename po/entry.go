package po

import (
	"fmt"
	"sort"
	"strings"
)

// FlagFuzzy marks a translation that needs review.
const FlagFuzzy = "fuzzy"

// Entry is one immutable translation unit. Create it with an EntryBuilder;
// use ToBuilder to derive a modified copy.
type Entry struct {
	context            *string
	id                 string
	pluralID           *string
	translation        *string
	pluralTranslations []string
	translatorComments []string
	extractedComments  []string
	references         []string
	flags              []string
	previousContext    *string
	previousID         *string
	previousPluralID   *string
	obsolete           bool
}

// ID returns the msgid.
func (e *Entry) ID() string {
	return e.id
}

// Context returns the msgctxt and whether it is set.
func (e *Entry) Context() (string, bool) {
	return optional(e.context)
}

// HasContext returns true if msgctxt is set, even to an empty string.
func (e *Entry) HasContext() bool {
	return e.context != nil
}

// PluralID returns the msgid_plural and whether it is set.
func (e *Entry) PluralID() (string, bool) {
	return optional(e.pluralID)
}

// Translation returns the singular msgstr and whether it is set.
func (e *Entry) Translation() (string, bool) {
	return optional(e.translation)
}

// PluralTranslations returns a copy of the msgstr[N] values.
func (e *Entry) PluralTranslations() []string {
	return cloneStrings(e.pluralTranslations)
}

// TranslationAt returns msgstr[i] for plural entries, or msgstr for i == 0
// on singular entries.
func (e *Entry) TranslationAt(i int) (string, bool) {
	if !e.IsPlural() {
		if i == 0 {
			return e.Translation()
		}
		return "", false
	}
	if i < 0 || i >= len(e.pluralTranslations) {
		return "", false
	}
	return e.pluralTranslations[i], true
}

// TranslatorComments returns the "# " comments.
func (e *Entry) TranslatorComments() []string {
	return cloneStrings(e.translatorComments)
}

// ExtractedComments returns the "#." comments.
func (e *Entry) ExtractedComments() []string {
	return cloneStrings(e.extractedComments)
}

// References returns the "#:" source references, one per item.
func (e *Entry) References() []string {
	return cloneStrings(e.references)
}

// Flags returns the "#," flags in first-seen order.
func (e *Entry) Flags() []string {
	return cloneStrings(e.flags)
}

// PreviousContext returns the "#| msgctxt" value.
func (e *Entry) PreviousContext() (string, bool) {
	return optional(e.previousContext)
}

// PreviousID returns the "#| msgid" value.
func (e *Entry) PreviousID() (string, bool) {
	return optional(e.previousID)
}

// PreviousPluralID returns the "#| msgid_plural" value.
func (e *Entry) PreviousPluralID() (string, bool) {
	return optional(e.previousPluralID)
}

// IsObsolete returns true for "#~" entries.
func (e *Entry) IsObsolete() bool {
	return e.obsolete
}

// IsPlural returns true if msgid_plural is set.
func (e *Entry) IsPlural() bool {
	return e.pluralID != nil
}

// IsHeader returns true for the entry with an empty msgid and no msgctxt.
func (e *Entry) IsHeader() bool {
	return e.id == "" && e.context == nil
}

// HasFlag reports whether flag is set.
func (e *Entry) HasFlag(flag string) bool {
	for _, f := range e.flags {
		if f == flag {
			return true
		}
	}
	return false
}

// IsFuzzy reports whether the fuzzy flag is set.
func (e *Entry) IsFuzzy() bool {
	return e.HasFlag(FlagFuzzy)
}

// IsTranslated returns true if the entry has a non-empty translation. For
// plural entries any non-empty form counts.
func (e *Entry) IsTranslated() bool {
	if e.IsPlural() {
		for _, s := range e.pluralTranslations {
			if s != "" {
				return true
			}
		}
		return false
	}
	return e.translation != nil && *e.translation != ""
}

// Equal reports whether e and other carry the same values in every field.
// Flags are compared as sets.
func (e *Entry) Equal(other *Entry) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.id == other.id &&
		e.obsolete == other.obsolete &&
		equalOptional(e.context, other.context) &&
		equalOptional(e.pluralID, other.pluralID) &&
		equalOptional(e.translation, other.translation) &&
		equalOptional(e.previousContext, other.previousContext) &&
		equalOptional(e.previousID, other.previousID) &&
		equalOptional(e.previousPluralID, other.previousPluralID) &&
		equalStrings(e.pluralTranslations, other.pluralTranslations) &&
		equalStrings(e.translatorComments, other.translatorComments) &&
		equalStrings(e.extractedComments, other.extractedComments) &&
		equalStrings(e.references, other.references) &&
		equalStringSets(e.flags, other.flags)
}

// ToBuilder returns a builder seeded with the values of e.
func (e *Entry) ToBuilder() *EntryBuilder {
	b := &EntryBuilder{
		context:            copyOptional(e.context),
		id:                 copyOptional(&e.id),
		pluralID:           copyOptional(e.pluralID),
		translation:        copyOptional(e.translation),
		translatorComments: cloneStrings(e.translatorComments),
		extractedComments:  cloneStrings(e.extractedComments),
		references:         cloneStrings(e.references),
		flags:              cloneStrings(e.flags),
		previousContext:    copyOptional(e.previousContext),
		previousID:         copyOptional(e.previousID),
		previousPluralID:   copyOptional(e.previousPluralID),
		obsolete:           e.obsolete,
	}
	if len(e.pluralTranslations) > 0 {
		b.plurals = make(map[int]string, len(e.pluralTranslations))
		for i, s := range e.pluralTranslations {
			b.plurals[i] = s
		}
	}
	return b
}

func (e *Entry) String() string {
	var b strings.Builder
	b.WriteString("Entry{")
	if e.context != nil {
		fmt.Fprintf(&b, "msgctxt=%q, ", truncate(*e.context))
	}
	fmt.Fprintf(&b, "msgid=%q", truncate(e.id))
	if e.IsPlural() {
		fmt.Fprintf(&b, ", msgid_plural=%q, msgstr[%d]", truncate(*e.pluralID), len(e.pluralTranslations))
	} else if e.translation != nil {
		fmt.Fprintf(&b, ", msgstr=%q", truncate(*e.translation))
	}
	if e.obsolete {
		b.WriteString(", obsolete")
	}
	if e.IsFuzzy() {
		b.WriteString(", fuzzy")
	}
	b.WriteString("}")
	return b.String()
}

// EntryBuilder accumulates the fields of an Entry.
type EntryBuilder struct {
	context            *string
	id                 *string
	pluralID           *string
	translation        *string
	plurals            map[int]string
	translatorComments []string
	extractedComments  []string
	references         []string
	flags              []string
	previousContext    *string
	previousID         *string
	previousPluralID   *string
	obsolete           bool
}

// NewEntryBuilder returns an empty builder.
func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{}
}

// Context sets msgctxt.
func (b *EntryBuilder) Context(s string) *EntryBuilder {
	b.context = &s
	return b
}

// ClearContext unsets msgctxt.
func (b *EntryBuilder) ClearContext() *EntryBuilder {
	b.context = nil
	return b
}

// ID sets msgid.
func (b *EntryBuilder) ID(s string) *EntryBuilder {
	b.id = &s
	return b
}

// PluralID sets msgid_plural.
func (b *EntryBuilder) PluralID(s string) *EntryBuilder {
	b.pluralID = &s
	return b
}

// ClearPluralID unsets msgid_plural.
func (b *EntryBuilder) ClearPluralID() *EntryBuilder {
	b.pluralID = nil
	return b
}

// Translation sets the singular msgstr.
func (b *EntryBuilder) Translation(s string) *EntryBuilder {
	b.translation = &s
	return b
}

// ClearTranslation unsets the singular msgstr.
func (b *EntryBuilder) ClearTranslation() *EntryBuilder {
	b.translation = nil
	return b
}

// PluralTranslations replaces all msgstr[N] values.
func (b *EntryBuilder) PluralTranslations(list []string) *EntryBuilder {
	b.plurals = nil
	for i, s := range list {
		b.SetPluralTranslation(i, s)
	}
	return b
}

// SetPluralTranslation sets msgstr[i]. Missing lower indices become empty
// strings when the entry is built.
func (b *EntryBuilder) SetPluralTranslation(i int, s string) *EntryBuilder {
	if b.plurals == nil {
		b.plurals = make(map[int]string)
	}
	b.plurals[i] = s
	return b
}

// AddTranslatorComment appends a "# " comment.
func (b *EntryBuilder) AddTranslatorComment(s string) *EntryBuilder {
	b.translatorComments = append(b.translatorComments, s)
	return b
}

// TranslatorComments replaces the "# " comments.
func (b *EntryBuilder) TranslatorComments(list []string) *EntryBuilder {
	b.translatorComments = cloneStrings(list)
	return b
}

// AddExtractedComment appends a "#." comment.
func (b *EntryBuilder) AddExtractedComment(s string) *EntryBuilder {
	b.extractedComments = append(b.extractedComments, s)
	return b
}

// ExtractedComments replaces the "#." comments.
func (b *EntryBuilder) ExtractedComments(list []string) *EntryBuilder {
	b.extractedComments = cloneStrings(list)
	return b
}

// AddReference appends a source reference.
func (b *EntryBuilder) AddReference(s string) *EntryBuilder {
	b.references = append(b.references, s)
	return b
}

// References replaces the source references.
func (b *EntryBuilder) References(list []string) *EntryBuilder {
	b.references = cloneStrings(list)
	return b
}

// AddFlag adds flag unless it is already present.
func (b *EntryBuilder) AddFlag(flag string) *EntryBuilder {
	for _, f := range b.flags {
		if f == flag {
			return b
		}
	}
	b.flags = append(b.flags, flag)
	return b
}

// RemoveFlag drops flag if present.
func (b *EntryBuilder) RemoveFlag(flag string) *EntryBuilder {
	out := b.flags[:0]
	for _, f := range b.flags {
		if f != flag {
			out = append(out, f)
		}
	}
	b.flags = out
	return b
}

// Flags replaces all flags.
func (b *EntryBuilder) Flags(list []string) *EntryBuilder {
	b.flags = nil
	for _, f := range list {
		b.AddFlag(f)
	}
	return b
}

// PreviousContext sets "#| msgctxt".
func (b *EntryBuilder) PreviousContext(s string) *EntryBuilder {
	b.previousContext = &s
	return b
}

// PreviousID sets "#| msgid".
func (b *EntryBuilder) PreviousID(s string) *EntryBuilder {
	b.previousID = &s
	return b
}

// PreviousPluralID sets "#| msgid_plural".
func (b *EntryBuilder) PreviousPluralID(s string) *EntryBuilder {
	b.previousPluralID = &s
	return b
}

// ClearPrevious unsets all three previous values.
func (b *EntryBuilder) ClearPrevious() *EntryBuilder {
	b.previousContext, b.previousID, b.previousPluralID = nil, nil, nil
	return b
}

// Obsolete marks the entry as obsolete.
func (b *EntryBuilder) Obsolete(obsolete bool) *EntryBuilder {
	b.obsolete = obsolete
	return b
}

// Build validates the accumulated fields and returns the entry.
func (b *EntryBuilder) Build() (*Entry, error) {
	if b.id == nil {
		return nil, ErrMissingID
	}
	if len(b.plurals) > 0 {
		if b.translation != nil {
			return nil, ErrSingularAndPlural
		}
		if b.pluralID == nil {
			return nil, ErrPluralWithoutID
		}
	}

	e := &Entry{
		context:            copyOptional(b.context),
		id:                 *b.id,
		pluralID:           copyOptional(b.pluralID),
		translation:        copyOptional(b.translation),
		pluralTranslations: densify(b.plurals),
		translatorComments: cloneStrings(b.translatorComments),
		extractedComments:  cloneStrings(b.extractedComments),
		references:         cloneStrings(b.references),
		flags:              cloneStrings(b.flags),
		previousContext:    copyOptional(b.previousContext),
		previousID:         copyOptional(b.previousID),
		previousPluralID:   copyOptional(b.previousPluralID),
		obsolete:           b.obsolete,
	}
	return e, nil
}

// MustBuild is like Build but panics on invalid input.
func (b *EntryBuilder) MustBuild() *Entry {
	e, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("po: invalid entry: %v", err))
	}
	return e
}

// densify turns an index map into a list from 0 to the highest index,
// filling gaps with empty strings.
func densify(m map[int]string) []string {
	if len(m) == 0 {
		return nil
	}
	indexes := make([]int, 0, len(m))
	for i := range m {
		if i >= 0 {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		return nil
	}
	sort.Ints(indexes)
	list := make([]string, indexes[len(indexes)-1]+1)
	for _, i := range indexes {
		list[i] = m[i]
	}
	return list
}

func optional(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	return *p, true
}

func copyOptional(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneStrings(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalStringSets(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			return false
		}
	}
	return true
}

func truncate(s string) string {
	const max = 40
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
