package po

import (
	"fmt"
	"strings"
)

// Well-known header fields.
const (
	HeaderProjectIDVersion        = "Project-Id-Version"
	HeaderReportMsgidBugsTo       = "Report-Msgid-Bugs-To"
	HeaderPOTCreationDate         = "POT-Creation-Date"
	HeaderPORevisionDate          = "PO-Revision-Date"
	HeaderLastTranslator          = "Last-Translator"
	HeaderLanguageTeam            = "Language-Team"
	HeaderLanguage                = "Language"
	HeaderMIMEVersion             = "MIME-Version"
	HeaderContentType             = "Content-Type"
	HeaderContentTransferEncoding = "Content-Transfer-Encoding"
	HeaderPluralForms             = "Plural-Forms"
	HeaderXGenerator              = "X-Generator"
)

// HeaderField is one "Key: value" line of the header.
type HeaderField struct {
	Key   string
	Value string
}

// Header is the metadata carried by the msgstr of the entry with an empty
// msgid. Field order is preserved.
type Header struct {
	fields             []HeaderField
	translatorComments []string
	extractedComments  []string
	flags              []string
}

// NewHeaderFromEntry builds a Header from a header entry.
func NewHeaderFromEntry(e *Entry) (*Header, error) {
	if !e.IsHeader() {
		return nil, fmt.Errorf("entry %q is not a header entry", truncate(e.ID()))
	}
	b := NewHeaderBuilder().
		TranslatorComments(e.translatorComments).
		ExtractedComments(e.extractedComments).
		Flags(e.flags)
	body, _ := e.Translation()
	for _, line := range strings.Split(body, "\n") {
		idx := strings.IndexByte(line, ':')
		if idx <= 0 {
			continue
		}
		b.Set(strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]))
	}
	return b.Build(), nil
}

// Fields returns all fields in order.
func (h *Header) Fields() []HeaderField {
	out := make([]HeaderField, len(h.fields))
	copy(out, h.fields)
	return out
}

// Keys returns the field names in order.
func (h *Header) Keys() []string {
	keys := make([]string, len(h.fields))
	for i, f := range h.fields {
		keys[i] = f.Key
	}
	return keys
}

// Field returns the value of name.
func (h *Header) Field(name string) (string, bool) {
	for _, f := range h.fields {
		if f.Key == name {
			return f.Value, true
		}
	}
	return "", false
}

func (h *Header) value(name string) string {
	v, _ := h.Field(name)
	return v
}

// ProjectIDVersion returns Project-Id-Version.
func (h *Header) ProjectIDVersion() string { return h.value(HeaderProjectIDVersion) }

// ReportMsgidBugsTo returns Report-Msgid-Bugs-To.
func (h *Header) ReportMsgidBugsTo() string { return h.value(HeaderReportMsgidBugsTo) }

// POTCreationDate returns POT-Creation-Date.
func (h *Header) POTCreationDate() string { return h.value(HeaderPOTCreationDate) }

// PORevisionDate returns PO-Revision-Date.
func (h *Header) PORevisionDate() string { return h.value(HeaderPORevisionDate) }

// LastTranslator returns Last-Translator.
func (h *Header) LastTranslator() string { return h.value(HeaderLastTranslator) }

// LanguageTeam returns Language-Team.
func (h *Header) LanguageTeam() string { return h.value(HeaderLanguageTeam) }

// Language returns Language.
func (h *Header) Language() string { return h.value(HeaderLanguage) }

// MIMEVersion returns MIME-Version.
func (h *Header) MIMEVersion() string { return h.value(HeaderMIMEVersion) }

// ContentType returns Content-Type.
func (h *Header) ContentType() string { return h.value(HeaderContentType) }

// ContentTransferEncoding returns Content-Transfer-Encoding.
func (h *Header) ContentTransferEncoding() string { return h.value(HeaderContentTransferEncoding) }

// Generator returns X-Generator.
func (h *Header) Generator() string { return h.value(HeaderXGenerator) }

// Charset returns the charset parameter of Content-Type, or "" if absent.
func (h *Header) Charset() string {
	ct := h.ContentType()
	idx := strings.Index(strings.ToLower(ct), "charset=")
	if idx < 0 {
		return ""
	}
	charset := ct[idx+len("charset="):]
	if end := strings.IndexByte(charset, ';'); end >= 0 {
		charset = charset[:end]
	}
	return strings.TrimSpace(charset)
}

// PluralForms parses Plural-Forms. It returns false if the field is
// missing or malformed.
func (h *Header) PluralForms() (PluralForms, bool) {
	raw, ok := h.Field(HeaderPluralForms)
	if !ok {
		return PluralForms{}, false
	}
	pf, err := ParsePluralForms(raw)
	if err != nil {
		return PluralForms{}, false
	}
	return pf, true
}

// TranslatorComments returns the header's "# " comments.
func (h *Header) TranslatorComments() []string {
	return cloneStrings(h.translatorComments)
}

// ExtractedComments returns the header's "#." comments.
func (h *Header) ExtractedComments() []string {
	return cloneStrings(h.extractedComments)
}

// Flags returns the header's flags.
func (h *Header) Flags() []string {
	return cloneStrings(h.flags)
}

// IsFuzzy reports whether the header is marked fuzzy.
func (h *Header) IsFuzzy() bool {
	for _, f := range h.flags {
		if f == FlagFuzzy {
			return true
		}
	}
	return false
}

// Body renders the fields as the header msgstr.
func (h *Header) Body() string {
	var b strings.Builder
	for _, f := range h.fields {
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	return b.String()
}

// ToEntry converts the header back into a header entry.
func (h *Header) ToEntry() *Entry {
	return NewEntryBuilder().
		ID("").
		Translation(h.Body()).
		TranslatorComments(h.translatorComments).
		ExtractedComments(h.extractedComments).
		Flags(h.flags).
		MustBuild()
}

// Equal reports whether both headers have the same fields, comments and flags.
func (h *Header) Equal(other *Header) bool {
	if h == nil || other == nil {
		return h == other
	}
	if len(h.fields) != len(other.fields) {
		return false
	}
	for i := range h.fields {
		if h.fields[i] != other.fields[i] {
			return false
		}
	}
	return equalStrings(h.translatorComments, other.translatorComments) &&
		equalStrings(h.extractedComments, other.extractedComments) &&
		equalStringSets(h.flags, other.flags)
}

// ToBuilder returns a builder seeded with the values of h.
func (h *Header) ToBuilder() *HeaderBuilder {
	b := NewHeaderBuilder()
	b.fields = append(b.fields, h.fields...)
	b.translatorComments = cloneStrings(h.translatorComments)
	b.extractedComments = cloneStrings(h.extractedComments)
	b.flags = cloneStrings(h.flags)
	return b
}

// HeaderBuilder accumulates header fields.
type HeaderBuilder struct {
	fields             []HeaderField
	translatorComments []string
	extractedComments  []string
	flags              []string
}

// NewHeaderBuilder returns an empty builder.
func NewHeaderBuilder() *HeaderBuilder {
	return &HeaderBuilder{}
}

// Set sets a field. An existing field keeps its position.
func (b *HeaderBuilder) Set(key, value string) *HeaderBuilder {
	for i := range b.fields {
		if b.fields[i].Key == key {
			b.fields[i].Value = value
			return b
		}
	}
	b.fields = append(b.fields, HeaderField{Key: key, Value: value})
	return b
}

// Remove drops a field.
func (b *HeaderBuilder) Remove(key string) *HeaderBuilder {
	out := b.fields[:0]
	for _, f := range b.fields {
		if f.Key != key {
			out = append(out, f)
		}
	}
	b.fields = out
	return b
}

// SetPluralForms sets Plural-Forms from a parsed value.
func (b *HeaderBuilder) SetPluralForms(pf PluralForms) *HeaderBuilder {
	return b.Set(HeaderPluralForms, pf.String())
}

// WithDefaults adds MIME-Version, Content-Type and Content-Transfer-Encoding
// when they are missing.
func (b *HeaderBuilder) WithDefaults() *HeaderBuilder {
	defaults := []HeaderField{
		{HeaderMIMEVersion, "1.0"},
		{HeaderContentType, "text/plain; charset=UTF-8"},
		{HeaderContentTransferEncoding, "8bit"},
	}
	for _, d := range defaults {
		if !b.has(d.Key) {
			b.fields = append(b.fields, d)
		}
	}
	return b
}

func (b *HeaderBuilder) has(key string) bool {
	for _, f := range b.fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

// AddTranslatorComment appends a "# " comment.
func (b *HeaderBuilder) AddTranslatorComment(s string) *HeaderBuilder {
	b.translatorComments = append(b.translatorComments, s)
	return b
}

// TranslatorComments replaces the "# " comments.
func (b *HeaderBuilder) TranslatorComments(list []string) *HeaderBuilder {
	b.translatorComments = cloneStrings(list)
	return b
}

// ExtractedComments replaces the "#." comments.
func (b *HeaderBuilder) ExtractedComments(list []string) *HeaderBuilder {
	b.extractedComments = cloneStrings(list)
	return b
}

// AddFlag adds a flag unless present.
func (b *HeaderBuilder) AddFlag(flag string) *HeaderBuilder {
	for _, f := range b.flags {
		if f == flag {
			return b
		}
	}
	b.flags = append(b.flags, flag)
	return b
}

// Flags replaces all flags.
func (b *HeaderBuilder) Flags(list []string) *HeaderBuilder {
	b.flags = nil
	for _, f := range list {
		b.AddFlag(f)
	}
	return b
}

// Build returns the header.
func (b *HeaderBuilder) Build() *Header {
	h := &Header{
		translatorComments: cloneStrings(b.translatorComments),
		extractedComments:  cloneStrings(b.extractedComments),
		flags:              cloneStrings(b.flags),
	}
	if len(b.fields) > 0 {
		h.fields = make([]HeaderField, len(b.fields))
		copy(h.fields, b.fields)
	}
	return h
}
