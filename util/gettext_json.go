package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/git-l10n/po-codec/po"
	"github.com/tidwall/gjson"
)

// GettextJSON is the top-level structure of the gettext JSON format.
type GettextJSON struct {
	HeaderComment string         `json:"header_comment"`
	HeaderMeta    string         `json:"header_meta"`
	Entries       []GettextEntry `json:"entries"`
}

// GettextEntry represents one PO entry in the JSON format. Strings are
// stored unescaped. The fuzzy flag is kept in Fuzzy, not in Flags.
type GettextEntry struct {
	MsgCtxt           *string  `json:"msgctxt,omitempty"`
	MsgID             string   `json:"msgid"`
	MsgStr            string   `json:"msgstr"`
	MsgIDPlural       string   `json:"msgid_plural,omitempty"`
	MsgStrPlural      []string `json:"msgstr_plural,omitempty"`
	Comments          []string `json:"comments,omitempty"`
	ExtractedComments []string `json:"extracted_comments,omitempty"`
	References        []string `json:"references,omitempty"`
	Flags             []string `json:"flags,omitempty"`
	PrevMsgCtxt       *string  `json:"previous_msgctxt,omitempty"`
	PrevMsgID         *string  `json:"previous_msgid,omitempty"`
	PrevMsgIDPlural   *string  `json:"previous_msgid_plural,omitempty"`
	Fuzzy             bool     `json:"fuzzy"`
	Obsolete          bool     `json:"obsolete,omitempty"`
}

// IsPlural reports whether the entry carries plural forms.
func (e *GettextEntry) IsPlural() bool {
	return e.MsgIDPlural != "" || len(e.MsgStrPlural) > 0
}

// IsGettextJSON reports whether the input named name holds gettext JSON
// rather than PO text.
func IsGettextJSON(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return true
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return gjson.GetBytes(trimmed, "entries").IsArray()
}

// JSONHeaderLanguage returns the Language field of the header_meta of a
// gettext JSON document without decoding the entries.
func JSONHeaderLanguage(data []byte) string {
	meta := gjson.GetBytes(data, "header_meta").String()
	for _, line := range strings.Split(meta, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if ok && strings.TrimSpace(key) == po.HeaderLanguage {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// ParseGettextJSON decodes a gettext JSON document.
func ParseGettextJSON(data []byte) (*GettextJSON, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	if !gjson.GetBytes(data, "entries").Exists() {
		return nil, errors.New("missing \"entries\" in gettext JSON")
	}
	var j GettextJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// WriteGettextJSON writes j as indented JSON. HTML characters are not
// escaped so that translations stay readable.
func WriteGettextJSON(w io.Writer, j *GettextJSON) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(j)
}

// NewGettextJSON converts f to the JSON format. Obsolete entries follow the
// active ones, marked with Obsolete.
func NewGettextJSON(f *po.File) *GettextJSON {
	j := &GettextJSON{Entries: []GettextEntry{}}
	if h := f.Header(); h != nil {
		j.HeaderComment = headerComment(h)
		j.HeaderMeta = h.Body()
	}
	for _, e := range f.Entries() {
		j.Entries = append(j.Entries, newGettextEntry(e))
	}
	for _, e := range f.ObsoleteEntries() {
		j.Entries = append(j.Entries, newGettextEntry(e))
	}
	return j
}

func newGettextEntry(e *po.Entry) GettextEntry {
	ge := GettextEntry{
		MsgID:             e.ID(),
		Comments:          e.TranslatorComments(),
		ExtractedComments: e.ExtractedComments(),
		References:        e.References(),
		Fuzzy:             e.IsFuzzy(),
		Obsolete:          e.IsObsolete(),
	}
	ge.MsgCtxt = optionalString(e.Context())
	ge.PrevMsgCtxt = optionalString(e.PreviousContext())
	ge.PrevMsgID = optionalString(e.PreviousID())
	ge.PrevMsgIDPlural = optionalString(e.PreviousPluralID())
	for _, flag := range e.Flags() {
		if flag != po.FlagFuzzy {
			ge.Flags = append(ge.Flags, flag)
		}
	}
	if e.IsPlural() {
		ge.MsgIDPlural, _ = e.PluralID()
		ge.MsgStrPlural = e.PluralTranslations()
	} else {
		ge.MsgStr, _ = e.Translation()
	}
	return ge
}

// ToFile converts j back to a catalog.
func (j *GettextJSON) ToFile() (*po.File, error) {
	b := po.NewFileBuilder()
	if j.HeaderComment != "" || j.HeaderMeta != "" {
		h, err := parseJSONHeader(j.HeaderComment, j.HeaderMeta)
		if err != nil {
			return nil, err
		}
		b.SetHeader(h)
	}
	for i := range j.Entries {
		e, err := j.Entries[i].toEntry()
		if err != nil {
			return nil, fmt.Errorf("entry %d (msgid %q): %w", i+1, j.Entries[i].MsgID, err)
		}
		if e.IsHeader() && !e.IsObsolete() {
			return nil, fmt.Errorf("entry %d: empty msgid belongs to header_meta", i+1)
		}
		b.Add(e)
	}
	return b.Build(), nil
}

func (e *GettextEntry) toEntry() (*po.Entry, error) {
	b := po.NewEntryBuilder().
		ID(e.MsgID).
		TranslatorComments(e.Comments).
		ExtractedComments(e.ExtractedComments).
		References(e.References).
		Flags(e.Flags).
		Obsolete(e.Obsolete)
	if e.MsgCtxt != nil {
		b.Context(*e.MsgCtxt)
	}
	if e.PrevMsgCtxt != nil {
		b.PreviousContext(*e.PrevMsgCtxt)
	}
	if e.PrevMsgID != nil {
		b.PreviousID(*e.PrevMsgID)
	}
	if e.PrevMsgIDPlural != nil {
		b.PreviousPluralID(*e.PrevMsgIDPlural)
	}
	if e.Fuzzy {
		b.AddFlag(po.FlagFuzzy)
	}
	if e.IsPlural() {
		b.PluralID(e.MsgIDPlural).PluralTranslations(e.MsgStrPlural)
	} else {
		b.Translation(e.MsgStr)
	}
	return b.Build()
}

// headerComment renders the comment lines of h the way they appear in a PO
// file, joined with "\n".
func headerComment(h *po.Header) string {
	var lines []string
	for _, c := range h.TranslatorComments() {
		if c == "" {
			lines = append(lines, "#")
		} else {
			lines = append(lines, "# "+c)
		}
	}
	for _, c := range h.ExtractedComments() {
		lines = append(lines, "#. "+c)
	}
	if flags := h.Flags(); len(flags) > 0 {
		lines = append(lines, "#, "+strings.Join(flags, ", "))
	}
	return strings.Join(lines, "\n")
}

// parseJSONHeader rebuilds the header by parsing the comment lines together
// with a synthesized header entry.
func parseJSONHeader(comment, meta string) (*po.Header, error) {
	var sb strings.Builder
	if comment != "" {
		sb.WriteString(strings.TrimRight(comment, "\n"))
		sb.WriteString("\n")
	}
	sb.WriteString("msgid \"\"\nmsgstr ")
	sb.WriteString(po.QuoteAndEscape(meta))
	sb.WriteString("\n")

	f, err := po.ParseString(sb.String(), po.DefaultParserOptions())
	if err != nil {
		return nil, fmt.Errorf("bad header: %w", err)
	}
	if f.Header() == nil {
		return nil, errors.New("bad header: no header entry")
	}
	return f.Header(), nil
}

func optionalString(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
