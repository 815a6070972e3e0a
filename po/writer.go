package po

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

const obsoletePrefix = "#~ "

// Writer serializes Files as PO text.
type Writer struct {
	w      *bufio.Writer
	closer io.Closer
	opts   WriterOptions
	blocks int
}

// NewWriter returns a writer emitting to w. If w is an io.Closer, Close
// closes it.
func NewWriter(w io.Writer, opts WriterOptions) (*Writer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.LineSeparator == "" {
		opts.LineSeparator = "\n"
	}
	pw := &Writer{
		w:    bufio.NewWriter(w),
		opts: opts,
	}
	if c, ok := w.(io.Closer); ok {
		pw.closer = c
	}
	return pw, nil
}

// Write emits the header, the active entries and, if enabled, the obsolete
// entries of f. Blocks are separated by one blank line.
func (w *Writer) Write(f *File) error {
	if h := f.Header(); h != nil {
		w.writeEntry(h.ToEntry())
	}

	entries := f.Entries()
	if w.opts.SortEntries {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].ID() < entries[j].ID()
		})
	}
	for _, e := range entries {
		w.writeEntry(e)
	}

	if w.opts.WriteObsolete {
		for _, e := range f.ObsoleteEntries() {
			w.writeEntry(e)
		}
	}
	return w.w.Flush()
}

// Close flushes buffered output and closes the sink.
func (w *Writer) Close() error {
	err := w.w.Flush()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

func (w *Writer) writeEntry(e *Entry) {
	if w.blocks > 0 {
		w.line("")
	}
	w.blocks++

	prefix := ""
	if e.IsObsolete() {
		prefix = obsoletePrefix
	}

	for _, c := range e.translatorComments {
		if c == "" {
			w.line(prefix + "#")
		} else {
			w.line(prefix + "# " + c)
		}
	}
	for _, c := range e.extractedComments {
		w.line(prefix + "#. " + c)
	}
	if len(e.references) > 0 {
		w.line(prefix + "#: " + strings.Join(e.references, " "))
	}
	if len(e.flags) > 0 {
		w.line(prefix + "#, " + strings.Join(e.flags, ", "))
	}

	previous := "#| "
	if e.IsObsolete() {
		previous = "#~| "
	}
	if e.previousContext != nil {
		w.line(previous + "msgctxt " + QuoteAndEscape(*e.previousContext))
	}
	if e.previousID != nil {
		w.line(previous + "msgid " + QuoteAndEscape(*e.previousID))
	}
	if e.previousPluralID != nil {
		w.line(previous + "msgid_plural " + QuoteAndEscape(*e.previousPluralID))
	}

	if e.context != nil {
		w.field(prefix, "msgctxt", *e.context)
	}
	w.field(prefix, "msgid", e.id)
	if e.pluralID != nil {
		w.field(prefix, "msgid_plural", *e.pluralID)
		if len(e.pluralTranslations) == 0 {
			w.field(prefix, "msgstr[0]", "")
		}
		for i, s := range e.pluralTranslations {
			w.field(prefix, "msgstr["+strconv.Itoa(i)+"]", s)
		}
		return
	}
	translation, _ := e.Translation()
	w.field(prefix, "msgstr", translation)
}

// field writes `keyword "value"`, switching to the multi-line form when the
// value is too wide or holds line breaks.
func (w *Writer) field(prefix, keyword, value string) {
	escaped := Escape(value)
	width := utf8.RuneCountInString(prefix) + len(keyword) + 3 + utf8.RuneCountInString(escaped)
	if !w.opts.WrapStrings ||
		(width <= w.opts.MaxLineWidth && !strings.Contains(escaped, `\n`)) {
		w.line(prefix + keyword + ` "` + escaped + `"`)
		return
	}

	w.line(prefix + keyword + ` ""`)
	for _, l := range wrapEscaped(escaped, w.opts.MaxLineWidth-4) {
		w.line(prefix + `"` + l + `"`)
	}
}

func (w *Writer) line(s string) {
	w.w.WriteString(s)
	w.w.WriteString(w.opts.LineSeparator)
}

// escapeUnits splits escaped text into units that must not be broken
// apart: a single character or a whole escape sequence.
func escapeUnits(s string) []string {
	var units []string
	for i := 0; i < len(s); {
		n := 1
		if s[i] == '\\' && i+1 < len(s) {
			n = 2
			switch {
			case s[i+1] == 'x':
				for n < 4 && i+n < len(s) && hexValue(s[i+n]) >= 0 {
					n++
				}
			case isOctal(s[i+1]):
				for n < 4 && i+n < len(s) && isOctal(s[i+n]) {
					n++
				}
			}
		} else {
			_, n = utf8.DecodeRuneInString(s[i:])
		}
		units = append(units, s[i:i+n])
		i += n
	}
	return units
}

// wrapEscaped splits escaped text into continuation lines of at most width
// runes. Lines end after each "\n" escape; longer lines break after the
// last space that fits, or hard at the width when there is none.
func wrapEscaped(s string, width int) []string {
	var (
		lines []string
		line  []string
		cols  int
		space = -1
	)
	flush := func(n int) {
		lines = append(lines, strings.Join(line[:n], ""))
		rest := append([]string(nil), line[n:]...)
		line, cols, space = rest, 0, -1
		for i, u := range line {
			cols += utf8.RuneCountInString(u)
			if u == " " {
				space = i
			}
		}
	}

	for _, u := range escapeUnits(s) {
		n := utf8.RuneCountInString(u)
		for cols+n > width && len(line) > 0 {
			if space >= 0 {
				flush(space + 1)
			} else {
				flush(len(line))
			}
		}
		line = append(line, u)
		cols += n
		if u == " " {
			space = len(line) - 1
		}
		if u == `\n` {
			flush(len(line))
		}
	}
	if len(line) > 0 || len(lines) == 0 {
		lines = append(lines, strings.Join(line, ""))
	}
	return lines
}

// Write serializes f to w and closes w if it is an io.Closer.
func Write(w io.Writer, f *File, opts WriterOptions) error {
	pw, err := NewWriter(w, opts)
	if err != nil {
		return err
	}
	if err := pw.Write(f); err != nil {
		pw.Close()
		return err
	}
	return pw.Close()
}

// WriteString serializes f into a string.
func WriteString(f *File, opts WriterOptions) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteFile serializes f into the file at path.
func WriteFile(path string, f *File, opts WriterOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(out, f, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
