package po

// ParserOptions controls parsing.
type ParserOptions struct {
	// Strict makes the first malformed entry abort the parse. When false,
	// malformed entries are skipped.
	Strict bool
	// PreserveObsolete keeps "#~" entries in File.ObsoleteEntries.
	PreserveObsolete bool
}

// DefaultParserOptions returns strict parsing that keeps obsolete entries.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{
		Strict:           true,
		PreserveObsolete: true,
	}
}

// MinLineWidth is the smallest accepted WriterOptions.MaxLineWidth.
const MinLineWidth = 20

// WriterOptions controls serialization.
type WriterOptions struct {
	MaxLineWidth  int
	WrapStrings   bool
	LineSeparator string
	WriteObsolete bool
	SortEntries   bool // sort active entries by msgid
}

// DefaultWriterOptions returns gettext-like defaults: 80 columns, wrapping
// on, "\n" line breaks, obsolete entries written, source order kept.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		MaxLineWidth:  80,
		WrapStrings:   true,
		LineSeparator: "\n",
		WriteObsolete: true,
	}
}

// Validate checks the options.
func (o WriterOptions) Validate() error {
	if o.MaxLineWidth < MinLineWidth {
		return ErrLineWidth
	}
	return nil
}
