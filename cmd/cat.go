package cmd

import (
	"github.com/git-l10n/po-codec/config"
	"github.com/git-l10n/po-codec/flag"
	"github.com/git-l10n/po-codec/po"
	"github.com/git-l10n/po-codec/util"
	"github.com/spf13/cobra"
)

type catCommand struct {
	cmd *cobra.Command
	O   struct {
		Output       string
		JSON         bool
		Width        int
		NoWrap       bool
		Sort         bool
		ToCharset    string
		Translated   bool
		Untranslated bool
		Fuzzy        bool
		OnlySame     bool
		OnlyObsolete bool
		UnsetFuzzy   bool
		ClearFuzzy   bool
	}
}

func (v *catCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "cat [-o <output>] [--json] <inputfile>...",
		Short: "Concatenate, merge and normalize PO/POT/JSON files",
		Long: `Merge one or more input files (PO, POT, or gettext JSON) into a single output.
The format is auto-detected by extension (.json) or by content (starts with '{').
Non-UTF-8 PO files are converted to UTF-8 using the charset of their header.
For duplicate msgid (with the same msgctxt), the first occurrence by file
order is kept.

By default, all entries are selected (translated, same, untranslated, fuzzy, obsolete).
Use --translated, --untranslated, --fuzzy to filter by state (OR relationship).
Use --only-same or --only-obsolete for a single state.

Write result to the file given by -o; use -o - or omit -o to write to stdout.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	fs := v.cmd.Flags()
	fs.SortFlags = false

	fs.StringVarP(&v.O.Output, "output", "o", "",
		"write output to file (use - for stdout); default is stdout")
	fs.BoolVar(&v.O.JSON, "json", false, "output JSON instead of PO text")
	setFlagGroup(v.cmd, "General options", "output", "json")

	fs.IntVar(&v.O.Width, "width", 80, "wrap strings at this output width")
	fs.BoolVar(&v.O.NoWrap, "no-wrap", false, "do not wrap long strings")
	fs.BoolVar(&v.O.Sort, "sort", false, "sort entries by msgid")
	fs.StringVar(&v.O.ToCharset, "to-charset", "", "convert output to this charset")
	setFlagGroup(v.cmd, "Output format", "width", "no-wrap", "sort", "to-charset")

	fs.BoolVar(&v.O.Translated, "translated", false, "select translated entries")
	fs.BoolVar(&v.O.Untranslated, "untranslated", false, "select untranslated entries")
	fs.BoolVar(&v.O.Fuzzy, "fuzzy", false, "select fuzzy entries")
	setFlagGroup(v.cmd, "State filter", "translated", "untranslated", "fuzzy")

	fs.BoolVar(&v.O.OnlySame, "only-same", false, "only entries where msgstr equals msgid")
	fs.BoolVar(&v.O.OnlyObsolete, "only-obsolete", false, "only obsolete entries")
	setFlagGroup(v.cmd, "Single-state filter", "only-same", "only-obsolete")

	fs.BoolVar(&v.O.UnsetFuzzy, "unset-fuzzy", false,
		"remove fuzzy marker from fuzzy entries in output (keep translations)")
	fs.BoolVar(&v.O.ClearFuzzy, "clear-fuzzy", false,
		"remove fuzzy marker and clear msgstr for fuzzy entries (msgid/msgid_plural preserved)")
	setFlagGroup(v.cmd, "Others", "unset-fuzzy", "clear-fuzzy")

	return v.cmd
}

func (v catCommand) Execute(args []string) error {
	if len(args) == 0 {
		return newUserError("cat requires at least one input file")
	}
	if v.O.UnsetFuzzy && v.O.ClearFuzzy {
		return newUserError("--unset-fuzzy and --clear-fuzzy are mutually exclusive")
	}
	filter, err := v.buildFilter()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	writerOpts, err := v.writerOptions(cfg)
	if err != nil {
		return err
	}

	opts := catalogOptions(cfg)
	if filter.OnlyObsolete {
		opts.Parser.PreserveObsolete = true
	}
	sources := make([]*po.File, 0, len(args))
	for _, path := range args {
		f, err := util.ReadCatalog(path, opts)
		if err != nil {
			return NewStandardErrorF("%v", err)
		}
		sources = append(sources, f)
	}
	merged := util.FilterFile(util.MergeFiles(sources...), *filter)

	if v.O.UnsetFuzzy {
		merged = util.ClearFuzzy(merged, false)
	}
	if v.O.ClearFuzzy {
		merged = util.ClearFuzzy(merged, true)
	}

	if v.O.JSON {
		return util.WriteCatalogJSON(v.O.Output, merged)
	}
	charset := v.O.ToCharset
	if charset == "" {
		charset = cfg.Writer.Charset
	}
	return util.WriteCatalog(v.O.Output, merged, writerOpts, charset)
}

func (v catCommand) writerOptions(cfg *config.Config) (po.WriterOptions, error) {
	opts := cfg.WriterOptions()
	if v.cmd.Flags().Changed("width") {
		opts.MaxLineWidth = v.O.Width
	}
	if v.O.NoWrap {
		opts.WrapStrings = false
	}
	if v.O.Sort {
		opts.SortEntries = true
	}
	if v.O.OnlyObsolete {
		opts.WriteObsolete = true
	}
	if err := opts.Validate(); err != nil {
		return opts, newUserErrorF("bad --width %d: %v", opts.MaxLineWidth, err)
	}
	return opts, nil
}

func (v catCommand) buildFilter() (*util.EntryStateFilter, error) {
	if v.O.OnlySame && v.O.OnlyObsolete {
		return nil, newUserError("--only-same and --only-obsolete are mutually exclusive")
	}
	if v.O.OnlySame && (v.O.Translated || v.O.Untranslated || v.O.Fuzzy) {
		return nil, newUserError("--only-same is mutually exclusive with --translated, --untranslated, --fuzzy")
	}
	if v.O.OnlyObsolete && (v.O.Translated || v.O.Untranslated || v.O.Fuzzy) {
		return nil, newUserError("--only-obsolete is mutually exclusive with --translated, --untranslated, --fuzzy")
	}
	f := util.EntryStateFilter{
		Translated:   v.O.Translated,
		Untranslated: v.O.Untranslated,
		Fuzzy:        v.O.Fuzzy,
		WithObsolete: !flag.NoObsolete(),
		NoObsolete:   flag.NoObsolete(),
		OnlySame:     v.O.OnlySame,
		OnlyObsolete: v.O.OnlyObsolete,
	}
	return &f, nil
}

var catCmd = catCommand{}

func init() {
	rootCmd.AddCommand(catCmd.Command())
}
