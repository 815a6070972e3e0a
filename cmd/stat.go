package cmd

import (
	"fmt"
	"strings"

	"github.com/git-l10n/po-codec/flag"
	"github.com/git-l10n/po-codec/util"
	"github.com/spf13/cobra"
)

type statCommand struct {
	cmd *cobra.Command
	O   struct {
		Msgfmt bool
	}
}

func (v *statCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "stat <po-file>",
		Short: "Report statistics for a PO file",
		Long: `Report entry statistics for a PO file:
  translated   - entries with non-empty translation
  untranslated - entries with empty msgstr
  same         - entries where msgstr equals msgid (suspect untranslated)
  fuzzy        - entries with fuzzy flag
  obsolete     - obsolete entries (#~ format)

With --msgfmt the line matches "msgfmt --statistics", where same entries are
counted as translated and obsolete entries are not shown.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}

	v.cmd.Flags().BoolVar(&v.O.Msgfmt, "msgfmt", false, "output in the format of msgfmt --statistics")

	return v.cmd
}

func (v statCommand) Execute(args []string) error {
	if len(args) != 1 {
		return newUserError("stat requires exactly one argument: <po-file>")
	}

	poFile := args[0]
	if poFile != util.StdioName && !util.Exist(poFile) {
		return newUserError("file does not exist:", poFile)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := util.ReadCatalog(poFile, catalogOptions(cfg))
	if err != nil {
		return NewStandardErrorF("%v", err)
	}
	stats := util.CountReportStats(f)

	out := v.cmd.OutOrStdout()
	if flag.Verbose() > 0 {
		title := fmt.Sprintf("PO file: %s", poFile)
		fmt.Fprintln(out, title)
		fmt.Fprintln(out, strings.Repeat("-", len(title)))
		fmt.Fprintf(out, "  translated:   %d\n", stats.Translated)
		fmt.Fprintf(out, "  untranslated: %d\n", stats.Untranslated)
		fmt.Fprintf(out, "  same:         %d\n", stats.Same)
		fmt.Fprintf(out, "  fuzzy:        %d\n", stats.Fuzzy)
		fmt.Fprintf(out, "  obsolete:     %d\n", stats.Obsolete)
	} else if v.O.Msgfmt {
		fmt.Fprint(out, util.FormatMsgfmtStatistics(stats))
	} else {
		fmt.Fprint(out, util.FormatStatLine(stats))
	}

	return nil
}

var statCmd = statCommand{}

func init() {
	rootCmd.AddCommand(statCmd.Command())
}
