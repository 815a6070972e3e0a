package cmd

import (
	"errors"
	"fmt"

	"github.com/git-l10n/po-codec/po"
	"github.com/git-l10n/po-codec/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type checkCommand struct {
	cmd *cobra.Command
	O   struct {
		RequireLanguage bool
	}
}

func (v *checkCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "check <po-file>...",
		Short: "Check syntax and header of PO files",
		Long: `Parse each file in strict mode and validate its header.

Syntax errors are reported as "file:line:column: message" followed by the
offending source line. The header is checked for a valid Language tag, the
syntax of Plural-Forms, and whether every plural entry has exactly nplurals
msgstr[N] lines.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Flags().BoolVar(&v.O.RequireLanguage, "require-language", false,
		"fail if the Language header is missing")

	return v.cmd
}

func (v checkCommand) Execute(args []string) error {
	if len(args) == 0 {
		return newUserError("check requires at least one <po-file>")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := catalogOptions(cfg)
	opts.Parser.Strict = true
	checkOpts := util.CheckOptions{
		RequireLanguage:    v.O.RequireLanguage || cfg.RequireLanguage(),
		RequirePluralForms: cfg.RequirePluralForms(),
	}

	ok := true
	for _, name := range args {
		f, err := util.ReadCatalog(name, opts)
		if err != nil {
			v.reportError(name, err)
			ok = false
			continue
		}
		errs, warns := util.CheckFile(f, checkOpts)
		if !util.ReportCheckResult(name, errs, warns) {
			ok = false
			continue
		}
		log.Debugf("%s: %d entries checked", name, f.Len())
	}
	if !ok {
		return errExecute
	}
	return nil
}

func (v checkCommand) reportError(name string, err error) {
	out := v.cmd.OutOrStdout()
	var perr *po.ParseError
	if !errors.As(err, &perr) {
		fmt.Fprintf(out, "%s: %v\n", name, err)
		return
	}
	fmt.Fprintf(out, "%s:%d:%d: %s\n", name, perr.Line, perr.Column, perr.Message)
	if perr.SourceLine != "" {
		fmt.Fprintf(out, "\t%s\n", perr.SourceLine)
	}
}

var checkCmd = checkCommand{}

func init() {
	rootCmd.AddCommand(checkCmd.Command())
}
