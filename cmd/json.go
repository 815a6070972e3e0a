package cmd

import (
	"github.com/git-l10n/po-codec/util"
	"github.com/spf13/cobra"
)

type jsonCommand struct {
	cmd *cobra.Command
	O   struct {
		Output string
	}
}

func (v *jsonCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "json [-o <output>] <po-file>",
		Short: "Export a PO file as gettext JSON",
		Long: `Export a PO file as gettext JSON: "header_comment" and "header_meta" hold
the header, "entries" holds one object per message with unescaped strings.
The result can be converted back to PO with "po-codec cat".`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Flags().StringVarP(&v.O.Output, "output", "o", "",
		"write output to file (use - for stdout); default is stdout")

	return v.cmd
}

func (v jsonCommand) Execute(args []string) error {
	if len(args) != 1 {
		return newUserError("json requires exactly one argument: <po-file>")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := util.ReadCatalog(args[0], catalogOptions(cfg))
	if err != nil {
		return NewStandardErrorF("%v", err)
	}
	return util.WriteCatalogJSON(v.O.Output, f)
}

var jsonCmd = jsonCommand{}

func init() {
	rootCmd.AddCommand(jsonCmd.Command())
}
