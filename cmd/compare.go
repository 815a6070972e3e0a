package cmd

import (
	"fmt"

	"github.com/git-l10n/po-codec/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type compareCommand struct {
	cmd *cobra.Command
	O   struct {
		Output string
		Stat   bool
		Commit string
		Since  string
	}
}

func (v *compareCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "compare [--stat] [-o <output>] [--commit <commit> | --since <commit>] [<old>] <new>",
		Short: "Show changes between two l10n files",
		Long: `By default: output new or changed entries of <new> as a PO file, with the
header of <new>.
With --stat: show how many entries were added, changed and deleted.

Modes:
- <old> <new>: compare two files
- --commit <commit> <file>: compare file in parent of commit with the specified commit
- --since <commit> <file>: compare file in commit with current working tree
- <file> alone: compare file in HEAD with current working tree

Entries are matched by msgctxt and msgid. Comments and references are not
compared, and obsolete entries are ignored.
Output is empty when there are no new or changed entries.`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Flags().BoolVar(&v.O.Stat, "stat", false, "show diff statistics (default: output new or changed entries)")
	v.cmd.Flags().StringVarP(&v.O.Output, "output", "o", "",
		"write new or changed entries to file (use - for stdout); default is stdout")
	v.cmd.Flags().StringVar(&v.O.Commit, "commit", "",
		"compare <commit>~ with <commit>")
	v.cmd.Flags().StringVar(&v.O.Since, "since", "",
		"compare <commit> with the working tree")

	return v.cmd
}

func (v compareCommand) Execute(args []string) error {
	oldRev, newRev, err := util.ResolveRevisions(v.O.Commit, v.O.Since, args)
	if err != nil {
		return newUserErrorF("%v", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts := catalogOptions(cfg)

	oldFile, err := util.ReadCatalogRevision(oldRev, opts)
	if err != nil {
		return NewStandardErrorF("%v", err)
	}
	newFile, err := util.ReadCatalogRevision(newRev, opts)
	if err != nil {
		return NewStandardErrorF("%v", err)
	}
	log.Debugf("comparing '%s' with '%s'", oldRev, newRev)

	stat, review := util.CompareFiles(oldFile, newFile)
	if v.O.Stat {
		fmt.Fprintln(v.cmd.OutOrStdout(), stat)
		return nil
	}
	if review.Len() == 0 {
		log.Debugf("no new or changed entries in %s", newRev)
		return nil
	}
	return util.WriteCatalog(v.O.Output, review, cfg.WriterOptions(), "")
}

var compareCmd = compareCommand{}

func init() {
	rootCmd.AddCommand(compareCmd.Command())
}
