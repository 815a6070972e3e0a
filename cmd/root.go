// Package cmd provides CLI implementations.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/git-l10n/po-codec/config"
	"github.com/git-l10n/po-codec/flag"
	"github.com/git-l10n/po-codec/repository"
	"github.com/git-l10n/po-codec/util"
	"github.com/git-l10n/po-codec/version"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// gitConfigLenient turns on lenient parsing from the git config of the
// enclosing repository.
const gitConfigLenient = "po-codec.lenient"

var (
	rootCmd = rootCommand{}

	errExecute = errors.New("fail to execute")
)

// errorWithUsage marks an error that should display command usage.
type errorWithUsage struct{ msg string }

func (e errorWithUsage) Error() string { return e.msg }

// NewErrorWithUsage creates an error that should display usage (e.g. argument/flag errors).
func NewErrorWithUsage(a ...interface{}) error {
	return errorWithUsage{msg: fmt.Sprintln(a...)}
}

// NewErrorWithUsageF creates an error that should display usage.
func NewErrorWithUsageF(format string, a ...interface{}) error {
	return errorWithUsage{msg: fmt.Sprintf(format, a...)}
}

// NewStandardError creates an error that should not display usage.
func NewStandardError(a ...interface{}) error {
	return fmt.Errorf("%s", fmt.Sprint(a...))
}

// NewStandardErrorF creates an error that should not display usage.
func NewStandardErrorF(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}

// IsErrorWithUsage returns true if the error should display command usage.
func IsErrorWithUsage(err error) bool {
	var e errorWithUsage
	return errors.As(err, &e)
}

func newUserError(a ...interface{}) error {
	return NewErrorWithUsage(a...)
}

func newUserErrorF(format string, a ...interface{}) error {
	return NewErrorWithUsageF(format, a...)
}

// Response wraps error for subcommand, and is returned from cmd package.
type Response struct {
	// Err contains error returned from the subcommand executed.
	Err error

	// Cmd contains the command object.
	Cmd *cobra.Command
}

// IsUserError returns true if the usage of the command should be shown.
func (v Response) IsUserError() bool {
	return v.Err != nil && IsErrorWithUsage(v.Err)
}

type rootCommand struct {
	cmd *cobra.Command
}

func (v *rootCommand) initLog() {
	f := new(log.TextFormatter)
	f.DisableTimestamp = true
	f.DisableLevelTruncation = true
	if flag.NoColor() {
		f.DisableColors = true
	} else if isatty.IsTerminal(os.Stderr.Fd()) {
		f.ForceColors = true
	}
	log.SetFormatter(f)
	verbose := flag.Verbose()
	quiet := flag.Quiet()
	if verbose == 1 {
		log.SetLevel(log.DebugLevel)
	} else if verbose > 1 {
		log.SetLevel(log.TraceLevel)
	} else if quiet == 1 {
		log.SetLevel(log.WarnLevel)
	} else if quiet > 1 {
		log.SetLevel(log.ErrorLevel)
	}
}

func (v *rootCommand) initRepository() {
	repository.OpenRepository("")
}

// Command represents the base command when called without any subcommands
func (v *rootCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "po-codec",
		Short: "Parse, check and normalize gettext PO files",
		// Let main.go handle error output; do not show usage on every error
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Version = version.Version
	v.cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)
	v.cmd.PersistentFlags().CountP("quiet",
		"q",
		"quiet mode")
	v.cmd.PersistentFlags().CountP("verbose",
		"v",
		"verbose mode")
	v.cmd.PersistentFlags().String("config",
		"",
		"load configuration from this file (overrides ~/.po-codec.yaml and repo po-codec.yaml)")
	v.cmd.PersistentFlags().Bool("lenient",
		false,
		"skip malformed entries instead of failing (also git config "+gitConfigLenient+")")
	v.cmd.PersistentFlags().Bool("no-obsolete",
		false,
		"drop obsolete (#~) entries")
	v.cmd.PersistentFlags().Bool("no-color",
		false,
		"do not colorize log output")

	for _, name := range []string{"quiet", "verbose", "config", "lenient", "no-obsolete", "no-color"} {
		_ = viper.BindPFlag(name, v.cmd.PersistentFlags().Lookup(name))
	}

	return v.cmd
}

func (v rootCommand) Execute(args []string) error {
	return NewErrorWithUsage("run 'po-codec -h' for help")
}

func (v *rootCommand) AddCommand(cmds ...*cobra.Command) {
	v.Command().AddCommand(cmds...)
}

// loadConfig reads the configuration files and applies the global flags on
// top of them.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(flag.ConfigFile())
	if err != nil {
		return nil, NewStandardErrorF("%v", err)
	}
	if flag.Lenient() || repository.ConfigBool(gitConfigLenient, false) {
		strict := false
		cfg.Parser.Strict = &strict
	}
	if flag.NoObsolete() {
		preserve := false
		cfg.Parser.PreserveObsolete = &preserve
		cfg.Writer.WriteObsolete = &preserve
	}
	return cfg, nil
}

func catalogOptions(cfg *config.Config) util.CatalogOptions {
	return util.CatalogOptions{
		Parser:       cfg.ParserOptions(),
		InputCharset: cfg.Parser.InputCharset,
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() Response {
	var (
		resp Response
	)

	// Ensure all commands use SilenceErrors so main.go handles error output.
	setSilenceErrorsRecursive(rootCmd.Command())

	c, err := rootCmd.Command().ExecuteC()
	resp.Err = err
	resp.Cmd = c
	return resp
}

func init() {
	cobra.OnInitialize(rootCmd.initLog)
	cobra.OnInitialize(rootCmd.initRepository)
}

// setSilenceErrorsRecursive sets SilenceErrors on c and all its descendants.
func setSilenceErrorsRecursive(c *cobra.Command) {
	c.SilenceErrors = true
	for _, child := range c.Commands() {
		setSilenceErrorsRecursive(child)
	}
}
