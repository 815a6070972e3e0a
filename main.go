package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/git-l10n/po-codec/cmd"
)

const (
	// Program is name for this project
	Program = "po-codec"
)

func main() {
	resp := cmd.Execute()

	if resp.Err != nil {
		errOut := resp.Cmd.ErrOrStderr()
		if resp.IsUserError() {
			if resp.Cmd.SilenceErrors {
				fmt.Fprintf(errOut, "ERROR: %s\n\n", strings.TrimSpace(resp.Err.Error()))
			}
			fmt.Fprint(errOut, resp.Cmd.UsageString())
		} else if resp.Cmd.SilenceErrors {
			if resp.Err.Error() != "fail to execute" {
				fmt.Fprintf(errOut, "ERROR: %s\n", resp.Err)
			}
			subCmdPath := strings.TrimPrefix(resp.Cmd.CommandPath(), Program+" ")
			if subCmdPath == "" || subCmdPath == Program {
				subCmdPath = resp.Cmd.Name()
			}
			fmt.Fprintf(errOut, "ERROR: fail to execute \"%s %s\"\n", Program, subCmdPath)
		}
		os.Exit(1)
	}
}
