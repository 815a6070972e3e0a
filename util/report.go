package util

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ReportCheckResult logs the warnings and errors found in name, one per
// line, prefixed with the file name. Returns true if errs is empty.
func ReportCheckResult(name string, errs, warns []string) bool {
	prompt := fmt.Sprintf("[%s]", name)
	reportResultMessages(warns, prompt, log.WarnLevel)
	reportResultMessages(errs, prompt, log.ErrorLevel)
	return len(errs) == 0
}

func reportResultMessages(errs []string, prompt string, level log.Level) {
	var fn func(format string, args ...interface{})

	if len(errs) == 0 {
		return
	}

	switch level {
	case log.InfoLevel:
		fn = log.Printf
	case log.WarnLevel:
		fn = log.Warnf
	default:
		fn = log.Errorf
	}

	showHorizontalLine()

	for _, err := range errs {
		for _, line := range strings.Split(err, "\n") {
			if prompt == "" {
				fn("%s", line)
			} else if line == "" {
				fn("%s", prompt)
			} else {
				fn("%s\t%s", prompt, line)
			}
		}
	}
}

func showHorizontalLine() {
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 78))
}
