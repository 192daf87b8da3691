package iologger

import (
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/lifecycle"
)

type reporter struct {
	quiet bool
}

// NewReporter returns a lifecycle.Reporter that shows messages to the
// user with gn.Info and writes them to the log. A quiet reporter only
// logs.
func NewReporter(quiet bool) lifecycle.Reporter {
	return &reporter{quiet: quiet}
}

// Report implements lifecycle.Reporter.
func (r *reporter) Report(msg string) {
	slog.Info(msg)
	if !r.quiet {
		gn.Info("%s", msg)
	}
}
