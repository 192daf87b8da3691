/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/ioplan"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/spf13/cobra"
)

// getApplyCmd returns the apply command.
func getApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply PLAN",
		Short: "Apply a plan file as one batch",
		Long: `Apply reads a YAML plan and applies all its commands in one
transaction. If any command fails, nothing is changed.

Plan example:
  - op: update_view
    name: reports
    args:
      version: 2
      revert_to_version: 1
      materialized:
        side_by_side: true
  - op: create_view
    name: reports_summary

Examples:
  gnviews apply release-12.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds, err := ioplan.Load(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			gn.Info("Plan has %s commands", humanize.Comma(int64(len(cmds))))
			return applyCommands(cmds...)
		},
	}
}

// getRollbackCmd returns the rollback command.
func getRollbackCmd() *cobra.Command {
	var dryRun bool

	rollbackCmd := &cobra.Command{
		Use:   "rollback",
		Short: "Revert the last applied batch",
		Long: `Rollback applies the inverse of every command of the last batch, in
reverse order, in one transaction. Commands without a version to revert to
(for example a drop without --revert-to) cannot be inverted, and then
nothing is changed.

Examples:
  gnviews rollback
  gnviews rollback --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRollback(dryRun)
		},
	}

	rollbackCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false,
		"print the inverse commands without applying them")

	return rollbackCmd
}

func runRollback(dryRun bool) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.close()

	if dryRun {
		return printInverse(ctx, s)
	}

	inverse, err := s.runner.Rollback(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("%s commands have been rolled back", humanize.Comma(int64(len(inverse))))
	return nil
}

func printInverse(ctx context.Context, s *session) error {
	batch, err := s.journal.LastBatch(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	inverse, err := command.InvertAll(batch.Commands)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return ioplan.Write(os.Stdout, inverse)
}
