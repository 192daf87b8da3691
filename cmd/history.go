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
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/ioplan"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/spf13/cobra"
)

// getHistoryCmd returns the history command.
func getHistoryCmd() *cobra.Command {
	var asYAML bool

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List applied batches",
		Long: `History prints batches from the journal, oldest first.

With --yaml all commands are printed as one plan.

Examples:
  gnviews history
  gnviews history --yaml > replay.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(asYAML)
		},
	}

	historyCmd.Flags().BoolVar(&asYAML, "yaml", false, "print commands as a plan")

	return historyCmd
}

func runHistory(asYAML bool) error {
	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.close()

	batches, err := s.journal.Batches(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if asYAML {
		var cmds []command.Command
		for _, b := range batches {
			cmds = append(cmds, b.Commands...)
		}
		return ioplan.Write(os.Stdout, cmds)
	}

	for _, b := range batches {
		fmt.Printf("%s  %s  %s\n", b.ID, humanize.Time(b.CreatedAt), b.AppVersion)
		for _, c := range b.Commands {
			fmt.Printf("    %s\n", describe(c))
		}
	}
	return nil
}

func describe(c command.Command) string {
	res := fmt.Sprintf("%s %s", c.Op, c.Name)
	if c.To != "" {
		res += " -> " + c.To
	}
	if c.Args.Materialized != nil {
		res += " (materialized)"
	}
	if c.Args.Version > 0 {
		res += fmt.Sprintf(" v%d", c.Args.Version)
	}
	if c.Args.RevertToVersion > 0 {
		res += fmt.Sprintf(", revert to v%d", c.Args.RevertToVersion)
	}
	return res
}
