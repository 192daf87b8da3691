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
	"io"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/iodump"
	"github.com/spf13/cobra"
)

// getDumpCmd returns the dump command.
func getDumpCmd() *cobra.Command {
	var format, output string

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Print all views in dependency order",
		Long: `Dump prints views and materialized views so that every relation comes
after the relations it depends on. Materialized views are dumped with their
indexes and WITH NO DATA.

Examples:
  gnviews dump > views.sql
  gnviews dump --format yaml -o views.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(format, output)
		},
	}

	dumpCmd.Flags().StringVarP(&format, "format", "f", "sql", "output format: sql or yaml")
	dumpCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return dumpCmd
}

func runDump(format, output string) error {
	f, err := iodump.ParseFormat(format)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	ctx := context.Background()
	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		defer file.Close()
		w = file
	}

	if err = iodump.New(op.Pool(), cfg.JobsNumber).Write(ctx, w, f); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
