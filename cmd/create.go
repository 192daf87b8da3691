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
	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getCreateCmd() *cobra.Command {
	var f viewFlags

	createCmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a view or a materialized view",
		Long: `Create makes a new view from a definition file. Without --version and
--sql the first version is used.

Materialized views can be created without data (--no-data), and can get
copies of the indexes of another relation (--copy-indexes-from).

Examples:
  gnviews create reports
  gnviews create reports --version 3 --materialized
  gnviews create reports_next --version 3 --copy-indexes-from reports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(command.CreateView, args, &f)
		},
	}

	f.addVersion(createCmd)
	f.addSQL(createCmd)
	f.addMaterialized(createCmd)
	createCmd.Flags().BoolVar(&f.noData, "no-data", false,
		"create a materialized view without populating it")
	createCmd.Flags().StringVar(&f.copyFrom, "copy-indexes-from", "",
		"recreate indexes of this relation on the new materialized view")

	return createCmd
}

// runChange applies one command built from arguments and flags.
func runChange(op command.Op, args []string, f *viewFlags) error {
	c := command.Command{Op: op, Args: f.args()}
	names := make([]relation.Name, len(args))
	for i, v := range args {
		n, err := relation.ParseName(v)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		names[i] = n
	}

	c.Name = names[0].Key()
	if len(names) > 1 {
		c.To = names[1].Key()
	}
	return applyCommands(c)
}
