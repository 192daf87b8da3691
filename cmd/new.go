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
	"github.com/gnames/gnviews/internal/iodefs"
	"github.com/gnames/gnviews/internal/iofs"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/spf13/cobra"
)

// getNewCmd returns the command that starts a new definition version.
func getNewCmd() *cobra.Command {
	var function bool

	newCmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Start the next version of a view or function definition",
		Long: `New writes the next version of a definition file. The content of the
latest version is copied, the first version is empty.

Examples:
  gnviews new reports
  gnviews new stats.daily
  gnviews new total --function`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cfg.Views.DefinitionsDir
			if function {
				dir = cfg.Views.FunctionsDir
			}
			return runNew(dir, args)
		},
	}

	newCmd.Flags().BoolVarP(&function, "function", "f", false,
		"write a function definition")
	return newCmd
}

func runNew(dir string, args []string) error {
	name, err := relation.ParseName(args[0])
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureDefinitionsDir(dir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	src := iodefs.New(dir)
	latest, err := src.Latest(name)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var sql string
	if latest > 0 {
		if sql, err = src.Definition(name, latest); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	path, err := src.Write(name, latest+1, sql)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Version %d of <em>%s</em> is in <em>%s</em>", latest+1, name.Key(), path)
	return nil
}
