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

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/iofs"
	"github.com/gnames/gnviews/internal/ioschema"
	"github.com/spf13/cobra"
)

// getInitCmd returns the init command.
func getInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Prepare the journal table and the definitions directory",
		Long: `Init creates the gnviews_journal table with GORM AutoMigrate and the
directories for view and function definitions.

The command is safe to run repeatedly, existing journal entries are kept.

Examples:
  gnviews init
  gnviews init -d sql/views`,
		RunE: runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	if err = ioschema.NewManager(op).Migrate(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	for _, dir := range []string{cfg.Views.DefinitionsDir, cfg.Views.FunctionsDir} {
		if err = iofs.EnsureDefinitionsDir(dir); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	gn.Info("Journal is ready, definitions are kept in <em>%s</em> and <em>%s</em>",
		cfg.Views.DefinitionsDir, cfg.Views.FunctionsDir)
	return nil
}
