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
	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/spf13/cobra"
)

// viewFlags are options shared by commands that change views.
type viewFlags struct {
	version       int
	revertTo      int
	sql           string
	materialized  bool
	noData        bool
	sideBySide    bool
	renameIndexes bool
	copyFrom      string
}

func (f *viewFlags) addVersion(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.version, "version", "v", 0,
		"version of the definition file")
}

func (f *viewFlags) addSQL(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sql, "sql", "",
		"SQL definition instead of a definition file")
}

func (f *viewFlags) addRevertTo(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.revertTo, "revert-to", "r", 0,
		"version to restore on rollback")
}

func (f *viewFlags) addMaterialized(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&f.materialized, "materialized", "m", false,
		"work with a materialized view")
}

// materializedOptions returns nil for plain views. Any materialized-only
// flag implies a materialized view.
func (f *viewFlags) materializedOptions() *lifecycle.MaterializedOptions {
	if !f.materialized && !f.noData && !f.sideBySide &&
		!f.renameIndexes && f.copyFrom == "" {
		return nil
	}
	return &lifecycle.MaterializedOptions{
		NoData:          f.noData,
		SideBySide:      f.sideBySide,
		CopyIndexesFrom: f.copyFrom,
		RenameIndexes:   f.renameIndexes,
	}
}

func (f *viewFlags) args() command.Args {
	return command.Args{
		Version:         f.version,
		SQLDefinition:   f.sql,
		RevertToVersion: f.revertTo,
		Materialized:    f.materializedOptions(),
	}
}
