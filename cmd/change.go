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
	"github.com/spf13/cobra"
)

// getUpdateCmd returns the update command.
func getUpdateCmd() *cobra.Command {
	var f viewFlags

	updateCmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Change the definition of a view",
		Long: `Update drops a view and creates it from a new definition.

Indexes of a materialized view are captured before the drop and
recreated afterwards. Indexes that do not fit the new definition are
reported and skipped.

With --side-by-side the new version is created under a temporary name,
indexes are moved to it, and it replaces the old version. It needs more
disk space, but the view stays readable while the new version is built.

Examples:
  gnviews update reports --version 2 --revert-to 1
  gnviews update reports -v 2 -r 1 --materialized --side-by-side`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(command.UpdateView, args, &f)
		},
	}

	f.addVersion(updateCmd)
	f.addSQL(updateCmd)
	f.addRevertTo(updateCmd)
	f.addMaterialized(updateCmd)
	updateCmd.Flags().BoolVar(&f.noData, "no-data", false,
		"do not populate the new materialized view")
	updateCmd.Flags().BoolVar(&f.sideBySide, "side-by-side", false,
		"build the new version next to the old one and swap")

	return updateCmd
}

// getDropCmd returns the drop command.
func getDropCmd() *cobra.Command {
	var f viewFlags

	dropCmd := &cobra.Command{
		Use:   "drop NAME",
		Short: "Drop a view",
		Long: `Drop removes a view or a materialized view.

A drop can be rolled back only when --revert-to names the version to
create again.

Examples:
  gnviews drop reports --revert-to 2
  gnviews drop reports -m -r 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(command.DropView, args, &f)
		},
	}

	f.addRevertTo(dropCmd)
	f.addMaterialized(dropCmd)

	return dropCmd
}

// getRenameCmd returns the rename command.
func getRenameCmd() *cobra.Command {
	var f viewFlags

	renameCmd := &cobra.Command{
		Use:   "rename FROM TO",
		Short: "Rename a view",
		Long: `Rename changes the name of a view within its schema. The definition
stays the same. With --version the renamed view is compared with that
version of the new name.

Examples:
  gnviews rename reports reports_archive
  gnviews rename reports reports_archive -m --rename-indexes`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(command.RenameView, args, &f)
		},
	}

	f.addVersion(renameCmd)
	f.addRevertTo(renameCmd)
	f.addMaterialized(renameCmd)
	renameCmd.Flags().BoolVar(&f.renameIndexes, "rename-indexes", false,
		"rename indexes that contain the old name")

	return renameCmd
}

// getReplaceCmd returns the replace command.
func getReplaceCmd() *cobra.Command {
	var f viewFlags

	replaceCmd := &cobra.Command{
		Use:   "replace NAME [TO]",
		Short: "Replace a view definition or swap in a prepared view",
		Long: `With one name, replace uses CREATE OR REPLACE VIEW, so views that
depend on it are kept. PostgreSQL accepts only definitions that keep the
existing columns. Materialized views cannot be replaced in place.

With two names, NAME takes the place of TO: TO is dropped and NAME is
renamed. This finishes a release where the new version was created and
refreshed under a working name. With --version the result is compared
with that version of TO.

Examples:
  gnviews replace reports --version 3 --revert-to 2
  gnviews replace reports_next reports -v 3 -m --rename-indexes`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(command.ReplaceView, args, &f)
		},
	}

	f.addVersion(replaceCmd)
	f.addRevertTo(replaceCmd)
	f.addMaterialized(replaceCmd)
	replaceCmd.Flags().BoolVar(&f.renameIndexes, "rename-indexes", false,
		"rename indexes that contain the old name")

	return replaceCmd
}
