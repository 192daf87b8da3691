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

// getFunctionCmd returns the function command with its subcommands.
func getFunctionCmd() *cobra.Command {
	functionCmd := &cobra.Command{
		Use:   "function",
		Short: "Create, update or drop versioned functions",
		Long: `Function manages SQL and PL/pgSQL functions whose definitions are kept
as <name>_v<NN>.sql files in the functions directory (db/functions by
default). Each file holds a complete CREATE FUNCTION statement.

Changes are journaled like view changes and can be rolled back.

Examples:
  gnviews function create total
  gnviews function update total --version 2 --revert-to 1
  gnviews function drop total --revert-to 2`,
	}

	functionCmd.AddCommand(
		getFunctionCreateCmd(),
		getFunctionUpdateCmd(),
		getFunctionDropCmd(),
	)
	return functionCmd
}

func getFunctionCreateCmd() *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a function",
		Long: `Create runs a function definition. Without --version and --sql the first
version is used. The function must not exist yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(command.CreateFunction, args, &f)
		},
	}
	f.addVersion(cmd)
	f.addSQL(cmd)
	return cmd
}

func getFunctionUpdateCmd() *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Replace a function with another version",
		Long: `Update drops the function and runs the new definition, so arguments and
the return type may change. Functions with overloads are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(command.UpdateFunction, args, &f)
		},
	}
	f.addVersion(cmd)
	f.addSQL(cmd)
	f.addRevertTo(cmd)
	return cmd
}

func getFunctionDropCmd() *cobra.Command {
	var f viewFlags
	cmd := &cobra.Command{
		Use:   "drop NAME",
		Short: "Drop a function",
		Long: `Drop removes a function that has no overloads. Without --revert-to the
drop cannot be rolled back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChange(command.DropFunction, args, &f)
		},
	}
	f.addRevertTo(cmd)
	return cmd
}
