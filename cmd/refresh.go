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
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"github.com/spf13/cobra"
)

// getRefreshCmd returns the refresh command.
func getRefreshCmd() *cobra.Command {
	var opts lifecycle.RefreshOptions
	var all bool

	refreshCmd := &cobra.Command{
		Use:   "refresh [NAME]",
		Short: "Refresh materialized views",
		Long: `Refresh reloads the data of a materialized view.

With --cascade the materialized views it depends on are refreshed first,
one by one, in dependency order. With --all every materialized view is
refreshed in dependency order.

--concurrently keeps the view readable during the refresh. It needs a
populated view with a unique index.

Examples:
  gnviews refresh reports
  gnviews refresh reports --cascade
  gnviews refresh --all --concurrently`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(args, opts, all)
		},
	}

	refreshCmd.Flags().BoolVar(&opts.Concurrently, "concurrently", false,
		"refresh without blocking readers")
	refreshCmd.Flags().BoolVar(&opts.Cascade, "cascade", false,
		"refresh upstream materialized views first")
	refreshCmd.Flags().BoolVarP(&all, "all", "a", false,
		"refresh all materialized views")

	return refreshCmd
}

func runRefresh(args []string, opts lifecycle.RefreshOptions, all bool) error {
	if all == (len(args) == 1) {
		err := errors.New("give either a view name or --all")
		gn.PrintErrorMessage(err)
		return err
	}

	ctx := context.Background()
	s, err := openSession(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer s.close()

	if all {
		err = s.runner.RefreshAll(ctx, opts.Concurrently)
	} else {
		var name relation.Name
		if name, err = relation.ParseName(args[0]); err == nil {
			err = s.runner.Refresh(ctx, name, opts)
		}
		if err == nil {
			gn.Info("Materialized view <em>%s</em> has been refreshed", name.Key())
		}
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}
