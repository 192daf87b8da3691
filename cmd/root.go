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
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gnviews/internal/ioconfig"
	"github.com/gnames/gnviews/internal/iofs"
	"github.com/gnames/gnviews/internal/iologger"
	app "github.com/gnames/gnviews/pkg"
	"github.com/gnames/gnviews/pkg/config"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	cfg     *config.Config

	quiet          bool
	definitionsDir string
	functionsDir   string
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnviews",
		Short:   "Versioned PostgreSQL views and materialized views",
		Long: `gnviews manages PostgreSQL views and materialized views as versioned
schema objects.

Definitions are kept as files named <name>_v<NN>.sql in the definitions
directory (db/views by default). Every change is applied in a transaction
and written to the gnviews_journal table, so the last batch of changes can
be rolled back.

Materialized views keep their indexes when their definition changes.
With --side-by-side a new version is built next to the old one and swapped
in, so readers are blocked only for the swap.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNVIEWS_*)
  3. Config file (~/.config/gnviews/config.yaml)
  4. Built-in defaults

Examples:
  gnviews init
  gnviews create reports --materialized
  gnviews update reports --version 2 --revert-to 1 --materialized --side-by-side
  gnviews refresh --all --concurrently
  gnviews rollback`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnviews version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnviews")

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"do not print progress messages")
	rootCmd.PersistentFlags().StringVarP(&definitionsDir, "definitions-dir", "d", "",
		"directory with view definitions (default from config)")
	rootCmd.PersistentFlags().StringVar(&functionsDir, "functions-dir", "",
		"directory with function definitions (default from config)")

	rootCmd.AddCommand(
		getInitCmd(),
		getNewCmd(),
		getCreateCmd(),
		getUpdateCmd(),
		getDropCmd(),
		getFunctionCmd(),
		getRenameCmd(),
		getReplaceCmd(),
		getRefreshCmd(),
		getApplyCmd(),
		getRollbackCmd(),
		getHistoryCmd(),
		getDumpCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if cfg, err = ioconfig.Load(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	opts := []config.Option{config.OptHomeDir(homeDir)}
	if definitionsDir != "" {
		opts = append(opts, config.OptViewsDefinitionsDir(definitionsDir))
	}
	if functionsDir != "" {
		opts = append(opts, config.OptViewsFunctionsDir(functionsDir))
	}
	cfg.Update(opts)

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"definitions_dir", cfg.Views.DefinitionsDir,
		"functions_dir", cfg.Views.FunctionsDir,
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}
