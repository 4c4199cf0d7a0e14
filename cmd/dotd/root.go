package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/dotd/internal/config"
	"github.com/raphi011/dotd/internal/log"
	"github.com/raphi011/dotd/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupConfig = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dotd",
	Short: "Resolve include-based config files",
	Long: `dotd resolves line-oriented config files that pull in other files with
include directives.

Files are read depth-first in order. Every file is read at most once per run,
so include cycles and diamonds are harmless. Later directives override earlier
ones.

Directives:
  include <pattern>             read every file matching pattern
  include_one <pattern>...      read matches, first file name wins
  font <value>                  set the font
  active <bool>                 set the active flag

Patterns support $VAR and ${VAR:-default} expansion, ~, {a,b} braces and
*, ?, [..], ** globs.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// flags are parsed now, so the logger can honour them
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		cmd.SetContext(ctx)
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg := &loaded

	workDir, err := os.Getwd()
	if err != nil {
		printError(os.Stderr, fmt.Errorf("failed to get working directory: %w", err))
		os.Exit(1)
	}

	if eff, err := config.ForDir(cfg, workDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using global config)\n", err)
	} else {
		cfg = eff
	}

	ctx = config.WithConfig(ctx, cfg)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace files as they are read")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newFilesCmd())
	rootCmd.AddCommand(newWatchCmd())

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
