package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/dotd/internal/config"
	"github.com/raphi011/dotd/internal/format"
	"github.com/raphi011/dotd/internal/log"
	"github.com/raphi011/dotd/internal/output"
	"github.com/raphi011/dotd/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		flags      resolveFlags
		formatName string
		debounce   time.Duration
	)

	cmd := &cobra.Command{
		Use:     "watch [files...]",
		Short:   "Re-resolve whenever a config file changes",
		GroupID: GroupCore,
		Long: `Resolve config files, print the result, then re-resolve and print again
whenever a file that was read (or its directory) changes.

Resolution errors are printed and watching continues. Stop with Ctrl-C.`,
		Example: `  dotd watch main.conf
  dotd watch -f json --debounce 1s main.conf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			name := cmp.Or(formatName, cfg.Format)
			if err := config.ValidateFormat(name); err != nil {
				return err
			}

			inputs, err := inputFiles(args, cfg)
			if err != nil {
				return err
			}

			w, err := watch.New(debounce)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			defer w.Close()

			return runWatch(ctx, cmd, w, &flags, inputs, name)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatName, "format", "f", "", fmt.Sprintf("Output format: %v (default from config)", config.ValidFormats))
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before re-resolving")
	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.ValidFormats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runWatch loops until ctx is cancelled. Each iteration is one full
// resolution; the file set it read becomes the new watch set.
func runWatch(ctx context.Context, cmd *cobra.Command, w *watch.Watcher, flags *resolveFlags, inputs []string, formatName string) error {
	out := output.FromContext(ctx)
	l := log.FromContext(ctx)

	var tracked []string
	for first := true; ; first = false {
		if !first {
			l.Printf("change detected, resolving again\n")
		}

		resolved, err := flags.run(ctx, inputs)

		var watchSet []string
		if err != nil {
			// keep the last good set so fixing the broken file triggers a rerun
			watchSet = append(absPaths(inputs), tracked...)
		} else {
			tracked = resolved.SeenConfigs()
			watchSet = tracked
		}
		// track before printing so no change after the output is missed
		if err := w.Track(watchSet); err != nil {
			l.Printf("Warning: %v\n", err)
		}

		if err != nil {
			printError(cmd.ErrOrStderr(), err)
		} else {
			rendered, err := format.Render(resolved.Result(), formatName, out.Styled())
			if err != nil {
				return err
			}
			out.Print(rendered)
		}
		l.Debug("watching", "dirs", w.Dirs())

		if err := w.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
	}
}

func absPaths(paths []string) []string {
	abs := make([]string, 0, len(paths))
	for _, p := range paths {
		if a, err := filepath.Abs(p); err == nil {
			abs = append(abs, a)
		}
	}
	return abs
}
