package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/raphi011/dotd/internal/output"
	"github.com/raphi011/dotd/internal/resolve"
	"github.com/raphi011/dotd/internal/storage"
)

var errSnapshotChanged = errors.New("result differs from snapshot")

func newCheckCmd() *cobra.Command {
	var (
		flags   resolveFlags
		against string
	)

	cmd := &cobra.Command{
		Use:     "check [files...]",
		Short:   "Check that config files resolve cleanly",
		GroupID: GroupCore,
		Long: `Check that config files resolve without errors.

Prints "ok" and the number of files read on success. On failure the error is
printed and the exit code is 1.

With --against, the result is also compared to a snapshot written by
'dotd resolve --save' and any difference is reported as a failure.`,
		Example: `  dotd check main.conf
  dotd check --against state.json main.conf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			resolved, err := flags.run(ctx, args)
			if err != nil {
				return err
			}
			res := resolved.Result()

			if against != "" {
				snap, err := storage.LoadSnapshot(against)
				if err != nil {
					return err
				}
				if diff := diffResults(snap, res); len(diff) > 0 {
					for _, line := range diff {
						out.Println(line)
					}
					return fmt.Errorf("%w: %s", errSnapshotChanged, against)
				}
			}

			out.Printf("ok (%d %s)\n", len(res.Files), plural(len(res.Files), "file", "files"))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&against, "against", "", "Compare the result to a JSON snapshot")
	cmd.MarkFlagFilename("against", "json")

	return cmd
}

// diffResults lists the differences from old to cur, settings first, then
// files removed (-) and added (+).
func diffResults(old, cur resolve.Result) []string {
	var diff []string
	if old.Active != cur.Active {
		diff = append(diff, fmt.Sprintf("active: %s -> %s", strconv.FormatBool(old.Active), strconv.FormatBool(cur.Active)))
	}
	if old.Font != cur.Font {
		diff = append(diff, fmt.Sprintf("font: %s -> %s", old.Font, cur.Font))
	}
	for _, f := range old.Files {
		if !slices.Contains(cur.Files, f) {
			diff = append(diff, "- "+f)
		}
	}
	for _, f := range cur.Files {
		if !slices.Contains(old.Files, f) {
			diff = append(diff, "+ "+f)
		}
	}
	return diff
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
