package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/dotd/internal/output"
)

func newFilesCmd() *cobra.Command {
	var flags resolveFlags

	cmd := &cobra.Command{
		Use:     "files [files...]",
		Short:   "List every file a resolution reads",
		GroupID: GroupCore,
		Long: `List the canonical path of every file a resolution reads, sorted.

Symlinks are resolved, so a file reached through several routes is listed once.`,
		Example: `  dotd files main.conf
  dotd files main.conf | xargs wc -l`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			resolved, err := flags.run(ctx, args)
			if err != nil {
				return err
			}

			for _, f := range resolved.SeenConfigs() {
				out.Println(f)
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
