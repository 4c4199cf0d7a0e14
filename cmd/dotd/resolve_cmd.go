package main

import (
	"cmp"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/dotd/internal/config"
	"github.com/raphi011/dotd/internal/format"
	"github.com/raphi011/dotd/internal/log"
	"github.com/raphi011/dotd/internal/output"
	"github.com/raphi011/dotd/internal/storage"
)

func newResolveCmd() *cobra.Command {
	var (
		flags      resolveFlags
		formatName string
		savePath   string
		copyOutput bool
	)

	cmd := &cobra.Command{
		Use:     "resolve [files...]",
		Short:   "Resolve config files and print the result",
		Aliases: []string{"r"},
		GroupID: GroupCore,
		Long: `Resolve config files and print the merged settings and every file read.

Files are read in the order given. Without arguments the files from the
dotd config are used.`,
		Example: `  dotd resolve ~/.config/app/config        # Table on a terminal
  dotd resolve -f json main.conf            # JSON output
  dotd resolve --env-file .env main.conf    # Extra variables for patterns
  dotd resolve --save state.json main.conf  # Also write a JSON snapshot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			name := cmp.Or(formatName, cfg.Format)
			if err := config.ValidateFormat(name); err != nil {
				return err
			}

			resolved, err := flags.run(ctx, args)
			if err != nil {
				return err
			}
			res := resolved.Result()

			rendered, err := format.Render(res, name, out.Styled())
			if err != nil {
				return err
			}

			if savePath != "" {
				if err := storage.SaveSnapshot(savePath, res); err != nil {
					return err
				}
				l.Debug("saved snapshot", "path", savePath)
			}

			if copyOutput {
				// the clipboard gets the unstyled form
				plain, err := format.Render(res, name, false)
				if err != nil {
					return err
				}
				if err := clipboard.WriteAll(plain); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}

			out.Print(rendered)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatName, "format", "f", "", fmt.Sprintf("Output format: %v (default from config)", config.ValidFormats))
	cmd.Flags().StringVar(&savePath, "save", "", "Write a JSON snapshot of the result to this path")
	cmd.Flags().BoolVar(&copyOutput, "copy", false, "Copy the output to the clipboard")

	cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.ValidFormats, cobra.ShellCompDirectiveNoFileComp))
	cmd.MarkFlagFilename("save", "json")

	return cmd
}
