package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/dotd/internal/config"
	"github.com/raphi011/dotd/internal/log"
	"github.com/raphi011/dotd/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage dotd settings",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage dotd settings.

Global config: $XDG_CONFIG_HOME/dotd/config.toml (or ~/.config/dotd/config.toml)
Local config:  .dotd.toml (in the current directory)`,
		Example: `  dotd config init          # Create default global config
  dotd config init --local  # Create .dotd.toml here
  dotd config show          # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config. With --local, creates .dotd.toml in
the current directory.`,
		Example: `  dotd config init           # Create global config
  dotd config init --local   # Create local config
  dotd config init -f        # Overwrite existing config
  dotd config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if local {
				if stdout {
					out.Print(config.DefaultLocalConfig())
					return nil
				}
				dir, err := os.Getwd()
				if err != nil {
					return err
				}
				path, err := initLocalConfig(dir, force)
				if err != nil {
					return err
				}
				out.Printf("Created local config: %s\n", path)
				return nil
			}

			if stdout {
				out.Print(config.DefaultConfig())
				return nil
			}
			path, err := config.Init(force)
			if err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create .dotd.toml in the current directory instead")

	return cmd
}

// initLocalConfig writes the local config template into dir.
func initLocalConfig(dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.LocalConfigFileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("local config already exists: %s (use -f to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(config.DefaultLocalConfig()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func newConfigShowCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long: `Show effective configuration: the global config with environment
overrides and any .dotd.toml in the current directory applied.`,
		Example: `  dotd config show         # TOML
  dotd config show --json  # JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			out := output.FromContext(ctx)
			l := log.FromContext(ctx)

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			if path, err := config.Path(); err == nil {
				l.Printf("Global config: %s\n", path)
			}
			if wd, err := os.Getwd(); err == nil {
				local := filepath.Join(wd, config.LocalConfigFileName)
				if _, err := os.Stat(local); err == nil {
					l.Printf("Local config:  %s\n", local)
				}
			}

			return toml.NewEncoder(out.Writer()).Encode(cfg)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
