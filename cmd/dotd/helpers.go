package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/raphi011/dotd/internal/config"
	"github.com/raphi011/dotd/internal/log"
	"github.com/raphi011/dotd/internal/pathglob"
	"github.com/raphi011/dotd/internal/resolve"
)

var errNoFiles = errors.New("no config files given (pass files or set files in the dotd config)")

// resolveFlags are shared by every command that runs a resolution.
type resolveFlags struct {
	envFile  string
	maxDepth int
}

func (f *resolveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Dotenv file with variables for include patterns")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", -1, "Maximum include nesting, 0 for unlimited (default from config)")
	cmd.MarkFlagFilename("env-file")
}

// engine builds a resolve.Engine from the effective config and the flags.
// Variables from the env file override [env] entries of the same name.
func (f *resolveFlags) engine(ctx context.Context, cfg *config.Config) (*resolve.Engine, error) {
	env := maps.Clone(cfg.Env)
	if env == nil {
		env = make(map[string]string)
	}

	if envFile := cmp.Or(f.envFile, cfg.EnvFile); envFile != "" {
		vars, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("read env file: %w", err)
		}
		maps.Copy(env, vars)
	}

	depth := cfg.MaxDepth
	if f.maxDepth >= 0 {
		depth = f.maxDepth
	}

	return &resolve.Engine{
		Paths:    pathglob.New().WithEnv(env),
		MaxDepth: depth,
		Logger:   log.FromContext(ctx),
	}, nil
}

// run resolves the files named in args, or the configured default files.
func (f *resolveFlags) run(ctx context.Context, args []string) (*resolve.Config, error) {
	cfg := config.FromContext(ctx)

	files, err := inputFiles(args, cfg)
	if err != nil {
		return nil, err
	}

	e, err := f.engine(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Debug("resolve", "files", len(files), "max_depth", e.MaxDepth)
	return e.ResolveAll(files)
}

// inputFiles returns args, falling back to the configured files.
func inputFiles(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Files) > 0 {
		return cfg.Files, nil
	}
	return nil, errNoFiles
}
