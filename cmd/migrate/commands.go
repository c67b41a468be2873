package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fastygo/alle/internal/config"
	"github.com/fastygo/alle/internal/infrastructure/database"
	"github.com/fastygo/alle/internal/infrastructure/migrations"
	"github.com/fastygo/alle/pkg/logger"
)

type rootOptions struct {
	databaseURL string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Apply or roll back the alle database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.databaseURL, "database-url", "", "database URL (defaults to DATABASE_URL)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every migration step")

	root.AddCommand(
		newUpCmd(opts),
		newDownCmd(opts),
		newGotoCmd(opts),
		newVersionCmd(opts),
	)
	return root
}

func newUpCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(cmd, opts, func(r *migrations.Runner) error {
				return r.Up()
			})
		},
	}
}

func newDownCmd(opts *rootOptions) *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations, all of them unless --steps is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps < 0 {
				return fmt.Errorf("--steps must be positive")
			}
			return withRunner(cmd, opts, func(r *migrations.Runner) error {
				if steps > 0 {
					return r.Steps(-steps)
				}
				return r.Down()
			})
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "number of migrations to roll back")
	return cmd
}

func newGotoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <version>",
		Short: "Migrate up or down to an exact version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return withRunner(cmd, opts, func(r *migrations.Runner) error {
				return r.Goto(uint(version))
			})
		},
	}
}

func newVersionCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(cmd, opts, func(r *migrations.Runner) error {
				v, dirty, err := r.Version()
				if err != nil {
					return err
				}
				state := "clean"
				if dirty {
					state = "dirty"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (%s, latest %d)\n", v, state, migrations.Latest)
				return nil
			})
		},
	}
}

func withRunner(cmd *cobra.Command, opts *rootOptions, fn func(*migrations.Runner) error) error {
	url := opts.databaseURL
	if url == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		url = cfg.Database.URL
	}

	log := zap.NewNop()
	if opts.verbose {
		built, err := logger.New(logger.Config{Level: "debug", Encoding: "console", Service: "migrate"})
		if err != nil {
			return err
		}
		log = built
	}

	target, err := database.ParseURL(url)
	if err != nil {
		return err
	}
	runner, err := migrations.NewRunner(target, log)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := fn(runner); err != nil {
		return err
	}
	log.Info("done", zap.String("command", cmd.Name()), zap.String("url", config.DatabaseConfig{URL: url}.SanitizedURL()))
	return nil
}
