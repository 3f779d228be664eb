// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Package cli implements the taxiboard command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/taxiboard/internal/cache"
	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/query"
	"github.com/tomtom215/taxiboard/internal/textui"
	"github.com/tomtom215/taxiboard/internal/warehouse"
)

// Version is set at build time.
var Version = "dev"

type configKey struct{}

// Env builds the render stack. Tests replace Open to point at a local
// warehouse.
type Env struct {
	Open    warehouse.OpenFunc
	Catalog *catalog.Catalog
}

// NewRootCmd creates the root command.
func NewRootCmd(env Env) *cobra.Command {
	if env.Catalog == nil {
		env.Catalog = catalog.Default()
	}

	rootCmd := &cobra.Command{
		Use:   "taxiboard",
		Short: "NYC yellow taxi warehouse analytics in the terminal",
		Long: `taxiboard runs the dashboard's fixed panel queries against the configured
warehouse and prints the results.

Configuration comes from defaults, config.yaml, environment variables and
finally the flags below.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadWithFlags(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logging.Init(logging.Config{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				Caller:    cfg.Logging.Caller,
				Timestamp: true,
				Output:    cmd.ErrOrStderr(),
			})
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("driver", "", "warehouse driver (snowflake|duckdb)")
	flags.String("duckdb-path", "", "DuckDB database file")
	flags.String("account", "", "Snowflake account identifier")
	flags.String("user", "", "Snowflake user")
	flags.String("warehouse", "", "Snowflake virtual warehouse")
	flags.String("database", "", "database name")
	flags.String("schema", "", "schema name")
	flags.String("role", "", "Snowflake role")
	flags.Duration("timeout", 0, "per-query timeout")
	flags.Int("max-retries", 0, "retries for transient query failures")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.String("log-format", "", "log format (json|console)")

	rootCmd.AddCommand(newRenderCommand(env))
	rootCmd.AddCommand(newPanelsCommand(env))
	rootCmd.AddCommand(newSQLCommand(env))

	return rootCmd
}

func configFrom(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	if !ok {
		return nil, errors.New("configuration not loaded")
	}
	return cfg, nil
}

// stack is one command's render pipeline.
type stack struct {
	renderer *dashboard.Renderer
	printer  *textui.Printer
	close    func()
}

func newStack(cmd *cobra.Command, env Env, format string) (*stack, error) {
	cfg, err := configFrom(cmd.Context())
	if err != nil {
		return nil, err
	}

	var opts []warehouse.Option
	if env.Open != nil {
		opts = append(opts, warehouse.WithOpenFunc(env.Open))
	}
	provider := warehouse.New(&cfg.Warehouse, opts...)
	store := cache.New(0)

	executor := query.NewExecutor(provider, store, &cfg.Query)
	renderer := dashboard.NewRenderer(executor, env.Catalog, &cfg.Dashboard)

	printer, err := textui.NewPrinter(cmd.OutOrStdout(), renderer.Formatter(), format)
	if err != nil {
		store.Close()
		_ = provider.Close()
		return nil, err
	}

	return &stack{
		renderer: renderer,
		printer:  printer,
		close: func() {
			store.Close()
			if err := provider.Close(); err != nil {
				logging.Warn().Err(err).Msg("Error closing warehouse connection")
			}
		},
	}, nil
}

func lookupPanel(env Env, id string) (catalog.Panel, error) {
	p, ok := env.Catalog.Lookup(id)
	if !ok {
		return catalog.Panel{}, fmt.Errorf("unknown panel %q (run 'taxiboard panels' for the list)", id)
	}
	return p, nil
}
