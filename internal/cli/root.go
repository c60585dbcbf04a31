// Package cli implements the catalogctl command line tool for operational
// tasks: running migrations and seeding fixture data.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/lalimite123/agital-shop/internal/config"
	"github.com/lalimite123/agital-shop/pkg/database"
	"github.com/lalimite123/agital-shop/pkg/logger"
)

const connectTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:           "catalogctl",
	Short:         "Operational tooling for the catalog service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Commands are canceled on SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	return rootCmd.ExecuteContext(ctx)
}

// connect loads configuration and opens a database pool. The caller owns the
// pool and must close it.
func connect(ctx context.Context) (*pgxpool.Pool, *config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New("catalogctl", cfg.LogLevel)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := database.NewPostgresPoolWithLogger(connectCtx, cfg.Postgres(), log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return pool, cfg, log, nil
}
