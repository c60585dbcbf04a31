package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lalimite123/agital-shop/migrations"
	"github.com/lalimite123/agital-shop/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, _, log, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		log.Info("migrations complete")
		return nil
	},
}
