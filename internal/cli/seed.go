package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lalimite123/agital-shop/internal/repository/postgres"
	"github.com/lalimite123/agital-shop/internal/seed"
	"github.com/lalimite123/agital-shop/migrations"
	"github.com/lalimite123/agital-shop/pkg/database"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all catalog data with a JSON fixture",
	Long: `Seed clears every product, review, and customer, then loads the
fixture file. Reviews in the fixture are assigned to products cyclically by
index. Migrations are applied first so a fresh database can be seeded in one
step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		fixture, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}

		pool, _, log, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}

		seeder := seed.New(
			postgres.NewProductRepository(pool),
			postgres.NewReviewRepository(pool),
			postgres.NewCustomerRepository(pool),
			log,
		)
		if err := seeder.Run(ctx, fixture); err != nil {
			return fmt.Errorf("seed: %w", err)
		}

		log.Info("seed complete", "file", seedFile)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed-data.json", "path to the JSON fixture")
}
