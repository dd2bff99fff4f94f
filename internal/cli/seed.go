package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trivia-service/internal/catalog"
	"trivia-service/internal/infra/postgres"
)

// NewSeedCmd loads the built-in question set into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Upsert the built-in questions into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			if err := runMigrations(cmd.Context(), cfg, log); err != nil {
				return err
			}
			db, err := openBun(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := postgres.Seed(cmd.Context(), db, catalog.Builtin())
			if err != nil {
				return err
			}
			log.Info("questions seeded", zap.Int("rows", n))
			return nil
		},
	}
}
