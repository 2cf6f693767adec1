package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply storage migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, repo, err := bootstrap(ctx, v)
			if err != nil {
				return err
			}
			// starting the backend connects and brings the schema up to date
			if err := repo.OnStart(ctx); err != nil {
				log.Errorw("migration failed", "error", err, "backend", cfg.Storage.Backend)
				return err
			}
			log.Infow("schema is up to date", "backend", cfg.Storage.Backend)
			return repo.OnStop(context.Background())
		},
	}
}
