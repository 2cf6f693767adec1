package main

import (
	"context"
	"fmt"

	"github.com/k13lucien/Kollab/config"
	"github.com/k13lucien/Kollab/internal/repository"
	"github.com/k13lucien/Kollab/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "kollab",
		Short: "Team, project and task collaboration API",
		Long: `kollab serves a small collaboration API: users organise into teams,
teams own projects and projects hold tasks assigned to users.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v)
		},
	}

	root.PersistentFlags().String("backend", "", "storage backend: postgres or sqlite")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("storage.backend", root.PersistentFlags().Lookup("backend"))
	_ = v.BindPFlag("logging.level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newServeCmd(v), newMigrateCmd(v))
	return root
}

// bootstrap loads configuration and builds the logger and the storage backend.
func bootstrap(ctx context.Context, v *viper.Viper) (*config.Config, *zap.SugaredLogger, repository.Repository, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("build logger: %w", err)
	}

	repo, err := repository.New(ctx, cfg.Storage.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return nil, nil, nil, err
	}
	return cfg, log, repo, nil
}
