// Package repository provides factory for repositories.
package repository

import (
	"context"
	"fmt"

	"github.com/k13lucien/Kollab/config"
	"github.com/k13lucien/Kollab/internal/repository/postgres"
	"github.com/k13lucien/Kollab/internal/repository/sqlite"

	"go.uber.org/zap"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	LifecycleInterface
	UserInterface
	TokenInterface
	TeamInterface
	MembershipInterface
	ProjectInterface
	TaskInterface
}

// New constructs repository backend by name.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config) (Repository, error) {
	switch name {
	case config.BackendPostgres:
		return postgres.New(ctx, log, cfg), nil
	case config.BackendSQLite:
		return sqlite.New(log, cfg), nil
	default:
		return nil, fmt.Errorf("unknown repo backend: %s", name)
	}
}
