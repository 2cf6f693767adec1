// Package usecase exposes the application layer to delivery code.
package usecase

import (
	"context"
	"time"

	"github.com/k13lucien/Kollab/internal/auth"
	"github.com/k13lucien/Kollab/internal/repository"
	"github.com/k13lucien/Kollab/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	AuthUsecaseInterface
	MembershipUsecaseInterface
	TeamUsecaseInterface
	ProjectUsecaseInterface
	TaskUsecaseInterface
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	timeout time.Duration,
	tokens *auth.Tokens,
	passwords *auth.Passwords,
) InterfaceUsecase {
	return domain.New(log, ctx, repo, timeout, tokens, passwords)
}
