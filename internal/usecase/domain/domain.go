package domain

import (
	"context"
	"time"

	"github.com/k13lucien/Kollab/internal/auth"
	"github.com/k13lucien/Kollab/internal/lifecycle"
	"github.com/k13lucien/Kollab/internal/policy"
	"github.com/k13lucien/Kollab/internal/repository"

	"go.uber.org/zap"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx       context.Context
	log       *zap.SugaredLogger
	repo      repository.Repository
	timeout   time.Duration
	policy    *policy.Evaluator
	tasks     *lifecycle.Engine
	tokens    *auth.Tokens
	passwords *auth.Passwords
	now       func() time.Time
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	timeout time.Duration,
	tokens *auth.Tokens,
	passwords *auth.Passwords,
) *Usecase {
	return &Usecase{
		ctx:       ctx,
		log:       log,
		repo:      repo,
		timeout:   timeout,
		policy:    policy.NewEvaluator(repo),
		tasks:     lifecycle.New(time.Now),
		tokens:    tokens,
		passwords: passwords,
		now:       time.Now,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
