// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// TokenPruner deletes expired credentials.
type TokenPruner interface {
	PruneExpiredTokens(ctx context.Context) (int64, error)
}

// Scheduler wraps cron-based jobs.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger
}

// New creates a scheduler; jobs never overlap with their own previous run.
func New(log *zap.SugaredLogger) *Scheduler {
	l := log.Named("scheduler")
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{log: l})),
		),
		log: l,
	}
}

// SchedulePrune registers the expired-token janitor on spec, a standard cron
// expression or a descriptor such as "@every 1h".
func (s *Scheduler) SchedulePrune(ctx context.Context, spec string, pruner TokenPruner) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, func() {
		n, err := pruner.PruneExpiredTokens(ctx)
		if err != nil {
			s.log.Errorw("token prune failed", "error", err)
			return
		}
		s.log.Debugw("token prune finished", "deleted", n)
	})
	if err != nil {
		return 0, fmt.Errorf("schedule token prune %q: %w", spec, err)
	}
	return id, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
