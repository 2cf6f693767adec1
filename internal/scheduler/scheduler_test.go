package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type prunerStub struct {
	calls atomic.Int32
	err   error
}

func (p *prunerStub) PruneExpiredTokens(_ context.Context) (int64, error) {
	p.calls.Add(1)
	return 0, p.err
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := New(zap.NewNop().Sugar())
	_, err := s.SchedulePrune(context.Background(), "every now and then", &prunerStub{})
	require.Error(t, err)
}

func TestScheduler_RunsPrune(t *testing.T) {
	for _, stub := range []*prunerStub{{}, {err: errors.New("db down")}} {
		s := New(zap.NewNop().Sugar())
		_, err := s.SchedulePrune(context.Background(), "@every 1s", stub)
		require.NoError(t, err)

		s.Start()
		require.Eventually(t, func() bool { return stub.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
		s.Stop()
	}
}
