package watch_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirkanov/avito-watch/internal/avito"
	"github.com/temirkanov/avito-watch/internal/watch"
)

// countingFetcher counts GetItem calls across goroutines.
type countingFetcher struct {
	calls atomic.Int32
}

func (c *countingFetcher) GetItem(_ context.Context, itemID string) (*avito.Item, error) {
	c.calls.Add(1)
	return &avito.Item{ID: itemID, Price: 100}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScheduler(
	t *testing.T,
	fetcher *countingFetcher,
	interval, initialDelay time.Duration,
) *watch.Scheduler {
	t.Helper()

	registry := watch.NewRegistry(10)
	require.NoError(t, registry.Add(1, "101", 100))

	poller := watch.NewPoller(
		fetcher,
		registry,
		&recordingNotifier{},
		5.0,
		watch.WithPollerLogger(quietLogger()),
	)

	sched, err := watch.NewScheduler(poller, interval, initialDelay, quietLogger())
	require.NoError(t, err)
	return sched
}

func TestScheduler_StartStop(t *testing.T) {
	t.Parallel()

	fetcher := &countingFetcher{}
	sched := newTestScheduler(t, fetcher, time.Hour, time.Hour)

	sched.Start()
	ctx := sched.Stop()
	<-ctx.Done()
}

func TestScheduler_FirstRunAfterInitialDelay(t *testing.T) {
	t.Parallel()

	fetcher := &countingFetcher{}
	sched := newTestScheduler(t, fetcher, time.Hour, 10*time.Millisecond)

	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	assert.Eventually(t, func() bool {
		return fetcher.calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopCancelsPendingFirstRun(t *testing.T) {
	t.Parallel()

	fetcher := &countingFetcher{}
	sched := newTestScheduler(t, fetcher, time.Hour, 50*time.Millisecond)

	sched.Start()
	<-sched.Stop().Done()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, fetcher.calls.Load())
}
