package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the poller on a fixed interval. The first cycle runs
// after a short initial delay; subsequent cycles are cron-scheduled and a
// still-running cycle is skipped rather than overlapped.
type Scheduler struct {
	cron         *cron.Cron
	poller       *Poller
	interval     time.Duration
	initialDelay time.Duration
	log          *slog.Logger

	cancelFirst context.CancelFunc
}

// NewScheduler creates a scheduler running the poller every interval.
func NewScheduler(
	p *Poller,
	interval time.Duration,
	initialDelay time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	s := &Scheduler{
		cron:         c,
		poller:       p,
		interval:     interval,
		initialDelay: initialDelay,
		log:          log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runCycle); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins scheduling. The initial delayed run fires from its own
// goroutine; the cron takes over from there.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelFirst = cancel

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.initialDelay):
			s.runCycle()
		}
	}()

	s.cron.Start()
	s.log.Info("scheduler started",
		"interval", s.interval,
		"initial_delay", s.initialDelay,
	)
}

// Stop halts scheduling and returns a context that completes when the
// in-flight cycle (if any) finishes.
func (s *Scheduler) Stop() context.Context {
	if s.cancelFirst != nil {
		s.cancelFirst()
	}
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

func (s *Scheduler) runCycle() {
	s.poller.RunCycle(context.Background())
}
