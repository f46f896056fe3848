// Package jobs runs periodic maintenance against the service.
package jobs

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Sweeper interface {
	ExpireStale(ctx context.Context, now time.Time) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	now     func() time.Time
	timeout time.Duration
	log     *zap.Logger
}

func NewScheduler(sweeper Sweeper, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		sweeper: sweeper,
		now:     time.Now,
		timeout: 30 * time.Second,
		log:     log.Named("jobs"),
	}
}

// RegisterSweep schedules the expiry sweep on a cron spec such as "@every 1m".
func (s *Scheduler) RegisterSweep(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runWithRecovery("expire_stale", s.Sweep)); err != nil {
		return errors.Wrapf(err, "register sweep %q", spec)
	}
	return nil
}

// Sweep cancels accepted exchanges past their confirmation deadline.
func (s *Scheduler) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	n, err := s.sweeper.ExpireStale(ctx, s.now())
	if err != nil {
		s.log.Error("expire stale exchanges", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("expired stale exchanges", zap.Int("count", n))
	}
}

func (s *Scheduler) runWithRecovery(name string, fn func()) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("job panicked", zap.String("job", name), zap.Any("panic", r))
			}
		}()
		fn()
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}
