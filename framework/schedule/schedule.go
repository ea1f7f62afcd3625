// Package schedule is the recurring-task collaborator: a thin wrapper over
// robfig/cron, registered as a Singleton and started by the
// "schedule.start" loader unit. The scheduler's goroutine belongs to the
// embedding process, which owns it until shutdown via Stop.
package schedule

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler registers and runs cron-style jobs.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// New creates a stopped scheduler logging job failures through log.
func New(log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{cron: cron.New(), log: log}
}

// Call registers fn under a cron spec ("*/5 * * * *"). Job errors are
// logged, never retried by the scheduler itself.
func (s *Scheduler) Call(spec, name string, fn func() error) error {
	_, err := s.cron.AddFunc(spec, func() {
		if err := fn(); err != nil {
			s.log.Error("schedule: job failed",
				zap.String("job", name),
				zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule: registering %q: %w", name, err)
	}
	return nil
}

// Start begins dispatching jobs in the scheduler's own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts dispatching and waits for running jobs to finish or ctx to
// expire, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}
