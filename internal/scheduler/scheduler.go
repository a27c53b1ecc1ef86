// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type taskFn func(ctx context.Context) error

// Scheduler wraps a cron runner. Jobs receive a context that is cancelled on Stop.
// A tick that fires while the previous run of the same job is still in flight
// starts a second run; both complete.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler.
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits up to timeout for them to return.
func (s *Scheduler) Stop(timeout time.Duration) {
	s.cancel()
	done := s.cron.Stop()

	select {
	case <-done.Done():
	case <-time.After(timeout):
		log.Warn().Dur("timeout", timeout).Msg("scheduler jobs still running at shutdown")
	}
}

// AddJob registers fn under name on a standard cron spec or descriptor such as "@every 1m".
// With runNow set, fn is also started immediately in its own goroutine.
func (s *Scheduler) AddJob(name, spec string, fn taskFn, runNow bool) error {
	job := s.taskWithRecover(fn, name)

	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}
	if runNow {
		go job()
	}
	return nil
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) taskWithRecover(fn taskFn, jobName string) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("jobName", jobName).
					Interface("panic", r).
					Str("stacktrace", string(debug.Stack())).
					Msg("panic recovered in scheduler job")
			}
		}()

		if s.ctx.Err() != nil {
			return
		}

		start := time.Now()
		log.Debug().Str("jobName", jobName).Msg("job start")

		if err := fn(s.ctx); err != nil {
			log.Error().Err(err).Str("jobName", jobName).Msg("job failed")
			return
		}
		log.Debug().Str("jobName", jobName).Dur("duration", time.Since(start)).Msg("job completed")
	}
}
