// Package scheduler runs the check batch on a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidInterval is returned for intervals shorter than one second.
var ErrInvalidInterval = errors.New("scheduler interval must be at least one second")

// Job is one scheduled run.
type Job func(ctx context.Context)

// Scheduler starts a job immediately and then every interval. Runs never overlap:
// a tick that arrives while the previous run is still going is skipped.
type Scheduler struct {
	log      *slog.Logger
	interval time.Duration
	job      Job
	cron     *cron.Cron
	wg       sync.WaitGroup
}

// New creates a Scheduler.
func New(log *slog.Logger, interval time.Duration, job Job) (*Scheduler, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}

	logger := cronLogger{log: log}

	return &Scheduler{
		log:      log,
		interval: interval,
		job:      job,
		cron:     cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger))),
	}, nil
}

// Start schedules the job and runs it once right away. The job receives ctx.
func (s *Scheduler) Start(ctx context.Context) {
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cronLogger{log: s.log})).Then(cron.FuncJob(func() {
		if ctx.Err() != nil {
			return
		}
		s.job(ctx)
	}))

	s.cron.Schedule(cron.Every(s.interval), wrapped)
	s.cron.Start()
	s.log.InfoContext(ctx, "Scheduler started", "op", "scheduler.Start", "interval", s.interval.String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		wrapped.Run()
	}()
}

// Stop stops scheduling new runs and waits for the running one to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.log.Info("Scheduler stopped", "op", "scheduler.Stop")
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
