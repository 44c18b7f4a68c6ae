// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule runs the batch and rewrite jobs on fixed intervals.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Task is one scheduled unit of work. Errors are logged and the job stays
// scheduled.
type Task func(ctx context.Context) error

// Scheduler wraps a gocron scheduler. Each job runs in singleton mode: a
// tick that arrives while the previous run is still going is skipped.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler.
func New(logger *zap.Logger, opts ...gocron.SchedulerOption) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{scheduler: s, logger: logger, ctx: ctx, cancel: cancel}, nil
}

// Every schedules task every interval and returns the job ID. When
// immediately is set the first run starts as soon as the scheduler does.
func (s *Scheduler) Every(name string, interval time.Duration, immediately bool, task Task) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if immediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.execute, name, task),
		opts...,
	)
	if err != nil {
		return "", fmt.Errorf("scheduling %s: %w", name, err)
	}
	s.logger.Info("job scheduled", zap.String("job", name), zap.Duration("interval", interval))
	return job.ID().String(), nil
}

func (s *Scheduler) execute(name string, task Task) {
	start := time.Now()
	s.logger.Info("job started", zap.String("job", name))
	if err := task(s.ctx); err != nil {
		s.logger.Error("job failed", zap.String("job", name), zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return
	}
	s.logger.Info("job finished", zap.String("job", name), zap.Duration("elapsed", time.Since(start)))
}

// Jobs returns the number of scheduled jobs.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}

// Start begins running jobs. It does not block.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.Int("jobs", s.Jobs()))
	s.scheduler.Start()
}

// Stop cancels the context passed to running tasks and waits for them to
// return.
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping scheduler")
	s.cancel()
	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("stopping scheduler: %w", err)
	}
	return nil
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	return s.Stop()
}
