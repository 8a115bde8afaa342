// Package jobs runs the periodic background work of the sales CRM API.
// It uses robfig/cron with a seconds field.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one unit of scheduled work. It must return once ctx is done.
type Job func(ctx context.Context) error

// Observer records finished job runs
type Observer interface {
	ObserveJob(job string, elapsed time.Duration, err error)
}

// Scheduler manages background jobs using cron scheduling.
type Scheduler struct {
	cron     *cron.Cron
	logger   *zap.Logger
	observer Observer
	timeout  time.Duration
	mu       sync.Mutex
	jobs     map[string]cron.EntryID
}

// NewScheduler creates a job scheduler. Every run gets its own context
// bounded by timeout; observer may be nil.
func NewScheduler(logger *zap.Logger, observer Observer, timeout time.Duration) *Scheduler {
	cronLogger := cron.VerbosePrintfLogger(zap.NewStdLog(logger.Named("cron")))
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.SkipIfStillRunning(cronLogger),
			cron.Recover(cronLogger),
		)),
		logger:   logger,
		observer: observer,
		timeout:  timeout,
		jobs:     make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler. Jobs added before this call will begin running.
func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler", zap.Strings("jobs", s.JobNames()))
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once running jobs complete.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.cron.Stop()
}

// AddJob registers job under name. The expression uses the six-field form
// with seconds ("0 */15 * * * *") or a descriptor such as "@hourly".
// An empty expression leaves the job disabled.
func (s *Scheduler) AddJob(name, cronExpr string, job Job) error {
	if cronExpr == "" {
		s.logger.Info("scheduled job disabled", zap.String("job_name", name))
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	entryID, err := s.cron.AddFunc(cronExpr, func() { s.Run(name, job) })
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.logger.Info("added scheduled job",
		zap.String("job_name", name),
		zap.String("cron_expr", cronExpr))
	return nil
}

// Run executes job once, bounded by the scheduler timeout
func (s *Scheduler) Run(name string, job Job) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	err := job(ctx)
	elapsed := time.Since(start)

	if s.observer != nil {
		s.observer.ObserveJob(name, elapsed, err)
	}
	if err != nil {
		s.logger.Error("scheduled job failed",
			zap.String("job_name", name),
			zap.Duration("duration", elapsed),
			zap.Error(err))
		return
	}
	s.logger.Debug("completed scheduled job",
		zap.String("job_name", name),
		zap.Duration("duration", elapsed))
}

// RemoveJob removes a job by name.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entryID, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	s.cron.Remove(entryID)
	delete(s.jobs, name)

	s.logger.Info("removed scheduled job", zap.String("job_name", name))
	return nil
}

// JobNames returns the sorted names of all registered jobs.
func (s *Scheduler) JobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
