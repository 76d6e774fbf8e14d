package jobs

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vytor/learnloop/internal/logger"
)

// Scheduler enqueues recurring jobs on a wall-clock schedule in UTC.
type Scheduler struct {
	scheduler *gocron.Scheduler
	queue     JobQueue
	sweepAt   string
	log       *logger.Logger
}

// NewScheduler creates a scheduler that enqueues the streak sweep daily at
// sweepAt ("15:04", UTC).
func NewScheduler(queue JobQueue, sweepAt string) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		queue:     queue,
		sweepAt:   sweepAt,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the recurring jobs and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	job, err := s.scheduler.Every(1).Day().At(s.sweepAt).Do(s.enqueueStreakSweep)
	if err != nil {
		return fmt.Errorf("schedule streak sweep at %q: %w", s.sweepAt, err)
	}
	s.scheduler.StartAsync()
	s.log.Info("scheduler started: streak_sweep at %s UTC, next run %s", s.sweepAt, job.NextRun().Format(time.RFC3339))
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) enqueueStreakSweep() {
	if err := s.queue.EnqueueStreakSweep(); err != nil {
		s.log.Error("failed to enqueue streak sweep: %v", err)
	}
}
