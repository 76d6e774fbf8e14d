package jobs

import (
	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/repository"
	"github.com/vytor/learnloop/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool          *worker.Pool
	gamification  repository.GamificationRepository
	clock         clock.Clock
	maxConcurrent int
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, gamification repository.GamificationRepository, clk clock.Clock, maxConcurrent int) JobQueue {
	return &WorkerQueue{
		pool:          pool,
		gamification:  gamification,
		clock:         clk,
		maxConcurrent: maxConcurrent,
	}
}

func (q *WorkerQueue) EnqueueStreakSweep() error {
	return q.pool.Submit(&worker.StreakSweepJob{
		Gamification:  q.gamification,
		Clock:         q.clock,
		MaxConcurrent: q.maxConcurrent,
	})
}
