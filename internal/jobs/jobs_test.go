package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/testutil/mocks"
	"github.com/vytor/learnloop/internal/worker"
)

func TestWorkerQueue_EnqueueStreakSweep(t *testing.T) {
	repo := new(mocks.MockGamificationRepository)
	repo.On("ActiveStreaks", mock.Anything).Return([]models.GamificationState{}, nil).Once()

	pool := worker.NewPool(1, 2)
	pool.Start(context.Background())
	q := NewWorkerQueue(pool, repo, clock.Fixed(time.Date(2024, 11, 20, 0, 15, 0, 0, time.UTC)), 2)

	require.NoError(t, q.EnqueueStreakSweep())
	pool.Stop()

	repo.AssertExpectations(t)
	assert.ErrorIs(t, q.EnqueueStreakSweep(), worker.ErrPoolClosed)
}

func TestScheduler_EnqueueFailureIsLogged(t *testing.T) {
	q := new(mocks.MockJobQueue)
	q.On("EnqueueStreakSweep").Return(errors.New("queue full")).Once()
	q.On("EnqueueStreakSweep").Return(nil).Once()

	s := NewScheduler(q, "00:15")
	s.enqueueStreakSweep()
	s.enqueueStreakSweep()

	q.AssertExpectations(t)
}

func TestScheduler_StartStop(t *testing.T) {
	q := new(mocks.MockJobQueue)
	q.On("EnqueueStreakSweep").Return(nil).Maybe()

	s := NewScheduler(q, "03:30")
	require.NoError(t, s.Start())
	s.Stop()
}

func TestScheduler_InvalidTime(t *testing.T) {
	s := NewScheduler(new(mocks.MockJobQueue), "25:99")
	assert.Error(t, s.Start())
}
