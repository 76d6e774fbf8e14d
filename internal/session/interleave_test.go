package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/session"
)

func slot(id int64, topic string, priority float64) models.ContentItemWithContext {
	return models.ContentItemWithContext{ContentItem: item(id, topic, 1), Priority: priority}
}

func ids(items []models.ContentItemWithContext) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestInterleave_RoundRobinKeepsGroupOrder(t *testing.T) {
	in := []models.ContentItemWithContext{
		slot(1, "a", 0), slot(2, "a", 0), slot(3, "a", 0),
		slot(4, "b", 0), slot(5, "b", 0),
		slot(6, "c", 0),
	}

	out := session.Interleave(in)

	assert.Equal(t, []int64{1, 4, 6, 2, 5, 3}, ids(out))
}

func TestInterleave_SingleTopicSortsByPriority(t *testing.T) {
	in := []models.ContentItemWithContext{
		slot(1, "a", 1), slot(2, "a", 9), slot(3, "a", 4), slot(4, "a", 9),
	}

	out := session.Interleave(in)

	assert.Equal(t, []int64{2, 4, 3, 1}, ids(out))
}

func TestInterleave_Empty(t *testing.T) {
	assert.Empty(t, session.Interleave(nil))
}
