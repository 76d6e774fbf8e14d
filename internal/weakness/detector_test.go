package weakness_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/weakness"
)

func topic(slug string, score float64, stale int) models.TopicProficiency {
	return models.TopicProficiency{
		TopicSlug:             slug,
		ProficiencyScore:      score,
		ItemsMastered:         2,
		ItemsTotal:            10,
		DaysSinceLastPractice: stale,
		IsUnlocked:            true,
	}
}

func TestCalculateTopicProficiency(t *testing.T) {
	assert.Equal(t, 100.0, weakness.CalculateTopicProficiency(1, 1, 5, 1))
	assert.Equal(t, 0.0, weakness.CalculateTopicProficiency(0, 0, 0, 0))
	// 0.5*35 + 0.8*30 + (3/5)*20 + 0.5*15 = 17.5 + 24 + 12 + 7.5
	assert.Equal(t, 61.0, weakness.CalculateTopicProficiency(0.5, 0.8, 3, 0.5))
	// rounded to one decimal
	assert.Equal(t, 33.3, weakness.CalculateTopicProficiency(0.333, 0.333, 1.665, 0.333))
}

func TestCalculateRecencyFactor(t *testing.T) {
	assert.Equal(t, 1.0, weakness.CalculateRecencyFactor(0))
	assert.InDelta(t, 0.5, weakness.CalculateRecencyFactor(7), 1e-12)
	assert.InDelta(t, 0.25, weakness.CalculateRecencyFactor(14), 1e-12)
	assert.InDelta(t, math.Pow(0.5, 3.0/7), weakness.CalculateRecencyFactor(3), 1e-12)
	assert.Greater(t, weakness.CalculateRecencyFactor(365), 0.0)
}

func TestCategorizeWeaknesses_OnePerBucket(t *testing.T) {
	profile := weakness.CategorizeWeaknesses([]models.TopicProficiency{
		topic("fractions", 30, 1),
		topic("decimals", 45, 2),
		topic("ratios", 65, 10),
		topic("integers", 90, 1),
	})

	require.Len(t, profile.CriticalWeaknesses, 1)
	require.Len(t, profile.ModerateWeaknesses, 1)
	require.Len(t, profile.RustingTopics, 1)
	require.Len(t, profile.StrengthAreas, 1)
	assert.Equal(t, "fractions", profile.CriticalWeaknesses[0].TopicSlug)
	assert.Equal(t, "decimals", profile.ModerateWeaknesses[0].TopicSlug)
	assert.Equal(t, "ratios", profile.RustingTopics[0].TopicSlug)
	assert.Equal(t, "integers", profile.StrengthAreas[0].TopicSlug)
}

func TestCategorizeWeaknesses_OrderingAndExclusions(t *testing.T) {
	locked := topic("locked", 10, 0)
	locked.IsUnlocked = false

	profile := weakness.CategorizeWeaknesses([]models.TopicProficiency{
		topic("c2", 35, 0),
		topic("c1", 12, 0),
		topic("m2", 59.9, 0),
		topic("m1", 40, 0),
		topic("r1", 70, 8),
		topic("r2", 95, 30),
		topic("s1", 82, 7),
		topic("s2", 99, 0),
		topic("steady", 70, 3),
		locked,
	})

	assert.Equal(t, []string{"c1", "c2"}, slugs(profile.CriticalWeaknesses))
	assert.Equal(t, []string{"m1", "m2"}, slugs(profile.ModerateWeaknesses))
	assert.Equal(t, []string{"r2", "r1"}, slugs(profile.RustingTopics), "most stale first")
	assert.Equal(t, []string{"s2", "s1"}, slugs(profile.StrengthAreas))
}

func TestCategorizeWeaknesses_Empty(t *testing.T) {
	profile := weakness.CategorizeWeaknesses(nil)
	assert.Empty(t, profile.CriticalWeaknesses)
	assert.NotNil(t, profile.StrengthAreas)
}

func TestGetTopicPriority(t *testing.T) {
	// mastery rate is 0.2 for every fixture, adding (1-0.2)*20 = 16
	assert.InDelta(t, 70+16, weakness.GetTopicPriority(topic("a", 30, 0)), 1e-9)
	assert.InDelta(t, 15+16, weakness.GetTopicPriority(topic("b", 45, 0)), 1e-9)
	assert.InDelta(t, 20+16, weakness.GetTopicPriority(topic("c", 65, 10)), 1e-9)
	assert.InDelta(t, 16, weakness.GetTopicPriority(topic("d", 65, 7)), 1e-9)

	empty := models.TopicProficiency{ProficiencyScore: 90}
	assert.InDelta(t, 20, weakness.GetTopicPriority(empty), 1e-9)
}

func TestCalculateReadinessScore(t *testing.T) {
	tests := []struct {
		name   string
		topics []models.TopicProficiency
		score  int
		ready  bool
	}{
		{
			name:   "no topics",
			topics: nil,
			score:  0,
		},
		{
			name: "strong learner",
			topics: []models.TopicProficiency{
				{ProficiencyScore: 90, ItemsMastered: 8, ItemsTotal: 10},
				{ProficiencyScore: 80, ItemsMastered: 8, ItemsTotal: 10},
			},
			// 85*0.6 + 80*0.4 = 51 + 32
			score: 83,
			ready: true,
		},
		{
			name: "mid band with high proficiency",
			topics: []models.TopicProficiency{
				{ProficiencyScore: 75, ItemsMastered: 4, ItemsTotal: 10},
			},
			// 45 + 16
			score: 61,
			ready: true,
		},
		{
			name: "mid band with low proficiency",
			topics: []models.TopicProficiency{
				{ProficiencyScore: 60, ItemsMastered: 7, ItemsTotal: 10},
			},
			// 36 + 28
			score: 64,
			ready: false,
		},
		{
			name: "beginner",
			topics: []models.TopicProficiency{
				{ProficiencyScore: 20, ItemsMastered: 0, ItemsTotal: 10},
			},
			score: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := weakness.CalculateReadinessScore(tt.topics)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.ready, got.ReadyForAdvanced)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func slugs(ts []models.TopicProficiency) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.TopicSlug)
	}
	return out
}
