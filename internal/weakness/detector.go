// Package weakness scores topic-level proficiency and classifies weak areas.
package weakness

import (
	"math"
	"sort"

	"github.com/vytor/learnloop/internal/models"
)

// Proficiency weights. They sum to 1.
const (
	WeightMastery        = 0.35
	WeightRecentAccuracy = 0.30
	WeightQuality        = 0.20
	WeightRecency        = 0.15

	// RecencyHalfLifeDays is the staleness at which the recency factor halves.
	RecencyHalfLifeDays = 7.0
)

// Bucket thresholds on the 0-100 proficiency scale.
const (
	CriticalBelow   = 40.0
	ModerateBelow   = 60.0
	StrengthAtLeast = 80.0

	// RustingAfterDays is the staleness past which a proficient topic is rusting.
	RustingAfterDays = 7
)

// CalculateTopicProficiency combines the four signals into a 0-100 score
// rounded to one decimal. masteryRate, recentAccuracy and recencyFactor are
// fractions in [0,1]; averageQuality is on the 0-5 scale.
func CalculateTopicProficiency(masteryRate, recentAccuracy, averageQuality, recencyFactor float64) float64 {
	raw := masteryRate*WeightMastery +
		recentAccuracy*WeightRecentAccuracy +
		(averageQuality/5)*WeightQuality +
		recencyFactor*WeightRecency
	score := math.Round(raw*100*10) / 10
	return math.Max(0, math.Min(100, score))
}

// CalculateRecencyFactor decays exponentially with a seven day half-life.
func CalculateRecencyFactor(daysSinceLastPractice int) float64 {
	if daysSinceLastPractice < 0 {
		daysSinceLastPractice = 0
	}
	return math.Pow(0.5, float64(daysSinceLastPractice)/RecencyHalfLifeDays)
}

// CategorizeWeaknesses partitions unlocked topics into the four buckets.
// A topic lands in at most one bucket; topics scoring in [60,80) that are not
// stale are in none.
func CategorizeWeaknesses(topics []models.TopicProficiency) models.WeaknessProfile {
	profile := models.WeaknessProfile{
		CriticalWeaknesses: []models.TopicProficiency{},
		ModerateWeaknesses: []models.TopicProficiency{},
		RustingTopics:      []models.TopicProficiency{},
		StrengthAreas:      []models.TopicProficiency{},
	}

	for _, t := range topics {
		if !t.IsUnlocked {
			continue
		}
		switch {
		case t.ProficiencyScore < CriticalBelow:
			profile.CriticalWeaknesses = append(profile.CriticalWeaknesses, t)
		case t.ProficiencyScore < ModerateBelow:
			profile.ModerateWeaknesses = append(profile.ModerateWeaknesses, t)
		case t.DaysSinceLastPractice > RustingAfterDays:
			profile.RustingTopics = append(profile.RustingTopics, t)
		case t.ProficiencyScore >= StrengthAtLeast:
			profile.StrengthAreas = append(profile.StrengthAreas, t)
		}
	}

	byScoreAsc := func(s []models.TopicProficiency) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].ProficiencyScore < s[j].ProficiencyScore })
	}
	byScoreAsc(profile.CriticalWeaknesses)
	byScoreAsc(profile.ModerateWeaknesses)
	sort.SliceStable(profile.RustingTopics, func(i, j int) bool {
		return profile.RustingTopics[i].DaysSinceLastPractice > profile.RustingTopics[j].DaysSinceLastPractice
	})
	sort.SliceStable(profile.StrengthAreas, func(i, j int) bool {
		return profile.StrengthAreas[i].ProficiencyScore > profile.StrengthAreas[j].ProficiencyScore
	})
	return profile
}

// GetTopicPriority ranks a topic for weakness practice. Higher is more urgent.
func GetTopicPriority(t models.TopicProficiency) float64 {
	var p float64
	switch {
	case t.ProficiencyScore < CriticalBelow:
		p = 100 - t.ProficiencyScore
	case t.ProficiencyScore < ModerateBelow:
		p = 60 - t.ProficiencyScore
	case t.DaysSinceLastPractice > RustingAfterDays:
		p = float64(t.DaysSinceLastPractice) * 2
	}
	return p + (1-t.MasteryRate())*20
}

// CalculateReadinessScore summarizes whether the learner is ready for advanced material.
func CalculateReadinessScore(topics []models.TopicProficiency) models.ReadinessScore {
	if len(topics) == 0 {
		return models.ReadinessScore{Score: 0, Message: readinessMessage(0)}
	}

	var sumScore float64
	var mastered, total int
	for _, t := range topics {
		sumScore += t.ProficiencyScore
		mastered += t.ItemsMastered
		total += t.ItemsTotal
	}
	avg := sumScore / float64(len(topics))
	var masteryRate float64
	if total > 0 {
		masteryRate = float64(mastered) / float64(total)
	}

	score := int(math.Round(avg*0.6 + masteryRate*100*0.4))
	return models.ReadinessScore{
		Score:            score,
		ReadyForAdvanced: score >= 80 || (score >= 60 && avg >= 70),
		Message:          readinessMessage(score),
	}
}

func readinessMessage(score int) string {
	switch {
	case score >= 80:
		return "Excellent foundation. You are ready for advanced material."
	case score >= 60:
		return "Solid progress. Strengthen a few weak areas before moving on."
	case score >= 40:
		return "Building momentum. Keep practicing your weakest topics."
	default:
		return "Early days. Focus on the fundamentals first."
	}
}
