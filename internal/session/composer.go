package session

import (
	"math"
	"sort"
	"time"

	"github.com/vytor/learnloop/internal/clock"
	"github.com/vytor/learnloop/internal/models"
	"github.com/vytor/learnloop/internal/scheduler"
)

// ComposeSession builds one session from the caller's candidate pools.
//
// Pools are drained in first-match-wins order (review, weakness, new,
// reinforcement); an item chosen by an earlier pass is never chosen again.
// Empty or short pools simply yield a shorter session.
func ComposeSession(cfg models.SessionConfig, pools models.CandidatePools, now time.Time) models.SessionComposition {
	target := EstimateItemCount(cfg.TargetDurationMinutes)
	ratios := GetSessionRatios(cfg.SessionType)

	p := picker{target: target, chosen: make(map[int64]bool)}

	p.take(rankReviewDue(pools.ReviewDueItems, now), SlotCount(target, ratios.Review))
	p.take(rankWeakness(pools.WeaknessItems), SlotCount(target, ratios.Weakness))
	p.take(rankNew(pools.NewItems), SlotCount(target, ratios.New))
	p.take(rankReinforcement(pools.ReinforcementItems, now), target)

	items := Interleave(p.items)

	breakdown := make(map[models.SelectionReason]int, len(models.SelectionReasons))
	for _, r := range models.SelectionReasons {
		breakdown[r] = 0
	}
	var seconds int
	for _, it := range items {
		breakdown[it.SelectionReason]++
		seconds += it.EstimatedSeconds
	}

	sessionType := cfg.SessionType
	if !sessionType.IsValid() {
		sessionType = models.SessionPractice
	}
	return models.SessionComposition{
		SessionType:              sessionType,
		Items:                    items,
		TargetItemCount:          target,
		EstimatedDurationMinutes: int(math.Ceil(float64(seconds) / 60)),
		Breakdown:                breakdown,
	}
}

type ranked struct {
	cand     models.Candidate
	reason   models.SelectionReason
	priority float64
}

type picker struct {
	target int
	chosen map[int64]bool
	items  []models.ContentItemWithContext
}

// take appends up to limit unchosen candidates, never exceeding the target.
func (p *picker) take(cands []ranked, limit int) {
	added := 0
	for _, c := range cands {
		if added >= limit || len(p.items) >= p.target {
			return
		}
		if p.chosen[c.cand.Item.ID] {
			continue
		}
		p.chosen[c.cand.Item.ID] = true
		p.items = append(p.items, models.ContentItemWithContext{
			ContentItem:     c.cand.Item,
			SelectionReason: c.reason,
			Priority:        c.priority,
		})
		added++
	}
}

func rankReviewDue(cands []models.Candidate, now time.Time) []ranked {
	out := make([]ranked, 0, len(cands))
	for _, c := range cands {
		var prio float64
		if c.Progress != nil {
			prio = scheduler.CalculateReviewPriority(c.Progress.NextReviewAt, c.Progress.EaseFactor, c.Progress.Status, now)
		} else {
			prio = scheduler.CalculateReviewPriority(nil, scheduler.DefaultEaseFactor, models.StatusLearning, now)
		}
		out = append(out, ranked{cand: c, reason: models.ReasonReviewDue, priority: prio})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].priority > out[j].priority })
	return out
}

// rankWeakness orders by topic priority, then harder (lower ease) items first.
func rankWeakness(cands []models.Candidate) []ranked {
	out := make([]ranked, 0, len(cands))
	for _, c := range cands {
		out = append(out, ranked{cand: c, reason: models.ReasonWeakness, priority: c.TopicPriority})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority > out[j].priority
		}
		return easeOf(out[i].cand) < easeOf(out[j].cand)
	})
	return out
}

func rankNew(cands []models.Candidate) []ranked {
	sorted := append([]models.Candidate(nil), cands...)
	sortByDifficulty(sorted)
	out := make([]ranked, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, ranked{cand: c, reason: models.ReasonNew, priority: newItemPriority(c.Item)})
	}
	return out
}

// rankReinforcement keeps items mastered within the reinforcement window, most recent first.
func rankReinforcement(cands []models.Candidate, now time.Time) []ranked {
	out := make([]ranked, 0, len(cands))
	for _, c := range cands {
		if c.Progress == nil || c.Progress.MasteredAt == nil {
			continue
		}
		age := clock.DaysBetween(*c.Progress.MasteredAt, now)
		if age > ReinforcementWindowDays {
			continue
		}
		out = append(out, ranked{cand: c, reason: models.ReasonReinforcement})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].cand.Progress.MasteredAt.After(*out[j].cand.Progress.MasteredAt)
	})
	return out
}

// newItemPriority favours easier items: difficulty 1 scores 5, difficulty 5 scores 1.
func newItemPriority(item models.ContentItem) float64 {
	return float64(6 - item.Difficulty)
}

func easeOf(c models.Candidate) float64 {
	if c.Progress == nil || c.Progress.EaseFactor == 0 {
		return scheduler.DefaultEaseFactor
	}
	return c.Progress.EaseFactor
}

func sortByDifficulty(cands []models.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i].Item, cands[j].Item
		if a.Difficulty != b.Difficulty {
			return a.Difficulty < b.Difficulty
		}
		return a.DisplayOrder < b.DisplayOrder
	})
}
