package session

import (
	"sort"

	"github.com/vytor/learnloop/internal/models"
)

// Interleave spreads same-topic items apart. Items are grouped by topic in
// order of first appearance and emitted round-robin, one per group per round,
// keeping each group's internal order. A single-topic list is ordered by
// priority instead.
func Interleave(items []models.ContentItemWithContext) []models.ContentItemWithContext {
	if len(items) == 0 {
		return []models.ContentItemWithContext{}
	}

	var order []string
	groups := make(map[string][]models.ContentItemWithContext)
	for _, it := range items {
		if _, ok := groups[it.TopicSlug]; !ok {
			order = append(order, it.TopicSlug)
		}
		groups[it.TopicSlug] = append(groups[it.TopicSlug], it)
	}

	if len(order) == 1 {
		out := append([]models.ContentItemWithContext(nil), items...)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Priority > out[j].Priority })
		return out
	}

	out := make([]models.ContentItemWithContext, 0, len(items))
	for round := 0; len(out) < len(items); round++ {
		for _, topic := range order {
			if g := groups[topic]; round < len(g) {
				out = append(out, g[round])
			}
		}
	}
	return out
}
