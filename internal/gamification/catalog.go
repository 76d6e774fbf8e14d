package gamification

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vytor/learnloop/internal/models"
)

var ErrInvalidCatalog = errors.New("gamification: invalid catalog")

// Catalog holds the externally authored level table and achievement list.
// It is immutable once built.
type Catalog struct {
	levels       []models.Level
	achievements []models.Achievement
}

// NewCatalog validates and indexes the level and achievement definitions.
func NewCatalog(levels []models.Level, achievements []models.Achievement) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no levels defined", ErrInvalidCatalog)
	}

	ls := append([]models.Level(nil), levels...)
	sort.Slice(ls, func(i, j int) bool { return ls[i].Level < ls[j].Level })
	for i, l := range ls {
		if l.MinXP < 0 {
			return nil, fmt.Errorf("%w: level %d has negative min_xp", ErrInvalidCatalog, l.Level)
		}
		if i > 0 && l.Level == ls[i-1].Level {
			return nil, fmt.Errorf("%w: duplicate level %d", ErrInvalidCatalog, l.Level)
		}
		if i > 0 && l.MinXP <= ls[i-1].MinXP {
			return nil, fmt.Errorf("%w: level %d min_xp must exceed level %d", ErrInvalidCatalog, l.Level, ls[i-1].Level)
		}
	}

	seen := make(map[string]bool, len(achievements))
	for _, a := range achievements {
		switch {
		case a.Slug == "":
			return nil, fmt.Errorf("%w: achievement without slug", ErrInvalidCatalog)
		case seen[a.Slug]:
			return nil, fmt.Errorf("%w: duplicate achievement %q", ErrInvalidCatalog, a.Slug)
		case !a.Type.IsValid():
			return nil, fmt.Errorf("%w: achievement %q has unknown type %q", ErrInvalidCatalog, a.Slug, a.Type)
		case a.Threshold < 0 || a.RewardXP < 0:
			return nil, fmt.Errorf("%w: achievement %q has negative values", ErrInvalidCatalog, a.Slug)
		}
		seen[a.Slug] = true
	}

	return &Catalog{
		levels:       ls,
		achievements: append([]models.Achievement(nil), achievements...),
	}, nil
}

func (c *Catalog) Levels() []models.Level {
	return append([]models.Level(nil), c.levels...)
}

func (c *Catalog) Achievements() []models.Achievement {
	return append([]models.Achievement(nil), c.achievements...)
}

// Achievement looks up a definition by slug.
func (c *Catalog) Achievement(slug string) (models.Achievement, bool) {
	for _, a := range c.achievements {
		if a.Slug == slug {
			return a, true
		}
	}
	return models.Achievement{}, false
}
