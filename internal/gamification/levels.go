package gamification

import "github.com/vytor/learnloop/internal/models"

// LevelForXP resolves the highest level whose threshold xp has reached.
// Values below the table resolve to the lowest defined level.
func (c *Catalog) LevelForXP(xp int) models.Level {
	resolved := c.levels[0]
	for _, l := range c.levels {
		if xp < l.MinXP {
			break
		}
		resolved = l
	}
	return resolved
}

// CheckLevelUp returns nil unless adding xpToAdd lifts the learner strictly above currentLevel.
func (c *Catalog) CheckLevelUp(currentLevel, currentXP, xpToAdd int) *models.LevelUpResult {
	if xpToAdd < 0 {
		xpToAdd = 0
	}
	l := c.LevelForXP(currentXP + xpToAdd)
	if l.Level <= currentLevel {
		return nil
	}
	return &models.LevelUpResult{LeveledUp: true, NewLevel: l.Level, NewTitle: l.Title}
}

// XPToNextLevel returns the XP still needed for the next level, or 0 at the top of the table.
func (c *Catalog) XPToNextLevel(xp int) int {
	for _, l := range c.levels {
		if l.MinXP > xp {
			return l.MinXP - xp
		}
	}
	return 0
}
