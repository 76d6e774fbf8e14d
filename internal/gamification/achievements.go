package gamification

import "github.com/vytor/learnloop/internal/models"

// CheckNewAchievements returns, in catalog order, the achievements whose
// trigger is met and whose slug is not already earned.
func (c *Catalog) CheckNewAchievements(currentStreak, totalXP, perfectSessions int, earnedSlugs []string) []models.Achievement {
	earned := make(map[string]bool, len(earnedSlugs))
	for _, s := range earnedSlugs {
		earned[s] = true
	}

	out := []models.Achievement{}
	for _, a := range c.achievements {
		if earned[a.Slug] {
			continue
		}
		var value int
		switch a.Type {
		case models.AchievementStreak:
			value = currentStreak
		case models.AchievementTotalXP:
			value = totalXP
		case models.AchievementPerfectSessions:
			value = perfectSessions
		default:
			continue
		}
		if value >= a.Threshold {
			out = append(out, a)
		}
	}
	return out
}
