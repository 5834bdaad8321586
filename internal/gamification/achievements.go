package gamification

import (
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
)

type achievementRule struct {
	id, name, description, icon string
	unlocked                    func(transactionCount int, totalSavings float64, goals []models.Goal) bool
}

var achievementRules = []achievementRule{
	{
		id: "first_week", name: "First Week Tracked", description: "Logged expenses for 7 days", icon: "🎖️",
		unlocked: func(count int, _ float64, _ []models.Goal) bool { return count >= 7 },
	},
	{
		id: "saved_10k", name: "First 10K", description: "Saved ₹10,000", icon: "💰",
		unlocked: func(_ int, savings float64, _ []models.Goal) bool { return savings >= 10000 },
	},
	{
		id: "goal_complete", name: "Goal Achiever", description: "Completed your first savings goal", icon: "🎯",
		unlocked: func(_ int, _ float64, goals []models.Goal) bool {
			for _, g := range goals {
				if g.Status == models.GoalCompleted {
					return true
				}
			}
			return false
		},
	},
	{
		id: "transaction_master", name: "Transaction Master", description: "Logged 100 transactions", icon: "📊",
		unlocked: func(count int, _ float64, _ []models.Goal) bool { return count >= 100 },
	},
}

// EvaluateAchievements returns every achievement whose rule holds for the inputs.
// Nothing is remembered between calls.
func EvaluateAchievements(transactionCount int, totalSavings float64, goals []models.Goal, now time.Time) []models.Achievement {
	unlockedAt := now.Format(time.RFC3339)
	achievements := make([]models.Achievement, 0, len(achievementRules))
	for _, r := range achievementRules {
		if !r.unlocked(transactionCount, totalSavings, goals) {
			continue
		}
		achievements = append(achievements, models.Achievement{
			ID:          r.id,
			Name:        r.name,
			Description: r.description,
			Icon:        r.icon,
			UnlockedAt:  unlockedAt,
		})
	}
	return achievements
}
