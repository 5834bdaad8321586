package gamification

import (
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
)

// ActiveChallenges lists the current weekly and monthly challenges
func ActiveChallenges(now time.Time) []models.Challenge {
	nextMonth := time.Date(now.Year(), now.Month()+1, 1, now.Hour(), now.Minute(), now.Second(), 0, now.Location())

	return []models.Challenge{
		{
			ID:          "weekly_budget",
			Name:        "Budget Champion",
			Description: "Stay under budget for 7 days straight",
			Type:        "weekly",
			Target:      7,
			Reward:      100,
			ExpiresAt:   now.AddDate(0, 0, 7).Format(time.RFC3339),
		},
		{
			ID:          "save_5k",
			Name:        "Saver",
			Description: "Save ₹5,000 this month",
			Type:        "monthly",
			Target:      5000,
			Reward:      200,
			ExpiresAt:   nextMonth.Format(time.RFC3339),
		},
		{
			ID:          "no_dining_out",
			Name:        "Home Chef",
			Description: "Don't spend on dining out for 3 days",
			Type:        "challenge",
			Target:      3,
			Reward:      50,
			ExpiresAt:   now.AddDate(0, 0, 3).Format(time.RFC3339),
		},
	}
}
