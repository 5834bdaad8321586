package analysis

import (
	"fmt"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/utils"
)

const baseScore = 50

// ScoreDailyHealth maps a snapshot to a 0-100 health score with insights
func ScoreDailyHealth(s models.RatioSnapshot) models.DailyScore {
	score := baseScore
	var insights []string

	ratePct := s.SavingsRate * 100
	switch {
	case ratePct > 30:
		score += 25
		insights = append(insights, "Excellent savings rate! You're saving over 30% of your income.")
	case ratePct > 20:
		score += 15
		insights = append(insights, fmt.Sprintf("Good savings rate at %.1f%%", ratePct))
	case ratePct > 10:
		score += 5
		insights = append(insights, "Decent savings, but aim for 20%+")
	default:
		score -= 10
		insights = append(insights, "Low savings rate. Try to reduce expenses.")
	}

	switch {
	case s.EmergencyFundMonths >= 6:
		score += 20
		insights = append(insights, "Great! You have 6+ months of emergency fund.")
	case s.EmergencyFundMonths >= 3:
		score += 10
		insights = append(insights, "Building good emergency fund.")
	default:
		insights = append(insights, "Focus on building emergency fund (3-6 months expenses).")
	}

	score = max(0, min(100, score))

	return models.DailyScore{
		Score:           score,
		SavingsRate:     utils.Round(ratePct, 1),
		EmergencyMonths: utils.Round(s.EmergencyFundMonths, 1),
		Insights:        insights,
		Trend:           trend(score),
	}
}

func trend(score int) string {
	switch {
	case score > 60:
		return "improving"
	case score > 40:
		return "stable"
	default:
		return "needs_attention"
	}
}
