package goals

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/transactions"
	"github.com/Dan9191/finance-advisor/internal/utils"
	"github.com/google/uuid"
)

const (
	daysPerMonth    = 30
	defaultPriority = "medium"
	// Projections further out than a century are reported as unreachable
	maxProjectionDays = 100 * 365
)

var milestoneFractions = [4]float64{0.25, 0.50, 0.75, 1}

// NewGoalInput holds the fields a client supplies for a new goal
type NewGoalInput struct {
	UserID        string  `json:"userId"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	Deadline      string  `json:"deadline"`
	Priority      string  `json:"priority"`
}

// New creates an active savings goal with milestones and the monthly contribution needed
func New(in NewGoalInput, now time.Time) (*models.Goal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: goal name is required", models.ErrInvalidInput)
	}
	if !utils.IsFinite(in.TargetAmount) || in.TargetAmount <= 0 {
		return nil, fmt.Errorf("%w: target amount must be positive", models.ErrInvalidInput)
	}
	if !utils.IsFinite(in.CurrentAmount) || in.CurrentAmount < 0 {
		return nil, fmt.Errorf("%w: current amount must not be negative", models.ErrInvalidInput)
	}

	var monthlyNeeded float64
	if in.Deadline != "" {
		deadline := transactions.ParseDate(in.Deadline, now)
		monthsRemaining := math.Max(1, deadline.Sub(now).Hours()/24/daysPerMonth)
		monthlyNeeded = (in.TargetAmount - in.CurrentAmount) / monthsRemaining
	}

	priority := in.Priority
	if priority == "" {
		priority = defaultPriority
	}

	goal := &models.Goal{
		ID:                        "goal_" + uuid.NewString(),
		UserID:                    in.UserID,
		Name:                      in.Name,
		TargetAmount:              utils.Round2(in.TargetAmount),
		CurrentAmount:             utils.Round2(in.CurrentAmount),
		Deadline:                  in.Deadline,
		Priority:                  priority,
		Status:                    models.GoalActive,
		MonthlyContributionNeeded: utils.Round2(monthlyNeeded),
		Progress:                  progress(in.CurrentAmount, in.TargetAmount),
		CreatedAt:                 now.Format(time.RFC3339),
	}
	for i, f := range milestoneFractions {
		goal.Milestones[i] = utils.Round2(in.TargetAmount * f)
	}
	return goal, nil
}

// UpdateProgress sets the saved amount. Reaching the target completes the goal for good.
func UpdateProgress(goal models.Goal, amount float64, now time.Time) (*models.Goal, error) {
	if !utils.IsFinite(amount) || amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", models.ErrInvalidInput)
	}

	goal.CurrentAmount = utils.Round2(amount)
	goal.Progress = progress(amount, goal.TargetAmount)

	if goal.Status != models.GoalCompleted && amount >= goal.TargetAmount {
		goal.Status = models.GoalCompleted
		goal.CompletedAt = now.Format(time.RFC3339)
	}
	return &goal, nil
}

// Project estimates when the goal is reached at its planned monthly contribution
func Project(goal models.Goal, now time.Time) models.GoalProjection {
	if goal.Status == models.GoalCompleted {
		completed := goal.CompletedAt
		return models.GoalProjection{DaysToCompletion: 0, ProjectedDate: &completed, OnTrack: true}
	}
	if goal.MonthlyContributionNeeded <= 0 {
		return models.GoalProjection{DaysToCompletion: -1, OnTrack: false}
	}

	remaining := goal.TargetAmount - goal.CurrentAmount
	days := remaining / goal.MonthlyContributionNeeded * daysPerMonth
	if !utils.IsFinite(days) || days > maxProjectionDays {
		return models.GoalProjection{DaysToCompletion: -1, OnTrack: false}
	}
	days = math.Max(0, days)
	projected := now.Add(time.Duration(days * float64(24*time.Hour)))
	projectedDate := projected.Format(time.RFC3339)

	onTrack := true
	if goal.Deadline != "" {
		onTrack = !projected.After(transactions.ParseDate(goal.Deadline, now))
	}

	return models.GoalProjection{
		DaysToCompletion: int(days),
		ProjectedDate:    &projectedDate,
		OnTrack:          onTrack,
	}
}

func progress(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return utils.Round(current/target*100, 1)
}
