package goals

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	goal, err := New(NewGoalInput{
		UserID:        "u1",
		Name:          "Emergency fund",
		TargetAmount:  12000,
		CurrentAmount: 3000,
		Deadline:      "2024-07-19", // 200 days away
	}, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(goal.ID, "goal_"))
	assert.Equal(t, models.GoalActive, goal.Status)
	assert.Equal(t, "medium", goal.Priority)
	assert.Equal(t, [4]float64{3000, 6000, 9000, 12000}, goal.Milestones)
	assert.Equal(t, 25.0, goal.Progress)
	// 9000 remaining over 200/30 months
	assert.Equal(t, 1350.0, goal.MonthlyContributionNeeded)
}

func TestNewWithoutDeadline(t *testing.T) {
	goal, err := New(NewGoalInput{Name: "Bike", TargetAmount: 500, Priority: "high"}, now)
	require.NoError(t, err)
	assert.Equal(t, 0.0, goal.MonthlyContributionNeeded)
	assert.Equal(t, "high", goal.Priority)
	assert.Equal(t, 0.0, goal.Progress)
}

func TestNewDeadlineWithinAMonth(t *testing.T) {
	goal, err := New(NewGoalInput{Name: "Gift", TargetAmount: 300, Deadline: "2024-01-05"}, now)
	require.NoError(t, err)
	assert.Equal(t, 300.0, goal.MonthlyContributionNeeded)
}

func TestNewRejectsInvalid(t *testing.T) {
	_, err := New(NewGoalInput{Name: "", TargetAmount: 100}, now)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = New(NewGoalInput{Name: "X", TargetAmount: 0}, now)
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = New(NewGoalInput{Name: "X", TargetAmount: 10, CurrentAmount: -1}, now)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateProgressCompletesOnce(t *testing.T) {
	goal, err := New(NewGoalInput{Name: "Laptop", TargetAmount: 1000}, now)
	require.NoError(t, err)

	updated, err := UpdateProgress(*goal, 400, now)
	require.NoError(t, err)
	assert.Equal(t, models.GoalActive, updated.Status)
	assert.Equal(t, 40.0, updated.Progress)

	later := now.Add(48 * time.Hour)
	done, err := UpdateProgress(*updated, 1000, later)
	require.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, done.Status)
	assert.Equal(t, later.Format(time.RFC3339), done.CompletedAt)

	// Completion is terminal
	after, err := UpdateProgress(*done, 200, later.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.GoalCompleted, after.Status)
	assert.Equal(t, done.CompletedAt, after.CompletedAt)

	// The input value is not mutated
	assert.Equal(t, models.GoalActive, goal.Status)

	_, err = UpdateProgress(*goal, -1, now)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestProject(t *testing.T) {
	goal := models.Goal{
		TargetAmount:              1000,
		CurrentAmount:             400,
		MonthlyContributionNeeded: 200,
		Status:                    models.GoalActive,
		Deadline:                  "2024-04-15",
	}

	p := Project(goal, now)
	assert.Equal(t, 90, p.DaysToCompletion)
	require.NotNil(t, p.ProjectedDate)
	assert.Equal(t, "2024-03-31T00:00:00Z", *p.ProjectedDate)
	assert.True(t, p.OnTrack)

	goal.Deadline = "2024-03-01"
	assert.False(t, Project(goal, now).OnTrack)

	goal.Deadline = ""
	assert.True(t, Project(goal, now).OnTrack)
}

func TestProjectWithoutContribution(t *testing.T) {
	p := Project(models.Goal{TargetAmount: 100, Status: models.GoalActive}, now)
	assert.Equal(t, -1, p.DaysToCompletion)
	assert.Nil(t, p.ProjectedDate)
	assert.False(t, p.OnTrack)
}

func TestProjectBeyondCentury(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		monthly float64
	}{
		{name: "huge remaining", target: 1e15, monthly: 1},
		{name: "tiny contribution", target: 1000, monthly: 1e-300},
		{name: "overflowing ratio", target: math.MaxFloat64, monthly: 1e-10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Project(models.Goal{TargetAmount: tt.target, MonthlyContributionNeeded: tt.monthly, Status: models.GoalActive}, now)
			assert.Equal(t, -1, p.DaysToCompletion)
			assert.Nil(t, p.ProjectedDate)
			assert.False(t, p.OnTrack)
		})
	}
}

func TestProjectCompleted(t *testing.T) {
	p := Project(models.Goal{Status: models.GoalCompleted, CompletedAt: "2024-01-01T00:00:00Z"}, now)
	assert.Equal(t, 0, p.DaysToCompletion)
	assert.True(t, p.OnTrack)
	assert.Equal(t, "2024-01-01T00:00:00Z", *p.ProjectedDate)
}
