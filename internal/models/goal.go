package models

const (
	GoalActive    = "active"
	GoalCompleted = "completed"
)

// Goal represents a savings goal
type Goal struct {
	ID                        string     `json:"id"`
	UserID                    string     `json:"userId"`
	Name                      string     `json:"name"`
	TargetAmount              float64    `json:"targetAmount"`
	CurrentAmount             float64    `json:"currentAmount"`
	Deadline                  string     `json:"deadline,omitempty"`
	Priority                  string     `json:"priority"`
	Status                    string     `json:"status"`
	Milestones                [4]float64 `json:"milestones"` // 25%, 50%, 75%, 100% of target
	MonthlyContributionNeeded float64    `json:"monthlyContributionNeeded"`
	Progress                  float64    `json:"progress"`
	CreatedAt                 string     `json:"createdAt"`
	CompletedAt               string     `json:"completedAt,omitempty"`
}

// GoalProjection estimates when a goal is reached at the planned pace
type GoalProjection struct {
	DaysToCompletion int     `json:"daysToCompletion"` // -1 when no contribution is planned
	ProjectedDate    *string `json:"projectedDate"`
	OnTrack          bool    `json:"onTrack"`
}
