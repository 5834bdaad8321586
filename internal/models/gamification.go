package models

// Achievement is an unlocked badge
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	UnlockedAt  string `json:"unlockedAt"`
}

// Streaks holds consecutive-day counters ending today
type Streaks struct {
	TrackingStreak       int `json:"trackingStreak"`
	SavingsStreak        int `json:"savingsStreak"`
	BudgetStreak         int `json:"budgetStreak"`
	NoSpendDays          int `json:"noSpendDays"`
	LongestSavingsStreak int `json:"longestSavingsStreak"`
}

// Challenge is a time-boxed savings challenge
type Challenge struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Target      float64 `json:"target"`
	Current     float64 `json:"current"`
	Reward      int     `json:"reward"`
	ExpiresAt   string  `json:"expiresAt"`
}
