package models

// ProjectionPoint represents a projected savings balance for a month
type ProjectionPoint struct {
	Month string  `json:"month"` // Format: YYYY-MM
	Value float64 `json:"value"`
}

// CorpusPoint represents a projected retirement corpus for a month
type CorpusPoint struct {
	Month           string  `json:"month"`
	ProjectedCorpus float64 `json:"projected_corpus"`
}

// SavingsSimulation compares a base savings plan with a bumped one
type SavingsSimulation struct {
	Base []ProjectionPoint `json:"base"`
	Bump []ProjectionPoint `json:"bump"`
}

// ExpenseEntry is one category amount, kept in caller order
type ExpenseEntry struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// ExpenseCluster assigns a severity tier to an expense category
type ExpenseCluster struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Tier     string  `json:"cluster"`
}

// RatioSnapshot holds ratios derived from a financial profile
type RatioSnapshot struct {
	Income              float64 `json:"income"`
	Expenses            float64 `json:"expenses"`
	Assets              float64 `json:"assets"`
	Liabilities         float64 `json:"liabilities"`
	NetWorth            float64 `json:"net_worth"`
	MonthlySurplus      float64 `json:"monthly_surplus"`
	SavingsRate         float64 `json:"savings_rate"` // Fraction of income
	DebtToIncomeRatio   float64 `json:"debt_to_income_ratio"`
	EmergencyFundMonths float64 `json:"emergency_fund_months"`
	EMI                 float64 `json:"emi"`
	Age                 int     `json:"age"`
}

// DailyScore represents the financial health score
type DailyScore struct {
	Score           int      `json:"score"`
	SavingsRate     float64  `json:"savingsRate"` // Percent
	EmergencyMonths float64  `json:"emergencyMonths"`
	Insights        []string `json:"insights"`
	Trend           string   `json:"trend"` // improving, stable, needs_attention
}

// DailyInsights bundles the dashboard analytics for one request
type DailyInsights struct {
	DailyScore    DailyScore                      `json:"dailyScore"`
	Snapshot      RatioSnapshot                   `json:"snapshot"`
	TodaySummary  DailySummary                    `json:"todaySummary"`
	WeeklySummary WeeklySummary                   `json:"weeklySummary"`
	Streaks       Streaks                         `json:"streaks"`
	Achievements  []Achievement                   `json:"achievements"`
	BudgetStatus  map[string]BudgetCategoryStatus `json:"budgetStatus,omitempty"`
}
