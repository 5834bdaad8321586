package models

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction represents a financial transaction supplied with a request
type Transaction struct {
	ID            string  `json:"id"`
	UserID        string  `json:"userId"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	Date          string  `json:"date"` // Heterogeneous formats, parsed permissively
	PaymentMethod string  `json:"paymentMethod"`
	CreatedAt     string  `json:"createdAt"`
}

// DailySummary represents money flow for the current day
type DailySummary struct {
	Date             string  `json:"date"`
	MoneyIn          float64 `json:"moneyIn"`
	MoneyOut         float64 `json:"moneyOut"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transactionCount"`
}

// CategoryAmount is a spending total for one category
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// WeeklySummary represents spending since the start of the current week
type WeeklySummary struct {
	WeekStart        string           `json:"weekStart"`
	TotalSpent       float64          `json:"totalSpent"`
	TopCategories    []CategoryAmount `json:"topCategories"`
	TransactionCount int              `json:"transactionCount"`
}

// BudgetCategoryStatus represents spending against a monthly budget limit
type BudgetCategoryStatus struct {
	Category    string  `json:"category"`
	BudgetLimit float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	Percentage  float64 `json:"percentage"`
	Trend       string  `json:"trend"` // on_track, moderate, warning, over_budget
}
