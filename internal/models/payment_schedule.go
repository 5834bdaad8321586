package models

// LoanPoint represents the remaining loan balance after a scheduled payment
type LoanPoint struct {
	Month     string  `json:"month"` // Format: YYYY-MM
	Remaining float64 `json:"remaining"`
}
