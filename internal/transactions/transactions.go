package transactions

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/utils"
	"github.com/google/uuid"
)

const (
	DefaultRecentLimit   = 10
	defaultPaymentMethod = "Cash"
	defaultCategory      = "Other"
	topCategoryCount     = 3
)

// NewTransactionInput holds the fields a client supplies for a new transaction
type NewTransactionInput struct {
	UserID        string  `json:"userId"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Type          string  `json:"type"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"paymentMethod"`
}

// New builds a transaction record from client input
func New(in NewTransactionInput, now time.Time) (*models.Transaction, error) {
	if !utils.IsFinite(in.Amount) || in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", models.ErrInvalidInput)
	}

	txType := strings.ToLower(strings.TrimSpace(in.Type))
	if txType == "" {
		txType = models.TransactionExpense
	}
	if txType != models.TransactionExpense && txType != models.TransactionIncome {
		return nil, fmt.Errorf("%w: unknown transaction type %q", models.ErrInvalidInput, in.Type)
	}

	date := in.Date
	if date == "" {
		date = now.Format(time.RFC3339)
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = defaultPaymentMethod
	}

	return &models.Transaction{
		ID:            "txn_" + uuid.NewString(),
		UserID:        in.UserID,
		Amount:        utils.Round2(in.Amount),
		Category:      in.Category,
		Description:   in.Description,
		Type:          txType,
		Date:          date,
		PaymentMethod: paymentMethod,
		CreatedAt:     now.Format(time.RFC3339),
	}, nil
}

// DailySummary sums today's money in and out
func DailySummary(txns []models.Transaction, now time.Time) models.DailySummary {
	today := Day(now, now)

	var in, out float64
	count := 0
	for _, t := range txns {
		if !Day(ParseDate(t.Date, now), now).Equal(today) {
			continue
		}
		count++
		switch t.Type {
		case models.TransactionIncome:
			in += t.Amount
		case models.TransactionExpense:
			out += t.Amount
		}
	}

	return models.DailySummary{
		Date:             today.Format("2006-01-02"),
		MoneyIn:          utils.Round2(in),
		MoneyOut:         utils.Round2(out),
		Net:              utils.Round2(in - out),
		TransactionCount: count,
	}
}

// WeeklySummary reports spending since Monday of the current week
func WeeklySummary(txns []models.Transaction, now time.Time) models.WeeklySummary {
	today := Day(now, now)
	offset := (int(today.Weekday()) + 6) % 7 // Monday = 0
	weekStart := today.AddDate(0, 0, -offset)

	var total float64
	count := 0
	byCategory := make(map[string]float64)
	var order []string
	for _, t := range txns {
		if Day(ParseDate(t.Date, now), now).Before(weekStart) {
			continue
		}
		count++
		if t.Type != models.TransactionExpense {
			continue
		}
		category := categoryOf(t)
		if _, seen := byCategory[category]; !seen {
			order = append(order, category)
		}
		byCategory[category] += t.Amount
		total += t.Amount
	}

	sort.SliceStable(order, func(i, j int) bool { return byCategory[order[i]] > byCategory[order[j]] })
	if len(order) > topCategoryCount {
		order = order[:topCategoryCount]
	}
	top := make([]models.CategoryAmount, 0, len(order))
	for _, c := range order {
		top = append(top, models.CategoryAmount{Category: c, Amount: utils.Round2(byCategory[c])})
	}

	return models.WeeklySummary{
		WeekStart:        weekStart.Format("2006-01-02"),
		TotalSpent:       utils.Round2(total),
		TopCategories:    top,
		TransactionCount: count,
	}
}

// BudgetStatus compares this month's spending per category with its budget limit
func BudgetStatus(txns []models.Transaction, budgets map[string]float64, now time.Time) map[string]models.BudgetCategoryStatus {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	spent := make(map[string]float64)
	for _, t := range txns {
		if t.Type != models.TransactionExpense || ParseDate(t.Date, now).Before(monthStart) {
			continue
		}
		spent[categoryOf(t)] += t.Amount
	}

	status := make(map[string]models.BudgetCategoryStatus, len(budgets))
	for category, limit := range budgets {
		s := spent[category]
		percentage := 0.0
		if limit > 0 {
			percentage = s / limit * 100
		}
		status[category] = models.BudgetCategoryStatus{
			Category:    category,
			BudgetLimit: utils.Round2(limit),
			Spent:       utils.Round2(s),
			Remaining:   utils.Round2(limit - s),
			Percentage:  utils.Round(percentage, 1),
			Trend:       budgetTrend(percentage),
		}
	}
	return status
}

func budgetTrend(percentage float64) string {
	switch {
	case percentage < 50:
		return "on_track"
	case percentage < 80:
		return "moderate"
	case percentage < 100:
		return "warning"
	default:
		return "over_budget"
	}
}

// Recent returns up to limit transactions, newest first
func Recent(txns []models.Transaction, limit int, now time.Time) []models.Transaction {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	sorted := make([]models.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return ParseDate(sorted[i].Date, now).After(ParseDate(sorted[j].Date, now))
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func categoryOf(t models.Transaction) string {
	if t.Category == "" {
		return defaultCategory
	}
	return t.Category
}
