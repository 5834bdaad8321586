package gamification

import (
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/transactions"
)

// streakWindowDays bounds how far back streaks are counted
const streakWindowDays = 30

const dayLayout = "2006-01-02"

type dayTotals struct {
	count           int
	income, expense float64
}

// CalculateStreaks counts consecutive qualifying days ending today.
// budgets are monthly limits per category; without them the budget streak is zero.
func CalculateStreaks(txns []models.Transaction, budgets map[string]float64, now time.Time) models.Streaks {
	if len(txns) == 0 {
		return models.Streaks{}
	}

	days := make(map[string]*dayTotals)
	for _, t := range txns {
		day := transactions.Day(transactions.ParseDate(t.Date, now), now).Format(dayLayout)
		totals, ok := days[day]
		if !ok {
			totals = &dayTotals{}
			days[day] = totals
		}
		totals.count++
		switch t.Type {
		case models.TransactionIncome:
			totals.income += t.Amount
		case models.TransactionExpense:
			totals.expense += t.Amount
		}
	}

	today := transactions.Day(now, now)
	window := make([]*dayTotals, streakWindowDays)
	for i := range window {
		window[i] = days[today.AddDate(0, 0, -i).Format(dayLayout)]
	}

	dailyBudget := dailyAllowance(budgets, now)

	var s models.Streaks
	s.TrackingStreak = leadingRun(window, func(d *dayTotals) bool { return d != nil && d.count > 0 })
	s.SavingsStreak = leadingRun(window, saved)
	if dailyBudget > 0 {
		s.BudgetStreak = leadingRun(window, func(d *dayTotals) bool {
			return d != nil && d.count > 0 && d.expense <= dailyBudget
		})
	}
	s.NoSpendDays = countDays(window, func(d *dayTotals) bool { return d != nil && d.count > 0 && d.expense == 0 })
	s.LongestSavingsStreak = longestRun(window, saved)
	return s
}

func saved(d *dayTotals) bool {
	return d != nil && d.income > d.expense
}

// dailyAllowance spreads the monthly budget over the days of the current month
func dailyAllowance(budgets map[string]float64, now time.Time) float64 {
	var total float64
	for _, limit := range budgets {
		if limit > 0 {
			total += limit
		}
	}
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	return total / float64(daysInMonth)
}

func leadingRun(window []*dayTotals, ok func(*dayTotals) bool) int {
	n := 0
	for _, d := range window {
		if !ok(d) {
			break
		}
		n++
	}
	return n
}

func longestRun(window []*dayTotals, ok func(*dayTotals) bool) int {
	longest, current := 0, 0
	for _, d := range window {
		if ok(d) {
			current++
			longest = max(longest, current)
		} else {
			current = 0
		}
	}
	return longest
}

func countDays(window []*dayTotals, ok func(*dayTotals) bool) int {
	n := 0
	for _, d := range window {
		if ok(d) {
			n++
		}
	}
	return n
}
