package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/dustin/go-humanize"
)

const currencySymbol = "₹"

// ComposeNarrative renders the advisory report for a snapshot. Sections are separated by a
// blank line: strategy mode, net worth, budget feedback, debt advice, actionable steps.
func ComposeNarrative(s models.RatioSnapshot) string {
	sections := []string{
		strategySection(s.Age),
		netWorthSection(s.NetWorth),
		budgetSection(s.SavingsRate),
		debtSection(s.DebtToIncomeRatio),
		checklistSection(s),
	}
	return strings.Join(sections, "\n\n")
}

func strategySection(age int) string {
	switch {
	case age < 30:
		return fmt.Sprintf("Strategy Mode: AGGRESSIVE GROWTH (Age %d)\n"+
			"Time is your biggest asset. Your focus should be on maximizing income and high-growth investments.", age)
	case age < 50:
		return fmt.Sprintf("Strategy Mode: BALANCED COMPOUNDING (Age %d)\n"+
			"You are in your prime earning years. The goal is to balance lifestyle needs with debt reduction and consistent investing.", age)
	default:
		return fmt.Sprintf("Strategy Mode: WEALTH PRESERVATION (Age %d)\n"+
			"Security is paramount. Your focus shifts from high risk to capital protection and liquidity for retirement.", age)
	}
}

func netWorthSection(netWorth float64) string {
	if netWorth > 0 {
		return fmt.Sprintf("Net Worth Analysis:\nYou are in a positive position with a net worth of %s. "+
			"Your asset base is building nicely.", money(netWorth))
	}
	return fmt.Sprintf("Net Worth Analysis:\nYour liabilities currently exceed your assets by %s. "+
		"Focusing on debt reduction should be your primary goal.", money(math.Abs(netWorth)))
}

func budgetSection(savingsRate float64) string {
	pct := savingsRate * 100
	switch {
	case savingsRate >= 0.20:
		return fmt.Sprintf("Budget Feedback:\nExcellent discipline. You are saving %.1f%% of your income. "+
			"This surplus gives you strong leverage for future investments.", pct)
	case savingsRate >= 0.10:
		return fmt.Sprintf("Budget Feedback:\nYou are saving %.1f%% of your income. "+
			"This is a healthy start, but try to push towards 20%% to accelerate your goals.", pct)
	default:
		return fmt.Sprintf("Budget Feedback:\nYour current savings rate is %.1f%%, which is tight. "+
			"Review your discretionary spending (Food/Misc) to unlock more free cash flow.", pct)
	}
}

func debtSection(dti float64) string {
	switch {
	case dti > 0.40:
		return "Debt Advice:\nCaution: Your debt obligations (EMIs) consume over 40% of your income. " +
			"This is a high-risk zone. Avoid new loans and consider restructuring existing debt."
	case dti > 0:
		return "Debt Advice:\nYour debt load is manageable. Ensure you are prepaying high-interest loans " +
			"(like Credit Cards) first to minimize interest leaks."
	default:
		return "Debt Advice:\nYou are debt-free or have no significant monthly obligations. " +
			"This is a fantastic foundation for aggressive wealth compounding."
	}
}

func checklistSection(s models.RatioSnapshot) string {
	var steps []string

	if emergencyTarget := s.Expenses * 3; s.Assets < emergencyTarget {
		steps = append(steps, fmt.Sprintf("- Build an emergency fund of %s%s (3 months expenses).",
			currencySymbol, humanize.FormatFloat("#,###.", emergencyTarget)))
	}
	if s.Liabilities > 0 && s.MonthlySurplus > 0 {
		steps = append(steps, "- Allocate 50% of your monthly surplus to debt prepayment.")
	}
	if s.SavingsRate > 0.20 && s.Assets > s.Expenses*6 {
		steps = append(steps, "- Consider diversifying your excess savings into index funds or mutual funds.")
	}

	if len(steps) == 0 {
		steps = append(steps,
			"- Maintain your current trajectory; review your portfolio quarterly.",
			"- Look for opportunities to increase your primary income stream.",
		)
	}

	return "Actionable Steps:\n" + strings.Join(steps, "\n")
}

// money formats an amount with thousands separators and two decimals
func money(amount float64) string {
	return currencySymbol + humanize.FormatFloat("#,###.##", amount)
}
