package analysis

import "github.com/Dan9191/finance-advisor/internal/models"

// ComputeSnapshot derives net worth and the income ratios from a profile.
// Every division is guarded: a zero denominator yields a zero ratio.
func ComputeSnapshot(p Profile) models.RatioSnapshot {
	income := p.Income
	if p.RealIncome != nil {
		income = *p.RealIncome
	}

	expenses := p.Rent + p.Food + p.Transport + p.Utilities + p.Misc
	if p.RealExpenses != nil {
		expenses = *p.RealExpenses
	}

	assets := p.Savings + p.FixedDeposits + p.Stocks
	liabilities := p.LoanAmount + p.CreditCardDebt
	surplus := income - expenses

	s := models.RatioSnapshot{
		Income:         income,
		Expenses:       expenses,
		Assets:         assets,
		Liabilities:    liabilities,
		NetWorth:       assets - liabilities,
		MonthlySurplus: surplus,
		EMI:            p.EMI,
		Age:            p.Age,
	}
	if income > 0 {
		s.SavingsRate = surplus / income
		s.DebtToIncomeRatio = p.EMI / income
	}
	if expenses > 0 {
		s.EmergencyFundMonths = assets / expenses
	}
	return s
}
