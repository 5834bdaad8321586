package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/utils"
)

const (
	// SavingsAnnualReturn is the nominal annual return used for savings projections
	SavingsAnnualReturn = 0.06
	// DefaultRetirementReturn is used when no retirement return rate is supplied
	DefaultRetirementReturn = 0.08
	// MaxHorizonMonths bounds monthly projections (100 years)
	MaxHorizonMonths = 1200
	// MaxLoanPeriods bounds the amortization loop (100 years of payments)
	MaxLoanPeriods = 1200

	loanStepDays = 30
	monthLayout  = "2006-01"
)

// monthlyRate converts an annual effective rate to the equivalent monthly rate
func monthlyRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12) - 1
}

// ProjectSavings projects a savings balance growing by a fixed monthly contribution
func ProjectSavings(monthlyContribution float64, months int, now time.Time) ([]models.ProjectionPoint, error) {
	if !utils.IsFinite(monthlyContribution) || monthlyContribution < 0 {
		return nil, fmt.Errorf("%w: monthly contribution must be a non-negative number", models.ErrInvalidInput)
	}
	if err := validateHorizon(months); err != nil {
		return nil, err
	}
	return compound(0, monthlyContribution, SavingsAnnualReturn, months, now), nil
}

// ProjectRetirementCorpus projects a retirement corpus seeded with current savings
func ProjectRetirementCorpus(currentSavings, monthlyContribution float64, months int, annualReturnRate float64, now time.Time) ([]models.CorpusPoint, error) {
	if !utils.IsFinite(currentSavings) || currentSavings < 0 {
		return nil, fmt.Errorf("%w: current savings must be a non-negative number", models.ErrInvalidInput)
	}
	if !utils.IsFinite(monthlyContribution) || monthlyContribution < 0 {
		return nil, fmt.Errorf("%w: monthly contribution must be a non-negative number", models.ErrInvalidInput)
	}
	if !utils.IsFinite(annualReturnRate) || annualReturnRate < 0 {
		return nil, fmt.Errorf("%w: annual return rate must be a non-negative number", models.ErrInvalidInput)
	}
	if err := validateHorizon(months); err != nil {
		return nil, err
	}

	points := compound(currentSavings, monthlyContribution, annualReturnRate, months, now)
	corpus := make([]models.CorpusPoint, len(points))
	for i, p := range points {
		corpus[i] = models.CorpusPoint{Month: p.Month, ProjectedCorpus: p.Value}
	}
	return corpus, nil
}

// Simulate compares the savings trajectory of a base contribution with base+delta
func Simulate(baseContribution, delta float64, months int, now time.Time) (*models.SavingsSimulation, error) {
	base, err := ProjectSavings(baseContribution, months, now)
	if err != nil {
		return nil, fmt.Errorf("base plan: %w", err)
	}
	bump, err := ProjectSavings(baseContribution+delta, months, now)
	if err != nil {
		return nil, fmt.Errorf("bumped plan: %w", err)
	}
	return &models.SavingsSimulation{Base: base, Bump: bump}, nil
}

// ProjectLoanPayoff amortizes a loan with a fixed monthly payment until it is repaid
func ProjectLoanPayoff(principal, monthlyPayment, annualRate float64, now time.Time) ([]models.LoanPoint, error) {
	if !utils.IsFinite(principal) || principal <= 0 {
		return nil, fmt.Errorf("%w: principal must be positive", models.ErrInvalidInput)
	}
	if !utils.IsFinite(monthlyPayment) || monthlyPayment <= 0 {
		return nil, fmt.Errorf("%w: monthly payment must be positive", models.ErrInvalidInput)
	}
	if !utils.IsFinite(annualRate) || annualRate <= 0 {
		return nil, fmt.Errorf("%w: annual interest rate must be positive", models.ErrInvalidInput)
	}

	rate := annualRate / 12
	balance := principal
	date := now
	var timeline []models.LoanPoint

	for balance > 0 {
		if len(timeline) >= MaxLoanPeriods {
			return nil, fmt.Errorf("%w: loan is not repaid within %d payments", models.ErrHorizonTooLong, MaxLoanPeriods)
		}

		interest := balance * rate
		principalPortion := monthlyPayment - interest
		if principalPortion <= 0 {
			return nil, fmt.Errorf("%w: payment %.2f, interest %.2f", models.ErrInsufficientPayment, monthlyPayment, interest)
		}

		balance -= principalPortion
		timeline = append(timeline, models.LoanPoint{
			Month:     date.Format(monthLayout),
			Remaining: utils.Round2(math.Max(balance, 0)),
		})
		date = date.AddDate(0, 0, loanStepDays)
	}

	return timeline, nil
}

func validateHorizon(months int) error {
	if months <= 0 {
		return fmt.Errorf("%w: months must be positive", models.ErrInvalidInput)
	}
	if months > MaxHorizonMonths {
		return fmt.Errorf("%w: at most %d months are supported", models.ErrHorizonTooLong, MaxHorizonMonths)
	}
	return nil
}

// compound runs the monthly deposit-then-grow recurrence, one point per calendar month
func compound(seed, contribution, annualRate float64, months int, now time.Time) []models.ProjectionPoint {
	rm := monthlyRate(annualRate)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	balance := seed
	points := make([]models.ProjectionPoint, 0, months)
	for i := 0; i < months; i++ {
		balance += contribution
		balance *= 1 + rm
		points = append(points, models.ProjectionPoint{
			Month: start.AddDate(0, i, 0).Format(monthLayout),
			Value: utils.Round2(balance),
		})
	}
	return points
}
