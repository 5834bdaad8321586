package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-advisor/internal/analysis"
	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/forecast"
	"github.com/Dan9191/finance-advisor/internal/gamification"
	"github.com/Dan9191/finance-advisor/internal/goals"
	"github.com/Dan9191/finance-advisor/internal/integrations/cbr"
	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/narrative"
	"github.com/Dan9191/finance-advisor/internal/transactions"
	"github.com/sirupsen/logrus"
)

// DefaultLoanRate is used when neither the request nor the rate cache supplies a rate
const DefaultLoanRate = 0.10

// KeyRateProvider exposes the cached reference rate
type KeyRateProvider interface {
	Current() (cbr.KeyRate, bool)
}

// ReportMailer delivers narrative reports
type ReportMailer interface {
	SendNarrativeReport(to, name, narrative string, generatedAt time.Time) error
}

// Service handles business logic
type Service struct {
	log      *logrus.Logger
	config   *config.Config
	narrator narrative.Generator
	rates    KeyRateProvider
	mailer   ReportMailer
	now      func() time.Time
}

// NewService initializes a new service. rates and mailer may be nil when not configured.
func NewService(log *logrus.Logger, cfg *config.Config, narrator narrative.Generator, rates KeyRateProvider, mailer ReportMailer) *Service {
	if narrator == nil {
		narrator = narrative.TemplateGenerator{}
	}
	return &Service{
		log:      log,
		config:   cfg,
		narrator: narrator,
		rates:    rates,
		mailer:   mailer,
		now:      time.Now,
	}
}

// WithClock replaces the wall clock, used to pin "now" in tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ForecastSavings projects monthly savings growth
func (s *Service) ForecastSavings(monthlySaving float64, months int) ([]models.ProjectionPoint, error) {
	return forecast.ProjectSavings(monthlySaving, months, s.now())
}

// Simulate compares a base savings plan with an increased one
func (s *Service) Simulate(base, delta float64, months int) (*models.SavingsSimulation, error) {
	return forecast.Simulate(base, delta, months, s.now())
}

// LoanPayoff builds the payoff timeline. Without an explicit rate the cached reference
// rate is used, then DefaultLoanRate.
func (s *Service) LoanPayoff(principal, monthlyPayment float64, annualRate *float64) ([]models.LoanPoint, error) {
	rate := DefaultLoanRate
	switch {
	case annualRate != nil:
		rate = *annualRate
	case s.rates != nil:
		if kr, ok := s.rates.Current(); ok {
			rate = kr.Rate / 100
		}
	}

	timeline, err := forecast.ProjectLoanPayoff(principal, monthlyPayment, rate, s.now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"principal": principal,
			"payment":   monthlyPayment,
			"rate":      rate,
		}).Warnf("Loan payoff rejected: %v", err)
		return nil, err
	}
	s.log.Debugf("Loan of %.2f repaid in %d payments at %.4f", principal, len(timeline), rate)
	return timeline, nil
}

// Retirement projects the retirement corpus, defaulting the return rate to 8%
func (s *Service) Retirement(currentSavings, monthlyContribution float64, months int, annualReturnRate *float64) ([]models.CorpusPoint, error) {
	rate := forecast.DefaultRetirementReturn
	if annualReturnRate != nil {
		rate = *annualReturnRate
	}
	return forecast.ProjectRetirementCorpus(currentSavings, monthlyContribution, months, rate, s.now())
}

// ClusterExpenses assigns severity tiers to expense categories
func (s *Service) ClusterExpenses(entries []models.ExpenseEntry) ([]models.ExpenseCluster, error) {
	return forecast.ClusterExpenses(entries)
}

// Snapshot parses a raw profile and derives its ratios
func (s *Service) Snapshot(raw map[string]any) (analysis.Profile, models.RatioSnapshot, error) {
	profile, err := analysis.ParseProfile(raw)
	if err != nil {
		s.log.Warnf("Invalid financial profile: %v", err)
		return analysis.Profile{}, models.RatioSnapshot{}, err
	}
	return profile, analysis.ComputeSnapshot(profile), nil
}

// Narrative is a generated advisory text and the backend that wrote it
type Narrative struct {
	Summary string `json:"summary"`
	Backend string `json:"backend"`
}

// Analyze produces the advisory narrative. When the configured backend fails the
// template narrative is returned instead.
func (s *Service) Analyze(ctx context.Context, raw map[string]any) (*Narrative, error) {
	_, snapshot, err := s.Snapshot(raw)
	if err != nil {
		return nil, err
	}

	nc := narrative.Context{Snapshot: snapshot, Profile: raw}
	text, err := s.narrator.Generate(ctx, nc)
	if err == nil {
		return &Narrative{Summary: text, Backend: s.narrator.Name()}, nil
	}

	s.log.Warnf("Narrative backend %s failed, falling back to template: %v", s.narrator.Name(), err)
	fallback := narrative.TemplateGenerator{}
	text, err = fallback.Generate(ctx, nc)
	if err != nil {
		return nil, fmt.Errorf("failed to compose narrative: %w", err)
	}
	return &Narrative{Summary: text, Backend: fallback.Name()}, nil
}

// InsightsInput is the dashboard request payload
type InsightsInput struct {
	UserData     map[string]any       `json:"userData"`
	Transactions []models.Transaction `json:"transactions"`
	Goals        []models.Goal        `json:"goals"`
	Budgets      map[string]float64   `json:"budgets"`
}

// DailyInsights computes the score, summaries, streaks and achievements for the dashboard
func (s *Service) DailyInsights(in InsightsInput) (*models.DailyInsights, error) {
	profile, snapshot, err := s.Snapshot(in.UserData)
	if err != nil {
		return nil, err
	}

	now := s.now()
	insights := &models.DailyInsights{
		DailyScore:    analysis.ScoreDailyHealth(snapshot),
		Snapshot:      snapshot,
		TodaySummary:  transactions.DailySummary(in.Transactions, now),
		WeeklySummary: transactions.WeeklySummary(in.Transactions, now),
		Streaks:       gamification.CalculateStreaks(in.Transactions, in.Budgets, now),
		Achievements:  gamification.EvaluateAchievements(len(in.Transactions), profile.Savings, in.Goals, now),
	}
	if len(in.Budgets) > 0 {
		insights.BudgetStatus = transactions.BudgetStatus(in.Transactions, in.Budgets, now)
	}

	s.log.WithFields(logrus.Fields{
		"score":        insights.DailyScore.Score,
		"trend":        insights.DailyScore.Trend,
		"transactions": len(in.Transactions),
	}).Debug("Daily insights computed")
	return insights, nil
}

// BudgetStatus reports this month's spending against budget limits
func (s *Service) BudgetStatus(txns []models.Transaction, budgets map[string]float64) map[string]models.BudgetCategoryStatus {
	return transactions.BudgetStatus(txns, budgets, s.now())
}

// CreateTransaction builds a new transaction record
func (s *Service) CreateTransaction(in transactions.NewTransactionInput) (*models.Transaction, error) {
	txn, err := transactions.New(in, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Infof("Transaction created: %s %.2f %s", txn.Type, txn.Amount, txn.Category)
	return txn, nil
}

// RecentTransactions returns the newest transactions first
func (s *Service) RecentTransactions(txns []models.Transaction, limit int) []models.Transaction {
	return transactions.Recent(txns, limit, s.now())
}

// CreateGoal builds a new savings goal
func (s *Service) CreateGoal(in goals.NewGoalInput) (*models.Goal, error) {
	goal, err := goals.New(in, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Infof("Goal created: %s (target %.2f)", goal.Name, goal.TargetAmount)
	return goal, nil
}

// UpdateGoal records a new saved amount on a goal
func (s *Service) UpdateGoal(goal models.Goal, amount float64) (*models.Goal, error) {
	updated, err := goals.UpdateProgress(goal, amount, s.now())
	if err != nil {
		return nil, err
	}
	if goal.Status != models.GoalCompleted && updated.Status == models.GoalCompleted {
		s.log.Infof("Goal completed: %s", updated.Name)
	}
	return updated, nil
}

// ProjectGoal estimates when a goal will be reached
func (s *Service) ProjectGoal(goal models.Goal) models.GoalProjection {
	return goals.Project(goal, s.now())
}

// Challenges lists the active challenges
func (s *Service) Challenges() []models.Challenge {
	return gamification.ActiveChallenges(s.now())
}

// KeyRate returns the cached reference key rate
func (s *Service) KeyRate() (cbr.KeyRate, error) {
	if s.rates == nil {
		return cbr.KeyRate{}, fmt.Errorf("%w: key rate source", models.ErrFeatureDisabled)
	}
	rate, ok := s.rates.Current()
	if !ok {
		return cbr.KeyRate{}, fmt.Errorf("%w: key rate not fetched yet", models.ErrUnavailable)
	}
	return rate, nil
}

// EmailReport composes the narrative for a profile and mails it
func (s *Service) EmailReport(ctx context.Context, to, name string, raw map[string]any) (*Narrative, error) {
	if s.mailer == nil {
		return nil, fmt.Errorf("%w: email delivery", models.ErrFeatureDisabled)
	}
	if to == "" {
		return nil, fmt.Errorf("%w: recipient email is required", models.ErrInvalidInput)
	}

	report, err := s.Analyze(ctx, raw)
	if err != nil {
		return nil, err
	}
	if err := s.mailer.SendNarrativeReport(to, name, report.Summary, s.now()); err != nil {
		return nil, err
	}
	return report, nil
}
