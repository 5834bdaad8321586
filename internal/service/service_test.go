package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/Dan9191/finance-advisor/internal/goals"
	"github.com/Dan9191/finance-advisor/internal/integrations/cbr"
	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/narrative"
	"github.com/Dan9191/finance-advisor/internal/transactions"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type stubRates struct {
	rate cbr.KeyRate
	ok   bool
}

func (s stubRates) Current() (cbr.KeyRate, bool) { return s.rate, s.ok }

type sentReport struct {
	to, name, narrative string
	at                  time.Time
}

type stubMailer struct {
	sent []sentReport
	err  error
}

func (m *stubMailer) SendNarrativeReport(to, name, narrative string, generatedAt time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentReport{to: to, name: name, narrative: narrative, at: generatedAt})
	return nil
}

type failingNarrator struct{}

func (failingNarrator) Name() string { return narrative.BackendGroq }

func (failingNarrator) Generate(context.Context, narrative.Context) (string, error) {
	return "", errors.New("upstream timeout")
}

type ServiceSuite struct {
	suite.Suite
	now    time.Time
	log    *logrus.Logger
	mailer *stubMailer
	svc    *Service
}

func (s *ServiceSuite) SetupTest() {
	s.now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	s.log = logrus.New()
	s.log.SetOutput(io.Discard)
	s.mailer = &stubMailer{}
	s.svc = NewService(s.log, &config.Config{}, nil, nil, nil).WithClock(func() time.Time { return s.now })
}

func (s *ServiceSuite) withCollaborators(narrator narrative.Generator, rates KeyRateProvider, mailer ReportMailer) *Service {
	return NewService(s.log, &config.Config{}, narrator, rates, mailer).WithClock(func() time.Time { return s.now })
}

func profile() map[string]any {
	return map[string]any{
		"income":    50000.0,
		"rent":      15000.0,
		"food":      5000.0,
		"transport": 2000.0,
		"utilities": 2000.0,
		"misc":      1000.0,
		"savings":   0.0,
		"emi":       0.0,
	}
}

func (s *ServiceSuite) TestForecastStartsAtCurrentMonth() {
	series, err := s.svc.ForecastSavings(1000, 3)
	s.Require().NoError(err)
	s.Require().Len(series, 3)
	s.Equal("2024-03", series[0].Month)
	s.Equal("2024-05", series[2].Month)
}

func (s *ServiceSuite) TestLoanPayoffRateSelection() {
	explicit := 0.12
	timeline, err := s.svc.LoanPayoff(1200, 200, &explicit)
	s.Require().NoError(err)
	s.Len(timeline, 7)

	cached := s.withCollaborators(nil, stubRates{rate: cbr.KeyRate{Rate: 12}, ok: true}, nil)
	fromCache, err := cached.LoanPayoff(1200, 200, nil)
	s.Require().NoError(err)
	s.Equal(timeline, fromCache)

	empty := s.withCollaborators(nil, stubRates{}, nil)
	fallback, err := empty.LoanPayoff(1200, 200, nil)
	s.Require().NoError(err)
	s.NotEmpty(fallback)
	s.Equal(0.0, fallback[len(fallback)-1].Remaining)
}

func (s *ServiceSuite) TestLoanPayoffInsufficientPayment() {
	rate := 0.12
	_, err := s.svc.LoanPayoff(1000, 5, &rate)
	s.ErrorIs(err, models.ErrInsufficientPayment)
}

func (s *ServiceSuite) TestRetirementDefaultsRate() {
	withDefault, err := s.svc.Retirement(1000, 100, 12, nil)
	s.Require().NoError(err)
	rate := 0.08
	explicit, err := s.svc.Retirement(1000, 100, 12, &rate)
	s.Require().NoError(err)
	s.Equal(explicit, withDefault)
}

func (s *ServiceSuite) TestAnalyzeUsesTemplate() {
	report, err := s.svc.Analyze(context.Background(), profile())
	s.Require().NoError(err)
	s.Equal(narrative.BackendTemplate, report.Backend)
	s.Contains(report.Summary, "₹")
}

func (s *ServiceSuite) TestAnalyzeFallsBackWhenBackendFails() {
	svc := s.withCollaborators(failingNarrator{}, nil, nil)
	report, err := svc.Analyze(context.Background(), profile())
	s.Require().NoError(err)
	s.Equal(narrative.BackendTemplate, report.Backend)
	s.NotEmpty(report.Summary)
}

func (s *ServiceSuite) TestAnalyzeRejectsBadProfile() {
	_, err := s.svc.Analyze(context.Background(), map[string]any{"income": true})
	s.ErrorIs(err, models.ErrInvalidFinancialInput)
}

func (s *ServiceSuite) TestDailyInsights() {
	txns := []models.Transaction{
		{Amount: 500, Category: "Food", Type: models.TransactionExpense, Date: "2024-03-15T09:00:00Z"},
		{Amount: 2000, Category: "Salary", Type: models.TransactionIncome, Date: "2024-03-15T10:00:00Z"},
	}
	insights, err := s.svc.DailyInsights(InsightsInput{
		UserData:     profile(),
		Transactions: txns,
		Budgets:      map[string]float64{"Food": 1000},
	})
	s.Require().NoError(err)

	s.Equal(75, insights.DailyScore.Score)
	s.Equal("improving", insights.DailyScore.Trend)
	s.Equal(2000.0, insights.TodaySummary.MoneyIn)
	s.Equal(500.0, insights.TodaySummary.MoneyOut)
	s.Equal(2, insights.TodaySummary.TransactionCount)
	s.Require().Contains(insights.BudgetStatus, "Food")
	s.Equal(50.0, insights.BudgetStatus["Food"].Percentage)
	s.Equal(1, insights.Streaks.TrackingStreak)
}

func (s *ServiceSuite) TestDailyInsightsWithoutBudgets() {
	insights, err := s.svc.DailyInsights(InsightsInput{UserData: profile()})
	s.Require().NoError(err)
	s.Nil(insights.BudgetStatus)
	s.Empty(insights.Achievements)
}

func (s *ServiceSuite) TestTransactionAndGoalLifecycle() {
	txn, err := s.svc.CreateTransaction(transactions.NewTransactionInput{Amount: 12.345, Category: "Food"})
	s.Require().NoError(err)
	s.Equal(12.35, txn.Amount)
	s.Equal(models.TransactionExpense, txn.Type)

	goal, err := s.svc.CreateGoal(goals.NewGoalInput{Name: "Laptop", TargetAmount: 1000})
	s.Require().NoError(err)
	s.Equal(models.GoalActive, goal.Status)

	done, err := s.svc.UpdateGoal(*goal, 1000)
	s.Require().NoError(err)
	s.Equal(models.GoalCompleted, done.Status)

	again, err := s.svc.UpdateGoal(*done, 100)
	s.Require().NoError(err)
	s.Equal(models.GoalCompleted, again.Status)
}

func (s *ServiceSuite) TestKeyRate() {
	_, err := s.svc.KeyRate()
	s.ErrorIs(err, models.ErrFeatureDisabled)

	_, err = s.withCollaborators(nil, stubRates{}, nil).KeyRate()
	s.ErrorIs(err, models.ErrUnavailable)

	want := cbr.KeyRate{Rate: 21, FetchedAt: s.now}
	got, err := s.withCollaborators(nil, stubRates{rate: want, ok: true}, nil).KeyRate()
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *ServiceSuite) TestEmailReport() {
	_, err := s.svc.EmailReport(context.Background(), "a@example.com", "Asha", profile())
	s.ErrorIs(err, models.ErrFeatureDisabled)

	svc := s.withCollaborators(nil, nil, s.mailer)
	_, err = svc.EmailReport(context.Background(), "", "Asha", profile())
	s.ErrorIs(err, models.ErrInvalidInput)

	report, err := svc.EmailReport(context.Background(), "a@example.com", "Asha", profile())
	s.Require().NoError(err)
	s.Require().Len(s.mailer.sent, 1)
	s.Equal("a@example.com", s.mailer.sent[0].to)
	s.Equal(report.Summary, s.mailer.sent[0].narrative)
	s.Equal(s.now, s.mailer.sent[0].at)
}

func (s *ServiceSuite) TestEmailReportPropagatesSendFailure() {
	s.mailer.err = errors.New("smtp down")
	svc := s.withCollaborators(nil, nil, s.mailer)
	_, err := svc.EmailReport(context.Background(), "a@example.com", "Asha", profile())
	s.EqualError(err, "smtp down")
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
