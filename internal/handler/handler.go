package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Dan9191/finance-advisor/internal/goals"
	"github.com/Dan9191/finance-advisor/internal/models"
	"github.com/Dan9191/finance-advisor/internal/service"
	"github.com/Dan9191/finance-advisor/internal/transactions"
	"github.com/sirupsen/logrus"
)

const (
	defaultForecastMonths   = 120
	defaultRetirementMonths = 360
	maxBodyBytes            = 1 << 20
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type forecastRequest struct {
	MonthlySaving float64 `json:"monthlySaving"`
	Months        *int    `json:"months"`
}

// Forecast handles the savings growth projection
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if !h.decode(w, r, &req) {
		return
	}
	series, err := h.svc.ForecastSavings(req.MonthlySaving, intOr(req.Months, defaultForecastMonths))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"series": series})
}

type simulateRequest struct {
	BaseMonthlySaving  float64 `json:"baseMonthlySaving"`
	DeltaMonthlySaving float64 `json:"deltaMonthlySaving"`
	Months             *int    `json:"months"`
}

// Simulate compares the base plan with a bumped contribution
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !h.decode(w, r, &req) {
		return
	}
	sim, err := h.svc.Simulate(req.BaseMonthlySaving, req.DeltaMonthlySaving, intOr(req.Months, defaultForecastMonths))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sim)
}

// Both spellings are accepted. A present snake_case rate wins, the snake_case payment wins when non-zero.
type loanRequest struct {
	Principal             float64  `json:"principal"`
	AnnualInterestRate    *float64 `json:"annual_interest_rate"`
	AnnualInterestRateAlt *float64 `json:"annualInterestRate"`
	MonthlyEmi            float64  `json:"monthly_emi"`
	MonthlyEmiAlt         float64  `json:"monthlyEmi"`
}

func (req loanRequest) rate() *float64 {
	if req.AnnualInterestRate != nil {
		return req.AnnualInterestRate
	}
	return req.AnnualInterestRateAlt
}

func (req loanRequest) payment() float64 {
	if req.MonthlyEmi != 0 {
		return req.MonthlyEmi
	}
	return req.MonthlyEmiAlt
}

// LoanPayoff handles the amortization timeline
func (h *Handler) LoanPayoff(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !h.decode(w, r, &req) {
		return
	}
	timeline, err := h.svc.LoanPayoff(req.Principal, req.payment(), req.rate())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"timeline": timeline})
}

type retirementRequest struct {
	CurrentSavings      float64  `json:"currentSavings"`
	MonthlyContribution float64  `json:"monthlyContribution"`
	AnnualReturnRate    *float64 `json:"annualReturnRate"`
	Months              *int     `json:"months"`
}

// Retirement handles the retirement corpus projection
func (h *Handler) Retirement(w http.ResponseWriter, r *http.Request) {
	var req retirementRequest
	if !h.decode(w, r, &req) {
		return
	}
	corpus, err := h.svc.Retirement(req.CurrentSavings, req.MonthlyContribution, intOr(req.Months, defaultRetirementMonths), req.AnnualReturnRate)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"corpus": corpus})
}

type clustersRequest struct {
	Expenses json.RawMessage `json:"expenses"`
}

// Clusters assigns severity tiers to expense categories, keeping the request's key order
func (h *Handler) Clusters(w http.ResponseWriter, r *http.Request) {
	var req clustersRequest
	if !h.decode(w, r, &req) {
		return
	}
	entries, err := decodeOrderedExpenses(req.Expenses)
	if err != nil {
		h.writeError(w, err)
		return
	}
	clusters, err := h.svc.ClusterExpenses(entries)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clusters": clusters})
}

type analyzeRequest struct {
	Context map[string]any `json:"context"`
}

// Analyze returns the advisory narrative for a financial profile
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !h.decode(w, r, &req) {
		return
	}
	report, err := h.svc.Analyze(r.Context(), req.Context)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DailyInsights returns the dashboard payload
func (h *Handler) DailyInsights(w http.ResponseWriter, r *http.Request) {
	var req service.InsightsInput
	if !h.decode(w, r, &req) {
		return
	}
	insights, err := h.svc.DailyInsights(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

type budgetRequest struct {
	Transactions []models.Transaction `json:"transactions"`
	Budgets      map[string]float64   `json:"budgets"`
}

// BudgetStatus reports this month's spending per budgeted category
func (h *Handler) BudgetStatus(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"budgetStatus": h.svc.BudgetStatus(req.Transactions, req.Budgets)})
}

// CreateTransaction validates and normalizes a new transaction
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactions.NewTransactionInput
	if !h.decode(w, r, &req) {
		return
	}
	txn, err := h.svc.CreateTransaction(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}

type recentRequest struct {
	Transactions []models.Transaction `json:"transactions"`
	Limit        int                  `json:"limit"`
}

// RecentTransactions sorts transactions newest first
func (h *Handler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	var req recentRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": h.svc.RecentTransactions(req.Transactions, req.Limit)})
}

// CreateGoal builds a new savings goal
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goals.NewGoalInput
	if !h.decode(w, r, &req) {
		return
	}
	goal, err := h.svc.CreateGoal(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

type goalProgressRequest struct {
	Goal   models.Goal `json:"goal"`
	Amount float64     `json:"amount"`
}

// UpdateGoalProgress records a new saved amount
func (h *Handler) UpdateGoalProgress(w http.ResponseWriter, r *http.Request) {
	var req goalProgressRequest
	if !h.decode(w, r, &req) {
		return
	}
	goal, err := h.svc.UpdateGoal(req.Goal, req.Amount)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

type goalProjectionRequest struct {
	Goal models.Goal `json:"goal"`
}

// GoalProjection estimates the completion date of a goal
func (h *Handler) GoalProjection(w http.ResponseWriter, r *http.Request) {
	var req goalProjectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ProjectGoal(req.Goal))
}

// Challenges lists the active challenges
func (h *Handler) Challenges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"challenges": h.svc.Challenges()})
}

// KeyRate returns the cached reference rate
func (h *Handler) KeyRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.svc.KeyRate()
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

type emailReportRequest struct {
	To      string         `json:"to"`
	Name    string         `json:"name"`
	Context map[string]any `json:"context"`
}

// EmailReport composes the narrative and mails it to the recipient
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	var req emailReportRequest
	if !h.decode(w, r, &req) {
		return
	}
	report, err := h.svc.EmailReport(r.Context(), req.To, req.Name, req.Context)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"sent": true, "backend": report.Backend})
}

// decode reads a JSON body. An empty body decodes as an empty object.
// Numbers inside free-form maps stay json.Number so profile parsing sees them exactly.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.log.Debugf("Rejected request body on %s: %v", r.URL.Path, err)
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrInvalidFinancialInput),
		errors.Is(err, models.ErrInsufficientPayment),
		errors.Is(err, models.ErrHorizonTooLong):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrFeatureDisabled):
		writeErrorMessage(w, http.StatusNotImplemented, err.Error())
	case errors.Is(err, models.ErrUnavailable):
		writeErrorMessage(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.log.Errorf("Request failed: %v", err)
		writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("Failed to encode response: %v", err)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// decodeOrderedExpenses reads a {"category": amount} object preserving key order
func decodeOrderedExpenses(raw json.RawMessage) ([]models.ExpenseEntry, error) {
	entries := []models.ExpenseEntry{}
	if len(raw) == 0 || string(raw) == "null" {
		return entries, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: expenses must be an object", models.ErrInvalidInput)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: expenses must be an object", models.ErrInvalidInput)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed expenses object", models.ErrInvalidInput)
		}
		category, _ := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: malformed expenses object", models.ErrInvalidInput)
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: expense %q must be a number", models.ErrInvalidInput, category)
		}
		amount, err := num.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: expense %q must be a number", models.ErrInvalidInput, category)
		}
		entries = append(entries, models.ExpenseEntry{Category: category, Amount: amount})
	}
	return entries, nil
}
