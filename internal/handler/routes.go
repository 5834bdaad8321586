package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every endpoint on a gorilla/mux router
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// Projections
	r.HandleFunc("/forecast", h.Forecast).Methods(http.MethodPost)
	r.HandleFunc("/loan-payoff", h.LoanPayoff).Methods(http.MethodPost)
	r.HandleFunc("/retirement", h.Retirement).Methods(http.MethodPost)
	r.HandleFunc("/simulate", h.Simulate).Methods(http.MethodPost)
	r.HandleFunc("/clusters", h.Clusters).Methods(http.MethodPost)
	r.HandleFunc("/analyze/clusters", h.Clusters).Methods(http.MethodPost)

	// Analysis
	r.HandleFunc("/analyze", h.Analyze).Methods(http.MethodPost)
	r.HandleFunc("/insights/daily", h.DailyInsights).Methods(http.MethodPost)
	r.HandleFunc("/budget/status", h.BudgetStatus).Methods(http.MethodPost)
	r.HandleFunc("/report/email", h.EmailReport).Methods(http.MethodPost)

	// Transactions and goals
	r.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
	r.HandleFunc("/transactions/recent", h.RecentTransactions).Methods(http.MethodPost)
	r.HandleFunc("/goals", h.CreateGoal).Methods(http.MethodPost)
	r.HandleFunc("/goals/progress", h.UpdateGoalProgress).Methods(http.MethodPost)
	r.HandleFunc("/goals/projection", h.GoalProjection).Methods(http.MethodPost)

	r.HandleFunc("/challenges", h.Challenges).Methods(http.MethodGet)
	r.HandleFunc("/key-rate", h.KeyRate).Methods(http.MethodGet)

	return r
}
