package http

import (
	"net/http"
	"time"

	"github.com/charmin006/fintrack/internal/analytics"
	"github.com/charmin006/fintrack/internal/core"
)

// dashboardResponse is the cached month overview.
type dashboardResponse struct {
	Month        string                `json:"month"`
	TotalIncome  float64               `json:"totalIncome"`
	TotalExpense float64               `json:"totalExpense"`
	Net          float64               `json:"net"`
	TodayExpense float64               `json:"todayExpense"`
	TopCategory  string                `json:"topCategory"`
	ByCategory   []core.CategoryAmount `json:"byCategory"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	monthKey, err := parseMonthKey(r.URL.Query(), now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if cached, ok := s.dashboardCache.Get(monthKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	txs, err := s.svc.Transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	totals := analytics.MonthlyTotals(txs, monthKey)
	resp := dashboardResponse{
		Month:        monthKey,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		Net:          totals.Net(),
		TodayExpense: analytics.DailyTotals(txs, core.DateOf(now)).Expense,
		TopCategory:  analytics.TopCategory(txs, monthKey),
		ByCategory:   emptyList(analytics.CategoryBreakdown(txs, monthKey)),
	}
	s.dashboardCache.Set(monthKey, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	txs, err := s.svc.Transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(analytics.BuildInsights(txs)))
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	monthKey, err := parseMonthKey(r.URL.Query(), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	txs, err := s.svc.Transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(analytics.CategoryBreakdown(txs, monthKey)))
}

func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	query := r.URL.Query()

	end, err := parseDateParam(query, "end", now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	days, err := parseCountParam(query, "days", 30, 365)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	txs, err := s.svc.Transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(analytics.SpendingTrend(txs, end, days)))
}

func (s *Server) handlePieChart(w http.ResponseWriter, r *http.Request) {
	monthKey, err := parseMonthKey(r.URL.Query(), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	txs, err := s.svc.Transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(analytics.CategoryPie(txs, monthKey)))
}

func (s *Server) handleMonthlyChart(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	query := r.URL.Query()

	end, err := parseDateParam(query, "end", now)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	months, err := parseCountParam(query, "months", 6, 36)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	txs, err := s.svc.Transactions.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, emptyList(analytics.MonthlyBars(txs, end, months)))
}
