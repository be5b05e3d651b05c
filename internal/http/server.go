// Package http exposes the JSON API over the finance services.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmin006/fintrack/internal/cache"
	"github.com/charmin006/fintrack/internal/extract"
	"github.com/charmin006/fintrack/internal/middleware/ratelimit"
	"github.com/charmin006/fintrack/internal/middleware/security"
	"github.com/charmin006/fintrack/internal/middleware/trace"
	"github.com/charmin006/fintrack/internal/services"
)

// Services bundles the dependencies the API needs. Receipts and
// Payments may be nil, disabling the import endpoints.
type Services struct {
	Transactions *services.TransactionService
	Classify     *services.ClassifyService
	Budgets      *services.BudgetService
	Goals        *services.GoalService
	Reports      *services.ReportService
	Catalog      *services.CatalogService
	Receipts     extract.ReceiptExtractor
	Payments     extract.PaymentTransactionSource
}

// Server is the API server with its caches and rate limiter.
type Server struct {
	http.Server

	svc Services

	dashboardCache *cache.LRUCache[dashboardResponse]
	cacheManager   *cache.Manager
	rateLimiter    *ratelimit.Limiter
	shutdownOnce   sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run
// server listening on addr.
func NewServer(addr string, svc Services) *Server {
	s := &Server{
		svc:            svc,
		dashboardCache: cache.NewLRUCache[dashboardResponse](100, 5*time.Minute),
		cacheManager:   cache.NewManager(),
		rateLimiter:    ratelimit.NewLimiter(ratelimit.DefaultConfig()),
	}
	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /api/transactions/{id}/classify", s.handleOverrideClassification)
	mux.HandleFunc("GET /api/classifications", s.handleListClassifications)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/insights", s.handleInsights)
	mux.HandleFunc("GET /api/breakdown", s.handleBreakdown)
	mux.HandleFunc("GET /api/charts/trend", s.handleTrendChart)
	mux.HandleFunc("GET /api/charts/pie", s.handlePieChart)
	mux.HandleFunc("GET /api/charts/monthly", s.handleMonthlyChart)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleSetBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/suggestions", s.handleBudgetSuggestions)
	mux.HandleFunc("POST /api/budgets/suggestions/accept", s.handleAcceptSuggestion)
	mux.HandleFunc("GET /api/budgets/forecast", s.handleForecast)

	mux.HandleFunc("GET /api/goals", s.handleListGoals)
	mux.HandleFunc("POST /api/goals", s.handleCreateGoal)
	mux.HandleFunc("DELETE /api/goals/{id}", s.handleDeleteGoal)
	mux.HandleFunc("POST /api/goals/{id}/contribute", s.handleContribute)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/incomes", s.handleListIncomes)
	mux.HandleFunc("POST /api/incomes", s.handleCreateIncome)
	mux.HandleFunc("DELETE /api/incomes/{id}", s.handleDeleteIncome)

	mux.HandleFunc("GET /api/subscriptions", s.handleListSubscriptions)
	mux.HandleFunc("POST /api/subscriptions", s.handleCreateSubscription)
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.handleDeleteSubscription)

	mux.HandleFunc("GET /api/recurring", s.handleListRecurring)
	mux.HandleFunc("POST /api/recurring", s.handleCreateRecurring)
	mux.HandleFunc("DELETE /api/recurring/{id}", s.handleDeleteRecurring)

	mux.HandleFunc("GET /api/profiles", s.handleListProfiles)
	mux.HandleFunc("POST /api/profiles", s.handleCreateProfile)
	mux.HandleFunc("DELETE /api/profiles/{id}", s.handleDeleteProfile)

	mux.HandleFunc("POST /api/import/receipt", s.handleImportReceipt)
	mux.HandleFunc("POST /api/import/payments", s.handleImportPayments)

	mux.HandleFunc("GET /api/reports", s.handleListReports)
	mux.HandleFunc("POST /api/reports/generate", s.handleGenerateReport)
	mux.HandleFunc("POST /api/reports/export", s.handleExportReport)

	resolver := security.NewIPResolver()
	var handler http.Handler = mux
	handler = s.rateLimiter.Middleware(resolver.ClientIP,
		http.MethodPost, http.MethodPut, http.MethodDelete)(handler)
	handler = security.Headers(handler)
	handler = trace.Middleware(resolver.ClientIP)(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Shutdown stops background workers and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// invalidateDashboard drops the cached dashboard for a month after a
// write touching that month.
func (s *Server) invalidateDashboard(monthKey string) {
	s.dashboardCache.Delete(monthKey)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
