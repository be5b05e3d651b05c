package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmin006/fintrack/internal/analytics"
	"github.com/charmin006/fintrack/internal/core"
	"github.com/charmin006/fintrack/internal/records"
)

// ReportExporter ships a finished report to an external destination.
// The Google Sheets exporter satisfies it.
type ReportExporter interface {
	ExportReport(ctx context.Context, report core.MonthlyReport) error
}

// ReportService assembles monthly reports from the transaction history
// and keeps the latest copy per month in the record store.
type ReportService struct {
	store    *records.Store
	exporter ReportExporter
}

// NewReportService builds a report service. exporter may be nil, in
// which case Export returns an error.
func NewReportService(store *records.Store, exporter ReportExporter) *ReportService {
	return &ReportService{store: store, exporter: exporter}
}

// Generate builds the report for a month (YYYY-MM key) from the current
// transaction history and stores it, replacing any earlier copy for the
// same month.
func (s *ReportService) Generate(ctx context.Context, monthKey string) (core.MonthlyReport, error) {
	if _, err := time.Parse("2006-01", monthKey); err != nil {
		return core.MonthlyReport{}, fmt.Errorf("invalid month key %q", monthKey)
	}

	txs, err := s.store.Transactions.List(ctx)
	if err != nil {
		return core.MonthlyReport{}, err
	}

	monthTxs := make([]core.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Date.MonthKey() == monthKey {
			monthTxs = append(monthTxs, t)
		}
	}

	totals := analytics.MonthlyTotals(txs, monthKey)
	insights := analytics.BuildInsights(monthTxs)
	messages := make([]string, 0, len(insights))
	for _, ins := range insights {
		messages = append(messages, ins.Message)
	}

	report := core.MonthlyReport{
		Month:        monthKey,
		TotalIncome:  totals.Income,
		TotalExpense: totals.Expense,
		Savings:      totals.Net(),
		TopCategory:  analytics.TopCategory(txs, monthKey),
		ByCategory:   analytics.CategoryBreakdown(txs, monthKey),
		Insights:     messages,
		GeneratedAt:  time.Now(),
	}

	err = s.store.Reports.Update(ctx, func(items []core.MonthlyReport) ([]core.MonthlyReport, error) {
		kept := items[:0]
		for _, item := range items {
			if item.Month != monthKey {
				kept = append(kept, item)
			}
		}
		return append(kept, report), nil
	})
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("save report: %w", err)
	}

	slog.InfoContext(ctx, "Monthly report generated",
		"month", monthKey,
		"income", report.TotalIncome,
		"expense", report.TotalExpense)

	return report, nil
}

// List returns every stored report.
func (s *ReportService) List(ctx context.Context) ([]core.MonthlyReport, error) {
	return s.store.Reports.List(ctx)
}

// Export regenerates a month's report and ships it to the configured
// exporter.
func (s *ReportService) Export(ctx context.Context, monthKey string) (core.MonthlyReport, error) {
	if s.exporter == nil {
		return core.MonthlyReport{}, fmt.Errorf("no report exporter configured")
	}
	report, err := s.Generate(ctx, monthKey)
	if err != nil {
		return core.MonthlyReport{}, err
	}
	if err := s.exporter.ExportReport(ctx, report); err != nil {
		return core.MonthlyReport{}, fmt.Errorf("export report: %w", err)
	}
	return report, nil
}
