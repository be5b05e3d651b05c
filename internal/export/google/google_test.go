package google

import (
	"context"
	"testing"
	"time"

	"github.com/charmin006/fintrack/internal/config"
	"github.com/charmin006/fintrack/internal/core"
)

func TestEnabled(t *testing.T) {
	if Enabled(&config.Config{}) {
		t.Error("empty config should not enable export")
	}
	if !Enabled(&config.Config{GoogleSpreadsheetID: "sheet-123"}) {
		t.Error("spreadsheet id should enable export")
	}
}

func TestNewFromConfigMissingCredentials(t *testing.T) {
	cfg := &config.Config{GoogleSpreadsheetID: "sheet-123", GoogleSheetName: "Reports"}
	if _, err := NewFromConfig(context.Background(), cfg); err == nil {
		t.Error("missing oauth client should fail")
	}
}

func TestBuildRows(t *testing.T) {
	report := core.MonthlyReport{
		Month:        "2026-08",
		TotalIncome:  50000,
		TotalExpense: 3500,
		Savings:      46500,
		TopCategory:  "Food",
		ByCategory: []core.CategoryAmount{
			{Category: "Food", Amount: 3000, Percent: 85.7},
			{Category: "Transport", Amount: 500, Percent: 14.3},
		},
		GeneratedAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}

	rows := buildRows(report)
	if len(rows) != 3 {
		t.Fatalf("expected summary + 2 category rows, got %d", len(rows))
	}
	if rows[0][0] != "2026-08" || rows[0][4] != "Food" {
		t.Errorf("unexpected summary row: %v", rows[0])
	}
	if rows[1][1] != "Food" || rows[2][1] != "Transport" {
		t.Errorf("category rows out of order: %v", rows[1:])
	}
	if rows[1][3] != "85.7%" {
		t.Errorf("percent formatting: got %v", rows[1][3])
	}
}

func TestExportReportUninitialized(t *testing.T) {
	e := &Exporter{}
	if err := e.ExportReport(context.Background(), core.MonthlyReport{}); err == nil {
		t.Error("uninitialized exporter should fail")
	}
}
