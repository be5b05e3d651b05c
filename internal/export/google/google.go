// Package google exports monthly reports to a Google Sheets
// spreadsheet. Authentication uses an OAuth client plus a previously
// issued token (see cmd/oauth-init).
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	goauth "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/charmin006/fintrack/internal/config"
	"github.com/charmin006/fintrack/internal/core"
)

// Exporter appends one row per report to the configured sheet.
type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Enabled reports whether the configuration carries enough to build an
// exporter.
func Enabled(cfg *config.Config) bool {
	return strings.TrimSpace(cfg.GoogleSpreadsheetID) != ""
}

// NewFromConfig builds a Sheets exporter from the OAuth client and
// token in the configuration.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Exporter, error) {
	if !Enabled(cfg) {
		return nil, errors.New("missing spreadsheet id")
	}

	clientJSON, err := readCredential(cfg.GoogleOAuthClientJSON, cfg.GoogleOAuthClientFile)
	if err != nil {
		return nil, fmt.Errorf("oauth client: %w", err)
	}
	tokenJSON, err := readCredential(cfg.GoogleOAuthTokenJSON, cfg.GoogleOAuthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}

	oauthCfg, err := goauth.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	httpClient := oauthCfg.Client(ctx, &token)
	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Exporter{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

// ExportReport appends the report summary followed by one row per
// category to the sheet.
func (e *Exporter) ExportReport(ctx context.Context, report core.MonthlyReport) error {
	if e.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rows := buildRows(report)
	rng := fmt.Sprintf("%s!A:F", e.sheetName)
	vr := &gsheet.ValueRange{Values: rows}

	_, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", e.sheetName, err)
	}
	return nil
}

// buildRows flattens a report into sheet rows. The first row is the
// month summary; category rows follow with an empty month column.
func buildRows(report core.MonthlyReport) [][]any {
	rows := [][]any{{
		report.Month,
		report.TotalIncome,
		report.TotalExpense,
		report.Savings,
		report.TopCategory,
		report.GeneratedAt.Format("2006-01-02 15:04"),
	}}
	for _, row := range report.ByCategory {
		rows = append(rows, []any{
			"", row.Category, row.Amount, fmt.Sprintf("%.1f%%", row.Percent), "", "",
		})
	}
	return rows
}

func readCredential(inline, file string) ([]byte, error) {
	switch {
	case strings.TrimSpace(inline) != "":
		return []byte(inline), nil
	case strings.TrimSpace(file) != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		return b, nil
	default:
		return nil, errors.New("no credential provided")
	}
}
