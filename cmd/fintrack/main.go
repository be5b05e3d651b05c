package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/charmin006/fintrack/internal/amqp"
	"github.com/charmin006/fintrack/internal/cli"
	"github.com/charmin006/fintrack/internal/export/google"
	"github.com/charmin006/fintrack/internal/extract"
	apphttp "github.com/charmin006/fintrack/internal/http"
	applog "github.com/charmin006/fintrack/internal/log"
	"github.com/charmin006/fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentHTTP)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := cli.NotifyShutdown()
	defer stop()

	store := cli.OpenStore(ctx, cfg, logger)
	defer store.Close()

	// AMQP is optional: without it transactions are classified by the
	// worker's catch-up pass instead of per-write messages.
	var publisher services.ClassifyPublisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, classify messages disabled", applog.FieldError, err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	// Report export to Google Sheets is optional.
	var exporter services.ReportExporter
	if google.Enabled(cfg) {
		sheets, err := google.NewFromConfig(ctx, cfg)
		if err != nil {
			logger.Error("Failed to initialize Sheets exporter", applog.FieldError, err)
			os.Exit(1)
		}
		exporter = sheets
		logger.Info("Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Services{
		Transactions: services.NewTransactionService(store, publisher),
		Classify:     services.NewClassifyService(store),
		Budgets:      services.NewBudgetService(store),
		Goals:        services.NewGoalService(store),
		Reports:      services.NewReportService(store, exporter),
		Catalog:      services.NewCatalogService(store),
		Receipts:     extract.NewMockReceiptExtractor(),
		Payments:     extract.NewMockPaymentSource(),
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting fintrack server",
			"port", cfg.Port,
			applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cli.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
