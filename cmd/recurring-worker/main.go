package main

import (
	"time"

	"github.com/charmin006/fintrack/internal/amqp"
	"github.com/charmin006/fintrack/internal/cli"
	applog "github.com/charmin006/fintrack/internal/log"
	"github.com/charmin006/fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentRecurring)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting recurring-worker")

	ctx, stop := cli.NotifyShutdown()
	defer stop()

	store := cli.OpenStore(ctx, cfg, logger)
	defer store.Close()

	// AMQP is optional here: charges created without it are picked up
	// by the classify worker's catch-up pass.
	var publisher services.ClassifyPublisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, classify messages disabled", applog.FieldError, err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	txService := services.NewTransactionService(store, publisher)
	processor := services.NewRecurringProcessor(store, txService)

	logger.Info("Recurring processor configured",
		"interval", cfg.RecurringInterval,
		applog.FieldBackend, cfg.DataBackend)

	runPass := func(now time.Time) {
		count, err := processor.ProcessDue(ctx, now)
		if err != nil {
			logger.Error("Recurring processing failed", applog.FieldError, err)
			return
		}
		if count > 0 {
			logger.Info("Recurring processing complete", "charges_created", count)
		}
	}

	// One pass at startup, then on the configured interval.
	runPass(time.Now())

	ticker := time.NewTicker(cfg.RecurringInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Recurring worker stopped gracefully")
			return
		case now := <-ticker.C:
			runPass(now)
		}
	}
}
