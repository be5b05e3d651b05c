package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmin006/fintrack/internal/amqp"
	"github.com/charmin006/fintrack/internal/cli"
	applog "github.com/charmin006/fintrack/internal/log"
	"github.com/charmin006/fintrack/internal/services"
	"github.com/charmin006/fintrack/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting fintrack-worker")

	ctx, stop := cli.NotifyShutdown()
	defer stop()

	store := cli.OpenStore(ctx, cfg, logger)
	defer store.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	classifyWorker := worker.NewClassifyWorker(
		services.NewClassifyService(store),
		cfg.ClassifyBatchSize,
	)

	// Drain anything that was created while the worker was down.
	if done, err := classifyWorker.CatchUp(ctx); err != nil {
		logger.Error("Startup catch-up failed", applog.FieldError, err)
	} else if done > 0 {
		logger.Info("Startup catch-up complete", "classified", done)
	}

	if err := amqpClient.ConsumeClassify(ctx, classifyWorker.HandleClassifyMessage); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", applog.FieldError, err)
			os.Exit(1)
		}
	}
	logger.Info("Worker stopped gracefully")
}
