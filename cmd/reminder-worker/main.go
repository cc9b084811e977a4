package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"autocare/internal/config"
	"autocare/internal/log"
	"autocare/internal/notify"
	"autocare/internal/records"
	"autocare/internal/store"
	"autocare/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentWorker})
	log.SetDefault(logger)

	logger.Info("Starting reminder-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	kv, err := store.Open(store.Config{
		Backend:      store.Backend(cfg.StoreBackend),
		DataDir:      cfg.DataDir,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldError, err)
		os.Exit(1)
	}
	defer kv.Close()

	repo := records.New(kv, logger)

	var notifier notify.Notifier = notify.NullNotifier{}
	if cfg.AMQPURL != "" {
		amqpNotifier, err := notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP notifier", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpNotifier.Close()
		notifier = amqpNotifier
	} else {
		logger.Warn("AMQP disabled, scan will mark nothing as scheduled")
	}

	scanner := worker.NewScanner(repo, notifier, cfg.ScanInterval, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Reminder scan configured",
		"interval", cfg.ScanInterval,
		"store_backend", cfg.StoreBackend)

	if err := scanner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Scanner stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Reminder-worker shutdown complete")
}
