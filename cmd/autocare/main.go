package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"autocare/internal/ads"
	"autocare/internal/config"
	apphttp "autocare/internal/http"
	"autocare/internal/log"
	"autocare/internal/media"
	"autocare/internal/notify"
	"autocare/internal/records"
	"autocare/internal/services"
	"autocare/internal/store"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentApp})
	log.SetDefault(logger)

	logger.Info("Starting autocare server")

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
			logger.Warn("Failed to initialize AMQP notifier, notifications disabled", log.FieldError, err)
		} else {
			defer amqpNotifier.Close()
			notifier = amqpNotifier
			logger.Info("AMQP notifier initialized",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	} else {
		logger.Info("AMQP disabled, notifications will not be delivered")
	}

	var adsProvider ads.Provider = ads.NullProvider{}
	if cfg.AdsEnabled {
		gated := ads.NewGatedProvider(ads.Config{
			BannerID:       cfg.AdsBannerID,
			InterstitialID: cfg.AdsInterstitialID,
			RewardedID:     cfg.AdsRewardedID,
			TestMode:       cfg.AdsTestMode,
		}, kv, logger)
		if err := gated.Initialize(context.Background()); err != nil {
			logger.Warn("Ads provider initialization failed", log.FieldError, err)
		} else {
			adsProvider = gated
		}
	}

	mediaStore, err := openMedia(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize media store", log.FieldError, err)
		os.Exit(1)
	}

	flow := services.NewMaintenanceFlow(repo, notifier, logger)
	dash := services.NewDashboard(repo, logger)

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Repo:     repo,
		Flow:     flow,
		Dash:     dash,
		Notifier: notifier,
		Ads:      adsProvider,
		Media:    mediaStore,
		Logger:   logger,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Server listening",
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"media_backend", cfg.MediaBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}

func openMedia(cfg *config.Config, logger *log.Logger) (media.Store, error) {
	if cfg.MediaBackend == "minio" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return media.NewMinioMedia(ctx, media.MinioConfig{
			Endpoint:        cfg.MinioEndpoint,
			AccessKeyID:     cfg.MinioAccessKey,
			SecretAccessKey: cfg.MinioSecretKey,
			UseSSL:          cfg.MinioUseSSL,
			Bucket:          cfg.MinioBucket,
			Region:          cfg.MinioRegion,
		}, logger)
	}
	return media.NewFileMedia(cfg.MediaDir)
}
