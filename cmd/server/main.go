package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"brand-voice-studio/internal/abtest"
	"brand-voice-studio/internal/api"
	"brand-voice-studio/internal/config"
	"brand-voice-studio/internal/content"
	"brand-voice-studio/internal/db"
	"brand-voice-studio/internal/logging"
	"brand-voice-studio/internal/market"
	"brand-voice-studio/internal/metrics"
)

func main() {
	// .env is read before the level is known
	logger := logging.NewLogger(os.Getenv("LOG_LEVEL"))
	config.LoadEnv(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Warn("Failed to load settings file, using defaults")
		cfg = config.Defaults()
	}
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	// Ensure data directory exists
	if !cfg.IsPostgres() {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabaseURL), 0755); err != nil {
			logger.WithError(err).Fatal("Failed to create data directory")
		}
	}

	// Initialize database
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer database.Close()

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to migrate database")
	}
	logger.WithField("dialect", database.Dialect()).Info("Database migrated successfully")

	collector := metrics.NewCollector()

	generator := content.NewGenerator(
		content.WithLimits(content.Limits{
			Templates: cfg.Memory.Templates,
			Hooks:     cfg.Memory.Hooks,
			Hashtags:  cfg.Memory.Hashtags,
			History:   cfg.Memory.History,
		}),
		content.WithLogger(logger),
	)

	abTests := abtest.NewService(database,
		abtest.WithRecorder(collector),
		abtest.WithLogger(logger),
	)

	marketService := market.NewService(
		market.NewClient(cfg.Market.StatsURL,
			market.WithTimeout(cfg.Market.FetchTimeout),
			market.WithClientLogger(logger),
		),
		market.WithCacheTTL(cfg.Market.CacheTTL),
		market.WithFetchRecorder(collector),
		market.WithLogger(logger),
	)

	// Warm the market cache on a schedule; an empty schedule disables it
	var refresher *market.Refresher
	if cfg.Market.RefreshSchedule != "" {
		refresher, err = market.NewRefresher(marketService, cfg.Market.RefreshSchedule, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to schedule market refresh")
		}
		refresher.Start()
	}

	router := api.NewRouter(api.Dependencies{
		DB:        database,
		Generator: generator,
		ABTests:   abTests,
		Market:    marketService,
		Metrics:   collector,
		Logger:    logger,
		StaticDir: cfg.StaticDir,
	})

	// Setup server
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop scheduled refreshes first and wait for one in flight
		if refresher != nil {
			select {
			case <-refresher.Stop().Done():
			case <-ctx.Done():
			}
		}

		if err := server.Shutdown(ctx); err != nil {
			logger.WithError(err).Fatal("Server forced to shutdown")
		}

		close(done)
	}()

	logger.WithFields(logrus.Fields{
		"port":       cfg.Port,
		"static_dir": cfg.StaticDir,
		"market_url": cfg.Market.StatsURL,
	}).Info("Server starting")

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.WithError(err).Fatal("Server failed to start")
	}

	<-done
	logger.Info("Server stopped gracefully")
}
