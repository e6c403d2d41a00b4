// Package main is the entry point for the ledger API.
// It loads configuration, wires the ledger, history and risk services with
// their optional Postgres, Redis and NATS backends, and serves HTTP.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledgerguard/internal/config"
	"ledgerguard/internal/handlers"
	"ledgerguard/internal/logging"
	"ledgerguard/internal/metrics"
	"ledgerguard/internal/repositories"
	"ledgerguard/internal/routes"
	"ledgerguard/internal/services/alerts"
	"ledgerguard/internal/services/auth"
	"ledgerguard/internal/services/banking"
	"ledgerguard/internal/services/history"
	"ledgerguard/internal/services/ledger"
	"ledgerguard/internal/services/risk"
)

var version = "dev"

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	stats := metrics.NewCounterCollector()
	checks := map[string]handlers.Checker{}
	var closers []func() error

	var audit handlers.AuditReader
	historyOpts := []history.Option{history.WithLogger(logger)}
	if cfg.Database.Enabled {
		db, err := repositories.OpenDB(cfg.Database, logger)
		if err != nil {
			log.Fatalf("Failed to open audit database: %v", err)
		}
		auditRepo := repositories.NewAuditRepository(db)
		audit = auditRepo
		historyOpts = append(historyOpts, history.WithSink(auditRepo))
		checks["database"] = func(ctx context.Context) error { return repositories.PingDB(ctx, db) }
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, sqlDB.Close)
		}
		logger.Info("audit mirror enabled", "host", cfg.Database.Host, "database", cfg.Database.Name)
	}

	var amounts risk.AmountHistory
	switch cfg.Risk.HistoryBackend {
	case "redis":
		client := repositories.NewRedisClient(cfg.Redis)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := repositories.PingRedis(ctx, client)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		amounts = risk.NewRedisAmountHistory(client, cfg.Redis.KeyPrefix, cfg.Risk.HistoryRetention)
		checks["redis"] = func(ctx context.Context) error { return repositories.PingRedis(ctx, client) }
		closers = append(closers, client.Close)
	default:
		amounts = risk.NewMemoryAmountHistory(cfg.Risk.HistoryRetention)
	}

	escalators := alerts.MultiEscalator{alerts.NewLogEscalator(logger)}
	if cfg.NATS.URL != "" {
		nc, err := alerts.Connect(cfg.NATS.URL)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		escalators = append(escalators, alerts.NewNATSEscalator(nc, cfg.NATS.Subject))
		closers = append(closers, func() error { return nc.Drain() })
		logger.Info("fraud alerts published to NATS", "subject", cfg.NATS.Subject)
	}

	transferLog := history.NewLog(historyOpts...)
	svc := banking.NewService(ledger.NewStore(stats), transferLog, amounts, banking.Config{
		Risk:    risk.FromSettings(cfg.Risk),
		Logger:  logger,
		Metrics: stats,
		Alerts:  alerts.NewService(escalators, logger),
	})

	if cfg.Auth.OperatorKeyHash == "" {
		logger.Warn("OPERATOR_KEY_HASH is not set, operator login is disabled")
	}
	authSvc := auth.NewService(auth.Config{
		JWTSecret:       cfg.Auth.JWTSecret,
		OperatorKeyHash: cfg.Auth.OperatorKeyHash,
		OperatorRole:    cfg.Auth.OperatorRole,
		TokenTTL:        cfg.Auth.TokenTTL,
		Logger:          logger,
	})

	app := routes.NewApp(cfg.Server, routes.Dependencies{
		Banking:   svc,
		Auth:      authSvc,
		History:   transferLog,
		Stats:     stats,
		Checks:    checks,
		Audit:     audit,
		Logger:    logger,
		AccessLog: os.Stdout,
		Version:   version,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Server.Port, "version", version)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Error("server stopped", "error", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Warn("close backend", "error", err)
		}
	}
}
