package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"txdash/internal/api"
	"txdash/internal/api/handlers"
	"txdash/internal/events"
	"txdash/internal/repository"
	"txdash/internal/seed"
	"txdash/internal/service"
	"txdash/pkg/auth"
	"txdash/pkg/config"
	"txdash/pkg/logger"
	"txdash/pkg/postgres"

	"go.uber.org/zap"
)

// @title Transactions Dashboard API
// @version 1.0
// @description Seeds product transactions and serves search, monthly statistics and chart data.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and an admin JWT.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting txdash service")

	ctx := context.Background()

	if cfg.Database.RunMigrations {
		if err := repository.RunMigrations(&cfg.Database, logger.Named("migrate")); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	txRepo := repository.NewTransactionRepository(db, logger.Named("repository"))

	var notifier service.SeedNotifier
	if cfg.AMQP.URL != "" {
		publisher, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.RoutingKey, logger.Named("events"))
		if err != nil {
			appLogger.Fatal("Failed to connect to AMQP broker", zap.Error(err))
		}
		defer publisher.Close()
		notifier = publisher
	}

	fetcher := seed.NewHTTPFetcher(cfg.Seed.URL, cfg.Seed.Timeout, logger.Named("seed"))

	txService := service.NewTransactionService(txRepo, logger.Named("transactions"))
	seedService := service.NewSeedService(fetcher, txRepo, notifier, logger.Named("seed"))

	txHandler := handlers.NewTransactionHandler(txService, seedService, appLogger)
	healthHandler := handlers.NewHealthHandler(txRepo, appLogger)

	routerCfg := api.RouterConfig{
		AccessLog:    true,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if cfg.Auth.AdminSecret != "" {
		routerCfg.JWTManager = auth.NewJWTManager(cfg.Auth.AdminSecret, cfg.Auth.TokenTTL)
	}

	app := api.SetupRouter(txHandler, healthHandler, routerCfg, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
