package main

import (
	"context"
	"log"

	"txdash/internal/repository"
	"txdash/internal/seed"
	"txdash/internal/service"
	"txdash/pkg/config"
	"txdash/pkg/logger"
	"txdash/pkg/postgres"

	"go.uber.org/zap"
)

// seed reloads the transactions table from SEED_URL without starting the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	if cfg.Database.RunMigrations {
		if err := repository.RunMigrations(&cfg.Database, appLogger); err != nil {
			appLogger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Seed.Timeout)
	defer cancel()

	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	txRepo := repository.NewTransactionRepository(db, appLogger)
	fetcher := seed.NewHTTPFetcher(cfg.Seed.URL, cfg.Seed.Timeout, appLogger)
	seedService := service.NewSeedService(fetcher, txRepo, nil, appLogger)

	appLogger.Info("Starting database seeding...", zap.String("source", cfg.Seed.URL))

	result, err := seedService.Seed(ctx)
	if err != nil {
		appLogger.Fatal("Failed to seed transactions", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!",
		zap.String("run_id", result.RunID.String()),
		zap.Int("count", result.Count),
	)
}
