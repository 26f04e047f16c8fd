package service

import (
	"context"
	"fmt"
	"time"

	"txdash/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeedFetcher loads the full seed dataset from its source.
type SeedFetcher interface {
	Fetch(ctx context.Context) ([]*models.Transaction, error)
}

// SeedNotifier is told about every completed reseed.
type SeedNotifier interface {
	NotifySeeded(ctx context.Context, result SeedResult) error
}

type SeedResult struct {
	RunID    uuid.UUID
	Count    int
	SeededAt time.Time
}

type SeedService struct {
	fetcher  SeedFetcher
	store    TransactionStore
	notifier SeedNotifier
	logger   *zap.Logger
}

// NewSeedService wires the loader. notifier may be nil.
func NewSeedService(fetcher SeedFetcher, store TransactionStore, notifier SeedNotifier, logger *zap.Logger) *SeedService {
	return &SeedService{
		fetcher:  fetcher,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Seed replaces the store's contents with a freshly fetched dataset.
// Nothing is deleted when the fetch fails.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	runID := uuid.New()
	log := s.logger.With(zap.String("run_id", runID.String()))

	started := time.Now()
	transactions, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seed data: %w", err)
	}
	log.Info("Seed data fetched", zap.Int("count", len(transactions)), zap.Duration("took", time.Since(started)))

	if err := s.store.ReplaceAll(ctx, transactions); err != nil {
		return nil, fmt.Errorf("failed to replace transactions: %w", err)
	}

	result := &SeedResult{
		RunID:    runID,
		Count:    len(transactions),
		SeededAt: time.Now().UTC(),
	}
	log.Info("Transactions reseeded", zap.Int("count", result.Count))

	if s.notifier != nil {
		if err := s.notifier.NotifySeeded(ctx, *result); err != nil {
			log.Warn("Failed to publish seed notification", zap.Error(err))
		}
	}

	return result, nil
}
