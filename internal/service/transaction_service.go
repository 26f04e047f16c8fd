package service

import (
	"context"
	"fmt"
	"math"

	"txdash/internal/dto"
	"txdash/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// TransactionStore is the record store the query and seed services run against.
type TransactionStore interface {
	ReplaceAll(ctx context.Context, transactions []*models.Transaction) error
	Search(ctx context.Context, filter models.SearchFilter) ([]*models.Transaction, error)
	MonthTotals(ctx context.Context, dateRange models.DateRange) (*models.MonthTotals, error)
	CountInBand(ctx context.Context, dateRange models.DateRange, band models.PriceBand) (int64, error)
	CountByCategory(ctx context.Context, dateRange models.DateRange) ([]models.CategoryCount, error)
	Ping(ctx context.Context) error
}

type TransactionService struct {
	store  TransactionStore
	logger *zap.Logger
}

func NewTransactionService(store TransactionStore, logger *zap.Logger) *TransactionService {
	return &TransactionService{
		store:  store,
		logger: logger,
	}
}

// List returns one page of transactions whose title or description contains
// search (case-insensitive) or whose price equals the numeric value of search.
func (s *TransactionService) List(ctx context.Context, page, perPage int, search string) ([]*models.Transaction, error) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	filter := models.SearchFilter{
		Term:   search,
		Price:  searchPrice(search),
		Limit:  perPage,
		Offset: pageOffset(page, perPage),
	}

	transactions, err := s.store.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search transactions: %w", err)
	}

	s.logger.Debug("Transactions listed",
		zap.Int("page", page),
		zap.Int("per_page", perPage),
		zap.String("search", search),
		zap.Int("results", len(transactions)),
	)

	return transactions, nil
}

// pageOffset saturates at math.MaxInt instead of overflowing, so absurd page
// numbers read past the end and come back empty.
func pageOffset(page, perPage int) int {
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

func (s *TransactionService) Statistics(ctx context.Context, month string) (*dto.StatisticsResponse, error) {
	dateRange, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	totals, err := s.store.MonthTotals(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate month totals: %w", err)
	}

	return &dto.StatisticsResponse{
		TotalSales:       totals.TotalSales,
		SoldItemsCount:   totals.Sold,
		UnsoldItemsCount: totals.Unsold,
	}, nil
}

// BarChart counts the month's transactions per price band. Bands are counted
// concurrently and always come back in band order, zero counts included.
func (s *TransactionService) BarChart(ctx context.Context, month string) ([]dto.BarChartEntry, error) {
	dateRange, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.BarChartEntry, len(priceBands))

	g, gctx := errgroup.WithContext(ctx)
	for i, band := range priceBands {
		i, band := i, band
		g.Go(func() error {
			count, err := s.store.CountInBand(gctx, dateRange, band)
			if err != nil {
				return fmt.Errorf("failed to count band %s: %w", band.Label, err)
			}
			entries[i] = dto.BarChartEntry{Range: band.Label, Count: count}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *TransactionService) PieChart(ctx context.Context, month string) ([]dto.PieChartEntry, error) {
	dateRange, err := MonthRange(month)
	if err != nil {
		return nil, err
	}

	counts, err := s.store.CountByCategory(ctx, dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	entries := make([]dto.PieChartEntry, len(counts))
	for i, cc := range counts {
		entries[i] = dto.PieChartEntry{Category: cc.Category, Count: cc.Count}
	}

	return entries, nil
}

// Combined runs statistics, bar chart and pie chart side by side. Any failure
// fails the whole view. Siblings keep running when one fails.
func (s *TransactionService) Combined(ctx context.Context, month string) (*dto.CombinedResponse, error) {
	var (
		resp dto.CombinedResponse
		g    errgroup.Group
	)

	g.Go(func() error {
		stats, err := s.Statistics(ctx, month)
		resp.Statistics = stats
		return err
	})
	g.Go(func() error {
		bars, err := s.BarChart(ctx, month)
		resp.BarChart = bars
		return err
	})
	g.Go(func() error {
		pie, err := s.PieChart(ctx, month)
		resp.PieChart = pie
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (s *TransactionService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
