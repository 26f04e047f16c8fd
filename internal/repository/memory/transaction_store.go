// Package memory is an in-process transaction store with the same query
// semantics as the PostgreSQL repository. It backs tests and local runs
// without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"txdash/internal/models"
)

// TransactionStore keeps records in insertion order. Ids are not unique.
type TransactionStore struct {
	mu           sync.RWMutex
	transactions []models.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{}
}

func (s *TransactionStore) ReplaceAll(ctx context.Context, transactions []*models.Transaction) error {
	next := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		next = append(next, *tx)
	}

	s.mu.Lock()
	s.transactions = next
	s.mu.Unlock()
	return nil
}

func (s *TransactionStore) Search(ctx context.Context, filter models.SearchFilter) ([]*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	term := strings.ToLower(filter.Term)
	result := []*models.Transaction{}
	skipped := 0
	for i := range s.transactions {
		tx := s.transactions[i]
		if !strings.Contains(strings.ToLower(tx.Title), term) &&
			!strings.Contains(strings.ToLower(tx.Description), term) &&
			!tx.Price.Equal(filter.Price) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if len(result) >= filter.Limit {
			break
		}
		result = append(result, &tx)
	}
	return result, nil
}

func (s *TransactionStore) MonthTotals(ctx context.Context, dateRange models.DateRange) (*models.MonthTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals models.MonthTotals
	for _, tx := range s.transactions {
		if !dateRange.Contains(tx.DateOfSale) {
			continue
		}
		totals.TotalSales = totals.TotalSales.Add(tx.Price)
		if tx.Sold {
			totals.Sold++
		} else {
			totals.Unsold++
		}
	}
	return &totals, nil
}

func (s *TransactionStore) CountInBand(ctx context.Context, dateRange models.DateRange, band models.PriceBand) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, tx := range s.transactions {
		if dateRange.Contains(tx.DateOfSale) && band.Contains(tx.Price) {
			count++
		}
	}
	return count, nil
}

func (s *TransactionStore) CountByCategory(ctx context.Context, dateRange models.DateRange) ([]models.CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCategory := map[string]int64{}
	for _, tx := range s.transactions {
		if dateRange.Contains(tx.DateOfSale) {
			byCategory[tx.Category]++
		}
	}

	counts := make([]models.CategoryCount, 0, len(byCategory))
	for category, count := range byCategory {
		counts = append(counts, models.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Category < counts[j].Category })
	return counts, nil
}

func (s *TransactionStore) Ping(ctx context.Context) error {
	return nil
}

// Len reports how many transactions are stored.
func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}
