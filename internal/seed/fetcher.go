// Package seed downloads the transaction dataset used to (re)initialize the store.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"txdash/internal/models"

	"go.uber.org/zap"
)

var ErrSeedSource = errors.New("seed source error")

// maxErrorBody bounds how much of a failed response is quoted in the error.
const maxErrorBody = 512

type HTTPFetcher struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTPFetcher(url string, timeout time.Duration, logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch GETs the dataset once. There is no retry.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]*models.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	f.logger.Debug("Fetching seed data", zap.String("url", f.url))

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSeedSource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrSeedSource, resp.StatusCode, body)
	}

	var transactions []*models.Transaction
	if err := json.NewDecoder(resp.Body).Decode(&transactions); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrSeedSource, err)
	}
	for i, tx := range transactions {
		if tx == nil {
			return nil, fmt.Errorf("%w: element %d is null", ErrSeedSource, i)
		}
	}

	return transactions, nil
}
