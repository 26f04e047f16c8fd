package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"txdash/internal/api/handlers"
	"txdash/internal/dto"
	"txdash/internal/models"
	"txdash/internal/repository/memory"
	"txdash/internal/seed"
	"txdash/internal/service"
	"txdash/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type stubFetcher struct {
	transactions []*models.Transaction
	err          error
}

func (f stubFetcher) Fetch(ctx context.Context) ([]*models.Transaction, error) {
	return f.transactions, f.err
}

type downPinger struct{}

func (downPinger) Ping(ctx context.Context) error { return errors.New("connection refused") }

func fixture() []*models.Transaction {
	jan := func(day int) time.Time { return time.Date(2023, time.January, day, 8, 30, 0, 0, time.UTC) }
	var txs []*models.Transaction
	for i, p := range []struct {
		price    string
		category string
		sold     bool
	}{
		{"50", "bags", true},
		{"150", "clothing", true},
		{"999", "electronics", true},
		{"10", "clothing", false},
	} {
		txs = append(txs, &models.Transaction{
			ID:          int64(i + 1),
			Title:       "Item",
			Description: "Fixture item",
			Price:       decimal.RequireFromString(p.price),
			Category:    p.category,
			Sold:        p.sold,
			DateOfSale:  jan(i + 1),
		})
	}
	for id := int64(5); id <= 12; id++ {
		txs = append(txs, &models.Transaction{
			ID:         id,
			Title:      "Filler",
			Price:      decimal.NewFromInt(5),
			Category:   "misc",
			DateOfSale: time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return txs
}

type testApp struct {
	app   *fiber.App
	store *memory.TransactionStore
}

func newTestApp(t *testing.T, fetcher service.SeedFetcher, cfg RouterConfig) *testApp {
	t.Helper()
	logger := zap.NewNop()

	store := memory.NewTransactionStore()
	if err := store.ReplaceAll(context.Background(), fixture()); err != nil {
		t.Fatalf("ReplaceAll() error = %v", err)
	}

	txService := service.NewTransactionService(store, logger)
	seedService := service.NewSeedService(fetcher, store, nil, logger)
	app := SetupRouter(
		handlers.NewTransactionHandler(txService, seedService, logger),
		handlers.NewHealthHandler(store, logger),
		cfg,
		logger,
	)

	return &testApp{app: app, store: store}
}

func (a *testApp) get(t *testing.T, path string, header http.Header, out any) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: decode body: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestStatisticsEndpoint(t *testing.T) {
	a := newTestApp(t, stubFetcher{}, RouterConfig{})

	var stats dto.StatisticsResponse
	if code := a.get(t, "/api/statistics?month=2023-01", nil, &stats); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if !stats.TotalSales.Equal(decimal.NewFromInt(1209)) || stats.SoldItemsCount != 3 || stats.UnsoldItemsCount != 1 {
		t.Errorf("statistics = %+v, want {1209 3 1}", stats)
	}
}

func TestStatisticsRendersPriceAsNumber(t *testing.T) {
	a := newTestApp(t, stubFetcher{}, RouterConfig{})

	var raw map[string]any
	a.get(t, "/api/statistics?month=2023-01", nil, &raw)
	if _, ok := raw["totalSales"].(float64); !ok {
		t.Errorf("totalSales = %#v, want a JSON number", raw["totalSales"])
	}
}

func TestChartEndpoints(t *testing.T) {
	a := newTestApp(t, stubFetcher{}, RouterConfig{})

	var bars []dto.BarChartEntry
	if code := a.get(t, "/api/bar-chart?month=2023-01", nil, &bars); code != http.StatusOK {
		t.Fatalf("bar-chart status = %d", code)
	}
	if len(bars) != 10 || bars[0].Range != "0-100" || bars[0].Count != 2 || bars[9].Count != 1 {
		t.Errorf("bar-chart = %+v", bars)
	}

	var pie []map[string]any
	if code := a.get(t, "/api/pie-chart?month=2023-01", nil, &pie); code != http.StatusOK {
		t.Fatalf("pie-chart status = %d", code)
	}
	if len(pie) != 3 || pie[1]["_id"] != "clothing" || pie[1]["count"] != float64(2) {
		t.Errorf("pie-chart = %+v", pie)
	}

	var combined map[string]json.RawMessage
	if code := a.get(t, "/api/combined?month=2023-01", nil, &combined); code != http.StatusOK {
		t.Fatalf("combined status = %d", code)
	}
	for _, key := range []string{"statistics", "barChart", "pieChart"} {
		if _, ok := combined[key]; !ok {
			t.Errorf("combined missing %q", key)
		}
	}
}

func TestBadMonthIsServerError(t *testing.T) {
	a := newTestApp(t, stubFetcher{}, RouterConfig{})

	tests := []struct {
		path    string
		message string
	}{
		{"/api/statistics?month=nope", "Error fetching statistics"},
		{"/api/bar-chart", "Error fetching bar chart data"},
		{"/api/pie-chart?month=2023-99", "Error fetching pie chart data"},
		{"/api/combined?month=01-2023", "Error fetching combined data"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var body dto.ErrorResponse
			if code := a.get(t, tt.path, nil, &body); code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want 500", code)
			}
			if body.Message != tt.message || body.Error == "" {
				t.Errorf("body = %+v, want message %q and an error", body, tt.message)
			}
		})
	}
}

func TestTransactionsEndpointPaginates(t *testing.T) {
	a := newTestApp(t, stubFetcher{}, RouterConfig{})

	var page []models.Transaction
	if code := a.get(t, "/api/transactions?page=2&perPage=5", nil, &page); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(page) != 5 || page[0].ID != 6 || page[4].ID != 10 {
		t.Errorf("page = %+v, want ids 6..10", page)
	}

	var defaults []models.Transaction
	a.get(t, "/api/transactions", nil, &defaults)
	if len(defaults) != service.DefaultPerPage {
		t.Errorf("default page size = %d, want %d", len(defaults), service.DefaultPerPage)
	}

	var filtered []models.Transaction
	a.get(t, "/api/transactions?search=filler", nil, &filtered)
	if len(filtered) != 8 {
		t.Errorf("search=filler returned %d rows, want 8", len(filtered))
	}
}

func TestInitReseeds(t *testing.T) {
	fresh := []*models.Transaction{
		{ID: 100, Title: "Fresh", Price: decimal.NewFromInt(1), DateOfSale: time.Now()},
		{ID: 101, Title: "Fresher", Price: decimal.NewFromInt(2), DateOfSale: time.Now()},
	}
	a := newTestApp(t, stubFetcher{transactions: fresh}, RouterConfig{})

	var msg dto.MessageResponse
	if code := a.get(t, "/api/init", nil, &msg); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if msg.Message != "Database initialized with seed data" {
		t.Errorf("message = %q", msg.Message)
	}
	if a.store.Len() != len(fresh) {
		t.Errorf("store has %d records, want %d", a.store.Len(), len(fresh))
	}
}

func TestInitFetchFailure(t *testing.T) {
	a := newTestApp(t, stubFetcher{err: errors.New("status 503")}, RouterConfig{})

	var body dto.ErrorResponse
	if code := a.get(t, "/api/init", nil, &body); code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body.Message != "Error initializing database" {
		t.Errorf("message = %q", body.Message)
	}
	if a.store.Len() != len(fixture()) {
		t.Errorf("failed init must leave the store untouched")
	}
}

func TestInitRejectsNullSeedElement(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"ok","price":1,"dateOfSale":"2022-01-01T00:00:00Z"}, null]`))
	}))
	defer source.Close()

	a := newTestApp(t, seed.NewHTTPFetcher(source.URL, time.Second, zap.NewNop()), RouterConfig{})

	var body dto.ErrorResponse
	if code := a.get(t, "/api/init", nil, &body); code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body.Message != "Error initializing database" {
		t.Errorf("message = %q, want the init failure message", body.Message)
	}
	if a.store.Len() != len(fixture()) {
		t.Errorf("store has %d records, want the original %d", a.store.Len(), len(fixture()))
	}
}

func TestInitRequiresAdminTokenWhenConfigured(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	a := newTestApp(t, stubFetcher{}, RouterConfig{JWTManager: jwtManager})

	if code := a.get(t, "/api/init", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", code)
	}

	viewer, _ := jwtManager.GenerateToken("someone", "viewer")
	if code := a.get(t, "/api/init", http.Header{"Authorization": {"Bearer " + viewer}}, nil); code != http.StatusUnauthorized {
		t.Errorf("viewer token: status = %d, want 401", code)
	}

	admin, _ := jwtManager.GenerateToken("ops", auth.RoleAdmin)
	if code := a.get(t, "/api/init", http.Header{"Authorization": {"Bearer " + admin}}, nil); code != http.StatusOK {
		t.Errorf("admin token: status = %d, want 200", code)
	}

	// read endpoints stay public
	if code := a.get(t, "/api/statistics?month=2023-01", nil, nil); code != http.StatusOK {
		t.Errorf("statistics: status = %d, want 200", code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	a := newTestApp(t, stubFetcher{}, RouterConfig{})

	for _, path := range []string{"/healthz", "/readyz"} {
		if code := a.get(t, path, nil, nil); code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, code)
		}
	}

	logger := zap.NewNop()
	store := memory.NewTransactionStore()
	app := SetupRouter(
		handlers.NewTransactionHandler(service.NewTransactionService(store, logger), service.NewSeedService(stubFetcher{}, store, nil, logger), logger),
		handlers.NewHealthHandler(downPinger{}, logger),
		RouterConfig{},
		logger,
	)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/readyz", nil), -1)
	if err != nil {
		t.Fatalf("GET /readyz: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("/readyz with store down = %d, want 503", resp.StatusCode)
	}
}
