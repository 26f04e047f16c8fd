package handlers

import (
	"txdash/internal/dto"
	"txdash/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	txService   *service.TransactionService
	seedService *service.SeedService
	logger      *zap.Logger
}

func NewTransactionHandler(txService *service.TransactionService, seedService *service.SeedService, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		txService:   txService,
		seedService: seedService,
		logger:      logger,
	}
}

// InitDatabase godoc
// @Summary Reseed the transaction store
// @Description Fetch the seed dataset and replace every stored transaction with it
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /init [get]
func (h *TransactionHandler) InitDatabase(c *fiber.Ctx) error {
	result, err := h.seedService.Seed(c.UserContext())
	if err != nil {
		return h.fail(c, "Error initializing database", err)
	}

	h.logger.Info("Database initialized",
		zap.String("run_id", result.RunID.String()),
		zap.Int("count", result.Count),
	)

	return c.JSON(dto.MessageResponse{Message: "Database initialized with seed data"})
}

// ListTransactions godoc
// @Summary Search transactions
// @Description Page through transactions whose title or description contains the search term, or whose price equals it
// @Tags transactions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param perPage query int false "Page size" default(10)
// @Param search query string false "Search term"
// @Success 200 {array} models.Transaction
// @Failure 500 {object} dto.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", service.DefaultPage)
	perPage := c.QueryInt("perPage", service.DefaultPerPage)
	search := c.Query("search")

	transactions, err := h.txService.List(c.UserContext(), page, perPage, search)
	if err != nil {
		return h.fail(c, "Error fetching transactions", err)
	}

	return c.JSON(transactions)
}

// GetStatistics godoc
// @Summary Monthly sales statistics
// @Description Total sale amount plus sold and unsold item counts for a calendar month
// @Tags charts
// @Produce json
// @Param month query string true "Month as YYYY-MM" example(2022-03)
// @Success 200 {object} dto.StatisticsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /statistics [get]
func (h *TransactionHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.txService.Statistics(c.UserContext(), c.Query("month"))
	if err != nil {
		return h.fail(c, "Error fetching statistics", err)
	}

	return c.JSON(stats)
}

// GetBarChart godoc
// @Summary Price range histogram
// @Description Number of items per price band for a calendar month, always ten bands
// @Tags charts
// @Produce json
// @Param month query string true "Month as YYYY-MM" example(2022-03)
// @Success 200 {array} dto.BarChartEntry
// @Failure 500 {object} dto.ErrorResponse
// @Router /bar-chart [get]
func (h *TransactionHandler) GetBarChart(c *fiber.Ctx) error {
	bars, err := h.txService.BarChart(c.UserContext(), c.Query("month"))
	if err != nil {
		return h.fail(c, "Error fetching bar chart data", err)
	}

	return c.JSON(bars)
}

// GetPieChart godoc
// @Summary Category counts
// @Description Number of items per category present in a calendar month
// @Tags charts
// @Produce json
// @Param month query string true "Month as YYYY-MM" example(2022-03)
// @Success 200 {array} dto.PieChartEntry
// @Failure 500 {object} dto.ErrorResponse
// @Router /pie-chart [get]
func (h *TransactionHandler) GetPieChart(c *fiber.Ctx) error {
	pie, err := h.txService.PieChart(c.UserContext(), c.Query("month"))
	if err != nil {
		return h.fail(c, "Error fetching pie chart data", err)
	}

	return c.JSON(pie)
}

// GetCombined godoc
// @Summary Combined dashboard data
// @Description Statistics, bar chart and pie chart for a calendar month in one response
// @Tags charts
// @Produce json
// @Param month query string true "Month as YYYY-MM" example(2022-03)
// @Success 200 {object} dto.CombinedResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /combined [get]
func (h *TransactionHandler) GetCombined(c *fiber.Ctx) error {
	combined, err := h.txService.Combined(c.UserContext(), c.Query("month"))
	if err != nil {
		return h.fail(c, "Error fetching combined data", err)
	}

	return c.JSON(combined)
}

// fail logs err and answers with the generic 500 body every endpoint shares.
func (h *TransactionHandler) fail(c *fiber.Ctx, message string, err error) error {
	h.logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Path()),
		zap.String("request_id", requestID(c)),
	)

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Message: message,
		Error:   err.Error(),
	})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
