package api

import (
	"errors"
	"time"

	"txdash/docs"
	"txdash/internal/api/handlers"
	"txdash/internal/dto"
	"txdash/pkg/auth"
	"txdash/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RouterConfig struct {
	// JWTManager guards /api/init when set. Nil leaves the route open.
	JWTManager *auth.JWTManager
	// AccessLog enables fiber's request logger.
	AccessLog bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func SetupRouter(
	txHandler *handlers.TransactionHandler,
	healthHandler *handlers.HealthHandler,
	cfg RouterConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			appLogger.Error("Unhandled request error", zap.Error(err), zap.String("path", c.Path()))
			return c.Status(code).JSON(dto.ErrorResponse{
				Message: "Internal server error",
				Error:   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	// Swagger - the docs package registers itself in init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/healthz", healthHandler.Live)
	app.Get("/readyz", healthHandler.Ready)

	api := app.Group("/api")

	if cfg.JWTManager != nil {
		api.Get("/init", middleware.AdminMiddleware(cfg.JWTManager, appLogger), txHandler.InitDatabase)
	} else {
		appLogger.Warn("ADMIN_JWT_SECRET not set, /api/init is unauthenticated")
		api.Get("/init", txHandler.InitDatabase)
	}

	api.Get("/transactions", txHandler.ListTransactions)
	api.Get("/statistics", txHandler.GetStatistics)
	api.Get("/bar-chart", txHandler.GetBarChart)
	api.Get("/pie-chart", txHandler.GetPieChart)
	api.Get("/combined", txHandler.GetCombined)

	return app
}
