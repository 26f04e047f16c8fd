package middleware

import (
	"strings"

	"txdash/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminMiddleware admits only requests carrying a valid bearer token with the admin role.
func AdminMiddleware(jwtManager *auth.JWTManager, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get(fiber.HeaderAuthorization)
		if token == "" {
			logger.Warn("Missing authorization token", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization token required",
				"error":   "unauthorized",
			})
		}

		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		if claims.Role != auth.RoleAdmin {
			logger.Warn("Token lacks admin role", zap.String("subject", claims.Subject))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Admin role required",
				"error":   "unauthorized",
			})
		}

		c.Locals("subject", claims.Subject)

		return c.Next()
	}
}
