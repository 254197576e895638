package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/app/models"
	"github.com/ticketar/ticketar/internal/pkg/token"
	"github.com/ticketar/ticketar/internal/pkg/usercontext"
)

// JWTAuthMiddleware authenticates requests carrying an operator bearer token.
func JWTAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractTokenFromHeader(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing token"})
		}

		claims, err := token.Validate(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid or expired token"})
		}

		userCtx := usercontext.UserContext{
			UserID:     claims.UserID,
			Username:   claims.Name,
			Role:       claims.Role,
			IsLoggedIn: true,
			IsAdmin:    claims.Role == models.ROLE_ADMIN,
		}
		c.Locals(usercontext.KeyUserContext, userCtx)
		c.Locals(usercontext.KeyUserID, claims.UserID)
		c.Locals(usercontext.KeyUsername, claims.Name)
		c.Locals(usercontext.KeyIsAdmin, userCtx.IsAdmin)

		return c.Next()
	}
}

// RequireAdmin rejects non-admin operators. Must run after JWTAuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !usercontext.IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": "Admin role required"})
		}
		return c.Next()
	}
}

func extractTokenFromHeader(c *fiber.Ctx) string {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
