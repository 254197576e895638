package router

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/internal/pkg/cache"
	"github.com/ticketar/ticketar/internal/pkg/database"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "ticketar",
			"status":  "ok",
		})
	})

	// Liveness for the reverse proxy: database and redis must both answer.
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		status := fiber.Map{"database": "up", "cache": "up"}
		healthy := true

		if sqlDB, err := database.GetDB().DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "down"
			healthy = false
		}
		if err := cache.GetClient().Ping(ctx).Err(); err != nil {
			status["cache"] = "down"
			healthy = false
		}

		if !healthy {
			return c.Status(fiber.StatusServiceUnavailable).JSON(status)
		}
		return c.JSON(status)
	})
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
