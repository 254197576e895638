package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ticketar/ticketar/app/repository"
	"github.com/ticketar/ticketar/internal/pkg/statistics"
)

// HandleDashboardStats returns occupancy and revenue aggregates.
func HandleDashboardStats(c *fiber.Ctx) error {
	stats, err := statistics.GetDashboardStats()
	if err != nil {
		return respondInternalError(c, "Failed to compute dashboard stats")
	}
	return c.JSON(stats)
}

// HandleDashboardRecent returns the latest tickets for the activity feed.
func HandleDashboardRecent(c *fiber.Ctx) error {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	tickets, err := repository.GetGlobalFactory().GetTicketRepository().Recent(limit)
	if err != nil {
		return respondInternalError(c, "Failed to load recent tickets")
	}
	return c.JSON(tickets)
}
