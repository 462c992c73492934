package stats

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/studyshelf/catalog-api/services"
	"github.com/studyshelf/catalog-api/utils/response"
)

// StatsHandler handles statistics and ranking requests
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStatistics handles GET /api/v1/stats
// Returns the last persisted aggregate snapshot.
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.statsService.GetStatistics(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, stats)
}

// Recompute handles POST /api/v1/stats/recompute
// Forces an aggregation pass outside the cron schedule.
func (h *StatsHandler) Recompute(c *fiber.Ctx) error {
	stats, err := h.statsService.Recompute(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Statistics recomputed", stats)
}

// PopularFiles handles GET /api/v1/stats/popular?limit=n
func (h *StatsHandler) PopularFiles(c *fiber.Ctx) error {
	limit := parseLimit(c, services.DefaultPopularLimit)

	files, err := h.statsService.PopularFiles(c.Context(), limit)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, files)
}

// RecentFiles handles GET /api/v1/stats/recent/files?limit=n
func (h *StatsHandler) RecentFiles(c *fiber.Ctx) error {
	limit := parseLimit(c, services.DefaultRecentLimit)

	files, err := h.statsService.RecentFiles(c.Context(), limit)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, files)
}

// RecentUsers handles GET /api/v1/stats/recent/users?limit=n
func (h *StatsHandler) RecentUsers(c *fiber.Ctx) error {
	limit := parseLimit(c, services.DefaultRecentLimit)

	users, err := h.statsService.RecentUsers(c.Context(), limit)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, users)
}

// GetDashboard handles GET /api/v1/dashboard
func (h *StatsHandler) GetDashboard(c *fiber.Ctx) error {
	data, err := h.statsService.GetDashboardData(c.Context())
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, data)
}

func parseLimit(c *fiber.Ctx, fallback int) int {
	limit, err := strconv.Atoi(c.Query("limit", ""))
	if err != nil {
		return fallback
	}
	return limit
}
