// handlers/progression_routes.go
package handlers

import (
	"errors"
	"strconv"

	"moodbrew-order-system/middleware"
	"moodbrew-order-system/models"
	"moodbrew-order-system/services"
	"moodbrew-order-system/store"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressionRoutes(app *fiber.App, st store.Store, leaderboard *services.LeaderboardService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/progress", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		stats, err := st.GetUserStats(c.Context(), userID)
		if errors.Is(err, store.ErrStatsNotFound) {
			// No orders yet: report the zero baseline instead of a 404.
			stats = &models.UserStats{UserID: userID, Level: 1}
		} else if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error", "cause": err.Error()})
		}

		nextLevelXP := int64(stats.Level) * services.LevelXPStep
		return c.JSON(fiber.Map{
			"stats":         stats,
			"next_level_xp": nextLevelXP,
			"xp_to_next":    nextLevelXP - stats.XP,
		})
	})

	secured.Get("/user/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		stats, err := st.GetUserStats(c.Context(), userID)
		if err != nil && !errors.Is(err, store.ErrStatsNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error", "cause": err.Error()})
		}

		unlocked := make([]models.AchievementDef, 0)
		locked := make([]models.AchievementDef, 0)
		for _, def := range models.AchievementCatalog {
			if stats != nil && stats.HasAchievement(def.Code) {
				unlocked = append(unlocked, def)
			} else {
				locked = append(locked, def)
			}
		}
		return c.JSON(fiber.Map{"unlocked": unlocked, "locked": locked})
	})

	secured.Get("/leaderboard", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		limit := services.DefaultLeaderboardSize
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		board, err := leaderboard.View(c.Context(), userID, limit)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to build leaderboard", "cause": err.Error()})
		}
		return c.JSON(board)
	})
}
