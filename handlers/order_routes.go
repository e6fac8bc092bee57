// handlers/order_routes.go
package handlers

import (
	"errors"

	"moodbrew-order-system/middleware"
	"moodbrew-order-system/models"
	"moodbrew-order-system/services"
	"moodbrew-order-system/store"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(app *fiber.App, orders *services.OrderService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/orders", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			CafeID *string `json:"cafe_id"`
		}
		// Body is optional; a bare POST submits the cart as-is.
		_ = c.BodyParser(&req)

		order, progression, err := orders.Submit(c.Context(), userID, req.CafeID)
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "cart is empty, nothing to submit",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "order submission failed, please try again",
				"cause": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"order":       order,
			"progression": progression,
		})
	})

	secured.Get("/orders", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		history, err := orders.History(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list orders",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"orders": history, "count": len(history)})
	})

	secured.Get("/orders/:id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		order, err := orders.Get(c.Context(), userID, c.Params("id"))
		if errors.Is(err, store.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error", "cause": err.Error()})
		}
		return c.JSON(order)
	})

	// Fulfillment events come from the cafe side through the gateway;
	// the status machine accepts skipped steps but never backward moves.
	secured.Patch("/orders/:id/status", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Status string `json:"status"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		order, err := orders.UpdateStatus(c.Context(), userID, c.Params("id"), models.OrderStatus(req.Status))
		switch {
		case errors.Is(err, services.ErrUnknownStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown status"})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, store.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "order not found"})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "status update failed", "cause": err.Error()})
		}
		return c.JSON(order)
	})
}
