// handlers/cart_routes.go
package handlers

import (
	"errors"
	"strconv"

	"moodbrew-order-system/middleware"
	"moodbrew-order-system/models"
	"moodbrew-order-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCartRoutes(app *fiber.App, carts *services.CartStore, catalog *services.CatalogService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/cart", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		cart, ok := carts.Get(userID)
		if !ok {
			// absent cart, not an empty one
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no active cart"})
		}
		return c.JSON(cart)
	})

	secured.Post("/cart/items", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			ProductID string   `json:"product_id"`
			Size      string   `json:"size"`
			Milk      string   `json:"milk"`
			Sweetness int      `json:"sweetness"`
			AddOns    []string `json:"add_ons"`
			Quantity  int      `json:"quantity"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}

		product, err := catalog.Resolve(req.ProductID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
		}

		size := models.DrinkSize(req.Size)
		line := models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			ImageURL:  product.ImageURL,
			Size:      size,
			Customization: models.Customization{
				Milk:      req.Milk,
				Sweetness: req.Sweetness,
				AddOns:    req.AddOns,
			},
			Quantity:  req.Quantity,
			UnitPrice: product.PriceFor(size),
		}

		cart, err := carts.AddItem(userID, line)
		if errors.Is(err, services.ErrUnknownSize) || errors.Is(err, services.ErrBadCustomization) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to add item", "cause": err.Error()})
		}
		return c.JSON(cart)
	})

	secured.Delete("/cart/items/:index", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid line index"})
		}

		cart, remaining, err := carts.RemoveItem(userID, index)
		if errors.Is(err, services.ErrCartEmpty) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no active cart"})
		}
		if errors.Is(err, services.ErrLineOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "line index out of range"})
		}
		if !remaining {
			return c.JSON(fiber.Map{"cart": nil, "message": "cart is now empty and was discarded"})
		}
		return c.JSON(fiber.Map{"cart": cart})
	})

	secured.Patch("/cart/fulfillment", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			Fulfillment string `json:"fulfillment"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		f := models.FulfillmentType(req.Fulfillment)
		if f != models.FulfillmentPickup && f != models.FulfillmentDelivery {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "fulfillment must be pickup or delivery"})
		}
		if err := carts.SetFulfillment(userID, f); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no active cart"})
		}
		return c.JSON(fiber.Map{"message": "fulfillment updated"})
	})

	secured.Delete("/cart", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		carts.Clear(userID)
		return c.JSON(fiber.Map{"message": "cart cleared"})
	})
}
