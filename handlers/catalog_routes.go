// handlers/catalog_routes.go
package handlers

import (
	"moodbrew-order-system/middleware"
	"moodbrew-order-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCatalogRoutes(app *fiber.App, catalog *services.CatalogService) {
	// Public menu: no user context needed, the app shows the menu
	// before sign-in.
	app.Get("/menu", catalog.GetPublishedProducts)
	app.Get("/menu/:slug", catalog.GetProductBySlug)

	// Admin routes for cafe staff managing the menu.
	admin := app.Group("/admin", middleware.UserContextMiddleware())
	admin.Post("/products", catalog.CreateProduct)
	admin.Post("/products/:id/publish", catalog.PublishProduct)
	admin.Post("/products/:id/image", catalog.UploadProductImage)
}
