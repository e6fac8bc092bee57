// handlers/notification_routes.go
package handlers

import (
	"moodbrew-order-system/middleware"
	"moodbrew-order-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, notifications *services.NotificationService, authClient *services.AuthServiceClient) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/user/notifications", notifications.ListUserNotifications)
	secured.Post("/user/notifications/:id/viewed", notifications.MarkViewed)

	// SSE stream authenticates from the query string because
	// EventSource cannot set headers.
	app.Get("/user/notifications/stream",
		middleware.SSEAuthMiddleware(authClient),
		notifications.StreamUserNotificationsSSE,
	)
}
