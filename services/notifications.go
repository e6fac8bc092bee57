package services

import (
	"errors"

	"moodbrew-order-system/store"

	"github.com/gofiber/fiber/v2"
)

// NotificationService exposes the recorded level-up/achievement
// notifications. The core only stores and streams them; rendering is
// the client's job.
type NotificationService struct {
	Store store.Store
}

func NewNotificationService(st store.Store) *NotificationService {
	return &NotificationService{Store: st}
}

// ListUserNotifications returns the user's notifications, newest first.
// ?unviewed=true filters to unseen ones.
func (s *NotificationService) ListUserNotifications(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	unviewedOnly := c.Query("unviewed") == "true"

	list, err := s.Store.ListNotifications(c.Context(), userID, unviewedOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to list notifications",
			"cause": err.Error(),
		})
	}
	return c.JSON(list)
}

// MarkViewed flags one notification as seen.
func (s *NotificationService) MarkViewed(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	id := c.Params("id")

	err := s.Store.MarkNotificationViewed(c.Context(), userID, id)
	if errors.Is(err, store.ErrNotificationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "notification not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to mark notification viewed",
			"cause": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "marked viewed"})
}
