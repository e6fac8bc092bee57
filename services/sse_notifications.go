package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"moodbrew-order-system/models"

	"github.com/gofiber/fiber/v2"
)

// StreamUserNotificationsSSE streams new level-up/achievement
// notifications for the authenticated user as server-sent events.
func (s *NotificationService) StreamUserNotificationsSSE(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	// SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	// Use fasthttp stream writer (THIS replaces Flush)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()

		var lastMaxCreatedAt time.Time

		// Initialize cursor at the newest existing notification
		if existing, err := s.Store.ListNotifications(context.Background(), userID, false); err != nil {
			log.Printf("SSE init error for user %s: %v", userID, err)
		} else if len(existing) > 0 {
			lastMaxCreatedAt = existing[0].CreatedAt
		}

		// Initial keepalive (comment event)
		w.WriteString(":\n\n")
		w.Flush()

		for {
			select {
			case <-ticker.C:
				all, err := s.Store.ListNotifications(context.Background(), userID, false)
				if err != nil {
					log.Printf("SSE query error for user %s: %v", userID, err)
					continue
				}

				// Newest first in storage; collect the ones past the
				// cursor and emit oldest first.
				var fresh []models.Notification
				for _, n := range all {
					if n.CreatedAt.After(lastMaxCreatedAt) {
						fresh = append(fresh, n)
					}
				}
				if len(fresh) == 0 {
					continue
				}
				lastMaxCreatedAt = fresh[0].CreatedAt

				for i := len(fresh) - 1; i >= 0; i-- {
					payload, _ := json.Marshal(fresh[i])
					fmt.Fprintf(w,
						"event: %s\ndata: %s\n\n",
						fresh[i].Type, payload,
					)
				}

				// This is the REAL "flush"
				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}

			case <-c.Context().Done():
				// Client closed connection
				return
			}
		}
	})

	return nil
}
