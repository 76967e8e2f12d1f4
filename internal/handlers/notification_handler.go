package handlers

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lovemypet/backend/internal/dto"
	"github.com/lovemypet/backend/internal/notify"
	"github.com/lovemypet/backend/internal/session"
)

const streamHeartbeat = 20 * time.Second

type NotificationHandler struct {
	broker notify.Broker
	toasts *notify.Toasts
}

func NewNotificationHandler(broker notify.Broker, toasts *notify.Toasts) *NotificationHandler {
	return &NotificationHandler{broker: broker, toasts: toasts}
}

// List returns the notifications that have not yet been dismissed.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.toasts.Visible(session.UserID(c)))
}

// Dismiss hides a notification for the signed-in member only.
func (h *NotificationHandler) Dismiss(c *fiber.Ctx) error {
	if !h.toasts.Dismiss(session.UserID(c), c.Params("id")) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Notification not found",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Stream pushes notifications as server-sent events until the client
// disconnects.
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	userID := session.UserID(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// The request context is recycled once the handler returns, so the
	// subscription lives on its own context.
	ctx, cancel := context.WithCancel(context.Background())
	ch, unsubscribe := h.broker.Subscribe(ctx)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer unsubscribe()

		ticker := time.NewTicker(streamHeartbeat)
		defer ticker.Stop()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case n, ok := <-ch:
				if !ok {
					return
				}
				if !n.VisibleTo(userID) {
					continue
				}
				data, err := json.Marshal(n)
				if err != nil {
					slog.Error("failed to encode notification", "id", n.ID, "error", err)
					continue
				}
				fmt.Fprintf(w, "id: %s\nevent: notification\ndata: %s\n\n", n.ID, data)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}
