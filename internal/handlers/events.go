package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/notifications"
	"example.com/ai-watch/internal/storage"
)

type EventsHandler struct {
	Hub *notifications.Hub
}

// NewEventsHandler создает SSE-обработчик событий дашборда.
func NewEventsHandler(hub *notifications.Hub) *EventsHandler {
	return &EventsHandler{Hub: hub}
}

// Stream открывает SSE-поток событий обновления дашборда.
func (h *EventsHandler) Stream(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return serverError(c)
	}

	ch, unsubscribe := h.Hub.Subscribe()
	defer unsubscribe()

	if err := writeSSE(c, notifications.Event{Type: "connected"}); err != nil {
		return err
	}
	flusher.Flush()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if err := writeSSE(c, event); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func writeSSE(c echo.Context, event notifications.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := c.Response().Write([]byte("event: " + event.Type + "\n")); err != nil {
		return err
	}
	if _, err := c.Response().Write([]byte("data: " + string(payload) + "\n\n")); err != nil {
		return err
	}

	return nil
}

func publishDashboardUpdate(hub *notifications.Hub, store *storage.Store) {
	if hub == nil || store == nil {
		return
	}

	summary, err := store.DashboardSummary()
	if err != nil {
		return
	}

	hub.Publish(notifications.Event{
		Type: "dashboard_updated",
		Data: summary,
	})
}
