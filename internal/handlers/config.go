package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/notifications"
	"example.com/ai-watch/internal/storage"
)

type ConfigHandler struct {
	Store    *storage.Store
	Notifier *notifications.Hub
}

// NewConfigHandler создает обработчик работы с документом целиком.
func NewConfigHandler(store *storage.Store, notifier *notifications.Hub) *ConfigHandler {
	return &ConfigHandler{Store: store, Notifier: notifier}
}

// Get возвращает документ целиком.
func (h *ConfigHandler) Get(c echo.Context) error {
	doc, err := h.Store.Config()
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, doc)
}

// Replace замещает содержимое хранилища импортированным документом.
func (h *ConfigHandler) Replace(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	if err := h.Store.ReplaceConfig(payload); err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.NoContent(http.StatusNoContent)
}

// Export выгружает документ в JSON-файл.
func (h *ConfigHandler) Export(c echo.Context) error {
	doc, err := h.Store.Config()
	if err != nil {
		return storeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\"ai-watch.json\"")
	return c.JSON(http.StatusOK, doc)
}
