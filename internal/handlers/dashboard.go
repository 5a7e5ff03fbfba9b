package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/storage"
)

type DashboardHandler struct {
	Store *storage.Store
}

// NewDashboardHandler создает обработчик сводки расходов.
func NewDashboardHandler(store *storage.Store) *DashboardHandler {
	return &DashboardHandler{Store: store}
}

// Summary возвращает сводку по активным аккаунтам и алерты бюджетов.
func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.Store.DashboardSummary()
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}
