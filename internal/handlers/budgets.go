package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/notifications"
	"example.com/ai-watch/internal/storage"
)

type BudgetHandler struct {
	Store    *storage.Store
	Notifier *notifications.Hub
}

// NewBudgetHandler создает обработчик операций с бюджетами.
func NewBudgetHandler(store *storage.Store, notifier *notifications.Hub) *BudgetHandler {
	return &BudgetHandler{Store: store, Notifier: notifier}
}

// List возвращает все бюджеты.
func (h *BudgetHandler) List(c echo.Context) error {
	budgets, err := h.Store.ListBudgets()
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, budgets)
}

// Get возвращает бюджет по id.
func (h *BudgetHandler) Get(c echo.Context) error {
	budget, err := h.Store.GetBudget(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	if budget == nil {
		return notFound(c, "budget not found")
	}

	return c.JSON(http.StatusOK, budget)
}

// Create добавляет новый бюджет.
func (h *BudgetHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	budget, err := h.Store.CreateBudget(payload)
	if err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.JSON(http.StatusCreated, budget)
}

// Update обновляет данные бюджета.
func (h *BudgetHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	budget, err := h.Store.UpdateBudget(c.Param("id"), payload)
	if err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.JSON(http.StatusOK, budget)
}

// Delete удаляет бюджет.
func (h *BudgetHandler) Delete(c echo.Context) error {
	if err := h.Store.DeleteBudget(c.Param("id")); err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.NoContent(http.StatusNoContent)
}
