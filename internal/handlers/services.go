package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/notifications"
	"example.com/ai-watch/internal/storage"
)

type ServiceHandler struct {
	Store    *storage.Store
	Notifier *notifications.Hub
}

// NewServiceHandler создает обработчик операций с сервисами.
func NewServiceHandler(store *storage.Store, notifier *notifications.Hub) *ServiceHandler {
	return &ServiceHandler{Store: store, Notifier: notifier}
}

// List возвращает сервисы, опционально отфильтрованные по категории.
func (h *ServiceHandler) List(c echo.Context) error {
	services, err := h.Store.ListServices(c.QueryParam("category"))
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, services)
}

// Get возвращает сервис по id.
func (h *ServiceHandler) Get(c echo.Context) error {
	service, err := h.Store.GetService(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	if service == nil {
		return notFound(c, "service not found")
	}

	return c.JSON(http.StatusOK, service)
}

// Create добавляет новый сервис.
func (h *ServiceHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	service, err := h.Store.CreateService(payload)
	if err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.JSON(http.StatusCreated, service)
}

// Update обновляет данные сервиса.
func (h *ServiceHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	service, err := h.Store.UpdateService(c.Param("id"), payload)
	if err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.JSON(http.StatusOK, service)
}

// Delete удаляет сервис; занятый аккаунтом сервис удалить нельзя.
func (h *ServiceHandler) Delete(c echo.Context) error {
	if err := h.Store.DeleteService(c.Param("id")); err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.NoContent(http.StatusNoContent)
}
