package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/notifications"
	"example.com/ai-watch/internal/storage"
)

type RecommendationHandler struct {
	Store    *storage.Store
	Notifier *notifications.Hub
}

// NewRecommendationHandler создает обработчик операций с рекомендациями.
func NewRecommendationHandler(store *storage.Store, notifier *notifications.Hub) *RecommendationHandler {
	return &RecommendationHandler{Store: store, Notifier: notifier}
}

// List возвращает рекомендации по возрастанию приоритета.
func (h *RecommendationHandler) List(c echo.Context) error {
	recommendations, err := h.Store.ListRecommendations()
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, recommendations)
}

// Get возвращает рекомендацию по id.
func (h *RecommendationHandler) Get(c echo.Context) error {
	recommendation, err := h.Store.GetRecommendation(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	if recommendation == nil {
		return notFound(c, "recommendation not found")
	}

	return c.JSON(http.StatusOK, recommendation)
}

// Create добавляет новую рекомендацию.
func (h *RecommendationHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	recommendation, err := h.Store.CreateRecommendation(payload)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusCreated, recommendation)
}

// Update обновляет данные рекомендации.
func (h *RecommendationHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	recommendation, err := h.Store.UpdateRecommendation(c.Param("id"), payload)
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, recommendation)
}

// Delete удаляет рекомендацию.
func (h *RecommendationHandler) Delete(c echo.Context) error {
	if err := h.Store.DeleteRecommendation(c.Param("id")); err != nil {
		return storeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
