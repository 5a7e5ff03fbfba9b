package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/validation"
)

func bindPayload(c echo.Context) (map[string]any, error) {
	payload := map[string]any{}
	if err := c.Bind(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// storeError транслирует ошибки хранилища в HTTP-ответ: отклоненный payload
// дает 400, поврежденный документ и прочие сбои — 500.
func storeError(c echo.Context, err error) error {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		return badRequest(c, validationErr.Message)
	}

	return serverError(c)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": message})
}

func serverError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
