package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/notifications"
)

type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header { return w.header }

func (w *brokenWriter) WriteHeader(int) {}

func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("client is gone")
}

func (w *brokenWriter) Flush() {}

// TestStreamStopsOnWriteError проверяет, что обрыв соединения при первой
// записи завершает поток с ошибкой.
func TestStreamStopsOnWriteError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/stream", nil)
	c := e.NewContext(req, &brokenWriter{header: http.Header{}})

	handler := NewEventsHandler(notifications.NewHub())
	if err := handler.Stream(c); err == nil {
		t.Fatal("expected an error when the initial write fails")
	}
}
