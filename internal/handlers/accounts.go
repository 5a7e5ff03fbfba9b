package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/models"
	"example.com/ai-watch/internal/notifications"
	"example.com/ai-watch/internal/storage"
)

type AccountHandler struct {
	Store    *storage.Store
	Notifier *notifications.Hub
}

// NewAccountHandler создает обработчик операций с аккаунтами.
func NewAccountHandler(store *storage.Store, notifier *notifications.Hub) *AccountHandler {
	return &AccountHandler{Store: store, Notifier: notifier}
}

// List возвращает аккаунты с фильтрами по категории и статусу.
func (h *AccountHandler) List(c echo.Context) error {
	accounts, err := h.Store.ListAccounts(c.QueryParam("category"), c.QueryParam("status"))
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, accounts)
}

// Get возвращает аккаунт по id.
func (h *AccountHandler) Get(c echo.Context) error {
	account, err := h.Store.GetAccount(c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}
	if account == nil {
		return notFound(c, "account not found")
	}

	return c.JSON(http.StatusOK, account)
}

// Create добавляет новый аккаунт.
func (h *AccountHandler) Create(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	account, err := h.Store.CreateAccount(payload)
	if err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.JSON(http.StatusCreated, account)
}

// Update обновляет данные аккаунта.
func (h *AccountHandler) Update(c echo.Context) error {
	payload, err := bindPayload(c)
	if err != nil {
		return badRequest(c, "invalid payload")
	}

	account, err := h.Store.UpdateAccount(c.Param("id"), payload)
	if err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.JSON(http.StatusOK, account)
}

// Delete удаляет аккаунт вместе с его бюджетом и рекомендациями.
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.Store.DeleteAccount(c.Param("id")); err != nil {
		return storeError(c, err)
	}

	publishDashboardUpdate(h.Notifier, h.Store)
	return c.NoContent(http.StatusNoContent)
}

// ExportCSV выгружает аккаунты в CSV-файл.
func (h *AccountHandler) ExportCSV(c echo.Context) error {
	accounts, err := h.Store.ListAccounts("", "")
	if err != nil {
		return storeError(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "service_id", "email", "plan_name", "monthly_cost_usd", "renewal_day", "status", "notes", "tags"}
	if err := w.Write(header); err != nil {
		return serverError(c)
	}

	for _, account := range accounts {
		if err := w.Write(accountCSVRow(account)); err != nil {
			return serverError(c)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\"accounts.csv\"")
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func accountCSVRow(account models.Account) []string {
	renewalDay := ""
	if account.RenewalDay != nil {
		renewalDay = strconv.Itoa(*account.RenewalDay)
	}

	return []string{
		account.ID,
		account.ServiceID,
		account.Email,
		account.PlanName,
		strconv.FormatFloat(account.MonthlyCostUSD, 'f', -1, 64),
		renewalDay,
		string(account.Status),
		account.Notes,
		strings.Join(account.Tags, ","),
	}
}
