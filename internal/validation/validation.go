package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"example.com/ai-watch/internal/models"
)

var validate = newValidator()

// newValidator создает валидатор на базе go-playground/validator.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type servicePayload struct {
	ID         *string `json:"id" validate:"required"`
	Name       *string `json:"name" validate:"required"`
	Category   *string `json:"category" validate:"required,oneof=coding art music general"`
	Provider   *string `json:"provider" validate:"required"`
	WebsiteURL *string `json:"website_url" validate:"required"`
	DocsURL    *string `json:"docs_url"`
	BillingURL *string `json:"billing_url"`
}

type accountPayload struct {
	ID             *string  `json:"id" validate:"required"`
	ServiceID      *string  `json:"service_id" validate:"required"`
	Email          *string  `json:"email" validate:"required,contains=@"`
	PlanName       *string  `json:"plan_name" validate:"required"`
	MonthlyCostUSD *float64 `json:"monthly_cost_usd" validate:"required,gte=0"`
	RenewalDay     *int     `json:"renewal_day" validate:"omitempty,gte=1,lte=31"`
	Status         *string  `json:"status" validate:"required,oneof=active paused cancelled"`
	Notes          string   `json:"notes"`
	Tags           []string `json:"tags"`
}

type budgetPayload struct {
	ID                    *string  `json:"id" validate:"required"`
	AccountID             *string  `json:"account_id" validate:"required"`
	MonthlyBudgetUSD      *float64 `json:"monthly_budget_usd" validate:"required,gte=0"`
	AlertThresholdPercent *float64 `json:"alert_threshold_percent" validate:"required,gte=0,lte=100"`
	CurrentMonthSpendUSD  *float64 `json:"current_month_spend_usd" validate:"required,gte=0"`
}

type recommendationPayload struct {
	ID        *string `json:"id" validate:"required"`
	AccountID *string `json:"account_id"`
	ServiceID *string `json:"service_id"`
	Title     *string `json:"title" validate:"required"`
	Body      *string `json:"body" validate:"required"`
	Priority  *int    `json:"priority" validate:"required,gte=1,lte=5"`
}

// ParseService проверяет payload сервиса и возвращает типизированную запись.
func ParseService(payload map[string]any) (models.Service, error) {
	var svc models.Service

	if err := rejectPasswordFields(payload); err != nil {
		return svc, err
	}

	var p servicePayload
	if err := decode(payload, &p); err != nil {
		return svc, err
	}
	if err := validate.Struct(&p); err != nil {
		return svc, payloadError(err)
	}

	return models.Service{
		ID:         *p.ID,
		Name:       *p.Name,
		Category:   models.Category(*p.Category),
		Provider:   *p.Provider,
		WebsiteURL: *p.WebsiteURL,
		DocsURL:    p.DocsURL,
		BillingURL: p.BillingURL,
	}, nil
}

// ParseAccount проверяет payload аккаунта, включая ссылку на сервис.
func ParseAccount(payload map[string]any, services []models.Service) (models.Account, error) {
	var acc models.Account

	if err := rejectPasswordFields(payload); err != nil {
		return acc, err
	}

	var p accountPayload
	if err := decode(payload, &p); err != nil {
		return acc, err
	}
	if err := validate.Struct(&p); err != nil {
		return acc, payloadError(err)
	}

	if !serviceExists(services, *p.ServiceID) {
		return acc, Errorf("unknown service_id %q", *p.ServiceID)
	}

	return models.Account{
		ID:             *p.ID,
		ServiceID:      *p.ServiceID,
		Email:          *p.Email,
		PlanName:       *p.PlanName,
		MonthlyCostUSD: *p.MonthlyCostUSD,
		RenewalDay:     p.RenewalDay,
		Status:         models.AccountStatus(*p.Status),
		Notes:          p.Notes,
		Tags:           p.Tags,
	}, nil
}

// ParseBudget проверяет payload бюджета, включая ссылку на аккаунт.
func ParseBudget(payload map[string]any, accounts []models.Account) (models.UsageBudget, error) {
	var budget models.UsageBudget

	if err := rejectPasswordFields(payload); err != nil {
		return budget, err
	}

	var p budgetPayload
	if err := decode(payload, &p); err != nil {
		return budget, err
	}
	if err := validate.Struct(&p); err != nil {
		return budget, payloadError(err)
	}

	if !accountExists(accounts, *p.AccountID) {
		return budget, Errorf("unknown account_id %q", *p.AccountID)
	}

	return models.UsageBudget{
		ID:                    *p.ID,
		AccountID:             *p.AccountID,
		MonthlyBudgetUSD:      *p.MonthlyBudgetUSD,
		AlertThresholdPercent: *p.AlertThresholdPercent,
		CurrentMonthSpendUSD:  *p.CurrentMonthSpendUSD,
	}, nil
}

// ParseRecommendation проверяет payload рекомендации; нужна хотя бы одна ссылка.
func ParseRecommendation(payload map[string]any, accounts []models.Account, services []models.Service) (models.Recommendation, error) {
	var rec models.Recommendation

	if err := rejectPasswordFields(payload); err != nil {
		return rec, err
	}

	var p recommendationPayload
	if err := decode(payload, &p); err != nil {
		return rec, err
	}
	if err := validate.Struct(&p); err != nil {
		return rec, payloadError(err)
	}

	accountID := normalizeRef(p.AccountID)
	serviceID := normalizeRef(p.ServiceID)
	if accountID == nil && serviceID == nil {
		return rec, Errorf("recommendation requires either account_id or service_id")
	}

	if accountID != nil && !accountExists(accounts, *accountID) {
		return rec, Errorf("unknown account_id %q", *accountID)
	}
	if serviceID != nil && !serviceExists(services, *serviceID) {
		return rec, Errorf("unknown service_id %q", *serviceID)
	}

	return models.Recommendation{
		ID:        *p.ID,
		AccountID: accountID,
		ServiceID: serviceID,
		Title:     *p.Title,
		Body:      *p.Body,
		Priority:  *p.Priority,
	}, nil
}

func rejectPasswordFields(payload map[string]any) error {
	for key := range payload {
		if strings.Contains(strings.ToLower(key), "password") {
			return Errorf("password fields are not allowed")
		}
	}
	return nil
}

func decode(payload map[string]any, dst any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Errorf("payload is not serializable")
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return Errorf("field %q must be of type %s", typeErr.Field, typeErr.Type)
		}
		return Errorf("malformed payload")
	}

	return nil
}

func payloadError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Errorf("invalid payload")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return Errorf("missing required field %q", fe.Field())
	case "oneof":
		return Errorf("field %q must be one of: %s", fe.Field(), strings.Join(strings.Fields(fe.Param()), ", "))
	case "contains":
		return Errorf("field %q must look like an email address", fe.Field())
	case "gte":
		return Errorf("field %q must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return Errorf("field %q cannot be greater than %s", fe.Field(), fe.Param())
	default:
		return Errorf("field %q is invalid", fe.Field())
	}
}

func normalizeRef(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}

func serviceExists(services []models.Service, id string) bool {
	for _, svc := range services {
		if svc.ID == id {
			return true
		}
	}
	return false
}

func accountExists(accounts []models.Account, id string) bool {
	for _, acc := range accounts {
		if acc.ID == id {
			return true
		}
	}
	return false
}
