package storage

import (
	"testing"

	"example.com/ai-watch/internal/models"
)

func createCodingAccount(t *testing.T, store *Store, cost float64) {
	t.Helper()

	service := sampleService()
	service["id"] = "copilot"
	service["name"] = "GitHub Copilot"
	service["category"] = "coding"
	if _, err := store.CreateService(service); err != nil {
		t.Fatalf("create service: %v", err)
	}

	account := sampleAccount()
	account["service_id"] = "copilot"
	account["monthly_cost_usd"] = cost
	if _, err := store.CreateAccount(account); err != nil {
		t.Fatalf("create account: %v", err)
	}
}

// TestDashboardSummaryTotals проверяет сумму и разбивку по категориям.
func TestDashboardSummaryTotals(t *testing.T) {
	store := newTestStore(t)
	createCodingAccount(t, store, 17.0)

	summary, err := store.DashboardSummary()
	if err != nil {
		t.Fatalf("dashboard summary: %v", err)
	}

	if summary.TotalMonthlySpendUSD != 17.0 {
		t.Fatalf("expected total 17.0, got %v", summary.TotalMonthlySpendUSD)
	}
	if summary.CategoryBreakdownUSD[models.CategoryCoding] != 17.0 {
		t.Fatalf("expected coding 17.0, got %v", summary.CategoryBreakdownUSD[models.CategoryCoding])
	}
	for _, category := range []models.Category{models.CategoryArt, models.CategoryMusic, models.CategoryGeneral} {
		value, ok := summary.CategoryBreakdownUSD[category]
		if !ok {
			t.Fatalf("expected bucket %q to be present", category)
		}
		if value != 0.0 {
			t.Fatalf("expected %q to be 0.0, got %v", category, value)
		}
	}
	if len(summary.BudgetAlerts) != 0 {
		t.Fatalf("expected no alerts, got %+v", summary.BudgetAlerts)
	}
}

// TestDashboardSummaryIgnoresInactive проверяет учет только активных аккаунтов.
func TestDashboardSummaryIgnoresInactive(t *testing.T) {
	store := newTestStore(t)
	createCodingAccount(t, store, 17.0)

	paused := sampleAccount()
	paused["id"] = "acc_2"
	paused["service_id"] = "copilot"
	paused["status"] = "paused"
	paused["monthly_cost_usd"] = 100.0
	if _, err := store.CreateAccount(paused); err != nil {
		t.Fatalf("create paused account: %v", err)
	}

	summary, err := store.DashboardSummary()
	if err != nil {
		t.Fatalf("dashboard summary: %v", err)
	}

	if summary.TotalMonthlySpendUSD != 17.0 {
		t.Fatalf("expected paused account to be ignored, got total %v", summary.TotalMonthlySpendUSD)
	}
}

// TestDashboardBudgetAlerts проверяет порог алерта и округление процента.
func TestDashboardBudgetAlerts(t *testing.T) {
	cases := []struct {
		name        string
		spend       float64
		wantAlert   bool
		wantPercent float64
	}{
		{name: "above threshold", spend: 26.0, wantAlert: true, wantPercent: 86.67},
		{name: "well above threshold", spend: 28.0, wantAlert: true, wantPercent: 93.33},
		{name: "below threshold", spend: 20.0, wantAlert: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t)
			createCodingAccount(t, store, 17.0)

			budget := sampleBudget()
			budget["monthly_budget_usd"] = 30.0
			budget["alert_threshold_percent"] = 80.0
			budget["current_month_spend_usd"] = tc.spend
			if _, err := store.CreateBudget(budget); err != nil {
				t.Fatalf("create budget: %v", err)
			}

			summary, err := store.DashboardSummary()
			if err != nil {
				t.Fatalf("dashboard summary: %v", err)
			}

			if !tc.wantAlert {
				if len(summary.BudgetAlerts) != 0 {
					t.Fatalf("expected no alerts, got %+v", summary.BudgetAlerts)
				}
				return
			}

			if len(summary.BudgetAlerts) != 1 {
				t.Fatalf("expected exactly one alert, got %+v", summary.BudgetAlerts)
			}
			alert := summary.BudgetAlerts[0]
			if alert.AccountID != "acc_1" || alert.Email != "owner@example.com" {
				t.Fatalf("unexpected alert target: %+v", alert)
			}
			if alert.PercentUsed != tc.wantPercent {
				t.Fatalf("expected percent %v, got %v", tc.wantPercent, alert.PercentUsed)
			}
		})
	}
}

// TestDashboardAlertOrder проверяет, что алерты идут в порядке следования
// аккаунтов в документе, а не по серьезности превышения.
func TestDashboardAlertOrder(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreateService(sampleService()); err != nil {
		t.Fatalf("create service: %v", err)
	}

	// Порядок вставки намеренно не алфавитный и не по проценту превышения.
	accounts := []struct {
		id    string
		spend float64
	}{
		{id: "acc_z", spend: 27.0},
		{id: "acc_a", spend: 30.0},
		{id: "acc_m", spend: 25.0},
	}
	for i, item := range accounts {
		account := sampleAccount()
		account["id"] = item.id
		if _, err := store.CreateAccount(account); err != nil {
			t.Fatalf("create account %s: %v", item.id, err)
		}

		budget := sampleBudget()
		budget["id"] = []string{"bud_z", "bud_a", "bud_m"}[i]
		budget["account_id"] = item.id
		budget["current_month_spend_usd"] = item.spend
		if _, err := store.CreateBudget(budget); err != nil {
			t.Fatalf("create budget for %s: %v", item.id, err)
		}
	}

	summary, err := store.DashboardSummary()
	if err != nil {
		t.Fatalf("dashboard summary: %v", err)
	}

	if len(summary.BudgetAlerts) != 3 {
		t.Fatalf("expected 3 alerts, got %+v", summary.BudgetAlerts)
	}
	for i, want := range []string{"acc_z", "acc_a", "acc_m"} {
		if summary.BudgetAlerts[i].AccountID != want {
			t.Fatalf("expected alert %d for %s, got %s", i, want, summary.BudgetAlerts[i].AccountID)
		}
	}
}

// TestDashboardIgnoresZeroBudget проверяет пропуск бюджетов с нулевым лимитом.
func TestDashboardIgnoresZeroBudget(t *testing.T) {
	store := newTestStore(t)
	createCodingAccount(t, store, 17.0)

	budget := sampleBudget()
	budget["monthly_budget_usd"] = 0.0
	budget["current_month_spend_usd"] = 10.0
	if _, err := store.CreateBudget(budget); err != nil {
		t.Fatalf("create budget: %v", err)
	}

	summary, err := store.DashboardSummary()
	if err != nil {
		t.Fatalf("dashboard summary: %v", err)
	}

	if len(summary.BudgetAlerts) != 0 {
		t.Fatalf("expected no alerts for zero budget, got %+v", summary.BudgetAlerts)
	}
}
