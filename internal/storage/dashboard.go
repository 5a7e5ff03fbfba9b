package storage

import (
	"math"

	"example.com/ai-watch/internal/models"
)

// DashboardSummary считает сводку расходов по активным аккаунтам: общую
// сумму, разбивку по категориям и алерты по порогам бюджетов. Алерты идут
// в порядке следования аккаунтов в документе.
func (s *Store) DashboardSummary() (models.DashboardSummary, error) {
	var summary models.DashboardSummary

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return summary, err
	}

	categoryByService := make(map[string]models.Category, len(doc.Services))
	for _, svc := range doc.Services {
		categoryByService[svc.ID] = svc.Category
	}

	budgetByAccount := make(map[string]models.UsageBudget, len(doc.UsageBudgets))
	for _, budget := range doc.UsageBudgets {
		budgetByAccount[budget.AccountID] = budget
	}

	breakdown := map[models.Category]float64{
		models.CategoryCoding:  0,
		models.CategoryArt:     0,
		models.CategoryMusic:   0,
		models.CategoryGeneral: 0,
	}

	total := 0.0
	alerts := []models.BudgetAlert{}
	for _, acc := range doc.Accounts {
		if acc.Status != models.StatusActive {
			continue
		}

		total += acc.MonthlyCostUSD

		category, ok := categoryByService[acc.ServiceID]
		if !ok {
			category = models.CategoryGeneral
		}
		breakdown[category] += acc.MonthlyCostUSD

		budget, ok := budgetByAccount[acc.ID]
		if !ok || budget.MonthlyBudgetUSD <= 0 {
			continue
		}

		percentUsed := round2(budget.CurrentMonthSpendUSD / budget.MonthlyBudgetUSD * 100)
		if percentUsed >= budget.AlertThresholdPercent {
			alerts = append(alerts, models.BudgetAlert{
				AccountID:   acc.ID,
				Email:       acc.Email,
				PercentUsed: percentUsed,
			})
		}
	}

	for category, amount := range breakdown {
		breakdown[category] = round2(amount)
	}

	summary = models.DashboardSummary{
		TotalMonthlySpendUSD: round2(total),
		CategoryBreakdownUSD: breakdown,
		BudgetAlerts:         alerts,
	}

	return summary, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
