package models

type Category string

type AccountStatus string

const (
	CategoryCoding  Category = "coding"
	CategoryArt     Category = "art"
	CategoryMusic   Category = "music"
	CategoryGeneral Category = "general"

	StatusActive    AccountStatus = "active"
	StatusPaused    AccountStatus = "paused"
	StatusCancelled AccountStatus = "cancelled"
)

type Service struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Provider   string   `json:"provider"`
	WebsiteURL string   `json:"website_url"`
	DocsURL    *string  `json:"docs_url"`
	BillingURL *string  `json:"billing_url"`
}

type Account struct {
	ID             string        `json:"id"`
	ServiceID      string        `json:"service_id"`
	Email          string        `json:"email"`
	PlanName       string        `json:"plan_name"`
	MonthlyCostUSD float64       `json:"monthly_cost_usd"`
	RenewalDay     *int          `json:"renewal_day"`
	Status         AccountStatus `json:"status"`
	Notes          string        `json:"notes"`
	Tags           []string      `json:"tags"`
}

type UsageBudget struct {
	ID                    string  `json:"id"`
	AccountID             string  `json:"account_id"`
	MonthlyBudgetUSD      float64 `json:"monthly_budget_usd"`
	AlertThresholdPercent float64 `json:"alert_threshold_percent"`
	CurrentMonthSpendUSD  float64 `json:"current_month_spend_usd"`
}

type Recommendation struct {
	ID        string  `json:"id"`
	AccountID *string `json:"account_id"`
	ServiceID *string `json:"service_id"`
	Title     string  `json:"title"`
	Body      string  `json:"body"`
	Priority  int     `json:"priority"`
}

type Document struct {
	Services        []Service        `json:"services"`
	Accounts        []Account        `json:"accounts"`
	UsageBudgets    []UsageBudget    `json:"usage_budgets"`
	Recommendations []Recommendation `json:"recommendations"`
}

type BudgetAlert struct {
	AccountID   string  `json:"account_id"`
	Email       string  `json:"email"`
	PercentUsed float64 `json:"percent_used"`
}

type DashboardSummary struct {
	TotalMonthlySpendUSD float64              `json:"total_monthly_spend_usd"`
	CategoryBreakdownUSD map[Category]float64 `json:"category_breakdown_usd"`
	BudgetAlerts         []BudgetAlert        `json:"budget_alerts"`
}
