package server

import (
	"github.com/labstack/echo/v4"

	"example.com/ai-watch/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	serviceHandler *handlers.ServiceHandler,
	accountHandler *handlers.AccountHandler,
	budgetHandler *handlers.BudgetHandler,
	recommendationHandler *handlers.RecommendationHandler,
	dashboardHandler *handlers.DashboardHandler,
	configHandler *handlers.ConfigHandler,
	eventsHandler *handlers.EventsHandler,
	apiRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1", apiRateLimiter)

	api.GET("/config", configHandler.Get)
	api.PUT("/config", configHandler.Replace)
	api.GET("/config/export", configHandler.Export)

	api.GET("/dashboard", dashboardHandler.Summary)
	api.GET("/events/stream", eventsHandler.Stream)

	services := api.Group("/services")
	services.GET("", serviceHandler.List)
	services.POST("", serviceHandler.Create)
	services.GET("/:id", serviceHandler.Get)
	services.PUT("/:id", serviceHandler.Update)
	services.DELETE("/:id", serviceHandler.Delete)

	accounts := api.Group("/accounts")
	accounts.GET("", accountHandler.List)
	accounts.POST("", accountHandler.Create)
	accounts.GET("/export/csv", accountHandler.ExportCSV)
	accounts.GET("/:id", accountHandler.Get)
	accounts.PUT("/:id", accountHandler.Update)
	accounts.DELETE("/:id", accountHandler.Delete)

	budgets := api.Group("/budgets")
	budgets.GET("", budgetHandler.List)
	budgets.POST("", budgetHandler.Create)
	budgets.GET("/:id", budgetHandler.Get)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	recommendations := api.Group("/recommendations")
	recommendations.GET("", recommendationHandler.List)
	recommendations.POST("", recommendationHandler.Create)
	recommendations.GET("/:id", recommendationHandler.Get)
	recommendations.PUT("/:id", recommendationHandler.Update)
	recommendations.DELETE("/:id", recommendationHandler.Delete)
}
