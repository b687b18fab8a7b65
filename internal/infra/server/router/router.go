// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/financeflow/backend/internal/integration/entrypoint/controller"
	"github.com/financeflow/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	userController        *controller.UserController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	budgetController      *controller.BudgetController
	goalController        *controller.GoalController
	dashboardController   *controller.DashboardController
	reportController      *controller.ReportController
	reportRateLimiter     *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	userController *controller.UserController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	budgetController *controller.BudgetController,
	goalController *controller.GoalController,
	dashboardController *controller.DashboardController,
	reportController *controller.ReportController,
	reportRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		userController:        userController,
		categoryController:    categoryController,
		transactionController: transactionController,
		budgetController:      budgetController,
		goalController:        goalController,
		dashboardController:   dashboardController,
		reportController:      reportController,
		reportRateLimiter:     reportRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every route below /api/v1
// requires a platform access token.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	users := v1.Group("/users")
	{
		users.GET("/me", r.userController.Me)
		users.DELETE("/me", r.userController.DeleteAccount)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.PATCH("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
		transactions.POST("/bulk-delete", r.transactionController.BulkDelete)
	}

	budgets := v1.Group("/budgets")
	{
		budgets.GET("", r.budgetController.List)
		budgets.POST("", r.budgetController.Create)
		budgets.GET("/:id", r.budgetController.Get)
		budgets.PATCH("/:id", r.budgetController.Update)
		budgets.DELETE("/:id", r.budgetController.Delete)
	}

	goals := v1.Group("/goals")
	{
		goals.GET("", r.goalController.List)
		goals.POST("", r.goalController.Create)
		goals.GET("/:id", r.goalController.Get)
		goals.PATCH("/:id", r.goalController.Update)
		goals.DELETE("/:id", r.goalController.Delete)
	}

	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/summary", r.dashboardController.GetSummary)
		dashboard.GET("/overview", r.dashboardController.GetOverview)
		dashboard.GET("/category-distribution", r.dashboardController.GetCategoryDistribution)
		dashboard.GET("/monthly-comparison", r.dashboardController.GetMonthlyComparison)
		dashboard.GET("/trends", r.dashboardController.GetTrends)
		dashboard.GET("/recent-transactions", r.dashboardController.GetRecentTransactions)
		dashboard.GET("/data-range", r.dashboardController.GetDataRange)
	}

	// Reports are expensive, so they are rate limited per user
	if r.reportRateLimiter != nil {
		v1.POST("/reports", r.reportRateLimiter.Middleware(), r.reportController.Generate)
	} else {
		v1.POST("/reports", r.reportController.Generate)
	}
}
