// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/financeflow/backend/config"
	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/application/usecase/alert"
	"github.com/financeflow/backend/internal/application/usecase/auth"
	"github.com/financeflow/backend/internal/application/usecase/budget"
	"github.com/financeflow/backend/internal/application/usecase/category"
	"github.com/financeflow/backend/internal/application/usecase/dashboard"
	"github.com/financeflow/backend/internal/application/usecase/goal"
	"github.com/financeflow/backend/internal/application/usecase/report"
	"github.com/financeflow/backend/internal/application/usecase/transaction"
	"github.com/financeflow/backend/internal/infra/server/router"
	"github.com/financeflow/backend/internal/integration/adapters"
	"github.com/financeflow/backend/internal/integration/cache"
	"github.com/financeflow/backend/internal/integration/email"
	"github.com/financeflow/backend/internal/integration/email/templates"
	"github.com/financeflow/backend/internal/integration/entrypoint/controller"
	"github.com/financeflow/backend/internal/integration/entrypoint/middleware"
	"github.com/financeflow/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config            *config.Config
	DB                *gorm.DB
	Router            *router.Router
	EmailWorker       *email.Worker
	ReportRateLimiter *middleware.RateLimiter
}

// Options carries the optional collaborators of NewInjector.
type Options struct {
	// Redis backs the analytics cache; nil disables caching.
	Redis *redis.Client
	// EmailSender overrides the sender chosen from the config.
	EmailSender adapter.EmailSender
	// Clock overrides the system clock.
	Clock adapter.Clock
	// DBHealthChecker overrides the ping of db.
	DBHealthChecker func(ctx context.Context) bool
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	// Repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	userDataRepo := persistence.NewUserDataRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters
	clock := opts.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}
	tokenService := adapters.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	analyticsCache := cache.NewNoopCache()
	if opts.Redis != nil {
		analyticsCache = cache.NewRedisCache(opts.Redis)
	}

	// Email
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL, cfg.Email.MaxAttempts)
	emailSender := opts.EmailSender
	if emailSender == nil {
		if cfg.Email.ResendAPIKey != "" {
			resendClient := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
			if cfg.Email.ResendBaseURL != "" {
				if err := resendClient.SetBaseURL(cfg.Email.ResendBaseURL); err != nil {
					return nil, err
				}
			}
			emailSender = resendClient
		} else {
			slog.Warn("RESEND_API_KEY not set, budget alert emails are kept in memory")
			emailSender = email.NewFakeEmailSender()
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
		PollInterval:  cfg.Email.PollInterval,
		BatchSize:     cfg.Email.BatchSize,
		RetentionDays: cfg.Email.RetentionDays,
	})

	// Alert use case
	checkBudgetAlertsUseCase := alert.NewCheckBudgetAlertsUseCase(
		budgetRepo,
		transactionRepo,
		emailService,
		clock,
		cfg.Alerts.BudgetAlertsEnabled,
	)

	// Account use cases
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userDataRepo, analyticsCache)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, analyticsCache)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, analyticsCache)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, checkBudgetAlertsUseCase, analyticsCache)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, analyticsCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, analyticsCache)
	bulkDeleteTransactionsUseCase := transaction.NewBulkDeleteTransactionsUseCase(transactionRepo, analyticsCache)

	// Budget use cases
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, transactionRepo, clock)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo, transactionRepo, clock)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, categoryRepo, transactionRepo, clock)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, categoryRepo, transactionRepo, clock)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo, clock)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, categoryRepo, clock)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo, categoryRepo, clock)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, categoryRepo, clock)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)

	// Dashboard use cases
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(transactionRepo, clock)
	getOverviewUseCase := dashboard.NewGetOverviewUseCase(transactionRepo, analyticsCache, clock, cfg.Redis.CacheTTL)
	getCategoryDistributionUseCase := dashboard.NewGetCategoryDistributionUseCase(transactionRepo, clock)
	getMonthlyComparisonUseCase := dashboard.NewGetMonthlyComparisonUseCase(transactionRepo, clock)
	getTrendsUseCase := dashboard.NewGetTrendsUseCase(transactionRepo, clock)
	getRecentTransactionsUseCase := dashboard.NewGetRecentTransactionsUseCase(transactionRepo)
	getDataRangeUseCase := dashboard.NewGetDataRangeUseCase(transactionRepo)

	// Report use case
	generateReportUseCase := report.NewGenerateReportUseCase(transactionRepo, categoryRepo, clock)

	// Controllers
	dbHealthChecker := opts.DBHealthChecker
	if dbHealthChecker == nil {
		dbHealthChecker = func(ctx context.Context) bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(ctx) == nil
		}
	}
	healthController := controller.NewHealthController(dbHealthChecker)

	userController := controller.NewUserController(deleteAccountUseCase)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		bulkDeleteTransactionsUseCase,
	)

	budgetController := controller.NewBudgetController(
		listBudgetsUseCase,
		createBudgetUseCase,
		getBudgetUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getSummaryUseCase,
		getOverviewUseCase,
		getCategoryDistributionUseCase,
		getMonthlyComparisonUseCase,
		getTrendsUseCase,
		getRecentTransactionsUseCase,
		getDataRangeUseCase,
	)

	reportController := controller.NewReportController(generateReportUseCase)

	// Middleware
	reportRateLimiter := middleware.NewRateLimiter(cfg.RateLimit.ReportRequests, cfg.RateLimit.ReportWindow)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		userController,
		categoryController,
		transactionController,
		budgetController,
		goalController,
		dashboardController,
		reportController,
		reportRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:            cfg,
		DB:                db,
		Router:            r,
		EmailWorker:       emailWorker,
		ReportRateLimiter: reportRateLimiter,
	}, nil
}
