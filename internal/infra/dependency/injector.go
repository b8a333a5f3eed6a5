// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pnl-tracker/backend/config"
	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/application/usecase/captracker"
	"github.com/pnl-tracker/backend/internal/application/usecase/deal"
	"github.com/pnl-tracker/backend/internal/application/usecase/expense"
	"github.com/pnl-tracker/backend/internal/application/usecase/settings"
	"github.com/pnl-tracker/backend/internal/application/usecase/summary"
	"github.com/pnl-tracker/backend/internal/infra/server/router"
	"github.com/pnl-tracker/backend/internal/integration/adapters"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/pnl-tracker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The redis client may be nil, in which case period locking falls back to an
// in-process locker and summary caching is disabled.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	dealRepo := persistence.NewDealRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	capConfigRepo := persistence.NewCapConfigRepository(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	var periodLocker adapter.PeriodLocker
	var summaryCache adapter.SummaryCache
	if redisClient != nil {
		periodLocker = adapters.NewRedisPeriodLocker(redisClient)
		summaryCache = adapters.NewRedisSummaryCache(redisClient, cfg.Business.SummaryCacheTTL)
	} else {
		slog.Warn("Redis unavailable, using in-process period locks and no summary cache")
		periodLocker = adapters.NewMemoryPeriodLocker()
		summaryCache = adapters.NewNoopSummaryCache()
	}

	defaultCap := decimal.NewFromInt(int64(cfg.Business.DefaultYearlyCap))

	// Create cap tracker use cases
	recomputer := captracker.NewRecomputer(dealRepo, capConfigRepo, periodLocker, defaultCap)
	getProgressUseCase := captracker.NewGetProgressUseCase(dealRepo, capConfigRepo, defaultCap)
	updateConfigUseCase := captracker.NewUpdateConfigUseCase(capConfigRepo, recomputer, summaryCache)

	// Create deal use cases
	createDealUseCase := deal.NewCreateDealUseCase(dealRepo, recomputer, summaryCache, cfg.Business.LeadSources)
	getDealUseCase := deal.NewGetDealUseCase(dealRepo)
	listDealsUseCase := deal.NewListDealsUseCase(dealRepo)
	updateDealUseCase := deal.NewUpdateDealUseCase(dealRepo, recomputer, summaryCache, cfg.Business.LeadSources)
	deleteDealUseCase := deal.NewDeleteDealUseCase(dealRepo, recomputer, summaryCache)

	// Create expense use cases
	materializer := expense.NewRecurringMaterializer(expenseRepo)
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, summaryCache, cfg.Business.ExpenseCategories)
	getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo, materializer)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, summaryCache, cfg.Business.ExpenseCategories)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, summaryCache)

	// Create summary and settings use cases
	getSummaryUseCase := summary.NewGetMonthlySummaryUseCase(dealRepo, expenseRepo, materializer, summaryCache)
	getSettingsUseCase := settings.NewGetSettingsUseCase(cfg.Business.ExpenseCategories, cfg.Business.LeadSources)

	// Create controllers
	healthController := controller.NewHealthController()

	dealController := controller.NewDealController(
		createDealUseCase,
		getDealUseCase,
		listDealsUseCase,
		updateDealUseCase,
		deleteDealUseCase,
	)

	expenseController := controller.NewExpenseController(
		createExpenseUseCase,
		getExpenseUseCase,
		listExpensesUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
	)

	capTrackerController := controller.NewCapTrackerController(
		getProgressUseCase,
		updateConfigUseCase,
	)

	summaryController := controller.NewSummaryController(getSummaryUseCase)
	settingsController := controller.NewSettingsController(getSettingsUseCase)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		rateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	entitlementMiddleware := middleware.NewEntitlementMiddleware(cfg.Business.AllowedPlans)

	// Create router
	r := router.NewRouter(
		healthController,
		dealController,
		expenseController,
		capTrackerController,
		summaryController,
		settingsController,
		authMiddleware,
		entitlementMiddleware,
		rateLimiter,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
