// Package router provides HTTP routing configuration using the Gin framework.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pnl-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router wraps the Gin engine and handles route configuration.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	dealController        *controller.DealController
	expenseController     *controller.ExpenseController
	capTrackerController  *controller.CapTrackerController
	summaryController     *controller.SummaryController
	settingsController    *controller.SettingsController
	authMiddleware        *middleware.AuthMiddleware
	entitlementMiddleware *middleware.EntitlementMiddleware
	rateLimiter           *middleware.RateLimiter
}

// NewRouter creates a new router instance with the given controllers.
func NewRouter(
	healthController *controller.HealthController,
	dealController *controller.DealController,
	expenseController *controller.ExpenseController,
	capTrackerController *controller.CapTrackerController,
	summaryController *controller.SummaryController,
	settingsController *controller.SettingsController,
	authMiddleware *middleware.AuthMiddleware,
	entitlementMiddleware *middleware.EntitlementMiddleware,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		dealController:        dealController,
		expenseController:     expenseController,
		capTrackerController:  capTrackerController,
		summaryController:     summaryController,
		settingsController:    settingsController,
		authMiddleware:        authMiddleware,
		entitlementMiddleware: entitlementMiddleware,
		rateLimiter:           rateLimiter,
	}
}

// Setup configures all routes and middleware.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the authenticated API endpoints. Every route
// under /api/v1 requires a valid access token and a plan that includes the
// tracker.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.rateLimiter.Middleware())
	v1.Use(r.authMiddleware.Authenticate())
	v1.Use(r.entitlementMiddleware.RequirePlan())

	if r.dealController != nil {
		deals := v1.Group("/deals")
		{
			deals.POST("", r.dealController.Create)
			deals.GET("", r.dealController.List)
			deals.GET("/:id", r.dealController.Get)
			deals.PATCH("/:id", r.dealController.Update)
			deals.DELETE("/:id", r.dealController.Delete)
		}
	}

	if r.expenseController != nil {
		expenses := v1.Group("/expenses")
		{
			expenses.POST("", r.expenseController.Create)
			expenses.GET("", r.expenseController.List)
			expenses.GET("/:id", r.expenseController.Get)
			expenses.PATCH("/:id", r.expenseController.Update)
			expenses.DELETE("/:id", r.expenseController.Delete)
		}
	}

	if r.capTrackerController != nil {
		capTracker := v1.Group("/cap-tracker")
		{
			capTracker.GET("/progress", r.capTrackerController.GetProgress)
			capTracker.PUT("/config", r.capTrackerController.UpdateConfig)
		}
	}

	if r.summaryController != nil {
		v1.GET("/summary", r.summaryController.Get)
	}

	if r.settingsController != nil {
		settings := v1.Group("/settings")
		{
			settings.GET("/categories", r.settingsController.GetCategories)
			settings.GET("/lead-sources", r.settingsController.GetLeadSources)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
