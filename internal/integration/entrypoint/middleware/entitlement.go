package middleware

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/dto"
)

// EntitlementMiddleware gates the P&L feature behind the billing plans that
// include it. A valid token on the wrong plan is a 403, never a 401, so
// clients can render an upgrade prompt instead of a login prompt.
type EntitlementMiddleware struct {
	allowedPlans []string
}

// NewEntitlementMiddleware creates a new entitlement middleware instance.
func NewEntitlementMiddleware(allowedPlans []string) *EntitlementMiddleware {
	return &EntitlementMiddleware{
		allowedPlans: allowedPlans,
	}
}

// RequirePlan returns a Gin middleware handler that enforces the plan check.
// It must run after Authenticate.
func (m *EntitlementMiddleware) RequirePlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		plan, ok := GetAgentPlanFromContext(c)
		if !ok || !slices.Contains(m.allowedPlans, plan) {
			c.JSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "Your plan does not include the P&L Tracker",
				Code:  string(domainerror.ErrCodeInsufficientPlan),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
