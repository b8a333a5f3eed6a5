// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// AgentIDKey is the context key for the authenticated agent's ID.
	AgentIDKey ContextKey = "agent_id"
	// AgentEmailKey is the context key for the authenticated agent's email.
	AgentEmailKey ContextKey = "agent_email"
	// AgentPlanKey is the context key for the authenticated agent's billing plan.
	AgentPlanKey ContextKey = "agent_plan"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			code := domainerror.ErrCodeInvalidToken
			var authErr *domainerror.AuthError
			if errors.As(err, &authErr) {
				code = authErr.Code
			}
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(code),
			})
			c.Abort()
			return
		}

		c.Set(string(AgentIDKey), claims.AgentID)
		c.Set(string(AgentEmailKey), claims.Email)
		c.Set(string(AgentPlanKey), claims.Plan)

		c.Next()
	}
}

// GetAgentIDFromContext extracts the agent ID from the Gin context.
func GetAgentIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	agentID, exists := c.Get(string(AgentIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := agentID.(uuid.UUID)
	return id, ok
}

// GetAgentPlanFromContext extracts the agent's billing plan from the Gin context.
func GetAgentPlanFromContext(c *gin.Context) (string, bool) {
	plan, exists := c.Get(string(AgentPlanKey))
	if !exists {
		return "", false
	}
	planStr, ok := plan.(string)
	return planStr, ok
}
