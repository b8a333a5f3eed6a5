package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents validated claims from an access token. Plan is the
// billing plan granted by the external billing service ("free", "pro").
type TokenClaims struct {
	AgentID   uuid.UUID
	Email     string
	Plan      string
	ExpiresAt time.Time
}

// TokenService defines the interface for access token validation. Token
// issuance is owned by the external identity service; the P&L backend only
// verifies signatures and extracts the caller identity.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
