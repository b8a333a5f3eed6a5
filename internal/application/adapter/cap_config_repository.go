package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// CapConfigRepository defines the interface for cap configuration persistence.
type CapConfigRepository interface {
	// FindByAgentAndYear retrieves the agent's cap configuration for a period.
	// Returns domain ErrCapConfigNotFound when none exists.
	FindByAgentAndYear(ctx context.Context, agentID uuid.UUID, year int) (*entity.CapConfiguration, error)

	// Upsert creates or replaces the agent's cap configuration for a period.
	Upsert(ctx context.Context, config *entity.CapConfiguration) error
}
