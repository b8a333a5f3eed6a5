// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// DealRepository defines the interface for deal persistence operations.
type DealRepository interface {
	// Create creates a new deal in the database.
	Create(ctx context.Context, deal *entity.Deal) error

	// FindByID retrieves a deal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Deal, error)

	// FindByAgent retrieves all deals for an agent, most recent closing first.
	FindByAgent(ctx context.Context, agentID uuid.UUID) ([]*entity.Deal, error)

	// FindByAgentAndYear retrieves the agent's deals whose closing date falls
	// in the given calendar year, ordered by closing date ascending with ties
	// broken by deal ID. This is the replay order for cap consumption.
	FindByAgentAndYear(ctx context.Context, agentID uuid.UUID, year int) ([]*entity.Deal, error)

	// FindByAgentAndMonth retrieves the agent's deals closing in the given month.
	FindByAgentAndMonth(ctx context.Context, agentID uuid.UUID, year int, month time.Month) ([]*entity.Deal, error)

	// Update updates an existing deal in the database.
	Update(ctx context.Context, deal *entity.Deal) error

	// Delete soft-deletes a deal from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyDerived persists the derived cap_amount and final_income of the
	// given deals in a single transaction, so a replay result becomes visible
	// atomically or not at all.
	ApplyDerived(ctx context.Context, deals []*entity.Deal) error

	// ExistsByIDAndAgent checks if a deal exists for a given ID and agent.
	ExistsByIDAndAgent(ctx context.Context, id uuid.UUID, agentID uuid.UUID) (bool, error)
}
