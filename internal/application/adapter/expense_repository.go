package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense (or recurring template) in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// CreateInstanceIfAbsent inserts a materialized recurring instance unless
	// a row with the same derived ID already exists (including soft-deleted
	// rows, so a removed occurrence is not resurrected). Safe under
	// concurrent materialization of the same (template, month).
	CreateInstanceIfAbsent(ctx context.Context, instance *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByAgent retrieves all non-template expenses for an agent, most recent first.
	FindByAgent(ctx context.Context, agentID uuid.UUID) ([]*entity.Expense, error)

	// FindByAgentAndMonth retrieves the agent's non-template expenses dated in
	// the given month, ordered by date ascending with ties broken by ID.
	// Recurring templates are never included.
	FindByAgentAndMonth(ctx context.Context, agentID uuid.UUID, year int, month time.Month) ([]*entity.Expense, error)

	// FindTemplatesByAgent retrieves the agent's active recurring templates.
	FindTemplatesByAgent(ctx context.Context, agentID uuid.UUID) ([]*entity.Expense, error)

	// Update updates an existing expense in the database.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete soft-deletes an expense from the database. Deleting a template
	// stops future materialization; past instances are untouched.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByIDAndAgent checks if an expense exists for a given ID and agent.
	ExistsByIDAndAgent(ctx context.Context, id uuid.UUID, agentID uuid.UUID) (bool, error)
}
