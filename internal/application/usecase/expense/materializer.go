package expense

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/application/adapter"
)

// RecurringMaterializer turns recurring templates into concrete monthly
// instances on demand. Materialization is lazy and idempotent: it runs every
// time a month is read, and the deterministic instance identity makes repeat
// runs no-ops. A reference date is always passed in explicitly; the
// materializer never reads a wall clock.
type RecurringMaterializer struct {
	expenseRepo adapter.ExpenseRepository
}

// NewRecurringMaterializer creates a new RecurringMaterializer instance.
func NewRecurringMaterializer(expenseRepo adapter.ExpenseRepository) *RecurringMaterializer {
	return &RecurringMaterializer{expenseRepo: expenseRepo}
}

// MaterializeMonth ensures every template covering the given month has its
// instance for that month. A template covers the months from its start date
// through December of the same calendar year.
func (m *RecurringMaterializer) MaterializeMonth(ctx context.Context, agentID uuid.UUID, year int, month time.Month) error {
	templates, err := m.expenseRepo.FindTemplatesByAgent(ctx, agentID)
	if err != nil {
		return fmt.Errorf("failed to load recurring templates: %w", err)
	}

	created := 0
	for _, template := range templates {
		if !template.CoversMonth(year, month) {
			continue
		}
		instance := template.MaterializeInstance(year, month)
		if err := m.expenseRepo.CreateInstanceIfAbsent(ctx, instance); err != nil {
			return fmt.Errorf("failed to materialize template %s for %04d-%02d: %w", template.ID, year, month, err)
		}
		created++
	}

	if created > 0 {
		slog.Debug("Materialized recurring expenses",
			"agentID", agentID,
			"year", year,
			"month", int(month),
			"templates", created,
		)
	}

	return nil
}
