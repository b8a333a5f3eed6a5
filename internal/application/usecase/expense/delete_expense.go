package expense

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for deleting an expense.
type DeleteExpenseInput struct {
	ID      uuid.UUID
	AgentID uuid.UUID
}

// DeleteExpenseUseCase handles soft deletion of expenses. Deleting a template
// stops future materialization; already-materialized instances stay. Deleting
// an instance removes that single occurrence, and the deterministic instance
// identity keeps a later materialization pass from resurrecting it.
type DeleteExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	summaryCache adapter.SummaryCache
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	summaryCache adapter.SummaryCache,
) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo:  expenseRepo,
		summaryCache: summaryCache,
	}
}

// Execute deletes the expense.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	existing, err := findOwnedExpense(ctx, uc.expenseRepo, input.ID, input.AgentID)
	if err != nil {
		return err
	}

	if err := uc.expenseRepo.Delete(ctx, existing.ID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := uc.summaryCache.InvalidateAgent(ctx, input.AgentID); err != nil {
		return err
	}

	slog.Info("Expense deleted",
		"expenseID", input.ID,
		"agentID", input.AgentID,
		"template", existing.Recurring,
	)

	return nil
}
