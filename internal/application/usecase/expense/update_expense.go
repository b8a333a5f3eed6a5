package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// UpdateExpenseInput represents the input for updating an expense. Nil fields
// are left unchanged. ClearBudget removes the budget; it wins over Budget.
type UpdateExpenseInput struct {
	ID          uuid.UUID
	AgentID     uuid.UUID
	Date        *time.Time
	Category    *string
	Amount      *decimal.Decimal
	Budget      *decimal.Decimal
	ClearBudget bool
	Description *string
	Recurring   *bool
}

// UpdateExpenseOutput represents the output of updating an expense.
type UpdateExpenseOutput struct {
	Expense *entity.Expense
}

// UpdateExpenseUseCase handles partial updates of expenses and templates.
// The recurring flag is immutable: a concrete expense never becomes a
// template, and a template never becomes a concrete expense. Editing a
// template only affects months materialized after the edit.
type UpdateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	summaryCache adapter.SummaryCache
	categories   []string
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	summaryCache adapter.SummaryCache,
	categories []string,
) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo:  expenseRepo,
		summaryCache: summaryCache,
		categories:   categories,
	}
}

// Execute validates and applies the update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*UpdateExpenseOutput, error) {
	existing, err := findOwnedExpense(ctx, uc.expenseRepo, input.ID, input.AgentID)
	if err != nil {
		return nil, err
	}

	if input.Recurring != nil && *input.Recurring != existing.Recurring {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeRecurringFlagImmutable,
			"recurring cannot be changed after creation",
			domainerror.ErrRecurringFlagImmutable,
		)
	}

	if input.Date != nil {
		existing.Date = *input.Date
	}
	if input.Category != nil {
		existing.Category = *input.Category
	}
	if input.Amount != nil {
		existing.Amount = *input.Amount
	}
	switch {
	case input.ClearBudget:
		existing.Budget = nil
	case input.Budget != nil:
		existing.Budget = input.Budget
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := validateExpenseFields(existing.Date, existing.Category, existing.Amount, existing.Budget, uc.categories); err != nil {
		return nil, err
	}

	if err := uc.expenseRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	if err := uc.summaryCache.InvalidateAgent(ctx, input.AgentID); err != nil {
		return nil, err
	}

	return &UpdateExpenseOutput{Expense: existing}, nil
}

// findOwnedExpense loads the expense and verifies the caller owns it.
func findOwnedExpense(ctx context.Context, repo adapter.ExpenseRepository, id, agentID uuid.UUID) (*entity.Expense, error) {
	existing, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, domainerror.NewExpenseError(
				domainerror.ErrCodeExpenseNotFound,
				"expense not found",
				domainerror.ErrExpenseNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load expense: %w", err)
	}
	if existing.AgentID != agentID {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeNotAuthorizedExpense,
			"expense belongs to another agent",
			domainerror.ErrNotAuthorizedToModifyExpense,
		)
	}
	return existing, nil
}
