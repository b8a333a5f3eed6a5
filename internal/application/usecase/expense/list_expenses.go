package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// ListExpensesInput represents the input for listing an agent's expenses.
// With Year and Month set the list is scoped to that month and recurring
// templates for the month are materialized first. Templates set to true
// returns the agent's recurring templates instead.
type ListExpensesInput struct {
	AgentID   uuid.UUID
	Year      *int
	Month     *time.Month
	Templates bool
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
}

// ListExpensesUseCase handles retrieval of an agent's expenses.
type ListExpensesUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	materializer *RecurringMaterializer
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(
	expenseRepo adapter.ExpenseRepository,
	materializer *RecurringMaterializer,
) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo:  expenseRepo,
		materializer: materializer,
	}
}

// Execute lists the agent's expenses, materializing the requested month first
// so recurring occurrences are present in the result.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.Templates {
		templates, err := uc.expenseRepo.FindTemplatesByAgent(ctx, input.AgentID)
		if err != nil {
			return nil, fmt.Errorf("failed to list templates: %w", err)
		}
		return &ListExpensesOutput{Expenses: templates}, nil
	}

	if input.Year != nil && input.Month != nil {
		if err := uc.materializer.MaterializeMonth(ctx, input.AgentID, *input.Year, *input.Month); err != nil {
			return nil, err
		}
		expenses, err := uc.expenseRepo.FindByAgentAndMonth(ctx, input.AgentID, *input.Year, *input.Month)
		if err != nil {
			return nil, fmt.Errorf("failed to list expenses: %w", err)
		}
		return &ListExpensesOutput{Expenses: expenses}, nil
	}

	expenses, err := uc.expenseRepo.FindByAgent(ctx, input.AgentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return &ListExpensesOutput{Expenses: expenses}, nil
}

// GetExpenseInput represents the input for retrieving one expense.
type GetExpenseInput struct {
	ID      uuid.UUID
	AgentID uuid.UUID
}

// GetExpenseOutput represents the output of retrieving one expense.
type GetExpenseOutput struct {
	Expense *entity.Expense
}

// GetExpenseUseCase handles retrieval of a single expense.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{expenseRepo: expenseRepo}
}

// Execute retrieves the expense and verifies the caller owns it.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*GetExpenseOutput, error) {
	expense, err := findOwnedExpense(ctx, uc.expenseRepo, input.ID, input.AgentID)
	if err != nil {
		return nil, err
	}
	return &GetExpenseOutput{Expense: expense}, nil
}
