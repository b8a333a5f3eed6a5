package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// CreateExpenseInput represents the input for creating an expense.
// Recurring marks the expense as a template to be materialized monthly.
type CreateExpenseInput struct {
	AgentID     uuid.UUID
	Date        time.Time
	Category    string
	Amount      decimal.Decimal
	Budget      *decimal.Decimal
	Description string
	Recurring   bool
}

// CreateExpenseOutput represents the output of creating an expense.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles the creation of expenses and recurring
// templates.
type CreateExpenseUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	summaryCache adapter.SummaryCache
	categories   []string
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(
	expenseRepo adapter.ExpenseRepository,
	summaryCache adapter.SummaryCache,
	categories []string,
) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo:  expenseRepo,
		summaryCache: summaryCache,
		categories:   categories,
	}
}

// Execute validates and creates the expense.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	if err := validateExpenseFields(input.Date, input.Category, input.Amount, input.Budget, uc.categories); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(
		input.AgentID,
		input.Date,
		input.Category,
		input.Amount,
		input.Budget,
		input.Description,
		input.Recurring,
	)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	if err := uc.summaryCache.InvalidateAgent(ctx, input.AgentID); err != nil {
		return nil, err
	}

	slog.Info("Expense created",
		"expenseID", expense.ID,
		"agentID", input.AgentID,
		"category", expense.Category,
		"recurring", expense.Recurring,
	)

	return &CreateExpenseOutput{Expense: expense}, nil
}
