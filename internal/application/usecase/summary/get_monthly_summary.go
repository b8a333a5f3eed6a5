package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/application/usecase/expense"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// GetMonthlySummaryInput represents the input for retrieving a monthly summary.
type GetMonthlySummaryInput struct {
	AgentID uuid.UUID
	Year    int
	Month   time.Month
}

// GetMonthlySummaryOutput represents the output of retrieving a monthly summary.
type GetMonthlySummaryOutput struct {
	Summary *entity.MonthlySummary
}

// GetMonthlySummaryUseCase composes the P&L view of one month: the month's
// deals with their post-cap income, its expenses with recurring occurrences
// materialized, and per-category budget utilization. The composed summary is
// cached per (agent, month); the cache is dropped on any write.
type GetMonthlySummaryUseCase struct {
	dealRepo     adapter.DealRepository
	expenseRepo  adapter.ExpenseRepository
	materializer *expense.RecurringMaterializer
	summaryCache adapter.SummaryCache
}

// NewGetMonthlySummaryUseCase creates a new GetMonthlySummaryUseCase instance.
func NewGetMonthlySummaryUseCase(
	dealRepo adapter.DealRepository,
	expenseRepo adapter.ExpenseRepository,
	materializer *expense.RecurringMaterializer,
	summaryCache adapter.SummaryCache,
) *GetMonthlySummaryUseCase {
	return &GetMonthlySummaryUseCase{
		dealRepo:     dealRepo,
		expenseRepo:  expenseRepo,
		materializer: materializer,
		summaryCache: summaryCache,
	}
}

// Execute returns the monthly summary, serving from cache when possible.
func (uc *GetMonthlySummaryUseCase) Execute(ctx context.Context, input GetMonthlySummaryInput) (*GetMonthlySummaryOutput, error) {
	if input.Year < 2000 || input.Year > 2200 || input.Month < time.January || input.Month > time.December {
		return nil, domainerror.NewSummaryError(
			domainerror.ErrCodeInvalidMonth,
			"month must be a valid YYYY-MM",
			domainerror.ErrInvalidMonth,
		)
	}

	cached, err := uc.summaryCache.Get(ctx, input.AgentID, input.Year, input.Month)
	if err != nil {
		// A cache failure degrades to a recompute, never to a request failure.
		slog.Warn("Summary cache read failed", "agentID", input.AgentID, "error", err)
	} else if cached != nil {
		return &GetMonthlySummaryOutput{Summary: cached}, nil
	}

	if err := uc.materializer.MaterializeMonth(ctx, input.AgentID, input.Year, input.Month); err != nil {
		return nil, err
	}

	deals, err := uc.dealRepo.FindByAgentAndMonth(ctx, input.AgentID, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals for summary: %w", err)
	}
	expenses, err := uc.expenseRepo.FindByAgentAndMonth(ctx, input.AgentID, input.Year, input.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for summary: %w", err)
	}

	totalIncome := decimal.Zero
	for _, deal := range deals {
		totalIncome = totalIncome.Add(deal.FinalIncome)
	}
	totalExpenses := decimal.Zero
	for _, exp := range expenses {
		totalExpenses = totalExpenses.Add(exp.Amount)
	}

	summary := &entity.MonthlySummary{
		Year:              input.Year,
		Month:             input.Month,
		TotalIncome:       totalIncome,
		TotalExpenses:     totalExpenses,
		NetIncome:         totalIncome.Sub(totalExpenses),
		Deals:             deals,
		Expenses:          expenses,
		BudgetUtilization: ComputeBudgetUtilization(expenses),
	}

	if err := uc.summaryCache.Set(ctx, input.AgentID, input.Year, input.Month, summary); err != nil {
		slog.Warn("Summary cache write failed", "agentID", input.AgentID, "error", err)
	}

	return &GetMonthlySummaryOutput{Summary: summary}, nil
}
