// Package summary contains the monthly summary use cases.
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// ComputeBudgetUtilization derives per-category budget utilization from one
// month's expenses. Expenses must already be in month order (date ascending,
// ID tiebreak); the budget in effect for a category is the one declared by
// the latest expense that carries one. Categories without a usable budget
// (absent or zero) report spend only, with a nil percent instead of a
// division by zero.
func ComputeBudgetUtilization(expenses []*entity.Expense) map[string]*entity.BudgetUtilization {
	hundred := decimal.NewFromInt(100)
	eighty := decimal.NewFromInt(80)

	spent := make(map[string]decimal.Decimal)
	budgets := make(map[string]*decimal.Decimal)
	for _, expense := range expenses {
		spent[expense.Category] = spent[expense.Category].Add(expense.Amount)
		if expense.Budget != nil {
			budget := *expense.Budget
			budgets[expense.Category] = &budget
		}
	}

	result := make(map[string]*entity.BudgetUtilization, len(spent))
	for category, total := range spent {
		utilization := &entity.BudgetUtilization{
			Spent:  total,
			Status: entity.BudgetStatusOnTrack,
		}

		budget := budgets[category]
		if budget != nil && budget.IsPositive() {
			remaining := budget.Sub(total)
			percent := total.Div(*budget).Mul(hundred)

			utilization.Budget = budget
			utilization.Remaining = &remaining
			utilization.Percent = &percent

			switch {
			case percent.GreaterThan(hundred):
				utilization.Status = entity.BudgetStatusOverBudget
			case percent.GreaterThan(eighty):
				utilization.Status = entity.BudgetStatusNearLimit
			}
		}

		result[category] = utilization
	}

	return result
}
