package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// BudgetUtilizationResponse represents one category's budget utilization in
// API responses. Percent is omitted when the category has no usable budget.
type BudgetUtilizationResponse struct {
	Budget    *decimal.Decimal `json:"budget,omitempty"`
	Spent     decimal.Decimal  `json:"spent"`
	Remaining *decimal.Decimal `json:"remaining,omitempty"`
	Percent   *decimal.Decimal `json:"percent,omitempty"`
	Status    string           `json:"status"`
}

// MonthlySummaryResponse represents the monthly P&L summary in API responses.
type MonthlySummaryResponse struct {
	Month             string                               `json:"month"` // YYYY-MM
	TotalIncome       decimal.Decimal                      `json:"total_income"`
	TotalExpenses     decimal.Decimal                      `json:"total_expenses"`
	NetIncome         decimal.Decimal                      `json:"net_income"`
	Deals             []DealResponse                       `json:"deals"`
	Expenses          []ExpenseResponse                    `json:"expenses"`
	BudgetUtilization map[string]BudgetUtilizationResponse `json:"budget_utilization"`
}

// ToMonthlySummaryResponse converts a MonthlySummary entity to a response.
func ToMonthlySummaryResponse(summary *entity.MonthlySummary) MonthlySummaryResponse {
	utilization := make(map[string]BudgetUtilizationResponse, len(summary.BudgetUtilization))
	for category, u := range summary.BudgetUtilization {
		utilization[category] = BudgetUtilizationResponse{
			Budget:    u.Budget,
			Spent:     u.Spent,
			Remaining: u.Remaining,
			Percent:   u.Percent,
			Status:    string(u.Status),
		}
	}

	return MonthlySummaryResponse{
		Month:             fmt.Sprintf("%04d-%02d", summary.Year, summary.Month),
		TotalIncome:       summary.TotalIncome,
		TotalExpenses:     summary.TotalExpenses,
		NetIncome:         summary.NetIncome,
		Deals:             ToDealListResponse(summary.Deals).Deals,
		Expenses:          ToExpenseListResponse(summary.Expenses).Expenses,
		BudgetUtilization: utilization,
	}
}
