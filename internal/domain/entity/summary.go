package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus classifies a category's budget utilization for presentation.
// The bands are reporting metadata only and never alter the numeric values.
type BudgetStatus string

const (
	BudgetStatusOnTrack    BudgetStatus = "on_track"
	BudgetStatusNearLimit  BudgetStatus = "near_limit"  // 80 < percent <= 100
	BudgetStatusOverBudget BudgetStatus = "over_budget" // percent > 100
)

// BudgetUtilization compares one category's spend against its configured
// budget for a month. Percent is nil when no usable budget exists (absent or
// zero) rather than dividing by zero.
type BudgetUtilization struct {
	Budget    *decimal.Decimal `json:"budget,omitempty"`
	Spent     decimal.Decimal  `json:"spent"`
	Remaining *decimal.Decimal `json:"remaining,omitempty"` // May be negative on overspend
	Percent   *decimal.Decimal `json:"percent,omitempty"`
	Status    BudgetStatus     `json:"status"`
}

// MonthlySummary is the read-only composite for one (agent, month). It is
// fully derived from the underlying deal and expense records and is never
// persisted independently of them.
type MonthlySummary struct {
	Year              int                           `json:"year"`
	Month             time.Month                    `json:"month"`
	TotalIncome       decimal.Decimal               `json:"total_income"`
	TotalExpenses     decimal.Decimal               `json:"total_expenses"`
	NetIncome         decimal.Decimal               `json:"net_income"` // May be negative
	Deals             []*Deal                       `json:"deals"`
	Expenses          []*Expense                    `json:"expenses"`
	BudgetUtilization map[string]*BudgetUtilization `json:"budget_utilization"`
}
