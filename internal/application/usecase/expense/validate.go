// Package expense contains expense management use cases, including the
// recurring template materializer.
package expense

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// validateExpenseFields checks every writable expense field against the
// domain rules. The category must be one of the configured values.
func validateExpenseFields(
	date time.Time,
	category string,
	amount decimal.Decimal,
	budget *decimal.Decimal,
	allowedCategories []string,
) error {
	if date.IsZero() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"date is required",
			domainerror.ErrInvalidExpenseDate,
		)
	}
	if category == "" || !slices.Contains(allowedCategories, category) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCategory,
			"category is not a configured value",
			domainerror.ErrInvalidExpenseCategory,
		)
	}
	if amount.IsNegative() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must not be negative",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	if budget != nil && budget.IsNegative() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseBudget,
			"budget must not be negative",
			domainerror.ErrInvalidExpenseBudget,
		)
	}
	return nil
}
