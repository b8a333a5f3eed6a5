// Package captracker contains commission-cap tracking use cases.
package captracker

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// ReplayResult is the outcome of replaying a cap period: every deal in the
// period with derived fields recomputed, plus the resulting progress snapshot.
type ReplayResult struct {
	Deals    []*entity.Deal
	Progress *entity.CapProgress
}

// Replay recomputes cap consumption for one cap period from scratch.
//
// Deals are replayed in closing-date order (ties broken by deal ID) against
// the period's total cap. Each deal's pre-cap income is consumed by the cap
// until the cap completes; whatever is left is the deal's final income. The
// function is pure: it never reads a clock, never touches storage, and
// returns identical output for identical input. Callers persist the derived
// fields atomically afterwards.
func Replay(year int, deals []*entity.Deal, totalCap decimal.Decimal) *ReplayResult {
	ordered := make([]*entity.Deal, len(deals))
	copy(ordered, deals)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].ClosingDate.Equal(ordered[j].ClosingDate) {
			return ordered[i].ClosingDate.Before(ordered[j].ClosingDate)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	paidSoFar := decimal.Zero
	contributing := 0

	for _, deal := range ordered {
		preCap := deal.PreCapIncome()

		remaining := totalCap.Sub(paidSoFar)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}

		capAmount := preCap
		if capAmount.GreaterThan(remaining) {
			capAmount = remaining
		}

		deal.CapAmount = capAmount
		deal.FinalIncome = preCap.Sub(capAmount)

		paidSoFar = paidSoFar.Add(capAmount)
		if capAmount.IsPositive() {
			contributing++
		}
	}

	return &ReplayResult{
		Deals:    ordered,
		Progress: entity.NewCapProgress(year, totalCap, paidSoFar, contributing),
	}
}
