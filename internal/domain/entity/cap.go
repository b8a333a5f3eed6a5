package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CapConfiguration holds an agent's commission cap target for one cap period.
// The cap period is a calendar year keyed by the deal closing date.
type CapConfiguration struct {
	ID        uuid.UUID
	AgentID   uuid.UUID
	Year      int
	TotalCap  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCapConfiguration creates a new CapConfiguration entity.
func NewCapConfiguration(agentID uuid.UUID, year int, totalCap decimal.Decimal) *CapConfiguration {
	now := time.Now().UTC()

	return &CapConfiguration{
		ID:        uuid.New(),
		AgentID:   agentID,
		Year:      year,
		TotalCap:  totalCap,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CapProgress is the derived state of an agent's cap consumption within one
// period. It is computed by replaying the period's deals in closing-date
// order and is never persisted.
type CapProgress struct {
	Year              int
	TotalCap          decimal.Decimal
	PaidSoFar         decimal.Decimal
	Remaining         decimal.Decimal // max(0, TotalCap - PaidSoFar)
	Percentage        decimal.Decimal // min(100, PaidSoFar / TotalCap * 100)
	DealsContributing int
	IsComplete        bool
}

// NewCapProgress derives a CapProgress snapshot from accumulated cap
// consumption. Percentage is clamped at 100 however far PaidSoFar overshoots.
func NewCapProgress(year int, totalCap, paidSoFar decimal.Decimal, dealsContributing int) *CapProgress {
	hundred := decimal.NewFromInt(100)

	remaining := totalCap.Sub(paidSoFar)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	percentage := decimal.Zero
	if totalCap.IsPositive() {
		percentage = paidSoFar.Div(totalCap).Mul(hundred)
		if percentage.GreaterThan(hundred) {
			percentage = hundred
		}
	}

	return &CapProgress{
		Year:              year,
		TotalCap:          totalCap,
		PaidSoFar:         paidSoFar,
		Remaining:         remaining,
		Percentage:        percentage,
		DealsContributing: dealsContributing,
		IsComplete:        paidSoFar.GreaterThanOrEqual(totalCap),
	}
}
