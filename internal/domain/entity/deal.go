// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deal represents one closed transaction attributed to an agent.
type Deal struct {
	ID                        uuid.UUID
	AgentID                   uuid.UUID
	HouseAddress              string
	AmountSoldFor             decimal.Decimal
	CommissionPercent         decimal.Decimal // 0-100
	SplitPercent              decimal.Decimal // 0-100, agent's share of the total commission
	TeamBrokerageSplitPercent decimal.Decimal // 0-100, fraction redirected to a team/brokerage
	LeadSource                string
	ClosingDate               time.Time

	// Derived by the cap replay. CapAmount is the portion of this deal's
	// commission consumed by the yearly cap; FinalIncome is what the agent keeps.
	CapAmount   decimal.Decimal
	FinalIncome decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewDeal creates a new Deal entity. Derived fields start at zero and are
// populated by the cap replay before the deal is returned to callers.
func NewDeal(
	agentID uuid.UUID,
	houseAddress string,
	amountSoldFor decimal.Decimal,
	commissionPercent decimal.Decimal,
	splitPercent decimal.Decimal,
	teamBrokerageSplitPercent decimal.Decimal,
	leadSource string,
	closingDate time.Time,
) *Deal {
	now := time.Now().UTC()

	return &Deal{
		ID:                        uuid.New(),
		AgentID:                   agentID,
		HouseAddress:              houseAddress,
		AmountSoldFor:             amountSoldFor,
		CommissionPercent:         commissionPercent,
		SplitPercent:              splitPercent,
		TeamBrokerageSplitPercent: teamBrokerageSplitPercent,
		LeadSource:                leadSource,
		ClosingDate:               closingDate,
		CapAmount:                 decimal.Zero,
		FinalIncome:               decimal.Zero,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}
}

// PreCapIncome derives the agent's income for this deal before any cap
// deduction: gross commission, reduced to the agent's split, minus the
// team/brokerage share. Never negative.
func (d *Deal) PreCapIncome() decimal.Decimal {
	hundred := decimal.NewFromInt(100)

	grossCommission := d.AmountSoldFor.Mul(d.CommissionPercent).Div(hundred)
	agentGrossShare := grossCommission.Mul(d.SplitPercent).Div(hundred)
	teamDeduction := agentGrossShare.Mul(d.TeamBrokerageSplitPercent).Div(hundred)

	preCap := agentGrossShare.Sub(teamDeduction)
	if preCap.IsNegative() {
		return decimal.Zero
	}
	return preCap
}
