package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// CreateDealRequest represents the request body for creating a deal.
// SplitPercent defaults to 100 and TeamBrokerageSplitPercent to 0.
type CreateDealRequest struct {
	HouseAddress              string           `json:"house_address" binding:"required"`
	AmountSoldFor             decimal.Decimal  `json:"amount_sold_for" binding:"required"`
	CommissionPercent         decimal.Decimal  `json:"commission_percent" binding:"required"`
	SplitPercent              *decimal.Decimal `json:"split_percent"`
	TeamBrokerageSplitPercent *decimal.Decimal `json:"team_brokerage_split_percent"`
	LeadSource                string           `json:"lead_source" binding:"required"`
	ClosingDate               string           `json:"closing_date" binding:"required"` // YYYY-MM-DD
}

// UpdateDealRequest represents the request body for updating a deal. Omitted
// fields are left unchanged.
type UpdateDealRequest struct {
	HouseAddress              *string          `json:"house_address"`
	AmountSoldFor             *decimal.Decimal `json:"amount_sold_for"`
	CommissionPercent         *decimal.Decimal `json:"commission_percent"`
	SplitPercent              *decimal.Decimal `json:"split_percent"`
	TeamBrokerageSplitPercent *decimal.Decimal `json:"team_brokerage_split_percent"`
	LeadSource                *string          `json:"lead_source"`
	ClosingDate               *string          `json:"closing_date"` // YYYY-MM-DD
}

// DealResponse represents a deal in API responses.
type DealResponse struct {
	ID                        string          `json:"id"`
	HouseAddress              string          `json:"house_address"`
	AmountSoldFor             decimal.Decimal `json:"amount_sold_for"`
	CommissionPercent         decimal.Decimal `json:"commission_percent"`
	SplitPercent              decimal.Decimal `json:"split_percent"`
	TeamBrokerageSplitPercent decimal.Decimal `json:"team_brokerage_split_percent"`
	LeadSource                string          `json:"lead_source"`
	ClosingDate               string          `json:"closing_date"`
	PreCapIncome              decimal.Decimal `json:"pre_cap_income"`
	CapAmount                 decimal.Decimal `json:"cap_amount"`
	FinalIncome               decimal.Decimal `json:"final_income"`
	CreatedAt                 time.Time       `json:"created_at"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

// DealListResponse represents a list of deals in API responses.
type DealListResponse struct {
	Deals []DealResponse `json:"deals"`
}

// ToDealResponse converts a Deal entity to a DealResponse.
func ToDealResponse(deal *entity.Deal) DealResponse {
	return DealResponse{
		ID:                        deal.ID.String(),
		HouseAddress:              deal.HouseAddress,
		AmountSoldFor:             deal.AmountSoldFor,
		CommissionPercent:         deal.CommissionPercent,
		SplitPercent:              deal.SplitPercent,
		TeamBrokerageSplitPercent: deal.TeamBrokerageSplitPercent,
		LeadSource:                deal.LeadSource,
		ClosingDate:               deal.ClosingDate.Format(time.DateOnly),
		PreCapIncome:              deal.PreCapIncome(),
		CapAmount:                 deal.CapAmount,
		FinalIncome:               deal.FinalIncome,
		CreatedAt:                 deal.CreatedAt,
		UpdatedAt:                 deal.UpdatedAt,
	}
}

// ToDealListResponse converts Deal entities to a DealListResponse.
func ToDealListResponse(deals []*entity.Deal) DealListResponse {
	responses := make([]DealResponse, len(deals))
	for i, deal := range deals {
		responses[i] = ToDealResponse(deal)
	}
	return DealListResponse{Deals: responses}
}
