package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// UpdateCapConfigRequest represents the request body for setting a period's
// cap target.
type UpdateCapConfigRequest struct {
	Year     int             `json:"year" binding:"required"`
	TotalCap decimal.Decimal `json:"total_cap" binding:"required"`
}

// CapProgressResponse represents cap progress in API responses.
type CapProgressResponse struct {
	Year              int             `json:"year"`
	TotalCap          decimal.Decimal `json:"total_cap"`
	PaidSoFar         decimal.Decimal `json:"paid_so_far"`
	Remaining         decimal.Decimal `json:"remaining"`
	Percentage        decimal.Decimal `json:"percentage"`
	DealsContributing int             `json:"deals_contributing"`
	IsComplete        bool            `json:"is_complete"`
}

// ToCapProgressResponse converts a CapProgress entity to a CapProgressResponse.
func ToCapProgressResponse(progress *entity.CapProgress) CapProgressResponse {
	return CapProgressResponse{
		Year:              progress.Year,
		TotalCap:          progress.TotalCap,
		PaidSoFar:         progress.PaidSoFar,
		Remaining:         progress.Remaining,
		Percentage:        progress.Percentage,
		DealsContributing: progress.DealsContributing,
		IsComplete:        progress.IsComplete,
	}
}
