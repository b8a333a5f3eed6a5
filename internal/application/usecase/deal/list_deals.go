package deal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// ListDealsInput represents the input for listing an agent's deals.
// Year narrows the list to one cap period; Month (with Year) to one month.
type ListDealsInput struct {
	AgentID uuid.UUID
	Year    *int
	Month   *time.Month
}

// ListDealsOutput represents the output of listing deals.
type ListDealsOutput struct {
	Deals []*entity.Deal
}

// ListDealsUseCase handles retrieval of an agent's deals.
type ListDealsUseCase struct {
	dealRepo adapter.DealRepository
}

// NewListDealsUseCase creates a new ListDealsUseCase instance.
func NewListDealsUseCase(dealRepo adapter.DealRepository) *ListDealsUseCase {
	return &ListDealsUseCase{dealRepo: dealRepo}
}

// Execute lists the agent's deals, optionally scoped to a year or month.
func (uc *ListDealsUseCase) Execute(ctx context.Context, input ListDealsInput) (*ListDealsOutput, error) {
	var (
		deals []*entity.Deal
		err   error
	)
	switch {
	case input.Year != nil && input.Month != nil:
		deals, err = uc.dealRepo.FindByAgentAndMonth(ctx, input.AgentID, *input.Year, *input.Month)
	case input.Year != nil:
		deals, err = uc.dealRepo.FindByAgentAndYear(ctx, input.AgentID, *input.Year)
	default:
		deals, err = uc.dealRepo.FindByAgent(ctx, input.AgentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}

	return &ListDealsOutput{Deals: deals}, nil
}

// GetDealInput represents the input for retrieving one deal.
type GetDealInput struct {
	ID      uuid.UUID
	AgentID uuid.UUID
}

// GetDealOutput represents the output of retrieving one deal.
type GetDealOutput struct {
	Deal *entity.Deal
}

// GetDealUseCase handles retrieval of a single deal.
type GetDealUseCase struct {
	dealRepo adapter.DealRepository
}

// NewGetDealUseCase creates a new GetDealUseCase instance.
func NewGetDealUseCase(dealRepo adapter.DealRepository) *GetDealUseCase {
	return &GetDealUseCase{dealRepo: dealRepo}
}

// Execute retrieves the deal and verifies the caller owns it.
func (uc *GetDealUseCase) Execute(ctx context.Context, input GetDealInput) (*GetDealOutput, error) {
	deal, err := uc.dealRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrDealNotFound) {
			return nil, domainerror.NewDealError(
				domainerror.ErrCodeDealNotFound,
				"deal not found",
				domainerror.ErrDealNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load deal: %w", err)
	}
	if deal.AgentID != input.AgentID {
		return nil, domainerror.NewDealError(
			domainerror.ErrCodeNotAuthorizedDeal,
			"deal belongs to another agent",
			domainerror.ErrNotAuthorizedToModifyDeal,
		)
	}

	return &GetDealOutput{Deal: deal}, nil
}
