package deal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/application/usecase/captracker"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// UpdateDealInput represents the input for updating a deal. Nil fields are
// left unchanged.
type UpdateDealInput struct {
	ID                        uuid.UUID
	AgentID                   uuid.UUID
	HouseAddress              *string
	AmountSoldFor             *decimal.Decimal
	CommissionPercent         *decimal.Decimal
	SplitPercent              *decimal.Decimal
	TeamBrokerageSplitPercent *decimal.Decimal
	LeadSource                *string
	ClosingDate               *time.Time
}

// UpdateDealOutput represents the output of updating a deal.
type UpdateDealOutput struct {
	Deal     *entity.Deal
	Progress *entity.CapProgress
}

// UpdateDealUseCase handles partial updates of deals. Any change to the
// economic fields or the closing date can shift where the cap completes, so
// the update replays the deal's period. Moving a deal across a period
// boundary replays both the new and the old period.
type UpdateDealUseCase struct {
	dealRepo     adapter.DealRepository
	recomputer   *captracker.Recomputer
	summaryCache adapter.SummaryCache
	leadSources  []string
}

// NewUpdateDealUseCase creates a new UpdateDealUseCase instance.
func NewUpdateDealUseCase(
	dealRepo adapter.DealRepository,
	recomputer *captracker.Recomputer,
	summaryCache adapter.SummaryCache,
	leadSources []string,
) *UpdateDealUseCase {
	return &UpdateDealUseCase{
		dealRepo:     dealRepo,
		recomputer:   recomputer,
		summaryCache: summaryCache,
		leadSources:  leadSources,
	}
}

// Execute validates and applies the update, then replays the affected periods.
func (uc *UpdateDealUseCase) Execute(ctx context.Context, input UpdateDealInput) (*UpdateDealOutput, error) {
	existing, err := uc.findOwnedDeal(ctx, input.ID, input.AgentID)
	if err != nil {
		return nil, err
	}

	oldYear := existing.ClosingDate.Year()

	if input.HouseAddress != nil {
		existing.HouseAddress = *input.HouseAddress
	}
	if input.AmountSoldFor != nil {
		existing.AmountSoldFor = *input.AmountSoldFor
	}
	if input.CommissionPercent != nil {
		existing.CommissionPercent = *input.CommissionPercent
	}
	if input.SplitPercent != nil {
		existing.SplitPercent = *input.SplitPercent
	}
	if input.TeamBrokerageSplitPercent != nil {
		existing.TeamBrokerageSplitPercent = *input.TeamBrokerageSplitPercent
	}
	if input.LeadSource != nil {
		existing.LeadSource = *input.LeadSource
	}
	if input.ClosingDate != nil {
		existing.ClosingDate = *input.ClosingDate
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := validateDealFields(
		existing.HouseAddress,
		existing.AmountSoldFor,
		existing.CommissionPercent,
		existing.SplitPercent,
		existing.TeamBrokerageSplitPercent,
		existing.LeadSource,
		existing.ClosingDate,
		uc.leadSources,
	); err != nil {
		return nil, err
	}

	newYear := existing.ClosingDate.Year()

	progress, err := uc.recomputer.RecomputePeriod(ctx, input.AgentID, newYear, func(ctx context.Context) error {
		return uc.dealRepo.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}

	// The deal left its old period; that period's consumption must be
	// re-derived without it.
	if oldYear != newYear {
		if _, err := uc.recomputer.RecomputePeriod(ctx, input.AgentID, oldYear, nil); err != nil {
			return nil, err
		}
	}

	updated, err := uc.dealRepo.FindByID(ctx, existing.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload updated deal: %w", err)
	}

	if err := uc.summaryCache.InvalidateAgent(ctx, input.AgentID); err != nil {
		return nil, err
	}

	return &UpdateDealOutput{Deal: updated, Progress: progress}, nil
}

// findOwnedDeal loads the deal and verifies the caller owns it.
func (uc *UpdateDealUseCase) findOwnedDeal(ctx context.Context, id, agentID uuid.UUID) (*entity.Deal, error) {
	existing, err := uc.dealRepo.FindByID(ctx, id)
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
	if existing.AgentID != agentID {
		return nil, domainerror.NewDealError(
			domainerror.ErrCodeNotAuthorizedDeal,
			"deal belongs to another agent",
			domainerror.ErrNotAuthorizedToModifyDeal,
		)
	}
	return existing, nil
}
