package captracker

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// UpdateConfigInput represents the input for setting the cap target of a period.
type UpdateConfigInput struct {
	AgentID  uuid.UUID
	Year     int
	TotalCap decimal.Decimal
}

// UpdateConfigOutput represents the output of setting a cap target.
type UpdateConfigOutput struct {
	Progress *entity.CapProgress
}

// UpdateConfigUseCase sets the agent's cap target for a period. Changing the
// target shifts where in the period the cap completes, so the period is
// replayed before the new progress is returned.
type UpdateConfigUseCase struct {
	capConfigRepo adapter.CapConfigRepository
	recomputer    *Recomputer
	summaryCache  adapter.SummaryCache
}

// NewUpdateConfigUseCase creates a new UpdateConfigUseCase instance.
func NewUpdateConfigUseCase(
	capConfigRepo adapter.CapConfigRepository,
	recomputer *Recomputer,
	summaryCache adapter.SummaryCache,
) *UpdateConfigUseCase {
	return &UpdateConfigUseCase{
		capConfigRepo: capConfigRepo,
		recomputer:    recomputer,
		summaryCache:  summaryCache,
	}
}

// Execute validates, stores, and applies the new cap target.
func (uc *UpdateConfigUseCase) Execute(ctx context.Context, input UpdateConfigInput) (*UpdateConfigOutput, error) {
	if input.Year < 2000 || input.Year > 2200 {
		return nil, domainerror.NewCapError(
			domainerror.ErrCodeInvalidCapYear,
			"year is out of range",
			false,
			domainerror.ErrInvalidCapYear,
		)
	}
	if !input.TotalCap.IsPositive() {
		return nil, domainerror.NewCapError(
			domainerror.ErrCodeInvalidTotalCap,
			"totalCap must be greater than zero",
			false,
			domainerror.ErrInvalidTotalCap,
		)
	}

	progress, err := uc.recomputer.RecomputePeriod(ctx, input.AgentID, input.Year, func(ctx context.Context) error {
		return uc.capConfigRepo.Upsert(ctx, entity.NewCapConfiguration(input.AgentID, input.Year, input.TotalCap))
	})
	if err != nil {
		return nil, err
	}

	if err := uc.summaryCache.InvalidateAgent(ctx, input.AgentID); err != nil {
		return nil, err
	}

	return &UpdateConfigOutput{Progress: progress}, nil
}
