package captracker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// GetProgressInput represents the input for retrieving cap progress.
type GetProgressInput struct {
	AgentID uuid.UUID
	Year    int
}

// GetProgressOutput represents the output of retrieving cap progress.
type GetProgressOutput struct {
	Progress *entity.CapProgress
}

// GetProgressUseCase derives the agent's cap progress for one period by
// replaying the period's deals.
type GetProgressUseCase struct {
	dealRepo      adapter.DealRepository
	capConfigRepo adapter.CapConfigRepository
	defaultCap    decimal.Decimal
}

// NewGetProgressUseCase creates a new GetProgressUseCase instance.
func NewGetProgressUseCase(
	dealRepo adapter.DealRepository,
	capConfigRepo adapter.CapConfigRepository,
	defaultCap decimal.Decimal,
) *GetProgressUseCase {
	return &GetProgressUseCase{
		dealRepo:      dealRepo,
		capConfigRepo: capConfigRepo,
		defaultCap:    defaultCap,
	}
}

// Execute computes the cap progress for the requested period.
func (uc *GetProgressUseCase) Execute(ctx context.Context, input GetProgressInput) (*GetProgressOutput, error) {
	if input.Year < 2000 || input.Year > 2200 {
		return nil, domainerror.NewCapError(
			domainerror.ErrCodeInvalidCapYear,
			"year is out of range",
			false,
			domainerror.ErrInvalidCapYear,
		)
	}

	totalCap, err := resolveTotalCap(ctx, uc.capConfigRepo, input.AgentID, input.Year, uc.defaultCap)
	if err != nil {
		return nil, err
	}

	deals, err := uc.dealRepo.FindByAgentAndYear(ctx, input.AgentID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals for cap period: %w", err)
	}

	result := Replay(input.Year, deals, totalCap)

	return &GetProgressOutput{Progress: result.Progress}, nil
}
