package deal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/application/usecase/captracker"
	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// CreateDealInput represents the input for creating a deal. SplitPercent
// defaults to 100 and TeamBrokerageSplitPercent to 0 when omitted.
type CreateDealInput struct {
	AgentID                   uuid.UUID
	HouseAddress              string
	AmountSoldFor             decimal.Decimal
	CommissionPercent         decimal.Decimal
	SplitPercent              *decimal.Decimal
	TeamBrokerageSplitPercent *decimal.Decimal
	LeadSource                string
	ClosingDate               time.Time
}

// CreateDealOutput represents the output of creating a deal. The deal carries
// the derived cap fields produced by the period replay; Progress is the cap
// state of the deal's period after the write.
type CreateDealOutput struct {
	Deal     *entity.Deal
	Progress *entity.CapProgress
}

// CreateDealUseCase handles the creation of deals. A new deal changes cap
// consumption for every deal closing later in the same period, so creation
// runs inside a period replay.
type CreateDealUseCase struct {
	dealRepo     adapter.DealRepository
	recomputer   *captracker.Recomputer
	summaryCache adapter.SummaryCache
	leadSources  []string
}

// NewCreateDealUseCase creates a new CreateDealUseCase instance.
func NewCreateDealUseCase(
	dealRepo adapter.DealRepository,
	recomputer *captracker.Recomputer,
	summaryCache adapter.SummaryCache,
	leadSources []string,
) *CreateDealUseCase {
	return &CreateDealUseCase{
		dealRepo:     dealRepo,
		recomputer:   recomputer,
		summaryCache: summaryCache,
		leadSources:  leadSources,
	}
}

// Execute validates and creates a deal, then replays its cap period.
func (uc *CreateDealUseCase) Execute(ctx context.Context, input CreateDealInput) (*CreateDealOutput, error) {
	splitPercent := decimal.NewFromInt(100)
	if input.SplitPercent != nil {
		splitPercent = *input.SplitPercent
	}
	teamSplitPercent := decimal.Zero
	if input.TeamBrokerageSplitPercent != nil {
		teamSplitPercent = *input.TeamBrokerageSplitPercent
	}

	if err := validateDealFields(
		input.HouseAddress,
		input.AmountSoldFor,
		input.CommissionPercent,
		splitPercent,
		teamSplitPercent,
		input.LeadSource,
		input.ClosingDate,
		uc.leadSources,
	); err != nil {
		return nil, err
	}

	deal := entity.NewDeal(
		input.AgentID,
		input.HouseAddress,
		input.AmountSoldFor,
		input.CommissionPercent,
		splitPercent,
		teamSplitPercent,
		input.LeadSource,
		input.ClosingDate,
	)

	progress, err := uc.recomputer.RecomputePeriod(ctx, input.AgentID, input.ClosingDate.Year(), func(ctx context.Context) error {
		return uc.dealRepo.Create(ctx, deal)
	})
	if err != nil {
		return nil, err
	}

	created, err := uc.dealRepo.FindByID(ctx, deal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload created deal: %w", err)
	}

	if err := uc.summaryCache.InvalidateAgent(ctx, input.AgentID); err != nil {
		return nil, err
	}

	slog.Info("Deal created",
		"dealID", created.ID,
		"agentID", input.AgentID,
		"closingDate", created.ClosingDate.Format(time.DateOnly),
		"finalIncome", created.FinalIncome,
	)

	return &CreateDealOutput{Deal: created, Progress: progress}, nil
}
