package deal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/application/usecase/captracker"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// DeleteDealInput represents the input for deleting a deal.
type DeleteDealInput struct {
	ID      uuid.UUID
	AgentID uuid.UUID
}

// DeleteDealUseCase handles soft deletion of deals. Removing a deal frees the
// cap it consumed, so the deal's period is replayed after the delete.
type DeleteDealUseCase struct {
	dealRepo     adapter.DealRepository
	recomputer   *captracker.Recomputer
	summaryCache adapter.SummaryCache
}

// NewDeleteDealUseCase creates a new DeleteDealUseCase instance.
func NewDeleteDealUseCase(
	dealRepo adapter.DealRepository,
	recomputer *captracker.Recomputer,
	summaryCache adapter.SummaryCache,
) *DeleteDealUseCase {
	return &DeleteDealUseCase{
		dealRepo:     dealRepo,
		recomputer:   recomputer,
		summaryCache: summaryCache,
	}
}

// Execute deletes the deal and replays its cap period.
func (uc *DeleteDealUseCase) Execute(ctx context.Context, input DeleteDealInput) error {
	existing, err := uc.dealRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrDealNotFound) {
			return domainerror.NewDealError(
				domainerror.ErrCodeDealNotFound,
				"deal not found",
				domainerror.ErrDealNotFound,
			)
		}
		return fmt.Errorf("failed to load deal: %w", err)
	}
	if existing.AgentID != input.AgentID {
		return domainerror.NewDealError(
			domainerror.ErrCodeNotAuthorizedDeal,
			"deal belongs to another agent",
			domainerror.ErrNotAuthorizedToModifyDeal,
		)
	}

	_, err = uc.recomputer.RecomputePeriod(ctx, input.AgentID, existing.ClosingDate.Year(), func(ctx context.Context) error {
		return uc.dealRepo.Delete(ctx, input.ID)
	})
	if err != nil {
		return err
	}

	if err := uc.summaryCache.InvalidateAgent(ctx, input.AgentID); err != nil {
		return err
	}

	slog.Info("Deal deleted", "dealID", input.ID, "agentID", input.AgentID)

	return nil
}
