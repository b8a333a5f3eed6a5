package captracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// Recomputer re-derives cap consumption for a whole cap period and persists
// the result. Every cap-affecting deal write goes through here: consumption
// is sequential, so a full deterministic replay over a snapshot is the only
// way to keep cap_amount/final_income consistent after inserts, edits, and
// deletes anywhere in the period.
type Recomputer struct {
	dealRepo      adapter.DealRepository
	capConfigRepo adapter.CapConfigRepository
	locker        adapter.PeriodLocker
	defaultCap    decimal.Decimal
}

// NewRecomputer creates a new Recomputer instance.
func NewRecomputer(
	dealRepo adapter.DealRepository,
	capConfigRepo adapter.CapConfigRepository,
	locker adapter.PeriodLocker,
	defaultCap decimal.Decimal,
) *Recomputer {
	return &Recomputer{
		dealRepo:      dealRepo,
		capConfigRepo: capConfigRepo,
		locker:        locker,
		defaultCap:    defaultCap,
	}
}

// RecomputePeriod replays the agent's cap period under the period lock and
// atomically swaps in the derived fields. The mutate callback runs while the
// lock is held, so the write it performs and the replay that follows cannot
// interleave with a concurrent writer of the same period.
func (r *Recomputer) RecomputePeriod(
	ctx context.Context,
	agentID uuid.UUID,
	year int,
	mutate func(ctx context.Context) error,
) (*entity.CapProgress, error) {
	lock, err := r.locker.Obtain(ctx, agentID, year)
	if err != nil {
		if errors.Is(err, domainerror.ErrCapPeriodLocked) {
			return nil, domainerror.NewCapError(
				domainerror.ErrCodeCapPeriodLocked,
				"a concurrent change to this cap period is in progress",
				true,
				err,
			)
		}
		return nil, fmt.Errorf("failed to obtain cap period lock: %w", err)
	}
	defer func() {
		if releaseErr := lock.Release(ctx); releaseErr != nil {
			slog.Warn("Failed to release cap period lock",
				"agentID", agentID,
				"year", year,
				"error", releaseErr,
			)
		}
	}()

	if mutate != nil {
		if err := mutate(ctx); err != nil {
			return nil, err
		}
	}

	totalCap, err := resolveTotalCap(ctx, r.capConfigRepo, agentID, year, r.defaultCap)
	if err != nil {
		return nil, err
	}

	deals, err := r.dealRepo.FindByAgentAndYear(ctx, agentID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals for cap replay: %w", err)
	}

	result := Replay(year, deals, totalCap)

	if err := r.dealRepo.ApplyDerived(ctx, result.Deals); err != nil {
		return nil, fmt.Errorf("failed to persist replayed cap amounts: %w", err)
	}

	return result.Progress, nil
}

// resolveTotalCap returns the agent's configured cap target for the period,
// falling back to the application default when none is set.
func resolveTotalCap(
	ctx context.Context,
	repo adapter.CapConfigRepository,
	agentID uuid.UUID,
	year int,
	defaultCap decimal.Decimal,
) (decimal.Decimal, error) {
	config, err := repo.FindByAgentAndYear(ctx, agentID, year)
	if err != nil {
		if errors.Is(err, domainerror.ErrCapConfigNotFound) {
			return defaultCap, nil
		}
		return decimal.Zero, fmt.Errorf("failed to load cap configuration: %w", err)
	}
	return config.TotalCap, nil
}
