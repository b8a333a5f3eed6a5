package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// SummaryCache caches computed monthly summaries per (agent, month).
// Summaries are fully derivable, so the cache is always safe to drop.
type SummaryCache interface {
	// Get returns the cached summary for the month, or nil on a miss.
	Get(ctx context.Context, agentID uuid.UUID, year int, month time.Month) (*entity.MonthlySummary, error)

	// Set stores the summary for the month.
	Set(ctx context.Context, agentID uuid.UUID, year int, month time.Month, summary *entity.MonthlySummary) error

	// InvalidateAgent drops every cached month for the agent. A cap replay can
	// move income across the whole period, so per-month invalidation is not
	// sufficient for deal writes.
	InvalidateAgent(ctx context.Context, agentID uuid.UUID) error
}
