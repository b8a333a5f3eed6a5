package adapter

import (
	"context"

	"github.com/google/uuid"
)

// PeriodLock is a held lock over one (agent, cap period) pair.
type PeriodLock interface {
	// Release releases the lock. Safe to call once per obtained lock.
	Release(ctx context.Context) error
}

// PeriodLocker serializes cap replays for the same agent and period.
// Cap consumption is order-dependent, so two concurrent deal writes within
// one period must not interleave their read-replay-write cycles.
// Obtain returns domain ErrCapPeriodLocked when the lock is already held.
type PeriodLocker interface {
	Obtain(ctx context.Context, agentID uuid.UUID, year int) (PeriodLock, error)
}
