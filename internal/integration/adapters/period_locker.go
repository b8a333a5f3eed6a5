package adapters

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	domainerror "github.com/pnl-tracker/backend/internal/domain/error"
)

// Replays finish in well under a second; the TTL only bounds how long a
// crashed writer can block the period.
const periodLockTTL = 30 * time.Second

// redisPeriodLocker implements adapter.PeriodLocker on a Redis lock, so cap
// replays stay serialized across application instances.
type redisPeriodLocker struct {
	locker *redislock.Client
}

// NewRedisPeriodLocker creates a new Redis-backed period locker instance.
func NewRedisPeriodLocker(client *redis.Client) adapter.PeriodLocker {
	return &redisPeriodLocker{
		locker: redislock.New(client),
	}
}

// Obtain takes the lock for one (agent, year) cap period. There is no retry:
// a held lock surfaces as a retryable conflict to the caller.
func (l *redisPeriodLocker) Obtain(ctx context.Context, agentID uuid.UUID, year int) (adapter.PeriodLock, error) {
	key := fmt.Sprintf("cap-replay:%s:%d", agentID, year)
	lock, err := l.locker.Obtain(ctx, key, periodLockTTL, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, domainerror.ErrCapPeriodLocked
		}
		return nil, fmt.Errorf("failed to obtain period lock: %w", err)
	}
	return &redisPeriodLock{lock: lock}, nil
}

type redisPeriodLock struct {
	lock *redislock.Lock
}

func (l *redisPeriodLock) Release(ctx context.Context) error {
	if err := l.lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}
	return nil
}

// memoryPeriodLocker implements adapter.PeriodLocker in process memory.
// Used when Redis is unavailable; only safe for a single instance.
type memoryPeriodLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryPeriodLocker creates a new in-memory period locker instance.
func NewMemoryPeriodLocker() adapter.PeriodLocker {
	return &memoryPeriodLocker{
		held: make(map[string]struct{}),
	}
}

func (l *memoryPeriodLocker) Obtain(_ context.Context, agentID uuid.UUID, year int) (adapter.PeriodLock, error) {
	key := fmt.Sprintf("%s:%d", agentID, year)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.held[key]; taken {
		return nil, domainerror.ErrCapPeriodLocked
	}
	l.held[key] = struct{}{}

	return &memoryPeriodLock{locker: l, key: key}, nil
}

type memoryPeriodLock struct {
	locker *memoryPeriodLocker
	key    string
}

func (l *memoryPeriodLock) Release(_ context.Context) error {
	l.locker.mu.Lock()
	defer l.locker.mu.Unlock()
	delete(l.locker.held, l.key)
	return nil
}
