package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pnl-tracker/backend/internal/application/adapter"
	"github.com/pnl-tracker/backend/internal/domain/entity"
)

// redisSummaryCache implements adapter.SummaryCache on Redis, storing one
// JSON document per (agent, month).
type redisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a new Redis-backed summary cache instance.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	return &redisSummaryCache{
		client: client,
		ttl:    ttl,
	}
}

func summaryKey(agentID uuid.UUID, year int, month time.Month) string {
	return fmt.Sprintf("summary:%s:%04d-%02d", agentID, year, month)
}

// Get returns the cached summary for the month, or nil on a miss.
func (c *redisSummaryCache) Get(ctx context.Context, agentID uuid.UUID, year int, month time.Month) (*entity.MonthlySummary, error) {
	payload, err := c.client.Get(ctx, summaryKey(agentID, year, month)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read summary cache: %w", err)
	}

	var summary entity.MonthlySummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		// A stale or corrupt entry is a miss, not an error.
		return nil, nil
	}
	return &summary, nil
}

// Set stores the summary for the month.
func (c *redisSummaryCache) Set(ctx context.Context, agentID uuid.UUID, year int, month time.Month, summary *entity.MonthlySummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(agentID, year, month), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary cache: %w", err)
	}
	return nil
}

// InvalidateAgent drops every cached month for the agent. A cap replay can
// move income across the whole period, so invalidation is agent-wide.
func (c *redisSummaryCache) InvalidateAgent(ctx context.Context, agentID uuid.UUID) error {
	pattern := fmt.Sprintf("summary:%s:*", agentID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan summary cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}
	return nil
}

// noopSummaryCache implements adapter.SummaryCache without storage. Used when
// Redis is unavailable; every read recomputes.
type noopSummaryCache struct{}

// NewNoopSummaryCache creates a summary cache that never stores anything.
func NewNoopSummaryCache() adapter.SummaryCache {
	return noopSummaryCache{}
}

func (noopSummaryCache) Get(context.Context, uuid.UUID, int, time.Month) (*entity.MonthlySummary, error) {
	return nil, nil
}

func (noopSummaryCache) Set(context.Context, uuid.UUID, int, time.Month, *entity.MonthlySummary) error {
	return nil
}

func (noopSummaryCache) InvalidateAgent(context.Context, uuid.UUID) error {
	return nil
}
