package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "brokerly:dashboard"

// RedisDashboardCache implements domain.DashboardCache on Redis.
// Each workspace has a generation counter embedded in its summary keys;
// bumping the counter orphans every cached summary of that workspace, and
// the orphans expire on their own TTL.
type RedisDashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDashboardCache creates a cache whose entries live for ttl
func NewRedisDashboardCache(client *redis.Client, ttl time.Duration) *RedisDashboardCache {
	return &RedisDashboardCache{client: client, ttl: ttl}
}

func generationKey(workspaceID int32) string {
	return fmt.Sprintf("%s:%d:gen", keyPrefix, workspaceID)
}

func summaryKey(workspaceID int32, generation int64, r domain.DateRange) string {
	return fmt.Sprintf("%s:%d:%d:%s:%s", keyPrefix, workspaceID, generation, rangeBound(r.From), rangeBound(r.To))
}

func rangeBound(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func (c *RedisDashboardCache) generation(ctx context.Context, workspaceID int32) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(workspaceID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get returns the cached summary, reporting false on a miss
func (c *RedisDashboardCache) Get(ctx context.Context, workspaceID int32, r domain.DateRange) (*domain.DashboardSummary, bool, error) {
	gen, err := c.generation(ctx, workspaceID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache generation: %w", err)
	}

	data, err := c.client.Get(ctx, summaryKey(workspaceID, gen, r)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached summary: %w", err)
	}

	var summary domain.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, true, nil
}

// Set stores a summary under the workspace's current generation
func (c *RedisDashboardCache) Set(ctx context.Context, workspaceID int32, r domain.DateRange, summary *domain.DashboardSummary) error {
	gen, err := c.generation(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to read cache generation: %w", err)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return c.client.Set(ctx, summaryKey(workspaceID, gen, r), data, c.ttl).Err()
}

// Invalidate drops every cached summary of the workspace
func (c *RedisDashboardCache) Invalidate(ctx context.Context, workspaceID int32) error {
	return c.client.Incr(ctx, generationKey(workspaceID)).Err()
}

// NoOpDashboardCache is used when Redis is not configured
type NoOpDashboardCache struct{}

func (NoOpDashboardCache) Get(ctx context.Context, workspaceID int32, r domain.DateRange) (*domain.DashboardSummary, bool, error) {
	return nil, false, nil
}

func (NoOpDashboardCache) Set(ctx context.Context, workspaceID int32, r domain.DateRange, summary *domain.DashboardSummary) error {
	return nil
}

func (NoOpDashboardCache) Invalidate(ctx context.Context, workspaceID int32) error {
	return nil
}

// Compile-time interface checks
var (
	_ domain.DashboardCache = (*RedisDashboardCache)(nil)
	_ domain.DashboardCache = NoOpDashboardCache{}
)
