package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// MembershipCache caches the engineer id set per project in Redis. The
// assignment validator reads through it; membership mutations invalidate the
// key. A cache failure is always treated as a miss so the service keeps
// working against the database when Redis is unreachable.
type MembershipCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewMembershipCache builds the cache around an existing Redis client, which
// may be nil.
func NewMembershipCache(r *Redis, logger *zap.Logger, ttl time.Duration) *MembershipCache {
	cache := &MembershipCache{logger: logger, ttl: ttl}
	if r != nil {
		cache.client = r.Client
	}
	return cache
}

func engineersKey(projectID int64) string {
	return fmt.Sprintf("project:%d:engineers", projectID)
}

// GetEngineers returns the cached engineer ids for a project and whether the
// lookup was a hit.
func (c *MembershipCache) GetEngineers(ctx context.Context, projectID int64) ([]int64, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, engineersKey(projectID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("membership cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// SetEngineers stores the engineer id set for a project.
func (c *MembershipCache) SetEngineers(ctx context.Context, projectID int64, ids []int64) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, engineersKey(projectID), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("membership cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached set after a membership mutation.
func (c *MembershipCache) Invalidate(ctx context.Context, projectID int64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, engineersKey(projectID)).Err(); err != nil {
		c.logger.Debug("membership cache invalidate failed", zap.Error(err))
	}
}
