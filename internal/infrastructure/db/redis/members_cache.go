package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const membersTTL = 5 * time.Minute

// MembersCache caches board membership sets in Redis for the authorization
// gate. Key format: members:<board_id>, value: a set of user ids. Entries
// expire after membersTTL and are invalidated eagerly on any membership
// mutation, so the cache can only serve stale data for boards whose
// membership changed through another process.
type MembersCache struct {
	client *redis.Client
}

// NewMembersCache creates a MembersCache wrapping the given Redis client.
func NewMembersCache(client *redis.Client) *MembersCache {
	return &MembersCache{client: client}
}

// Get returns the cached member set and whether the key was present.
func (c *MembersCache) Get(ctx context.Context, boardID string) ([]string, bool, error) {
	key := c.key(boardID)

	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("members cache exists: %w", err)
	}
	if n == 0 {
		return nil, false, nil
	}

	members, err := c.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("members cache read: %w", err)
	}
	return members, true, nil
}

// Set stores the member set with a TTL. An empty set is stored as a
// deleted key so Exists reads it as a miss rather than an open board.
func (c *MembersCache) Set(ctx context.Context, boardID string, memberIDs []string) error {
	key := c.key(boardID)
	if len(memberIDs) == 0 {
		return c.client.Del(ctx, key).Err()
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, key)
	members := make([]interface{}, len(memberIDs))
	for i, id := range memberIDs {
		members[i] = id
	}
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, membersTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("members cache write: %w", err)
	}
	return nil
}

// Invalidate drops the cached set after a membership mutation.
func (c *MembersCache) Invalidate(ctx context.Context, boardID string) error {
	return c.client.Del(ctx, c.key(boardID)).Err()
}

func (c *MembersCache) key(boardID string) string {
	return fmt.Sprintf("members:%s", boardID)
}
