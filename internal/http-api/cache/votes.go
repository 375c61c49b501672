// Package cache holds the redis read-through caches. Only vote tallies are
// cached today; they are the hottest read and trivially rebuilt from the
// ledger, so every cache miss or redis outage degrades to a DB count.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type VoteCounts struct {
	Upvotes   int64 `json:"upvotes"`
	Downvotes int64 `json:"downvotes"`
}

type VoteCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVoteCountCache(client *redis.Client, ttl time.Duration) *VoteCountCache {
	return &VoteCountCache{client: client, ttl: ttl}
}

func voteCountKey(reviewID string) string {
	return fmt.Sprintf("votes:review:%s", reviewID)
}

// Get returns the cached tally, or (nil, nil) on a miss. A nil receiver or
// client behaves as an always-miss cache for tests and redis-less setups.
func (c *VoteCountCache) Get(ctx context.Context, reviewID string) (*VoteCounts, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, voteCountKey(reviewID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vote counts from cache: %w", err)
	}

	var counts VoteCounts
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil, fmt.Errorf("decode cached vote counts: %w", err)
	}
	return &counts, nil
}

func (c *VoteCountCache) Set(ctx context.Context, reviewID string, counts VoteCounts) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("encode vote counts: %w", err)
	}
	return c.client.Set(ctx, voteCountKey(reviewID), raw, c.ttl).Err()
}

// Invalidate drops the tally after any toggle write.
func (c *VoteCountCache) Invalidate(ctx context.Context, reviewID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, voteCountKey(reviewID)).Err()
}
