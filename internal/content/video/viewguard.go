// Copyright (c) 2026 Vidora. All rights reserved.

package video

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vidora-app/vidora/internal/platform/constants"
)

// RedisViewGuard implements [ViewGuard] with a SET NX window per
// (video, viewer) pair.
//
// The key carries its own TTL, so a Redis flush simply re-opens every
// window; the worst case is an extra counted view, never a lost video.
type RedisViewGuard struct {
	client *redis.Client
}

// NewRedisViewGuard wires the view deduplication guard.
func NewRedisViewGuard(client *redis.Client) *RedisViewGuard {
	return &RedisViewGuard{client: client}
}

/*
ShouldCount atomically claims the (video, viewer) window.

Returns:
  - bool: true when no window was open, meaning the view must be counted
  - error: Redis transport failures
*/
func (guard *RedisViewGuard) ShouldCount(ctx context.Context, videoID, viewerID string) (bool, error) {
	key := constants.RedisPrefixVideoView + videoID + ":" + viewerID

	claimed, err := guard.client.SetNX(ctx, key, 1, constants.ViewDedupWindow).Result()
	if err != nil {
		return false, fmt.Errorf("viewguard: failed to claim window: %w", err)
	}

	return claimed, nil
}
