package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Cache is the KV capability consumed by the query path. Implementations are
// best-effort: a failing cache must never take down a read, callers degrade
// to the store.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// FriendListKey is the cache key for a user's materialized friend list.
func FriendListKey(userID int64) string {
	return fmt.Sprintf("friend_list:%d", userID)
}
