package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "useradmin:blacklist:access:"

var (
	blacklistMu     sync.RWMutex
	blacklistClient *redis.Client
)

// SetBlacklistClient configures the Redis client used for blacklist operations.
// Safe to call with nil to disable blacklist features.
func SetBlacklistClient(c *redis.Client) {
	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	blacklistClient = c
}

func getBlacklistClient() *redis.Client {
	blacklistMu.RLock()
	defer blacklistMu.RUnlock()
	return blacklistClient
}

// BlacklistAccessToken revokes the access token until ttl elapses.
// No-op without a Redis client.
func BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	c := getBlacklistClient()
	if c == nil {
		return nil
	}
	return c.Set(ctx, blacklistPrefix+Digest(token), "1", ttl).Err()
}

// IsAccessTokenBlacklisted returns (false, nil) without a Redis client.
func IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	c := getBlacklistClient()
	if c == nil {
		return false, nil
	}
	exists, err := c.Exists(ctx, blacklistPrefix+Digest(token)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
