package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisTokenBlacklist remembers revoked token IDs until the token would have
// expired anyway; Redis drops the key at that point.
type RedisTokenBlacklist struct {
	Client *redis.Client
}

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(ctx context.Context, redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisTokenBlacklist{Client: client}, nil
}

func blacklistKey(tokenID string) string {
	return "blacklist:access:" + tokenID
}

// Revoke blacklists tokenID until expiresAt. Already expired tokens need no
// entry.
func (tb *RedisTokenBlacklist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return errors.New("token has no id")
	}

	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := tb.Client.Set(ctx, blacklistKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %w", err)
	}
	return nil
}

// IsRevoked checks if a token is in the blacklist
func (tb *RedisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := tb.Client.Exists(ctx, blacklistKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return exists > 0, nil
}

// Ping checks if the Redis connection is alive
func (tb *RedisTokenBlacklist) Ping(ctx context.Context) error {
	return tb.Client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}
