package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestBlacklist(t *testing.T) (*miniredis.Miniredis, *RedisTokenBlacklist) {
	t.Helper()

	mr := miniredis.RunT(t)
	blacklist, err := NewTokenBlacklist(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = blacklist.Close() })

	return mr, blacklist
}

func TestTokenBlacklist_RevokeAndCheck(t *testing.T) {
	mr, blacklist := setupTestBlacklist(t)
	ctx := context.Background()

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = blacklist.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	ttl := mr.TTL("blacklist:access:jti-1")
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "ttl %s", ttl)
}

func TestTokenBlacklist_EntryExpiresWithToken(t *testing.T) {
	mr, blacklist := setupTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	mr.FastForward(2 * time.Minute)

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenBlacklist_ExpiredTokenNeedsNoEntry(t *testing.T) {
	mr, blacklist := setupTestBlacklist(t)

	require.NoError(t, blacklist.Revoke(context.Background(), "jti-1", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("blacklist:access:jti-1"))
}

func TestTokenBlacklist_RejectsEmptyID(t *testing.T) {
	_, blacklist := setupTestBlacklist(t)

	err := blacklist.Revoke(context.Background(), "", time.Now().Add(time.Hour))
	assert.Error(t, err)
}

func TestTokenBlacklist_RedisDown(t *testing.T) {
	mr, blacklist := setupTestBlacklist(t)
	mr.Close()

	_, err := blacklist.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
	assert.Error(t, blacklist.Ping(context.Background()))
}

func TestNewTokenBlacklist_BadURL(t *testing.T) {
	_, err := NewTokenBlacklist(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}

func TestTokenBlacklist_WrapsExistingClient(t *testing.T) {
	mr := miniredis.RunT(t)
	blacklist := &RedisTokenBlacklist{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	defer blacklist.Close()

	assert.NoError(t, blacklist.Ping(context.Background()))
}
