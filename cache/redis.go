package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/creastat/directive"
)

const (
	// Redis key prefix for directive contexts
	directiveKeyPrefix = "directive:"
	// Default TTL for distributed cache keys
	defaultRemoteTTL = 30 * time.Minute
)

// Bridge is the distributed cache tier shared across processes. Failures
// are caught by the caller and treated identically to a miss; they never
// become user-facing errors.
type Bridge interface {
	// Get retrieves a tenant's context.
	// Returns (nil, nil) when the key is absent (not an error).
	Get(ctx context.Context, tenantID string) (*directive.GovernanceContext, error)

	// Set stores a tenant's context. Best-effort; callers may fire and forget.
	Set(ctx context.Context, tenantID string, c *directive.GovernanceContext) error

	// Delete removes a tenant's context.
	Delete(ctx context.Context, tenantID string) error

	// Close releases the underlying connection.
	Close() error
}

// RedisBridge implements Bridge on top of Redis.
type RedisBridge struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBridge creates a Redis-backed distributed cache bridge.
func NewRedisBridge(client *redis.Client, ttl time.Duration) *RedisBridge {
	if ttl <= 0 {
		ttl = defaultRemoteTTL
	}
	return &RedisBridge{
		client: client,
		ttl:    ttl,
	}
}

// Get implements Bridge.
func (b *RedisBridge) Get(ctx context.Context, tenantID string) (*directive.GovernanceContext, error) {
	val, err := b.client.Get(ctx, b.key(tenantID)).Result()
	if err == redis.Nil {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, err
	}

	var c directive.GovernanceContext
	if err := json.Unmarshal([]byte(val), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Set implements Bridge.
func (b *RedisBridge) Set(ctx context.Context, tenantID string, c *directive.GovernanceContext) error {
	val, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return b.client.Set(ctx, b.key(tenantID), val, b.ttl).Err()
}

// Delete implements Bridge.
func (b *RedisBridge) Delete(ctx context.Context, tenantID string) error {
	return b.client.Del(ctx, b.key(tenantID)).Err()
}

// Close implements Bridge.
func (b *RedisBridge) Close() error {
	return b.client.Close()
}

// key constructs the Redis key for a tenant ID.
func (b *RedisBridge) key(tenantID string) string {
	return directiveKeyPrefix + tenantID
}

// Compile-time check that RedisBridge implements Bridge
var _ Bridge = (*RedisBridge)(nil)
