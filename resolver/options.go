package resolver

import (
	"log/slog"
	"time"

	"github.com/creastat/directive/cache"
	"github.com/creastat/directive/supabase"
)

// Defaults for resolver configuration.
const (
	defaultLocalTTL      = 5 * time.Minute
	defaultRetryAttempts = 3
)

// Option is a functional option for configuring a Resolver.
type Option func(*config)

// config holds configuration for a Resolver.
type config struct {
	bridge        cache.Bridge
	store         supabase.Store
	localTTL      time.Duration
	retryAttempts uint
	retryInterval time.Duration
	logger        *slog.Logger
	alerter       Alerter
}

// WithBridge sets the distributed cache tier. Without it, resolution skips
// straight from the local tier to the authoritative store.
func WithBridge(b cache.Bridge) Option {
	return func(c *config) {
		c.bridge = b
	}
}

// WithStore sets the authoritative store tier.
func WithStore(s supabase.Store) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithLocalTTL sets the TTL for process-local cache entries.
func WithLocalTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.localTTL = ttl
		}
	}
}

// WithRetryAttempts bounds the retry policy around distributed cache and
// authoritative store I/O.
func WithRetryAttempts(n uint) Option {
	return func(c *config) {
		if n > 0 {
			c.retryAttempts = n
		}
	}
}

// WithRetryInterval sets the initial backoff interval between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.retryInterval = d
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAlerter sets the operational alerting channel notified when every
// persistence tier fails.
func WithAlerter(a Alerter) Option {
	return func(c *config) {
		c.alerter = a
	}
}
