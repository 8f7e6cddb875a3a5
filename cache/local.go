// Package cache provides the process-local and distributed cache tiers for
// directive resolution.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/creastat/directive"
)

// Default TTL for local cache entries.
const defaultLocalTTL = 5 * time.Minute

// Entry is a cached governance context with its expiry and integrity seal.
// Invariant: Seal always equals SealContext(Context); any divergence means
// the entry was corrupted and must never be served.
type Entry struct {
	Context   *directive.GovernanceContext
	ExpiresAt time.Time
	Seal      string
}

// Local is the process-local cache tier, keyed by tenant ID.
//
// Safe for concurrent use. Writes are last-write-wins: a race between two
// populates for the same tenant is harmless since both derive from the same
// source of truth.
type Local struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewLocal creates an empty process-local cache.
func NewLocal() *Local {
	return &Local{
		entries: make(map[string]*Entry),
	}
}

// Get retrieves a tenant's cached context.
// Returns (nil, nil) on miss or expiry (not an error).
// Returns ErrIntegrityViolation when the stored seal no longer matches the
// content; the corrupted entry is evicted and must not be served.
func (l *Local) Get(tenantID string) (*directive.GovernanceContext, error) {
	l.mu.RLock()
	entry, exists := l.entries[tenantID]
	l.mu.RUnlock()

	if !exists || time.Now().After(entry.ExpiresAt) {
		return nil, nil
	}

	// Re-verify the seal against the snapshot pointer captured above. A
	// concurrent overwrite replaces the pointer rather than mutating the
	// entry, so the hash-then-compare stays consistent.
	seal, err := directive.SealContext(entry.Context)
	if err != nil {
		l.Delete(tenantID)
		return nil, fmt.Errorf("failed to reseal cached context: %w", err)
	}
	if seal != entry.Seal {
		l.Delete(tenantID)
		return nil, fmt.Errorf("%w: tenant %s", directive.ErrIntegrityViolation, tenantID)
	}

	return entry.Context, nil
}

// Put stores a tenant's context with the given TTL, sealing it for later
// integrity verification. A non-positive TTL falls back to the default.
func (l *Local) Put(tenantID string, c *directive.GovernanceContext, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultLocalTTL
	}
	seal, err := directive.SealContext(c)
	if err != nil {
		return fmt.Errorf("failed to seal context: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[tenantID] = &Entry{
		Context:   c,
		ExpiresAt: time.Now().Add(ttl),
		Seal:      seal,
	}
	return nil
}

// Delete evicts a tenant's entry.
func (l *Local) Delete(tenantID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, tenantID)
}

// Len returns the number of cached entries, expired or not.
func (l *Local) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Corrupt overwrites the stored context for a tenant without updating its
// seal. Test hook for integrity-violation paths; not for production use.
func (l *Local) Corrupt(tenantID string, c *directive.GovernanceContext) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry, ok := l.entries[tenantID]; ok {
		l.entries[tenantID] = &Entry{
			Context:   c,
			ExpiresAt: entry.ExpiresAt,
			Seal:      entry.Seal,
		}
	}
}
