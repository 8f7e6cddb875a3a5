// Package resolver orchestrates the cascading directive lookup: process-local
// cache, distributed cache, authoritative store, and finally the compiled-in
// emergency directive. A resolution call never fails except on caller
// cancellation; it only degrades.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/creastat/directive"
	"github.com/creastat/directive/cache"
)

// writeBackTimeout bounds the asynchronous distributed-cache write-through
// after an authoritative load. Detached from the caller's context so a
// canceled resolution does not strand the write mid-flight.
const writeBackTimeout = 5 * time.Second

// tier is one layer in the cascading lookup. attempt returns the context and
// true on a hit; every miss or failure is swallowed and reported as a miss.
type tier struct {
	name    string
	attempt func(ctx context.Context, tenantID string) (*directive.GovernanceContext, bool)
}

// Resolver resolves the active directive for a (tenant, user) pair.
//
// Safe for concurrent use. The process-local cache is owned state,
// constructed once per process and shared by reference.
type Resolver struct {
	local   *cache.Local
	tiers   []tier
	cfg     config
	counter counters
}

// New creates a Resolver. A process-local tier is always present; the
// distributed and authoritative tiers are attached via WithBridge and
// WithStore.
func New(opts ...Option) *Resolver {
	cfg := config{
		localTTL:      defaultLocalTTL,
		retryAttempts: defaultRetryAttempts,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := &Resolver{
		local: cache.NewLocal(),
		cfg:   cfg,
	}
	r.tiers = []tier{
		{name: "local", attempt: r.fromLocal},
		{name: "distributed", attempt: r.fromBridge},
		{name: "authoritative", attempt: r.fromStore},
	}
	return r
}

// Resolve returns the directive governing the next AI interaction for the
// given tenant and user.
//
// Tiers are consulted in order; each miss or failure escalates to the next,
// ending at the emergency directive. The only error ever returned wraps
// directive.ErrUnresolved, and only when ctx is canceled or past its
// deadline before a tier produced a context.
func (r *Resolver) Resolve(ctx context.Context, tenantID, userID string) (*directive.ResolvedDirective, error) {
	gc, err := r.loadContext(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	assignment := directive.AssignVariant(gc, userID)
	if assignment.Orphaned {
		r.cfg.logger.Warn("experimental variant selected but absent, serving production",
			"tenant_id", tenantID,
			"experiment", gc.Experiment.ExperimentName)
	}

	prompt := directive.NormalizeDirective(assignment.Version.SystemDirective)
	r.counter.resolutions.Add(1)

	return &directive.ResolvedDirective{
		OptimizedPrompt:   prompt,
		VersionTag:        assignment.Version.VersionTag,
		AssignedVariant:   assignment.Variant,
		ModelTier:         assignment.Version.Metrics.RecommendedModelTier,
		IsVocalEnabled:    assignment.Version.VocalEnabled(),
		IntegrityChecksum: directive.SealText(prompt),
	}, nil
}

// Invalidate evicts a tenant's cached context from the local and distributed
// tiers so the next resolution reloads from the authoritative store.
func (r *Resolver) Invalidate(ctx context.Context, tenantID string) {
	r.local.Delete(tenantID)
	if r.cfg.bridge == nil {
		return
	}
	if err := r.cfg.bridge.Delete(ctx, tenantID); err != nil {
		r.cfg.logger.Warn("failed to invalidate distributed cache entry",
			"tenant_id", tenantID, "error", err)
	}
}

// Stats returns a snapshot of the resolution counters.
func (r *Resolver) Stats() Stats {
	return r.counter.snapshot()
}

// loadContext walks the tier cascade, defaulting to the emergency context.
func (r *Resolver) loadContext(ctx context.Context, tenantID string) (*directive.GovernanceContext, error) {
	for _, t := range r.tiers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", directive.ErrUnresolved, err)
		}
		if gc, ok := t.attempt(ctx, tenantID); ok {
			return gc, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", directive.ErrUnresolved, err)
	}

	r.counter.emergencyFallbacks.Add(1)
	r.cfg.logger.Warn("all persistence tiers exhausted, serving emergency directive",
		"tenant_id", tenantID)
	if r.cfg.alerter != nil {
		r.cfg.alerter.TiersExhausted(ctx, newEvent(tenantID, "all persistence tiers failed"))
	}
	return directive.EmergencyContext(tenantID), nil
}

// fromLocal attempts the process-local tier.
func (r *Resolver) fromLocal(_ context.Context, tenantID string) (*directive.GovernanceContext, bool) {
	gc, err := r.local.Get(tenantID)
	if err != nil {
		if errors.Is(err, directive.ErrIntegrityViolation) {
			r.counter.integrityViolations.Add(1)
			r.cfg.logger.Error("corrupted cache entry detected and evicted",
				"tenant_id", tenantID, "error", err)
		} else {
			r.cfg.logger.Warn("local cache read failed", "tenant_id", tenantID, "error", err)
		}
		return nil, false
	}
	if gc == nil {
		return nil, false
	}
	r.counter.localHits.Add(1)
	return gc, true
}

// fromBridge attempts the distributed tier, re-validates the payload, and
// re-hydrates the local tier on success.
func (r *Resolver) fromBridge(ctx context.Context, tenantID string) (*directive.GovernanceContext, bool) {
	if r.cfg.bridge == nil {
		return nil, false
	}

	gc, err := withRetry(ctx, r.cfg.retryAttempts, r.cfg.retryInterval,
		func() (*directive.GovernanceContext, error) {
			return r.cfg.bridge.Get(ctx, tenantID)
		})
	if err != nil {
		r.cfg.logger.Warn("distributed cache read failed", "tenant_id", tenantID, "error", err)
		return nil, false
	}
	if gc == nil {
		return nil, false
	}

	// The payload crossed a process boundary; hold it to the same
	// structural contract as authoritative output before trusting it.
	if err := gc.Validate(); err != nil {
		r.cfg.logger.Warn("distributed cache payload failed validation",
			"tenant_id", tenantID, "error", err)
		return nil, false
	}

	if err := r.local.Put(tenantID, gc, r.cfg.localTTL); err != nil {
		r.cfg.logger.Warn("failed to re-hydrate local cache", "tenant_id", tenantID, "error", err)
	}
	r.counter.remoteHits.Add(1)
	return gc, true
}

// fromStore attempts the authoritative tier and writes through to the lower
// tiers on success: local synchronously, distributed fire-and-forget.
func (r *Resolver) fromStore(ctx context.Context, tenantID string) (*directive.GovernanceContext, bool) {
	if r.cfg.store == nil {
		return nil, false
	}

	gc, err := withRetry(ctx, r.cfg.retryAttempts, r.cfg.retryInterval,
		func() (*directive.GovernanceContext, error) {
			gc, err := r.cfg.store.LoadContext(ctx, tenantID)
			if errors.Is(err, directive.ErrNotFound) {
				// A missing tenant will not appear under retry.
				return nil, backoff.Permanent(err)
			}
			return gc, err
		})
	if err != nil {
		r.cfg.logger.Warn("authoritative store load failed", "tenant_id", tenantID, "error", err)
		return nil, false
	}

	if err := r.local.Put(tenantID, gc, r.cfg.localTTL); err != nil {
		r.cfg.logger.Warn("failed to populate local cache", "tenant_id", tenantID, "error", err)
	}
	if r.cfg.bridge != nil {
		go func() {
			wctx, cancel := context.WithTimeout(context.Background(), writeBackTimeout)
			defer cancel()
			if err := r.cfg.bridge.Set(wctx, tenantID, gc); err != nil {
				r.cfg.logger.Warn("distributed cache write-back failed",
					"tenant_id", tenantID, "error", err)
			}
		}()
	}

	r.counter.authoritativeLoads.Add(1)
	return gc, true
}
