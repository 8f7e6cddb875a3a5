package resolver

import "sync/atomic"

// Stats is a point-in-time snapshot of resolution counters.
type Stats struct {
	// Resolutions is the total number of Resolve calls completed.
	Resolutions int64

	// LocalHits counts resolutions served from the process-local tier.
	LocalHits int64

	// RemoteHits counts resolutions served from the distributed tier.
	RemoteHits int64

	// AuthoritativeLoads counts resolutions that reached the source of truth.
	AuthoritativeLoads int64

	// EmergencyFallbacks counts resolutions served the compiled-in directive.
	EmergencyFallbacks int64

	// IntegrityViolations counts corrupted local entries detected and evicted.
	IntegrityViolations int64
}

// counters holds the live atomic counters behind Stats.
type counters struct {
	resolutions         atomic.Int64
	localHits           atomic.Int64
	remoteHits          atomic.Int64
	authoritativeLoads  atomic.Int64
	emergencyFallbacks  atomic.Int64
	integrityViolations atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Resolutions:         c.resolutions.Load(),
		LocalHits:           c.localHits.Load(),
		RemoteHits:          c.remoteHits.Load(),
		AuthoritativeLoads:  c.authoritativeLoads.Load(),
		EmergencyFallbacks:  c.emergencyFallbacks.Load(),
		IntegrityViolations: c.integrityViolations.Load(),
	}
}

// LocalHitRate returns the fraction of resolutions served from the
// process-local tier, in [0,1].
func (s Stats) LocalHitRate() float64 {
	if s.Resolutions == 0 {
		return 0
	}
	return float64(s.LocalHits) / float64(s.Resolutions)
}
