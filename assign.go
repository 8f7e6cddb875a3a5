package directive

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// Assignment is the result of sticky variant assignment for one user.
type Assignment struct {
	// Version is the prompt version the user should see. Never nil when the
	// context has a non-nil ActiveVersion.
	Version *PromptVersion

	// Variant is "A" (production) or "B" (experimental).
	Variant Variant

	// Orphaned is true when the user hashed into the experimental variant
	// but the experimental version was absent, so the assignment was
	// corrected to production. Callers should log this; it indicates an
	// inconsistent context.
	Orphaned bool
}

// ShardingPulse hashes a seed string into a deterministic float in [0, 1).
// The first 8 bytes of the SHA-256 digest are read as a big-endian unsigned
// integer and divided by its maximum value. Pure function; same seed, same
// pulse, on every platform.
func ShardingPulse(seed string) float64 {
	h := sha256.Sum256([]byte(seed))
	n := binary.BigEndian.Uint64(h[:8])
	return float64(n) / float64(math.MaxUint64)
}

// AssignVariant decides which prompt version a user receives.
//
// Assignment is sticky: the same (tenant, user, experiment name) triple
// always yields the same variant, independent of call order or caching
// state. Renaming the experiment is the only way to reshuffle users, which
// prevents correlated bias across sequential experiments.
func AssignVariant(c *GovernanceContext, userID string) Assignment {
	// Fast path: no experiment running, nothing to hash.
	if c.Experiment == nil || !c.Experiment.IsActive {
		return Assignment{Version: c.ActiveVersion, Variant: VariantA}
	}

	seed := c.TenantID + ":" + userID + ":" + c.Experiment.ExperimentName
	if ShardingPulse(seed) >= c.Experiment.TrafficSplit {
		return Assignment{Version: c.ActiveVersion, Variant: VariantA}
	}

	// Orphan guard: the experimental variant was selected but its data is
	// gone. Correct to production rather than failing the resolution.
	if c.ExperimentalVersion == nil {
		return Assignment{Version: c.ActiveVersion, Variant: VariantA, Orphaned: true}
	}
	return Assignment{Version: c.ExperimentalVersion, Variant: VariantB}
}
