package directive

import (
	"fmt"
	"time"
)

// Context status values.
const (
	StatusProduction = "production"
	StatusDisabled   = "disabled"
)

// ModelTier identifies the model class recommended for a directive.
type ModelTier string

const (
	TierEconomy  ModelTier = "economy"
	TierStandard ModelTier = "standard"
	TierPremium  ModelTier = "premium"
)

// Variant identifies which directive version a user was assigned to.
type Variant string

const (
	// VariantA is the production directive version.
	VariantA Variant = "A"
	// VariantB is the experimental directive version.
	VariantB Variant = "B"
)

// VersionMetrics holds derived cost metrics for a prompt version.
type VersionMetrics struct {
	EstimatedTokenWeight int       `json:"estimated_token_weight"`
	CostEfficiencyScore  int       `json:"cost_efficiency_score"` // 0-100
	RecommendedModelTier ModelTier `json:"recommended_model_tier"`
}

// PromptVersion is one versioned instruction payload.
type PromptVersion struct {
	VersionTag       string         `json:"version_tag"`
	SystemDirective  string         `json:"system_directive"`
	AuthorIdentifier string         `json:"author_identifier"`
	Metrics          VersionMetrics `json:"metrics"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Timestamp        time.Time      `json:"timestamp"`
}

// VocalEnabled reports whether voice output is enabled for this version.
// The flag lives in the metadata bag so the sealing operation can toggle it
// without a schema change.
func (v *PromptVersion) VocalEnabled() bool {
	if v == nil || v.Metadata == nil {
		return false
	}
	enabled, ok := v.Metadata["voice_output_enabled"].(bool)
	return ok && enabled
}

// Experiment describes an A/B test between the active and experimental
// versions of a tenant's directive.
type Experiment struct {
	IsActive       bool    `json:"is_active"`
	ExperimentName string  `json:"experiment_name"`
	TrafficSplit   float64 `json:"traffic_split"` // fraction routed to B, in [0,1]
}

// GovernanceContext is the per-tenant configuration root governing which
// directive a tenant's users receive.
type GovernanceContext struct {
	TenantID            string         `json:"tenant_id"`
	ContextName         string         `json:"context_name"`
	Status              string         `json:"status"`
	ActiveVersion       *PromptVersion `json:"active_version"`
	ExperimentalVersion *PromptVersion `json:"experimental_version,omitempty"`
	Experiment          *Experiment    `json:"experiment,omitempty"`
}

// Validate checks the structural contract a context must satisfy before it
// is trusted. Applied to distributed-cache payloads before re-hydration and
// to authoritative-store output after transformation.
func (c *GovernanceContext) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil context", ErrInvalidContext)
	}
	if c.TenantID == "" {
		return fmt.Errorf("%w: missing tenant_id", ErrInvalidContext)
	}
	if c.ActiveVersion == nil {
		return fmt.Errorf("%w: missing active_version", ErrInvalidContext)
	}
	if c.ActiveVersion.VersionTag == "" {
		return fmt.Errorf("%w: active_version missing version_tag", ErrInvalidContext)
	}
	if c.ActiveVersion.SystemDirective == "" {
		return fmt.Errorf("%w: active_version missing system_directive", ErrInvalidContext)
	}
	if c.Status != StatusProduction && c.Status != StatusDisabled {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidContext, c.Status)
	}
	if c.Experiment != nil {
		if c.Experiment.TrafficSplit < 0 || c.Experiment.TrafficSplit > 1 {
			return fmt.Errorf("%w: traffic_split must be between 0 and 1, got %.4f",
				ErrInvalidContext, c.Experiment.TrafficSplit)
		}
		if c.Experiment.IsActive && c.Experiment.ExperimentName == "" {
			return fmt.Errorf("%w: active experiment missing experiment_name", ErrInvalidContext)
		}
	}
	return nil
}

// ResolvedDirective is the final output of a resolution call. It is built
// fresh on every call and never persisted.
type ResolvedDirective struct {
	OptimizedPrompt   string    `json:"optimized_prompt"`
	VersionTag        string    `json:"version_tag"`
	AssignedVariant   Variant   `json:"assigned_variant"`
	ModelTier         ModelTier `json:"model_tier"`
	IsVocalEnabled    bool      `json:"is_vocal_enabled"`
	IntegrityChecksum string    `json:"integrity_checksum"`
}
