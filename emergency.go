package directive

import "time"

// EmergencyVersionTag marks a directive served from the compiled-in
// emergency tier.
const EmergencyVersionTag = "v0.0.0-genesis"

// emergencyDirectiveText is the conservative instruction set served when no
// persistence tier can produce the tenant's real directive.
const emergencyDirectiveText = "You are a helpful, careful assistant. " +
	"Answer the user's question directly and concisely. " +
	"If you are unsure, say so rather than guessing. " +
	"Do not take actions on the user's behalf or make commitments for the business."

// EmergencyContext returns the compiled-in fallback context for a tenant.
//
// A new context, version, and metadata map are allocated on every call so
// concurrent fallbacks for different tenants can never observe each other's
// state. This tier never fails.
func EmergencyContext(tenantID string) *GovernanceContext {
	weight := EstimateTokenWeight(emergencyDirectiveText)
	return &GovernanceContext{
		TenantID:    tenantID,
		ContextName: "emergency-failsafe",
		Status:      StatusProduction,
		ActiveVersion: &PromptVersion{
			VersionTag:       EmergencyVersionTag,
			SystemDirective:  emergencyDirectiveText,
			AuthorIdentifier: "system",
			Metrics: VersionMetrics{
				EstimatedTokenWeight: weight,
				CostEfficiencyScore:  CostEfficiencyScore(weight),
				RecommendedModelTier: TierEconomy,
			},
			Metadata: map[string]any{
				"is_failsafe": true,
			},
			Timestamp: time.Now(),
		},
	}
}
