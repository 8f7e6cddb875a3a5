package supabase

import (
	"fmt"

	"github.com/creastat/directive"
)

// integritySignatureKey is the metadata key carrying the directive text
// fingerprint stamped at load time for downstream audit.
const integritySignatureKey = "integrity_signature"

// BuildContext transforms a raw directive record into a governance context.
//
// Token weight is estimated from the directive text, cost efficiency is
// derived from the weight, a model tier is recommended, and an integrity
// signature over the raw directive text is stamped into version metadata.
// The result is validated against the structural contract before return.
func BuildContext(rec *ContextRecord) (*directive.GovernanceContext, error) {
	gc := &directive.GovernanceContext{
		TenantID:    rec.TenantID,
		ContextName: rec.Name,
		Status:      rec.Status,
		ActiveVersion: buildVersion(rec.SystemDirective, rec.VersionTag,
			rec.Author, rec.VersionMetadata, rec),
	}

	if rec.ExperimentalDirective != "" {
		gc.ExperimentalVersion = buildVersion(rec.ExperimentalDirective,
			rec.ExperimentalVersionTag, rec.ExperimentalAuthor,
			rec.ExperimentalMetadata, rec)
	}

	if rec.ExperimentName != "" {
		gc.Experiment = &directive.Experiment{
			IsActive:       rec.ExperimentActive,
			ExperimentName: rec.ExperimentName,
			TrafficSplit:   rec.TrafficSplit,
		}
	}

	if err := gc.Validate(); err != nil {
		return nil, fmt.Errorf("record %s: %w", rec.ID, err)
	}
	return gc, nil
}

// buildVersion assembles one prompt version with derived metrics.
func buildVersion(text, tag, author string, metadata map[string]any, rec *ContextRecord) *directive.PromptVersion {
	weight := directive.EstimateTokenWeight(text)

	// Copy the metadata bag before stamping the signature so the raw record
	// stays untouched.
	meta := make(map[string]any, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	meta[integritySignatureKey] = directive.SealText(text)

	return &directive.PromptVersion{
		VersionTag:       tag,
		SystemDirective:  text,
		AuthorIdentifier: author,
		Metrics: directive.VersionMetrics{
			EstimatedTokenWeight: weight,
			CostEfficiencyScore:  directive.CostEfficiencyScore(weight),
			RecommendedModelTier: directive.RecommendModelTier(weight),
		},
		Metadata:  meta,
		Timestamp: rec.UpdatedAt,
	}
}
