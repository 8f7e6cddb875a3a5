package supabase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creastat/directive"
)

func testRecord() *ContextRecord {
	return &ContextRecord{
		ID:              "rec-1",
		TenantID:        "tenant-1",
		Name:            "support bot",
		Status:          directive.StatusProduction,
		SystemDirective: "You are the support assistant. Be helpful and accurate.",
		VersionTag:      "v2.3.0",
		Author:          "ops@acme.test",
		VersionMetadata: map[string]any{"voice_output_enabled": true},
		UpdatedAt:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildContext(t *testing.T) {
	t.Run("production only", func(t *testing.T) {
		rec := testRecord()
		gc, err := BuildContext(rec)
		require.NoError(t, err)

		assert.Equal(t, "tenant-1", gc.TenantID)
		assert.Equal(t, "support bot", gc.ContextName)
		assert.Nil(t, gc.ExperimentalVersion)
		assert.Nil(t, gc.Experiment)

		v := gc.ActiveVersion
		require.NotNil(t, v)
		assert.Equal(t, "v2.3.0", v.VersionTag)
		assert.Equal(t, rec.SystemDirective, v.SystemDirective)
		assert.Equal(t, "ops@acme.test", v.AuthorIdentifier)
		assert.Equal(t, rec.UpdatedAt, v.Timestamp)

		assert.Equal(t, directive.EstimateTokenWeight(rec.SystemDirective), v.Metrics.EstimatedTokenWeight)
		assert.Equal(t, directive.CostEfficiencyScore(v.Metrics.EstimatedTokenWeight), v.Metrics.CostEfficiencyScore)
		assert.Equal(t, directive.TierEconomy, v.Metrics.RecommendedModelTier)
	})

	t.Run("integrity signature stamped into metadata", func(t *testing.T) {
		rec := testRecord()
		gc, err := BuildContext(rec)
		require.NoError(t, err)

		sig, ok := gc.ActiveVersion.Metadata[integritySignatureKey].(string)
		require.True(t, ok)
		assert.Equal(t, directive.SealText(rec.SystemDirective), sig)
		// Original flags survive the stamping, raw record stays untouched.
		assert.Equal(t, true, gc.ActiveVersion.Metadata["voice_output_enabled"])
		assert.NotContains(t, rec.VersionMetadata, integritySignatureKey)
	})

	t.Run("heavy directive penalized and promoted", func(t *testing.T) {
		rec := testRecord()
		rec.SystemDirective = strings.Repeat("Follow every policy below carefully. ", 400)
		gc, err := BuildContext(rec)
		require.NoError(t, err)

		m := gc.ActiveVersion.Metrics
		assert.Less(t, m.CostEfficiencyScore, 100)
		assert.Equal(t, directive.TierPremium, m.RecommendedModelTier)
	})

	t.Run("experiment columns populate experiment and variant", func(t *testing.T) {
		rec := testRecord()
		rec.ExperimentalDirective = "You are the support assistant. Be proactive."
		rec.ExperimentalVersionTag = "v2.4.0-exp"
		rec.ExperimentalAuthor = "growth@acme.test"
		rec.ExperimentActive = true
		rec.ExperimentName = "proactive-tone"
		rec.TrafficSplit = 0.25

		gc, err := BuildContext(rec)
		require.NoError(t, err)

		require.NotNil(t, gc.ExperimentalVersion)
		assert.Equal(t, "v2.4.0-exp", gc.ExperimentalVersion.VersionTag)
		assert.Equal(t, directive.SealText(rec.ExperimentalDirective),
			gc.ExperimentalVersion.Metadata[integritySignatureKey])

		require.NotNil(t, gc.Experiment)
		assert.True(t, gc.Experiment.IsActive)
		assert.Equal(t, "proactive-tone", gc.Experiment.ExperimentName)
		assert.Equal(t, 0.25, gc.Experiment.TrafficSplit)
	})

	t.Run("structural violations rejected", func(t *testing.T) {
		rec := testRecord()
		rec.SystemDirective = ""
		_, err := BuildContext(rec)
		assert.ErrorIs(t, err, directive.ErrInvalidContext)

		rec = testRecord()
		rec.ExperimentName = "exp"
		rec.ExperimentActive = true
		rec.TrafficSplit = 2.0
		_, err = BuildContext(rec)
		assert.ErrorIs(t, err, directive.ErrInvalidContext)
	})
}
