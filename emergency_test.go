package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmergencyContext(t *testing.T) {
	t.Run("well formed", func(t *testing.T) {
		c := EmergencyContext("tenant-1")
		require.NoError(t, c.Validate())
		assert.Equal(t, "tenant-1", c.TenantID)
		assert.Equal(t, EmergencyVersionTag, c.ActiveVersion.VersionTag)
		assert.Equal(t, true, c.ActiveVersion.Metadata["is_failsafe"])
		assert.Equal(t, TierEconomy, c.ActiveVersion.Metrics.RecommendedModelTier)
		assert.Nil(t, c.Experiment)
		assert.Nil(t, c.ExperimentalVersion)
	})

	t.Run("fresh on every call", func(t *testing.T) {
		first := EmergencyContext("tenant-1")
		first.ActiveVersion.SystemDirective = "tampered"
		first.ActiveVersion.Metadata["leak"] = "tenant-1-secret"
		first.Experiment = &Experiment{IsActive: true, ExperimentName: "leak", TrafficSplit: 1}

		second := EmergencyContext("tenant-2")
		assert.Equal(t, "tenant-2", second.TenantID)
		assert.NotEqual(t, "tampered", second.ActiveVersion.SystemDirective)
		assert.NotContains(t, second.ActiveVersion.Metadata, "leak")
		assert.Nil(t, second.Experiment, "no state may leak between fallbacks")
	})
}
