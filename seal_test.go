package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeal(t *testing.T) {
	t.Run("fixed length hex", func(t *testing.T) {
		s := Seal([]byte("directive"))
		assert.Len(t, s, 64)
		assert.Equal(t, s, SealText("directive"))
	})

	t.Run("deterministic and content sensitive", func(t *testing.T) {
		assert.Equal(t, Seal([]byte("a")), Seal([]byte("a")))
		assert.NotEqual(t, Seal([]byte("a")), Seal([]byte("b")))
	})
}

func TestSealContext(t *testing.T) {
	base := func() *GovernanceContext {
		return &GovernanceContext{
			TenantID:    "tenant-1",
			ContextName: "support bot",
			Status:      StatusProduction,
			ActiveVersion: &PromptVersion{
				VersionTag:      "v1.2.0",
				SystemDirective: "Be helpful.",
				Metadata:        map[string]any{"b": 2, "a": 1},
			},
		}
	}

	s1, err := SealContext(base())
	require.NoError(t, err)
	s2, err := SealContext(base())
	require.NoError(t, err)
	assert.Equal(t, s1, s2, "equal contexts must seal identically")

	changed := base()
	changed.ActiveVersion.SystemDirective = "Be terse."
	s3, err := SealContext(changed)
	require.NoError(t, err)
	assert.NotEqual(t, s1, s3)
}
