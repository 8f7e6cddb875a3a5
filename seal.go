package directive

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Seal computes a tamper-evidence fingerprint for the given payload.
// Deterministic, fixed-length (64 hex chars), no side effects.
func Seal(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// SealText seals a directive text.
func SealText(text string) string {
	return Seal([]byte(text))
}

// SealContext seals a governance context over its canonical JSON form.
// encoding/json sorts map keys, so equal contexts always produce equal seals.
func SealContext(c *GovernanceContext) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return Seal(b), nil
}
