package directive

// Token-weight thresholds for derived metrics.
const (
	// heavyDirectiveCutoff is the token weight above which a directive is
	// considered expensive and its cost efficiency is penalized.
	heavyDirectiveCutoff = 800

	// Model tier recommendation boundaries. Heavier directives get stronger
	// models so instruction-following does not degrade.
	economyTierMaxWeight  = 300
	standardTierMaxWeight = 1200
)

// EstimateTokenWeight estimates the token count for a directive text using a
// Unicode-aware heuristic.
// ASCII characters (English, numbers, punctuation) are weighted at ~4 per token.
// Non-ASCII characters (CJK, Cyrillic, Arabic, Emoji, etc.) are weighted at ~1 per token.
func EstimateTokenWeight(text string) int {
	weight := 0
	for _, r := range text {
		switch {
		case r <= 127: // ASCII (English, numbers, punctuation)
			weight += 1 // ~4 ASCII chars = 1 token
		default: // Non-ASCII (CJK, Cyrillic, Arabic, Emoji, etc.)
			weight += 4 // ~1 non-ASCII char = 1 token (conservative)
		}
	}
	// Result:
	// - English: 4 chars -> 1 token
	// - CJK/Cyrillic: 1 char -> 1 token
	// - Mixed: weighted average
	return (weight + 3) / 4
}

// CostEfficiencyScore derives a 0-100 efficiency score from a token weight.
// Directives at or below the cutoff score 100; heavier directives lose one
// point per 1% overshoot, floored at zero.
func CostEfficiencyScore(tokenWeight int) int {
	if tokenWeight <= heavyDirectiveCutoff {
		return 100
	}
	overshoot := (tokenWeight - heavyDirectiveCutoff) * 100 / heavyDirectiveCutoff
	score := 100 - overshoot
	if score < 0 {
		return 0
	}
	return score
}

// RecommendModelTier maps a token weight onto a model tier.
func RecommendModelTier(tokenWeight int) ModelTier {
	switch {
	case tokenWeight <= economyTierMaxWeight:
		return TierEconomy
	case tokenWeight <= standardTierMaxWeight:
		return TierStandard
	default:
		return TierPremium
	}
}
