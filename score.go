package directive

import "math"

// Outcome is the verdict of an experiment comparison.
type Outcome string

const (
	OutcomeVariantA     Outcome = "VARIANT_A"
	OutcomeVariantB     Outcome = "VARIANT_B"
	OutcomeInconclusive Outcome = "INCONCLUSIVE"
)

// Scoring weights and threshold for experiment evaluation.
const (
	sentimentWeight       = 0.7
	tokenCostWeight       = 0.3
	tokensPerCostUnit     = 1000.0
	significanceThreshold = 0.08
)

// VariantMetrics aggregates observed metrics for one experiment variant.
type VariantMetrics struct {
	SentimentScore float64 `json:"sentiment_score"`
	TokensUsed     int     `json:"tokens_used"`
}

// score folds sentiment and token cost into a single comparable value.
func (m VariantMetrics) score() float64 {
	return sentimentWeight*m.SentimentScore - tokenCostWeight*(float64(m.TokensUsed)/tokensPerCostUnit)
}

// EvaluateExperiment compares the aggregate metrics of two variants and
// declares a winner, or INCONCLUSIVE when the score delta falls below the
// significance threshold.
//
// This is a fixed-effect heuristic, not a statistical significance test;
// callers must not treat the outcome as one.
func EvaluateExperiment(a, b VariantMetrics) Outcome {
	scoreA, scoreB := a.score(), b.score()
	if math.Abs(scoreA-scoreB) < significanceThreshold {
		return OutcomeInconclusive
	}
	if scoreA > scoreB {
		return OutcomeVariantA
	}
	return OutcomeVariantB
}
