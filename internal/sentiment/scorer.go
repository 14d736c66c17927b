// Package sentiment implements the offline scoring pipeline: text
// normalization, a lexicon-rule model, a polarity/subjectivity model,
// pluggable blend strategies, fixed-threshold label classification,
// collection aggregation and the synthetic social-post generator.
// Nothing in this package performs network I/O.
package sentiment

import "github.com/tradewatch/stockpulse/pkg/models"

// Fixed classification thresholds on the compound score.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// Classify maps a compound score onto the three-way label scale. Pure and
// total: every float maps to exactly one label.
func Classify(compound float64) models.SentimentLabel {
	switch {
	case compound >= positiveThreshold:
		return models.LabelPositive
	case compound <= negativeThreshold:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

// Scorer runs the full per-item pipeline: normalize, score with both
// models, blend. Safe for concurrent use; both models are read-only after
// construction.
type Scorer struct {
	lexicon  *LexiconModel
	polarity *PolarityModel
	blend    BlendStrategy
}

// NewScorer builds a scorer over the bundled lexicons. A nil strategy
// selects the canonical blend.
func NewScorer(blend BlendStrategy) *Scorer {
	if blend == nil {
		blend = CanonicalBlend{}
	}
	return &Scorer{
		lexicon:  NewLexiconModel(),
		polarity: NewPolarityModel(),
		blend:    blend,
	}
}

// BlendName reports the active strategy, for display and diagnostics.
func (s *Scorer) BlendName() string { return s.blend.Name() }

// Score rates one piece of raw text. Input that is empty or normalizes to
// empty resolves locally to the fixed neutral score without invoking
// either model.
func (s *Scorer) Score(raw string) models.SentimentScore {
	text := Normalize(raw)
	if text == "" {
		return models.NeutralScore()
	}

	lex := s.lexicon.Score(text)
	pol := s.polarity.Score(text)
	return s.blend.Blend(lex, pol)
}
