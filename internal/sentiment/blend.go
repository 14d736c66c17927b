package sentiment

import (
	"strings"

	"github.com/tradewatch/stockpulse/pkg/models"
)

// BlendStrategy combines the two model outputs into one SentimentScore.
// A scorer is built with exactly one strategy; the two are never mixed
// within a single pipeline.
type BlendStrategy interface {
	Name() string
	Blend(lex LexiconScores, pol PolarityScores) models.SentimentScore
}

// BlendByName resolves a configured strategy name. Unknown names fall back
// to the canonical blend.
func BlendByName(name string) BlendStrategy {
	if strings.EqualFold(name, "sharpened") {
		return SharpenedBlend{}
	}
	return CanonicalBlend{}
}

// CanonicalBlend weights the lexicon-rule compound at 0.7 against the
// polarity model at 0.3 and takes the pos/neg/neu shares straight from the
// lexicon model. This is the authoritative default.
type CanonicalBlend struct{}

func (CanonicalBlend) Name() string { return "canonical" }

func (CanonicalBlend) Blend(lex LexiconScores, pol PolarityScores) models.SentimentScore {
	compound := lex.Compound*0.7 + pol.Polarity*0.3
	return models.SentimentScore{
		Compound:     compound,
		Positive:     lex.Pos,
		Negative:     lex.Neg,
		Neutral:      lex.Neu,
		Subjectivity: pol.Subjectivity,
		Label:        Classify(compound),
	}
}

// sharpBoundary is the decision boundary SharpenedBlend applies to its own
// sub-scores instead of the ±0.05 compound rule.
const sharpBoundary = 0.55

// SharpenedBlend averages each lexicon share with the sign-matching half of
// the polarity signal and labels on the recomputed sub-scores. Decisive
// labels stretch the compound into the [0.6, 1.0] / [-1.0, -0.6] bands so
// downstream consumers see an unambiguous signal.
type SharpenedBlend struct{}

func (SharpenedBlend) Name() string { return "sharpened" }

func (SharpenedBlend) Blend(lex LexiconScores, pol PolarityScores) models.SentimentScore {
	pos := lex.Pos * 0.5
	neg := lex.Neg * 0.5
	if pol.Polarity > 0 {
		pos += pol.Polarity * 0.5
	} else {
		neg += -pol.Polarity * 0.5
	}
	neu := 1 - pos - neg
	if neu < 0 {
		neu = 0
	}

	score := models.SentimentScore{
		Positive:     pos,
		Negative:     neg,
		Neutral:      neu,
		Subjectivity: pol.Subjectivity,
	}

	switch {
	case pos >= sharpBoundary:
		score.Compound = stretch(pos)
		score.Label = models.LabelPositive
	case neg >= sharpBoundary:
		score.Compound = -stretch(neg)
		score.Label = models.LabelNegative
	default:
		score.Compound = pos - neg
		score.Label = models.LabelNeutral
	}
	return score
}

// stretch maps a decisive sub-score in [0.55, 1] onto [0.6, 1.0].
func stretch(s float64) float64 {
	return 0.6 + (s-sharpBoundary)/(1-sharpBoundary)*0.4
}
