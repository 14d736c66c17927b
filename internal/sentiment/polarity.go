package sentiment

import "strings"

// PolarityScores is the output of the polarity/subjectivity model.
type PolarityScores struct {
	Polarity     float64 // [-1, 1]
	Subjectivity float64 // [0, 1], opinionated vs. factual
}

type polarityEntry struct {
	polarity     float64
	subjectivity float64
}

// polarityLexicon maps lowercase words to (polarity, subjectivity) pairs,
// averaged over matched tokens. Intensity and negation of a preceding word
// adjust the match before averaging.
var polarityLexicon = map[string]polarityEntry{
	// general adjectives
	"amazing": {0.75, 0.9}, "awesome": {0.9, 0.95}, "awful": {-0.9, 0.9},
	"bad": {-0.7, 0.67}, "best": {1.0, 0.3}, "better": {0.5, 0.5},
	"excellent": {1.0, 1.0}, "exciting": {0.55, 0.8}, "good": {0.7, 0.6},
	"great": {0.8, 0.75}, "happy": {0.8, 1.0}, "horrible": {-1.0, 1.0},
	"nice": {0.6, 1.0}, "poor": {-0.6, 0.65}, "sad": {-0.5, 1.0},
	"terrible": {-1.0, 1.0}, "worst": {-1.0, 0.3},

	// market language
	"bearish": {-0.6, 0.8}, "bullish": {0.6, 0.8}, "beat": {0.4, 0.6},
	"beats": {0.5, 0.65}, "collapse": {-0.75, 0.7}, "concern": {-0.3, 0.55},
	"crash": {-0.8, 0.75}, "decline": {-0.4, 0.5}, "disappointing": {-0.65, 0.75},
	"downgrade": {-0.5, 0.55}, "fall": {-0.3, 0.45}, "fraud": {-0.9, 0.85},
	"gain": {0.4, 0.5}, "gains": {0.4, 0.5}, "growth": {0.4, 0.45},
	"lawsuit": {-0.5, 0.6}, "layoffs": {-0.6, 0.65}, "loss": {-0.45, 0.5},
	"miss": {-0.4, 0.6}, "optimistic": {0.6, 0.8}, "pessimistic": {-0.6, 0.8},
	"plunge": {-0.6, 0.65}, "profit": {0.45, 0.5}, "profitable": {0.6, 0.7},
	"promising": {0.6, 0.7}, "rally": {0.5, 0.6}, "rebound": {0.4, 0.55},
	"risky": {-0.4, 0.7}, "robust": {0.5, 0.55}, "scandal": {-0.7, 0.8},
	"slump": {-0.5, 0.6}, "solid": {0.4, 0.5}, "stable": {0.3, 0.4},
	"strong": {0.45, 0.55}, "surge": {0.5, 0.6}, "uncertain": {-0.3, 0.65},
	"upgrade": {0.5, 0.55}, "volatile": {-0.3, 0.6}, "weak": {-0.4, 0.55},
}

// intensifiers multiply the polarity and subjectivity of the following
// matched word. Values above 1 amplify, below 1 dampen.
var intensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "really": 1.3, "highly": 1.4,
	"incredibly": 1.5, "hugely": 1.4, "massively": 1.4, "massive": 1.4,
	"quite": 1.1, "fairly": 0.8, "somewhat": 0.7, "slightly": 0.6,
	"barely": 0.5, "hardly": 0.5,
}

// polarityNegators flip the following matched word. Apostrophe-stripped
// forms included for post-normalization text.
var polarityNegators = map[string]bool{
	"not": true, "no": true, "never": true, "neither": true,
	"nor": true, "cannot": true, "cant": true, "can't": true,
	"dont": true, "don't": true, "doesnt": true, "doesn't": true,
	"didnt": true, "didn't": true, "isnt": true, "isn't": true,
	"wasnt": true, "wasn't": true, "arent": true, "aren't": true,
	"werent": true, "weren't": true, "wont": true, "won't": true,
	"wouldnt": true, "wouldn't": true, "couldnt": true, "couldn't": true,
	"shouldnt": true, "shouldn't": true, "hasnt": true, "hasn't": true,
	"havent": true, "haven't": true, "hadnt": true, "hadn't": true,
}

// PolarityModel averages per-word polarity and subjectivity over matched
// tokens, with intensifier multipliers and negation flips. No matches
// yields (0, 0). Offline and deterministic.
type PolarityModel struct {
	lexicon map[string]polarityEntry
}

// NewPolarityModel returns a model over the bundled polarity lexicon.
func NewPolarityModel() *PolarityModel {
	return &PolarityModel{lexicon: polarityLexicon}
}

// Score rates one piece of text.
func (m *PolarityModel) Score(text string) PolarityScores {
	tokens := strings.Fields(strings.ToLower(text))

	var polSum, subSum float64
	matched := 0

	for i, tok := range tokens {
		entry, ok := m.lexicon[tok]
		if !ok {
			continue
		}
		pol := entry.polarity
		sub := entry.subjectivity

		// Look back one word for an intensifier, then one more for a
		// negator ("not very good").
		j := i - 1
		if j >= 0 {
			if mult, ok := intensifiers[tokens[j]]; ok {
				pol *= mult
				sub *= mult
				j--
			}
		}
		if j >= 0 && polarityNegators[tokens[j]] {
			pol *= -0.5
		}

		polSum += clamp(pol, -1, 1)
		subSum += clamp(sub, 0, 1)
		matched++
	}

	if matched == 0 {
		return PolarityScores{}
	}
	return PolarityScores{
		Polarity:     polSum / float64(matched),
		Subjectivity: subSum / float64(matched),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
