package sentiment

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// LexiconScores is the raw output of the lexicon-rule model.
type LexiconScores struct {
	Compound float64 // [-1, 1], rounded to 4 decimals
	Pos      float64 // share in [0, 1], rounded to 3 decimals
	Neg      float64
	Neu      float64
}

// LexiconModel scores text with the bundled valence lexicon plus the
// heuristic rule set: boosters with distance decay, ALL-CAPS emphasis,
// negation scaling, "least" and "never so/this" checks, "but" clause
// re-weighting, punctuation emphasis and multiword idiom overrides.
// Fully offline and deterministic.
type LexiconModel struct {
	lexicon map[string]float64
	idioms  map[string]float64
}

// NewLexiconModel returns a model over the bundled finance lexicon.
func NewLexiconModel() *LexiconModel {
	return &LexiconModel{lexicon: financeLexicon, idioms: specialIdioms}
}

// Score rates one piece of text. Input is expected lowercase and
// punctuation-free when it comes through the pipeline, but the rules that
// read raw casing and punctuation still apply when scoring direct input.
func (m *LexiconModel) Score(text string) LexiconScores {
	tokens := tokenize(text)
	isCapDiff := allCapDifferential(tokens)

	var sentiments []float64
	for i, tok := range tokens {
		lower := strings.ToLower(tok)

		// Boosters carry no valence of their own.
		if _, ok := boosterMap[lower]; ok {
			sentiments = append(sentiments, 0)
			continue
		}
		if lower == "kind" && i+1 < len(tokens) && strings.ToLower(tokens[i+1]) == "of" {
			sentiments = append(sentiments, 0)
			continue
		}

		sentiments = append(sentiments, m.valence(tokens, i, isCapDiff))
	}

	sentiments = butCheck(tokens, sentiments)
	return m.scoreValence(sentiments, text)
}

const tokenPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// tokenize splits on whitespace, drops single-character tokens and strips
// edge punctuation unless stripping would leave a single character (keeps
// contractions and most emoticons).
func tokenize(text string) []string {
	var tokens []string
	for _, f := range strings.Fields(text) {
		if len(f) <= 1 {
			continue
		}
		if trimmed := strings.Trim(f, tokenPunct); len(trimmed) > 1 {
			tokens = append(tokens, trimmed)
		} else {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// allCapDifferential reports whether some but not all tokens are ALL CAPS.
func allCapDifferential(tokens []string) bool {
	allCaps := 0
	for _, t := range tokens {
		if t == strings.ToUpper(t) {
			allCaps++
		}
	}
	diff := len(tokens) - allCaps
	return diff > 0 && diff < len(tokens)
}

// negated reports whether a single word negates what follows it.
func negated(word string) bool {
	if negations[word] {
		return true
	}
	return strings.Contains(word, "n't")
}

// scalarIncDec returns the valence shift contributed by a preceding
// booster/dampener word, sign-aligned with the target valence.
func scalarIncDec(word string, valence float64, isCapDiff bool) float64 {
	value, ok := boosterMap[strings.ToLower(word)]
	if !ok {
		return 0
	}

	shift := value
	if valence < 0 {
		shift = -shift
	}
	if word == strings.ToUpper(word) && isCapDiff {
		if valence > 0 {
			shift += capIncr
		} else {
			shift -= capIncr
		}
	}
	return shift
}

// valence computes the adjusted valence of the token at i: lexicon lookup,
// caps emphasis, then a three-word lookback for boosters (damped ×0.95 at
// distance 2, ×0.9 at distance 3), negations and idioms.
func (m *LexiconModel) valence(tokens []string, i int, isCapDiff bool) float64 {
	item := tokens[i]
	valence, ok := m.lexicon[strings.ToLower(item)]
	if !ok {
		return 0
	}

	if item == strings.ToUpper(item) && isCapDiff {
		if valence > 0 {
			valence += capIncr
		} else {
			valence -= capIncr
		}
	}

	for dist := 0; dist <= 2; dist++ {
		if i <= dist {
			continue
		}
		prev := tokens[i-(dist+1)]
		if _, inLexicon := m.lexicon[strings.ToLower(prev)]; inLexicon {
			continue
		}

		s := scalarIncDec(prev, valence, isCapDiff)
		if dist == 1 && s != 0 {
			s *= 0.95
		}
		if dist == 2 && s != 0 {
			s *= 0.9
		}
		valence += s

		valence = negationCheck(valence, tokens, dist, i)
		if dist == 2 {
			valence = m.idiomCheck(valence, tokens, i)
		}
	}

	return m.leastCheck(valence, tokens, i)
}

// negationCheck scales valence when the word at lookback distance dist
// negates, with the "never so/this" and "without doubt" exemptions.
func negationCheck(valence float64, tokens []string, dist, i int) float64 {
	at := func(k int) string { return strings.ToLower(tokens[k]) }

	switch dist {
	case 0:
		if negated(at(i - 1)) {
			valence *= negScalar
		}
	case 1:
		if at(i-2) == "never" && (at(i-1) == "so" || at(i-1) == "this") {
			valence *= 1.25
		} else if at(i-2) == "without" && at(i-1) == "doubt" {
			// plain emphasis, leave valence unchanged
		} else if negated(at(i - 2)) {
			valence *= negScalar
		}
	case 2:
		if at(i-3) == "never" && (at(i-2) == "so" || at(i-2) == "this") ||
			(at(i-1) == "so" || at(i-1) == "this") {
			valence *= 1.25
		} else if at(i-3) == "without" && (at(i-2) == "doubt" || at(i-1) == "doubt") {
			// plain emphasis, leave valence unchanged
		} else if negated(at(i - 3)) {
			valence *= negScalar
		}
	}

	return valence
}

// leastCheck handles "least X" as negation unless preceded by "at"/"very".
func (m *LexiconModel) leastCheck(valence float64, tokens []string, i int) float64 {
	if i == 0 {
		return valence
	}
	prev := strings.ToLower(tokens[i-1])
	if _, inLexicon := m.lexicon[prev]; inLexicon || prev != "least" {
		return valence
	}

	if i > 1 {
		if p2 := strings.ToLower(tokens[i-2]); p2 == "at" || p2 == "very" {
			return valence
		}
	}
	return valence * negScalar
}

// idiomCheck replaces valence when a known multiword idiom surrounds the
// token at i, then applies booster n-grams such as "sort of".
func (m *LexiconModel) idiomCheck(valence float64, tokens []string, i int) float64 {
	at := func(k int) string { return strings.ToLower(tokens[k]) }

	onezero := at(i-1) + " " + at(i)
	twoonezero := at(i-2) + " " + at(i-1) + " " + at(i)
	twoone := at(i-2) + " " + at(i-1)
	threetwoone := at(i-3) + " " + at(i-2) + " " + at(i-1)
	threetwo := at(i-3) + " " + at(i-2)

	for _, seq := range []string{onezero, twoonezero, twoone, threetwoone, threetwo} {
		if v, ok := m.idioms[seq]; ok {
			valence = v
			break
		}
	}

	if i < len(tokens)-1 {
		if v, ok := m.idioms[at(i)+" "+at(i+1)]; ok {
			valence = v
		}
	}
	if i < len(tokens)-2 {
		if v, ok := m.idioms[at(i)+" "+at(i+1)+" "+at(i+2)]; ok {
			valence = v
		}
	}

	for _, ngram := range []string{threetwoone, threetwo, twoone} {
		if v, ok := boosterMap[ngram]; ok {
			valence += v
		}
	}
	return valence
}

// butCheck re-weights the sentence around a contrastive "but": everything
// before it ×0.5, everything after ×1.5.
func butCheck(tokens []string, sentiments []float64) []float64 {
	for bi, tok := range tokens {
		if strings.ToLower(tok) != "but" {
			continue
		}
		for si := range sentiments {
			if si < bi {
				sentiments[si] *= 0.5
			} else if si > bi {
				sentiments[si] *= 1.5
			}
		}
	}
	return sentiments
}

// punctuationEmphasis returns the extra intensity contributed by
// exclamation points (0.292 each, capped at 4) and question marks
// (0.18 each for 2-3, 0.96 for 4 or more).
func punctuationEmphasis(text string) float64 {
	ep := strings.Count(text, "!")
	if ep > 4 {
		ep = 4
	}
	amplifier := float64(ep) * 0.292

	qm := strings.Count(text, "?")
	if qm > 1 {
		if qm <= 3 {
			amplifier += float64(qm) * 0.18
		} else {
			amplifier += 0.96
		}
	}
	return amplifier
}

// siftScores splits token valences into positive and negative sums plus a
// neutral count. The ±1 offsets compensate for neutral tokens counting 1.
func siftScores(sentiments []float64) (posSum, negSum float64, neuCount int) {
	for _, s := range sentiments {
		if s > 0 {
			posSum += s + 1
		} else if s < 0 {
			negSum += s - 1
		} else {
			neuCount++
		}
	}
	return posSum, negSum, neuCount
}

// normalizeScore maps an unbounded valence sum into [-1, 1].
func normalizeScore(score float64) float64 {
	n := score / math.Sqrt(score*score+normAlpha)
	if n < -1 {
		return -1
	}
	if n > 1 {
		return 1
	}
	return n
}

func (m *LexiconModel) scoreValence(sentiments []float64, text string) LexiconScores {
	if len(sentiments) == 0 {
		return LexiconScores{}
	}

	sum := floats.Sum(sentiments)
	amplifier := punctuationEmphasis(text)
	if sum > 0 {
		sum += amplifier
	} else if sum < 0 {
		sum -= amplifier
	}
	compound := normalizeScore(sum)

	posSum, negSum, neuCount := siftScores(sentiments)
	if posSum > math.Abs(negSum) {
		posSum += amplifier
	} else if posSum < math.Abs(negSum) {
		negSum -= amplifier
	}

	total := posSum + math.Abs(negSum) + float64(neuCount)
	return LexiconScores{
		Compound: scalar.Round(compound, 4),
		Pos:      scalar.Round(math.Abs(posSum/total), 3),
		Neg:      scalar.Round(math.Abs(negSum/total), 3),
		Neu:      scalar.Round(math.Abs(float64(neuCount)/total), 3),
	}
}
