package sentiment

// Empirically derived rule constants. boostIncr/boostDecr shift valence for
// degree adverbs, capIncr for ALL-CAPS emphasis, negScalar flips and damps
// negated valence. normAlpha approximates the max expected valence sum.
const (
	boostIncr = 0.293
	boostDecr = -0.293
	capIncr   = 0.733
	negScalar = -0.74
	normAlpha = 15
)

// financeLexicon maps lowercase words to valence on a [-4, 4] scale,
// hand-weighted for market and earnings language. General sentiment words
// keep their conventional weights; finance terms are tuned for headline use
// ("beats", "downgrade", "layoffs").
var financeLexicon = map[string]float64{
	// positive: performance and results
	"beat": 1.9, "beats": 2.2, "blockbuster": 2.6, "bonus": 1.7,
	"boom": 2.3, "boost": 1.8, "boosted": 1.8, "breakout": 1.9,
	"breakthrough": 2.4, "bullish": 2.7, "buyback": 1.6, "climb": 1.4,
	"climbed": 1.4, "climbs": 1.4, "comeback": 1.5, "deliver": 1.0,
	"dividend": 1.2, "exceed": 2.0, "exceeded": 2.0, "exceeds": 2.0,
	"expand": 1.3, "expansion": 1.4, "gain": 1.7, "gained": 1.7,
	"gains": 1.7, "grew": 1.4, "growth": 1.6, "healthy": 1.7,
	"high": 0.9, "improve": 1.7, "improved": 1.7, "improvement": 1.6,
	"jump": 1.5, "jumped": 1.5, "jumps": 1.5, "lucrative": 2.0,
	"milestone": 1.6, "momentum": 1.2, "opportunity": 1.3, "optimism": 1.9,
	"optimistic": 2.0, "outperform": 2.2, "outperformed": 2.2, "outperforms": 2.2,
	"overweight": 1.3, "profit": 1.9, "profitable": 2.1, "profits": 1.9,
	"progress": 1.5, "promising": 1.9, "rally": 2.0, "rallied": 2.0,
	"rallies": 2.0, "rebound": 1.6, "rebounded": 1.6, "recovery": 1.5,
	"resilient": 1.6, "reward": 1.7, "rise": 1.3, "rises": 1.3,
	"rose": 1.3, "robust": 1.8, "soar": 2.4, "soared": 2.4,
	"soars": 2.4, "solid": 1.5, "stable": 1.1, "steady": 0.9,
	"strength": 1.6, "strong": 1.9, "succeed": 1.9, "success": 2.1,
	"successful": 2.2, "surge": 2.2, "surged": 2.2, "surges": 2.2,
	"surpass": 2.0, "surpassed": 2.0, "surpasses": 2.0, "thrive": 2.1,
	"tops": 1.4, "triumph": 2.4, "upbeat": 1.9, "upgrade": 1.9,
	"upgraded": 1.9, "upgrades": 1.9, "upside": 1.5, "uptrend": 1.8,
	"win": 2.4, "winner": 2.2, "wins": 2.4, "withstand": 1.2,

	// positive: general sentiment, kept for social text
	"amazing": 2.8, "approval": 1.6, "approved": 1.5, "attractive": 1.6,
	"awesome": 3.1, "best": 3.2, "better": 1.9, "confident": 1.9,
	"excellent": 2.7, "excited": 2.2, "exciting": 2.2, "good": 1.9,
	"great": 3.1, "happy": 2.7, "innovative": 1.7, "love": 3.2,
	"nice": 1.8, "positive": 2.1, "wow": 2.8,

	// negative: performance and results
	"bankrupt": -3.2, "bankruptcy": -3.4, "bearish": -2.7, "collapse": -2.8,
	"collapsed": -2.8, "correction": -1.0, "crash": -3.1, "crashed": -3.1,
	"crashes": -3.1, "cut": -1.1, "cuts": -1.1, "decline": -1.5,
	"declined": -1.5, "declines": -1.5, "default": -2.6, "deficit": -1.5,
	"disappoint": -2.0, "disappointing": -2.2, "disappoints": -2.0, "downgrade": -1.9,
	"downgraded": -1.9, "downgrades": -1.9, "downturn": -1.9, "drop": -1.4,
	"dropped": -1.4, "drops": -1.4, "fall": -1.3, "falls": -1.3,
	"fell": -1.3, "loss": -1.8, "losses": -1.9, "low": -0.9,
	"lower": -1.0, "lowered": -1.2, "miss": -1.6, "missed": -1.8,
	"misses": -1.8, "plummet": -2.7, "plummeted": -2.7, "plummets": -2.7,
	"plunge": -2.5, "plunged": -2.5, "plunges": -2.5, "selloff": -2.3,
	"shortfall": -1.9, "shrink": -1.4, "shutdown": -1.9, "sink": -1.8,
	"sinks": -1.9, "slash": -1.7, "slashed": -1.8, "slide": -1.4,
	"slides": -1.4, "slip": -1.1, "slips": -1.1, "slowdown": -1.6,
	"slump": -2.0, "slumped": -2.0, "slumps": -2.0, "tumble": -1.9,
	"tumbled": -1.9, "tumbles": -1.9, "underperform": -2.0, "underperformed": -2.0,
	"underperforms": -2.0, "volatile": -1.3, "volatility": -1.0, "weak": -1.6,
	"weakness": -1.6, "writedown": -2.0, "writeoff": -2.0,

	// negative: corporate trouble
	"breach": -1.9, "bribery": -2.9, "concern": -1.1, "concerns": -1.1,
	"crisis": -2.7, "damage": -1.8, "danger": -2.4, "delay": -1.1,
	"delayed": -1.1, "dispute": -1.4, "faces": -0.8, "fail": -2.3,
	"failed": -2.3, "fails": -2.3, "failure": -2.5, "fined": -2.0,
	"fines": -1.8, "fraud": -3.2, "fraudulent": -3.0, "halt": -1.3,
	"halted": -1.3, "hurt": -1.7, "indicted": -2.5, "insolvency": -3.0,
	"investigation": -1.5, "lawsuit": -2.1, "lawsuits": -2.1, "layoff": -2.4,
	"layoffs": -2.6, "liquidation": -2.5, "litigation": -1.9, "penalty": -1.8,
	"probe": -1.5, "problem": -1.6, "problems": -1.7, "recall": -1.7,
	"recession": -2.4, "resign": -1.4, "resignation": -1.5, "risk": -1.0,
	"risks": -1.0, "risky": -1.3, "scam": -3.0, "scandal": -2.6,
	"scrutiny": -1.3, "struggle": -1.8, "struggles": -1.8, "sue": -2.0,
	"sued": -2.1, "sues": -2.0, "threat": -1.8, "trouble": -1.7,
	"troubled": -1.9, "turmoil": -2.2, "uncertain": -1.2, "uncertainty": -1.4,
	"warn": -1.6, "warned": -1.6, "warning": -1.7, "worries": -1.6,
	"worry": -1.6,

	// negative: general sentiment
	"awful": -2.9, "bad": -2.5, "fear": -1.9, "fears": -1.9,
	"hate": -2.7, "horrible": -2.5, "lose": -1.9, "loses": -1.9,
	"lost": -1.7, "negative": -1.9, "panic": -2.6, "pessimism": -1.9,
	"pessimistic": -2.0, "poor": -2.1, "sad": -2.1, "terrible": -3.0,
	"worst": -2.9,
}

// boosterMap lists degree adverbs that intensify (boostIncr) or dampen
// (boostDecr) a following sentiment word. Multiword entries only apply
// through the idiom n-gram check.
var boosterMap = map[string]float64{
	"absolutely": boostIncr, "amazingly": boostIncr, "awfully": boostIncr, "completely": boostIncr,
	"considerably": boostIncr, "decidedly": boostIncr, "deeply": boostIncr, "enormously": boostIncr,
	"entirely": boostIncr, "especially": boostIncr, "exceptionally": boostIncr, "extremely": boostIncr,
	"fully": boostIncr, "greatly": boostIncr, "heavily": boostIncr, "highly": boostIncr,
	"hugely": boostIncr, "incredibly": boostIncr, "intensely": boostIncr, "majorly": boostIncr,
	"massive": boostIncr, "massively": boostIncr, "more": boostIncr, "most": boostIncr,
	"particularly": boostIncr, "purely": boostIncr, "quite": boostIncr, "really": boostIncr,
	"remarkably": boostIncr, "sharply": boostIncr, "significantly": boostIncr, "so": boostIncr,
	"steep": boostIncr, "steeply": boostIncr, "substantially": boostIncr, "thoroughly": boostIncr,
	"totally": boostIncr, "tremendously": boostIncr, "unbelievably": boostIncr, "unusually": boostIncr,
	"utterly": boostIncr, "very": boostIncr,

	"almost": boostDecr, "barely": boostDecr, "hardly": boostDecr, "just enough": boostDecr,
	"kind of": boostDecr, "kinda": boostDecr, "kindof": boostDecr, "kind-of": boostDecr,
	"less": boostDecr, "little": boostDecr, "marginally": boostDecr, "mildly": boostDecr,
	"modestly": boostDecr, "occasionally": boostDecr, "partly": boostDecr, "scarcely": boostDecr,
	"slightly": boostDecr, "somewhat": boostDecr, "sort of": boostDecr, "sorta": boostDecr,
	"sortof": boostDecr, "sort-of": boostDecr,
}

// negations contains both apostrophe and apostrophe-stripped forms: the
// normalizer removes punctuation, so "don't" reaches the model as "dont".
var negations = map[string]bool{
	"aint": true, "arent": true, "cannot": true, "cant": true,
	"couldnt": true, "darent": true, "didnt": true, "doesnt": true,
	"ain't": true, "aren't": true, "can't": true, "couldn't": true,
	"daren't": true, "didn't": true, "doesn't": true, "dont": true,
	"hadnt": true, "hasnt": true, "havent": true, "isnt": true,
	"mightnt": true, "mustnt": true, "neither": true, "don't": true,
	"hadn't": true, "hasn't": true, "haven't": true, "isn't": true,
	"mightn't": true, "mustn't": true, "neednt": true, "needn't": true,
	"never": true, "none": true, "nope": true, "nor": true,
	"not": true, "nothing": true, "nowhere": true, "oughtnt": true,
	"shant": true, "shouldnt": true, "uhuh": true, "wasnt": true,
	"werent": true, "oughtn't": true, "shan't": true, "shouldn't": true,
	"uh-uh": true, "wasn't": true, "weren't": true, "without": true,
	"wont": true, "wouldnt": true, "won't": true, "wouldn't": true,
	"rarely": true, "seldom": true, "despite": true,
}

// specialIdioms overrides the valence of multiword expressions that contain
// a lexicon word. Checked around each lexicon hit, first match wins.
var specialIdioms = map[string]float64{
	"record high": 2.6, "all time high": 3.0,
	"record low": -2.6, "all time low": -3.0,
	"the bomb": 3, "bad ass": 1.5, "yeah right": -2,
	"kiss of death": -1.5, "cut the mustard": 2,
}
