package sentiment

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tradewatch/stockpulse/pkg/models"
	"github.com/tradewatch/stockpulse/pkg/utils"
)

// Candidate phrases for the two optional post variants.
var (
	postPrefixes = []string{"Breaking:", "FYI:", "Just in:", "Hot take:"}
	postSuffixes = []string{"Thoughts?", "Bullish or bearish?", "What do you think?"}
)

// Generator manufactures social-media style posts from news headlines.
// No real social feed is integrated; every emitted post is marked
// Synthetic. The random source is injected so a fixed seed reproduces the
// exact output sequence.
type Generator struct {
	rng    *rand.Rand
	scorer *Scorer
}

// NewGenerator builds a generator over an explicit random source.
func NewGenerator(rng *rand.Rand, scorer *Scorer) *Generator {
	return &Generator{rng: rng, scorer: scorer}
}

// FromNews emits 1-3 post variants per article: the hashtag-tagged
// headline, optionally a prefixed variant and optionally a suffix-question
// variant, each optional one included with probability 1/2. Every variant
// gets a jittered timestamp, randomized engagement counts and an
// independent sentiment score. The result is sorted newest first and
// truncated to maxPosts.
func (g *Generator) FromNews(ticker string, articles []models.NewsArticle, maxPosts int) []models.SocialPost {
	tag := "#" + utils.HashtagTicker(ticker)

	var posts []models.SocialPost
	for _, a := range articles {
		posts = append(posts, g.post(ticker, a.Title+" "+tag, a.PublishedAt, 1440, 500, 100))

		if g.rng.Intn(2) == 0 {
			prefix := postPrefixes[g.rng.Intn(len(postPrefixes))]
			posts = append(posts, g.post(ticker, prefix+" "+a.Title+" "+tag, a.PublishedAt, 2880, 700, 150))
		}
		if g.rng.Intn(2) == 0 {
			suffix := postSuffixes[g.rng.Intn(len(postSuffixes))]
			posts = append(posts, g.post(ticker, a.Title+" "+tag+" "+suffix, a.PublishedAt, 2880, 600, 120))
		}
	}

	sort.SliceStable(posts, func(i, j int) bool { return posts[i].PostedAt.After(posts[j].PostedAt) })
	if maxPosts > 0 && len(posts) > maxPosts {
		posts = posts[:maxPosts]
	}
	return posts
}

func (g *Generator) post(ticker, text string, at time.Time, offsetMinutes, maxLikes, maxRetweets int) models.SocialPost {
	return models.SocialPost{
		ID:        uuid.Must(uuid.NewRandomFromReader(g.rng)).String(),
		Ticker:    ticker,
		Text:      text,
		PostedAt:  at.Add(-time.Duration(g.rng.Intn(offsetMinutes)) * time.Minute),
		Likes:     g.rng.Intn(maxLikes),
		Retweets:  g.rng.Intn(maxRetweets),
		Synthetic: true,
		Sentiment: g.scorer.Score(text),
	}
}
