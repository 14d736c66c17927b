package models

import "time"

// SocialPost is a social-media style post about a ticker. No real social feed
// is integrated: every post is synthesized from a news headline and carries
// Synthetic=true so consumers can label it as derived data.
type SocialPost struct {
	ID        string         `json:"id"`
	Ticker    string         `json:"ticker"`
	Text      string         `json:"text"`
	PostedAt  time.Time      `json:"posted_at"`
	Likes     int            `json:"likes"`
	Retweets  int            `json:"retweets"`
	Synthetic bool           `json:"synthetic"`
	Sentiment SentimentScore `json:"sentiment"`
}

// Engagement is the ranking key for display lists.
func (p SocialPost) Engagement() int { return p.Likes + p.Retweets }
