package models

import "time"

// NewsArticle represents a single news headline for a ticker.
type NewsArticle struct {
	Title       string    `json:"title"`
	Publisher   string    `json:"publisher"`
	URL         string    `json:"url"`
	Summary     string    `json:"summary,omitempty"`
	PublishedAt time.Time `json:"published_at"` // always UTC
}

// ScoredArticle is a news article annotated with its headline sentiment.
type ScoredArticle struct {
	NewsArticle
	Sentiment SentimentScore `json:"sentiment"`
}
