package models

import (
	"sort"
	"time"
)

// SentimentLabel is the three-way polarity classification of a text item.
type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNegative SentimentLabel = "negative"
	LabelNeutral  SentimentLabel = "neutral"
)

// SentimentScore is the result of scoring one text item.
type SentimentScore struct {
	Compound     float64        `json:"compound"` // [-1, 1] overall polarity
	Positive     float64        `json:"positive"`
	Negative     float64        `json:"negative"`
	Neutral      float64        `json:"neutral"`
	Subjectivity float64        `json:"subjectivity"` // [0, 1], opinionated vs. factual
	Label        SentimentLabel `json:"label"`
}

// NeutralScore is the fixed score assigned to degenerate input: empty text,
// or text that normalizes to the empty string.
func NeutralScore() SentimentScore {
	return SentimentScore{Neutral: 1, Label: LabelNeutral}
}

// ScoredItem pairs one unit of text with its sentiment score. Likes and
// Retweets are set for social items only.
type ScoredItem struct {
	Text     string         `json:"text"`
	At       time.Time      `json:"at"`
	Likes    int            `json:"likes,omitempty"`
	Retweets int            `json:"retweets,omitempty"`
	Score    SentimentScore `json:"score"`
}

// ScoredCollection is an ordered sequence of scored items sharing a ticker,
// a source name and a lookback window in days.
type ScoredCollection struct {
	Ticker string       `json:"ticker"`
	Source string       `json:"source"` // "news", "social"
	Days   int          `json:"days"`
	Items  []ScoredItem `json:"items"`
}

// SortChronological orders items oldest first, for time-series charts.
func (c *ScoredCollection) SortChronological() {
	sort.SliceStable(c.Items, func(i, j int) bool { return c.Items[i].At.Before(c.Items[j].At) })
}

// SortNewestFirst orders items newest first.
func (c *ScoredCollection) SortNewestFirst() {
	sort.SliceStable(c.Items, func(i, j int) bool { return c.Items[i].At.After(c.Items[j].At) })
}

// SortByEngagement orders items by likes+retweets descending, for ranked
// display lists.
func (c *ScoredCollection) SortByEngagement() {
	sort.SliceStable(c.Items, func(i, j int) bool {
		return c.Items[i].Likes+c.Items[i].Retweets > c.Items[j].Likes+c.Items[j].Retweets
	})
}

// ErrorKind is a machine-checkable category for upstream failures.
type ErrorKind string

const (
	ErrKindUpstreamFetch   ErrorKind = "upstream_fetch_failed"
	ErrKindMalformedRecord ErrorKind = "malformed_record"
)

// SourceError is a non-fatal advisory from an upstream collaborator. Message
// preserves the free-text detail for display; Kind stays machine-checkable.
type SourceError struct {
	Source  string    `json:"source"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// SourceStats aggregates a single scored collection.
type SourceStats struct {
	Total           int                    `json:"total"`
	Counts          map[SentimentLabel]int `json:"counts"`
	Primary         SentimentLabel         `json:"primary"`
	AvgCompound     float64                `json:"avg_compound"`
	AvgSubjectivity float64                `json:"avg_subjectivity"`
}

// CombinedStats aggregates every collection of a summary together.
type CombinedStats struct {
	Total       int                        `json:"total"`
	Counts      map[SentimentLabel]int     `json:"counts"`
	Percentages map[SentimentLabel]float64 `json:"percentages"` // 100*count/total, 0 when total is 0
	Primary     SentimentLabel             `json:"primary"`
	AvgCompound float64                    `json:"avg_compound"`
}

// SentimentSummary is the per-ticker aggregate consumed by headline cards and
// distribution charts.
type SentimentSummary struct {
	Ticker      string                 `json:"ticker"`
	Days        int                    `json:"days"`
	Sources     map[string]SourceStats `json:"sources"`
	Combined    CombinedStats          `json:"combined"`
	Errors      []SourceError          `json:"errors"`
	GeneratedAt time.Time              `json:"generated_at"`
}
