// Package rssnews implements the news provider over public RSS feeds:
// per-ticker headline feeds (Google News search, Yahoo Finance headlines)
// and a fixed set of market-wide feeds. Feeds are parsed with gofeed and
// summaries cleaned of HTML markup with goquery.
package rssnews

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
)

const providerName = "rssnews"

// FeedSource is one configured RSS feed. Stock feeds carry a %s placeholder
// that receives the URL-escaped symbol.
type FeedSource struct {
	Name string
	URL  string
}

// DefaultStockFeeds are the per-ticker headline feeds.
var DefaultStockFeeds = []FeedSource{
	{
		Name: "Google News",
		URL:  "https://news.google.com/rss/search?q=%s+stock&hl=en-US&gl=US&ceid=US:en",
	},
	{
		Name: "Yahoo Finance",
		URL:  "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US",
	},
}

// DefaultMarketFeeds are the market-wide feeds shown on the dashboard's
// front page.
var DefaultMarketFeeds = []FeedSource{
	{Name: "Moneycontrol", URL: "https://www.moneycontrol.com/rss/marketreports.xml"},
	{Name: "Economic Times Markets", URL: "https://economictimes.indiatimes.com/markets/rssfeeds/1977021501.cms"},
	{Name: "LiveMint Markets", URL: "https://www.livemint.com/rss/markets"},
}

// Provider implements provider.Provider over RSS news feeds.
type Provider struct {
	provider.BaseProvider
}

// New creates the provider with the default feed lists.
func New(cache infra.Store) *Provider {
	return NewWithFeeds(cache, DefaultStockFeeds, DefaultMarketFeeds)
}

// NewWithFeeds creates the provider with custom feed lists; tests point the
// templates at an httptest server.
func NewWithFeeds(cache infra.Store, stockFeeds, marketFeeds []FeedSource) *Provider {
	parser := gofeed.NewParser()
	limiter := infra.NewRateLimiter(2, time.Second) // conservative: 2 req/s

	p := &Provider{BaseProvider: provider.NewBaseProvider(providerName)}
	p.RegisterFetcher(newStockNewsFetcher(parser, stockFeeds, cache, limiter))
	p.RegisterFetcher(newMarketNewsFetcher(parser, marketFeeds, cache, limiter))
	return p
}

// cleanHTML strips markup from a feed summary. Feeds routinely embed anchor
// tags and images in descriptions.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
