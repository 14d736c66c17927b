package rssnews

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
	"github.com/tradewatch/stockpulse/pkg/models"
	"github.com/tradewatch/stockpulse/pkg/utils"
)

const newsTTL = time.Hour

// --- Stock news fetcher ---

type stockNewsFetcher struct {
	provider.BaseFetcher
	parser *gofeed.Parser
	feeds  []FeedSource
}

func newStockNewsFetcher(parser *gofeed.Parser, feeds []FeedSource, cache infra.Store, limiter *infra.RateLimiter) *stockNewsFetcher {
	return &stockNewsFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.OpStockNews,
			"Per-ticker news headlines from RSS feeds",
			[]string{provider.ParamTicker},
			[]string{provider.ParamDays, provider.ParamMax},
			cache, limiter,
		),
		parser: parser,
		feeds:  feeds,
	}
}

func (f *stockNewsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamTicker]
	days := params.Int(provider.ParamDays, 7)
	max := params.Int(provider.ParamMax, 10)

	cacheKey := provider.CacheKey(f.Operation(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return &provider.FetchResult{Data: cached, FetchedAt: time.Now().UTC(), Cached: true}, nil
	}

	var articles []models.NewsArticle
	var lastErr error
	for _, src := range f.feeds {
		if err := f.RateLimit(ctx); err != nil {
			return nil, err
		}
		feedURL := fmt.Sprintf(src.URL, url.QueryEscape(utils.BaseTicker(symbol)))
		items, err := parseFeed(ctx, f.parser, src.Name, feedURL)
		if err != nil {
			// One dead feed must not sink the other.
			log.Printf("rssnews: %s feed for %s failed: %v", src.Name, symbol, err)
			lastErr = err
			continue
		}
		articles = append(articles, items...)
	}
	if len(articles) == 0 && lastErr != nil {
		return nil, fmt.Errorf("all feeds failed for %s: %w", symbol, lastErr)
	}

	articles = filterWindow(articles, days)
	sortNewestFirst(articles)
	if max > 0 && len(articles) > max {
		articles = articles[:max]
	}

	f.CacheSetTTL(cacheKey, articles, newsTTL)
	return &provider.FetchResult{Data: articles, FetchedAt: time.Now().UTC()}, nil
}

// --- Market news fetcher ---

type marketNewsFetcher struct {
	provider.BaseFetcher
	parser *gofeed.Parser
	feeds  []FeedSource
}

func newMarketNewsFetcher(parser *gofeed.Parser, feeds []FeedSource, cache infra.Store, limiter *infra.RateLimiter) *marketNewsFetcher {
	return &marketNewsFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.OpMarketNews,
			"Market-wide headlines from the configured RSS feeds",
			nil,
			[]string{provider.ParamMax},
			cache, limiter,
		),
		parser: parser,
		feeds:  feeds,
	}
}

func (f *marketNewsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	max := params.Int(provider.ParamMax, 20)

	cacheKey := provider.CacheKey(f.Operation(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return &provider.FetchResult{Data: cached, FetchedAt: time.Now().UTC(), Cached: true}, nil
	}

	var articles []models.NewsArticle
	for _, src := range f.feeds {
		if err := f.RateLimit(ctx); err != nil {
			return nil, err
		}
		items, err := parseFeed(ctx, f.parser, src.Name, src.URL)
		if err != nil {
			log.Printf("rssnews: market feed %s failed: %v", src.Name, err)
			continue
		}
		articles = append(articles, items...)
	}

	sortNewestFirst(articles)
	if max > 0 && len(articles) > max {
		articles = articles[:max]
	}

	f.CacheSetTTL(cacheKey, articles, newsTTL)
	return &provider.FetchResult{Data: articles, FetchedAt: time.Now().UTC()}, nil
}

// --- Shared helpers ---

// parseFeed fetches one feed and converts its items. Malformed items are
// never fatal: a missing title becomes "No title", a missing or unparseable
// date becomes the current time.
func parseFeed(ctx context.Context, parser *gofeed.Parser, sourceName, feedURL string) ([]models.NewsArticle, error) {
	feed, err := parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", sourceName, err)
	}

	articles := make([]models.NewsArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := models.NewsArticle{
			Title:       strings.TrimSpace(item.Title),
			Publisher:   sourceName,
			URL:         item.Link,
			Summary:     cleanHTML(item.Description),
			PublishedAt: itemTime(item),
		}
		if a.Title == "" {
			a.Title = "No title"
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// itemTime normalizes a feed item's publish time to UTC. Feeds deliver
// either RFC dates (parsed by gofeed), epoch seconds, or ISO-like strings.
func itemTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	if t, err := utils.ParseTimestamp(item.Published); err == nil {
		return t
	}
	return time.Now().UTC()
}

// filterWindow drops articles older than the lookback window.
func filterWindow(articles []models.NewsArticle, days int) []models.NewsArticle {
	if days <= 0 {
		return articles
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	kept := articles[:0]
	for _, a := range articles {
		if !a.PublishedAt.Before(cutoff) {
			kept = append(kept, a)
		}
	}
	return kept
}

func sortNewestFirst(articles []models.NewsArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
