package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
	"github.com/tradewatch/stockpulse/pkg/models"
	"github.com/tradewatch/stockpulse/pkg/utils"
)

// --- Search fetcher ---

type searchFetcher struct {
	provider.BaseFetcher
	client *client
}

func newSearchFetcher(c *client, cache infra.Store, limiter *infra.RateLimiter) *searchFetcher {
	return &searchFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.OpSearch,
			"Symbol lookup via the Yahoo Finance search endpoint",
			[]string{provider.ParamQuery},
			[]string{provider.ParamMax},
			cache, limiter,
		),
		client: c,
	}
}

func (f *searchFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	query := params[provider.ParamQuery]
	max := params.Int(provider.ParamMax, 10)

	cacheKey := provider.CacheKey(f.Operation(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return &provider.FetchResult{Data: cached, FetchedAt: time.Now().UTC(), Cached: true}, nil
	}

	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v1/finance/search?q=%s&quotesCount=%d&newsCount=0",
		f.client.baseURL, url.QueryEscape(query), max)

	var resp searchResponse
	if err := f.client.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]models.SearchResult, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		if !q.IsYahooFinance {
			continue
		}
		results = append(results, models.SearchResult{
			Symbol:   q.Symbol,
			Name:     coalesce(q.LongName, q.ShortName),
			Exchange: q.Exchange,
			Type:     q.QuoteType,
		})
		if len(results) >= max {
			break
		}
	}

	f.CacheSetTTL(cacheKey, results, searchTTL)
	return &provider.FetchResult{Data: results, FetchedAt: time.Now().UTC()}, nil
}

// --- Comparables fetcher ---

// Predefined peer lists per exchange. A sector-aware screen would be better;
// the dashboard only needs a small stable comparison set.
var comparablesByExchange = map[string][]string{
	"NSE": {"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS"},
	"BSE": {"RELIANCE.BO", "TCS.BO", "HDFCBANK.BO", "INFY.BO", "ICICIBANK.BO"},
	"US":  {"AAPL", "MSFT", "AMZN", "GOOGL", "META"},
}

type comparablesFetcher struct {
	provider.BaseFetcher
}

func newComparablesFetcher(cache infra.Store) *comparablesFetcher {
	return &comparablesFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.OpComparables,
			"Exchange-keyed comparable stock lists",
			[]string{provider.ParamTicker},
			nil,
			cache, nil, // static lookup, no rate limit needed
		),
	}
}

func (f *comparablesFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamTicker]

	cacheKey := provider.CacheKey(f.Operation(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return &provider.FetchResult{Data: cached, FetchedAt: time.Now().UTC(), Cached: true}, nil
	}

	exchange := utils.ExchangeOf(symbol)
	if exchange == "INDEX" {
		return nil, fmt.Errorf("comparables %s: indices have no peer list: %w", symbol, provider.ErrNotSupported)
	}

	peers, ok := comparablesByExchange[exchange]
	if !ok {
		peers = comparablesByExchange["US"]
	}

	// Keep the subject out of its own peer list.
	out := make([]string, 0, len(peers))
	for _, p := range peers {
		if p != symbol {
			out = append(out, p)
		}
	}

	f.CacheSetTTL(cacheKey, out, comparablesTTL)
	return &provider.FetchResult{Data: out, FetchedAt: time.Now().UTC()}, nil
}
