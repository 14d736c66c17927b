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

// --- Quote fetcher ---

type quoteFetcher struct {
	provider.BaseFetcher
	client *client
}

func newQuoteFetcher(c *client, cache infra.Store, limiter *infra.RateLimiter) *quoteFetcher {
	return &quoteFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.OpQuote,
			"Snapshot stock quote from Yahoo Finance",
			[]string{provider.ParamTicker},
			nil,
			cache, limiter,
		),
		client: c,
	}
}

func (f *quoteFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamTicker]

	cacheKey := provider.CacheKey(f.Operation(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return &provider.FetchResult{Data: cached, FetchedAt: time.Now().UTC(), Cached: true}, nil
	}

	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", f.client.baseURL, url.QueryEscape(symbol))

	var resp quoteResponse
	if err := f.client.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("quote %s: %w", symbol, err)
	}
	if e := resp.QuoteResponse.Error; e != nil {
		return nil, fmt.Errorf("quote %s: upstream error %s: %s", symbol, e.Code, e.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("quote %s: %w", symbol, provider.ErrTickerNotFound)
	}

	r := resp.QuoteResponse.Result[0]
	quote := &models.Quote{
		Ticker:     utils.BaseTicker(r.Symbol),
		Symbol:     r.Symbol,
		Name:       coalesce(r.LongName, r.ShortName),
		Exchange:   utils.ExchangeOf(r.Symbol),
		Currency:   r.Currency,
		LastPrice:  r.RegularMarketPrice,
		Change:     r.RegularMarketChange,
		ChangePct:  r.RegularMarketChangePercent,
		Open:       r.RegularMarketOpen,
		High:       r.RegularMarketDayHigh,
		Low:        r.RegularMarketDayLow,
		PrevClose:  r.RegularMarketPreviousClose,
		Volume:     r.RegularMarketVolume,
		MarketCap:  r.MarketCap,
		WeekHigh52: r.FiftyTwoWeekHigh,
		WeekLow52:  r.FiftyTwoWeekLow,
		Timestamp:  utils.FromEpoch(r.RegularMarketTime),
	}

	f.CacheSetTTL(cacheKey, quote, quoteTTL)
	return &provider.FetchResult{Data: quote, FetchedAt: time.Now().UTC()}, nil
}
