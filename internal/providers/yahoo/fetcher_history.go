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

// --- History fetcher ---

type historyFetcher struct {
	provider.BaseFetcher
	client *client
}

func newHistoryFetcher(c *client, cache infra.Store, limiter *infra.RateLimiter) *historyFetcher {
	return &historyFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.OpHistory,
			"Historical OHLCV bars from the Yahoo Finance chart endpoint",
			[]string{provider.ParamTicker},
			[]string{provider.ParamPeriod, provider.ParamRange, provider.ParamInterval},
			cache, limiter,
		),
		client: c,
	}
}

func (f *historyFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamTicker]

	// The dashboard sends a period label; explicit range/interval params
	// override the table when present.
	period := params[provider.ParamPeriod]
	if period == "" {
		period = "1M"
	}
	rng, interval := PeriodSpec(period)
	if v := params[provider.ParamRange]; v != "" {
		rng = v
	}
	if v := params[provider.ParamInterval]; v != "" {
		interval = v
	}

	cacheKey := provider.CacheKey(f.Operation(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return &provider.FetchResult{Data: cached, FetchedAt: time.Now().UTC(), Cached: true}, nil
	}

	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		f.client.baseURL, url.PathEscape(symbol), url.QueryEscape(rng), url.QueryEscape(interval))

	var resp chartResponse
	if err := f.client.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("chart %s: %w", symbol, err)
	}
	if e := resp.Chart.Error; e != nil {
		if e.Code == "Not Found" {
			return nil, fmt.Errorf("chart %s: %w", symbol, provider.ErrTickerNotFound)
		}
		return nil, fmt.Errorf("chart %s: upstream error %s: %s", symbol, e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}

	series := &models.PriceSeries{
		Ticker:    utils.BaseTicker(symbol),
		Period:    period,
		Interval:  interval,
		Candles:   parseCandles(resp.Chart.Result[0]),
		FetchedAt: time.Now().UTC(),
	}

	f.CacheSetTTL(cacheKey, series, historyTTL)
	return &provider.FetchResult{Data: series, FetchedAt: series.FetchedAt}, nil
}

// parseCandles converts chart arrays into OHLCV bars. Yahoo emits null for
// bars with no trades; those positions stay zero.
func parseCandles(result chartResult) []models.OHLCV {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	q := result.Indicators.Quote[0]

	candles := make([]models.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := models.OHLCV{Timestamp: utils.FromEpoch(ts)}
		if i < len(q.Open) && q.Open[i] != nil {
			c.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			c.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			c.Low = *q.Low[i]
		}
		if i < len(q.Close) && q.Close[i] != nil {
			c.Close = *q.Close[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			c.Volume = *q.Volume[i]
		}
		candles = append(candles, c)
	}
	return candles
}
