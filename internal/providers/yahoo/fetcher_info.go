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

// --- Info fetcher ---

type infoFetcher struct {
	provider.BaseFetcher
	client *client
}

func newInfoFetcher(c *client, cache infra.Store, limiter *infra.RateLimiter) *infoFetcher {
	return &infoFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.OpInfo,
			"Company profile and summary metadata from Yahoo Finance",
			[]string{provider.ParamTicker},
			nil,
			cache, limiter,
		),
		client: c,
	}
}

func (f *infoFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	symbol := params[provider.ParamTicker]

	cacheKey := provider.CacheKey(f.Operation(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return &provider.FetchResult{Data: cached, FetchedAt: time.Now().UTC(), Cached: true}, nil
	}

	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	modules := "assetProfile,summaryDetail,price"
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		f.client.baseURL, url.PathEscape(symbol), url.QueryEscape(modules))

	var resp summaryResponse
	if err := f.client.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("info %s: %w", symbol, err)
	}
	if e := resp.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("info %s: upstream error %s: %s", symbol, e.Code, e.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("info %s: %w", symbol, provider.ErrTickerNotFound)
	}

	info := buildInfo(symbol, resp.QuoteSummary.Result[0])
	f.CacheSetTTL(cacheKey, info, infoTTL)
	return &provider.FetchResult{Data: info, FetchedAt: time.Now().UTC()}, nil
}

func buildInfo(symbol string, r summaryResult) *models.StockInfo {
	info := &models.StockInfo{
		Ticker:   utils.BaseTicker(symbol),
		Symbol:   symbol,
		Name:     utils.BaseTicker(symbol),
		Exchange: utils.ExchangeOf(symbol),
	}

	if p := r.Price; p != nil {
		info.Name = coalesce(p.LongName, p.ShortName, info.Name)
		info.Currency = p.Currency
		info.MarketCap = p.MarketCap.Raw
	}
	if ap := r.AssetProfile; ap != nil {
		info.Sector = ap.Sector
		info.Industry = ap.Industry
		info.Website = ap.Website
		info.Country = ap.Country
		info.Summary = ap.LongBusinessSummary
		info.Employees = ap.FullTimeEmployees
	}
	if sd := r.SummaryDetail; sd != nil {
		if info.MarketCap == 0 {
			info.MarketCap = sd.MarketCap.Raw
		}
		info.PERatio = sd.TrailingPE.Raw
		info.DividendYield = sd.DividendYield.Raw * 100
	}
	return info
}
