// Package yahoo implements the market-data provider over Yahoo Finance's
// public endpoints (v7 quote, v8 chart, v10 quoteSummary, v1 search). It is
// free and keyless; responses are memoized per operation with the TTLs the
// dashboard expects (quotes ~10 min, company info ~30 min, lookups ~24 h).
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
)

const providerName = "yahoo"

// Per-operation cache TTLs.
const (
	quoteTTL       = 10 * time.Minute
	historyTTL     = 10 * time.Minute
	infoTTL        = 30 * time.Minute
	searchTTL      = 24 * time.Hour
	comparablesTTL = 24 * time.Hour
)

// periodSpec maps a dashboard period label to the upstream range and bar
// interval.
type periodSpec struct {
	Range    string
	Interval string
}

// periodTable is the dashboard period selector. Intraday bars for short
// windows, weekly/monthly bars for long ones.
var periodTable = map[string]periodSpec{
	"1D":  {"1d", "5m"},
	"5D":  {"5d", "15m"},
	"1M":  {"1mo", "1d"},
	"6M":  {"6mo", "1d"},
	"YTD": {"ytd", "1d"},
	"1Y":  {"1y", "1d"},
	"5Y":  {"5y", "1wk"},
	"MAX": {"max", "1mo"},
}

// PeriodSpec resolves a dashboard period label, falling back to 1M for
// unknown labels.
func PeriodSpec(period string) (string, string) {
	spec, ok := periodTable[strings.ToUpper(strings.TrimSpace(period))]
	if !ok {
		spec = periodTable["1M"]
	}
	return spec.Range, spec.Interval
}

// Periods lists the period labels the dashboard offers, in display order.
func Periods() []string {
	return []string{"1D", "5D", "1M", "6M", "YTD", "1Y", "5Y", "MAX"}
}

// client is the shared HTTP plumbing for all fetchers of this provider.
type client struct {
	http    *http.Client
	baseURL string
}

// getJSON performs a GET and decodes the body into dest. Non-2xx responses
// become *provider.ErrHTTP.
func (c *client) getJSON(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "stockpulse/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w", url, provider.ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return provider.NewErrHTTP(resp.StatusCode, url, body)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

// Provider implements provider.Provider over Yahoo Finance.
type Provider struct {
	provider.BaseProvider
}

// New creates the provider against the public Yahoo endpoints. One cache and
// one rate-limit budget are shared by all fetchers.
func New(cache infra.Store) *Provider {
	return NewWithBaseURL(cache, "https://query1.finance.yahoo.com")
}

// NewWithBaseURL points the provider at an alternate endpoint host; tests
// pass an httptest server URL.
func NewWithBaseURL(cache infra.Store, baseURL string) *Provider {
	c := &client{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	limiter := infra.NewRateLimiter(5, time.Second)

	p := &Provider{BaseProvider: provider.NewBaseProvider(providerName)}
	p.RegisterFetcher(newQuoteFetcher(c, cache, limiter))
	p.RegisterFetcher(newHistoryFetcher(c, cache, limiter))
	p.RegisterFetcher(newInfoFetcher(c, cache, limiter))
	p.RegisterFetcher(newSearchFetcher(c, cache, limiter))
	p.RegisterFetcher(newComparablesFetcher(cache))
	return p
}

// coalesce returns the first non-blank string.
func coalesce(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
