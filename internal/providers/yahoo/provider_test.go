package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
	"github.com/tradewatch/stockpulse/pkg/models"
)

const quoteJSON = `{
  "quoteResponse": {
    "result": [{
      "symbol": "TCS.NS",
      "shortName": "Tata Consultancy Services",
      "longName": "Tata Consultancy Services Limited",
      "currency": "INR",
      "regularMarketPrice": 3850.5,
      "regularMarketChange": 42.25,
      "regularMarketChangePercent": 1.11,
      "regularMarketOpen": 3810.0,
      "regularMarketDayHigh": 3862.0,
      "regularMarketDayLow": 3795.0,
      "regularMarketPreviousClose": 3808.25,
      "regularMarketVolume": 1850000,
      "regularMarketTime": 1756195200,
      "marketCap": 13930000000000,
      "fiftyTwoWeekHigh": 4255.0,
      "fiftyTwoWeekLow": 3100.0
    }],
    "error": null
  }
}`

const chartJSON = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "AAPL", "currency": "USD"},
      "timestamp": [1756108800, 1756195200],
      "indicators": {
        "quote": [{
          "open": [231.1, 233.4],
          "high": [234.0, 235.2],
          "low": [229.8, 232.1],
          "close": [233.2, null],
          "volume": [51000000, 48000000]
        }]
      }
    }],
    "error": null
  }
}`

const summaryJSON = `{
  "quoteSummary": {
    "result": [{
      "assetProfile": {
        "sector": "Technology",
        "industry": "Information Technology Services",
        "website": "https://www.tcs.com",
        "country": "India",
        "fullTimeEmployees": 601546,
        "longBusinessSummary": "Tata Consultancy Services Limited provides IT services."
      },
      "summaryDetail": {
        "marketCap": {"raw": 13930000000000, "fmt": "13.93T"},
        "trailingPE": {"raw": 29.4, "fmt": "29.40"},
        "dividendYield": {"raw": 0.0152, "fmt": "1.52%"}
      },
      "price": {
        "longName": "Tata Consultancy Services Limited",
        "currency": "INR",
        "marketCap": {"raw": 13930000000000, "fmt": "13.93T"}
      }
    }],
    "error": null
  }
}`

const searchJSON = `{
  "quotes": [
    {"symbol": "TCS.NS", "shortname": "Tata Consultancy Services", "exchange": "NSI", "quoteType": "EQUITY", "isYahooFinance": true},
    {"symbol": "TCS.BO", "shortname": "Tata Consultancy Services", "exchange": "BSE", "quoteType": "EQUITY", "isYahooFinance": true},
    {"symbol": "OFFSITE", "shortname": "Not Indexed", "exchange": "PNK", "quoteType": "EQUITY", "isYahooFinance": false}
  ]
}`

// newTestProvider stands up an httptest server with canned responses and a
// provider pointed at it. Returns the provider and a request counter.
func newTestProvider(t *testing.T) (*Provider, *int) {
	t.Helper()
	requests := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/v7/finance/quote"):
			w.Write([]byte(quoteJSON))
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			w.Write([]byte(chartJSON))
		case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
			w.Write([]byte(summaryJSON))
		case strings.HasPrefix(r.URL.Path, "/v1/finance/search"):
			w.Write([]byte(searchJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return NewWithBaseURL(infra.NewCache(time.Minute), srv.URL), &requests
}

func TestQuoteFetch(t *testing.T) {
	p, _ := newTestProvider(t)

	res, err := p.Fetch(context.Background(), provider.OpQuote, provider.QueryParams{
		provider.ParamTicker: "TCS.NS",
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	quote, ok := res.Data.(*models.Quote)
	if !ok {
		t.Fatalf("Data type: got %T, want *models.Quote", res.Data)
	}
	if quote.Ticker != "TCS" {
		t.Errorf("Ticker: got %q, want %q", quote.Ticker, "TCS")
	}
	if quote.Exchange != "NSE" {
		t.Errorf("Exchange: got %q, want %q", quote.Exchange, "NSE")
	}
	if quote.LastPrice != 3850.5 {
		t.Errorf("LastPrice: got %v, want 3850.5", quote.LastPrice)
	}
	if quote.Name != "Tata Consultancy Services Limited" {
		t.Errorf("Name: got %q", quote.Name)
	}
	if quote.Timestamp.Location() != time.UTC {
		t.Errorf("Timestamp not UTC: %v", quote.Timestamp)
	}
}

func TestQuoteCaching(t *testing.T) {
	p, requests := newTestProvider(t)
	params := provider.QueryParams{provider.ParamTicker: "TCS.NS"}

	first, err := p.Fetch(context.Background(), provider.OpQuote, params)
	if err != nil {
		t.Fatalf("first Fetch failed: %v", err)
	}
	if first.Cached {
		t.Error("first fetch should not be cached")
	}

	second, err := p.Fetch(context.Background(), provider.OpQuote, params)
	if err != nil {
		t.Fatalf("second Fetch failed: %v", err)
	}
	if !second.Cached {
		t.Error("second fetch should come from cache")
	}
	if *requests != 1 {
		t.Errorf("upstream requests: got %d, want 1", *requests)
	}
}

func TestHistoryFetch(t *testing.T) {
	p, _ := newTestProvider(t)

	res, err := p.Fetch(context.Background(), provider.OpHistory, provider.QueryParams{
		provider.ParamTicker: "AAPL",
		provider.ParamPeriod: "5D",
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	series, ok := res.Data.(*models.PriceSeries)
	if !ok {
		t.Fatalf("Data type: got %T, want *models.PriceSeries", res.Data)
	}
	if series.Interval != "15m" {
		t.Errorf("Interval: got %q, want %q (5D maps to 15m bars)", series.Interval, "15m")
	}
	if len(series.Candles) != 2 {
		t.Fatalf("Candles: got %d, want 2", len(series.Candles))
	}
	if series.Candles[0].Close != 233.2 {
		t.Errorf("Candles[0].Close: got %v, want 233.2", series.Candles[0].Close)
	}
	// Second bar's close was null upstream.
	if series.Candles[1].Close != 0 {
		t.Errorf("Candles[1].Close: got %v, want 0 for null bar", series.Candles[1].Close)
	}
}

func TestInfoFetch(t *testing.T) {
	p, _ := newTestProvider(t)

	res, err := p.Fetch(context.Background(), provider.OpInfo, provider.QueryParams{
		provider.ParamTicker: "TCS.NS",
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	info, ok := res.Data.(*models.StockInfo)
	if !ok {
		t.Fatalf("Data type: got %T, want *models.StockInfo", res.Data)
	}
	if info.Sector != "Technology" {
		t.Errorf("Sector: got %q", info.Sector)
	}
	if info.MarketCap != 13930000000000 {
		t.Errorf("MarketCap: got %v", info.MarketCap)
	}
	if got := info.DividendYield; got < 1.51 || got > 1.53 {
		t.Errorf("DividendYield: got %v, want ~1.52", got)
	}
}

func TestSearchFiltersNonIndexed(t *testing.T) {
	p, _ := newTestProvider(t)

	res, err := p.Fetch(context.Background(), provider.OpSearch, provider.QueryParams{
		provider.ParamQuery: "tata",
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	results := res.Data.([]models.SearchResult)
	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2 (non-indexed quote dropped)", len(results))
	}
	for _, r := range results {
		if r.Symbol == "OFFSITE" {
			t.Error("non-indexed quote should be filtered out")
		}
	}
}

func TestComparables(t *testing.T) {
	p, _ := newTestProvider(t)

	tests := []struct {
		ticker string
		want   []string
	}{
		{"TCS.NS", []string{"RELIANCE.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS"}},
		{"AAPL", []string{"MSFT", "AMZN", "GOOGL", "META"}},
		{"RELIANCE.BO", []string{"TCS.BO", "HDFCBANK.BO", "INFY.BO", "ICICIBANK.BO"}},
	}
	for _, tt := range tests {
		res, err := p.Fetch(context.Background(), provider.OpComparables, provider.QueryParams{
			provider.ParamTicker: tt.ticker,
		})
		if err != nil {
			t.Fatalf("Fetch(%s) failed: %v", tt.ticker, err)
		}
		got := res.Data.([]string)
		if len(got) != len(tt.want) {
			t.Fatalf("comparables(%s): got %v, want %v", tt.ticker, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("comparables(%s)[%d]: got %q, want %q", tt.ticker, i, got[i], tt.want[i])
			}
		}
	}
}

func TestComparablesIndexUnsupported(t *testing.T) {
	p, _ := newTestProvider(t)

	_, err := p.Fetch(context.Background(), provider.OpComparables, provider.QueryParams{
		provider.ParamTicker: "^NSEI",
	})
	if !errors.Is(err, provider.ErrNotSupported) {
		t.Errorf("error: got %v, want ErrNotSupported", err)
	}
}

func TestMissingTickerParam(t *testing.T) {
	p, _ := newTestProvider(t)

	_, err := p.Fetch(context.Background(), provider.OpQuote, provider.QueryParams{})
	var missing *provider.ErrMissingParam
	if !errors.As(err, &missing) {
		t.Fatalf("error: got %v, want *ErrMissingParam", err)
	}
	if missing.Param != provider.ParamTicker {
		t.Errorf("Param: got %q, want %q", missing.Param, provider.ParamTicker)
	}
}

func TestPeriodSpecFallback(t *testing.T) {
	rng, interval := PeriodSpec("bogus")
	if rng != "1mo" || interval != "1d" {
		t.Errorf("unknown period: got %s/%s, want 1mo/1d", rng, interval)
	}

	rng, interval = PeriodSpec("max")
	if rng != "max" || interval != "1mo" {
		t.Errorf("MAX period: got %s/%s, want max/1mo", rng, interval)
	}
}

func TestHTTPErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewWithBaseURL(infra.NewCache(time.Minute), srv.URL)
	_, err := p.Fetch(context.Background(), provider.OpQuote, provider.QueryParams{
		provider.ParamTicker: "TCS.NS",
	})

	var httpErr *provider.ErrHTTP
	if !errors.As(err, &httpErr) {
		t.Fatalf("error: got %v, want *ErrHTTP", err)
	}
	if httpErr.Status != http.StatusBadGateway {
		t.Errorf("Status: got %d, want 502", httpErr.Status)
	}
}
