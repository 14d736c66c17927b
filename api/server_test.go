package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tradewatch/stockpulse/internal/config"
	"github.com/tradewatch/stockpulse/internal/dashboard"
	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
	"github.com/tradewatch/stockpulse/pkg/models"
)

// ============================================================
// Test helpers
// ============================================================

type stubFetcher struct {
	provider.BaseFetcher
	data any
	err  error
}

func (f *stubFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &provider.FetchResult{Data: f.data, FetchedAt: time.Now().UTC()}, nil
}

type stubProvider struct {
	provider.BaseProvider
}

func stubFetch(op provider.Operation, data any, err error) *stubFetcher {
	return &stubFetcher{
		BaseFetcher: provider.NewBaseFetcher(op, "stub "+string(op), nil, nil, nil, nil),
		data:        data,
		err:         err,
	}
}

func newStubProvider(name string, fetchers ...*stubFetcher) *stubProvider {
	p := &stubProvider{BaseProvider: provider.NewBaseProvider(name)}
	for _, f := range fetchers {
		p.RegisterFetcher(f)
	}
	return p
}

func testQuote() *models.Quote {
	return &models.Quote{
		Ticker:    "TCS",
		Symbol:    "TCS.NS",
		Name:      "Tata Consultancy Services",
		Exchange:  "NSE",
		Currency:  "INR",
		LastPrice: 4125.5,
		PrevClose: 4100.0,
		Change:    25.5,
		Volume:    1200000,
		Timestamp: time.Now().UTC(),
	}
}

func testArticles() []models.NewsArticle {
	now := time.Now().UTC()
	return []models.NewsArticle{
		{Title: "Company X beats earnings expectations", Publisher: "Wire", PublishedAt: now.Add(-time.Hour)},
		{Title: "Company Y faces massive lawsuit and layoffs", Publisher: "Wire", PublishedAt: now.Add(-2 * time.Hour)},
		{Title: "Company Z holds annual meeting", Publisher: "Wire", PublishedAt: now.Add(-3 * time.Hour)},
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()

	reg := provider.NewRegistry()
	reg.Register(newStubProvider("yahoo",
		stubFetch(provider.OpQuote, testQuote(), nil),
		stubFetch(provider.OpComparables, []string{"INFY.NS", "WIPRO.NS"}, nil),
	))
	reg.Register(newStubProvider("rssnews",
		stubFetch(provider.OpStockNews, testArticles(), nil),
	))

	cfg := config.Defaults()
	svc := dashboard.NewService(reg, infra.NewCache(time.Minute), cfg, dashboard.WithRandSeed(7))
	return NewServer(cfg, svc)
}

func doRequest(t *testing.T, srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// ============================================================
// Tests
// ============================================================

func TestHealth(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatal("expected success")
	}
	data := resp.Data.(map[string]any)
	if data["status"] != "ok" {
		t.Errorf("status field: got %v, want ok", data["status"])
	}
	for _, key := range []string{"nse_market", "us_market", "time_utc"} {
		if _, ok := data[key]; !ok {
			t.Errorf("missing health field %q", key)
		}
	}
}

func TestGetConfig(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/config", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)

	markets, ok := data["markets"].([]any)
	if !ok || len(markets) == 0 {
		t.Error("expected non-empty markets list")
	}
	periods, ok := data["periods"].([]any)
	if !ok || len(periods) != 8 {
		t.Errorf("periods: got %v, want 8 entries", data["periods"])
	}
	tickers, ok := data["default_tickers"].(map[string]any)
	if !ok || len(tickers) == 0 {
		t.Error("expected default tickers per market")
	}
}

func TestQuoteEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/quote/TCS.NS", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	if data["symbol"] != "TCS.NS" {
		t.Errorf("symbol: got %v, want TCS.NS", data["symbol"])
	}
	if data["exchange"] != "NSE" {
		t.Errorf("exchange: got %v, want NSE", data["exchange"])
	}
}

func TestQuoteUpstreamFailure(t *testing.T) {
	reg := provider.NewRegistry()
	reg.Register(newStubProvider("yahoo",
		stubFetch(provider.OpQuote, nil, context.DeadlineExceeded),
	))
	cfg := config.Defaults()
	svc := dashboard.NewService(reg, infra.NewCache(time.Minute), cfg)
	srv := NewServer(cfg, svc)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/quote/TCS.NS", nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success || resp.Error == "" {
		t.Error("expected error envelope")
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestNewsEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/news/TCS.NS?days=7&max=10", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	articles := resp.Data.([]any)
	if len(articles) != 3 {
		t.Fatalf("articles: got %d, want 3", len(articles))
	}
	first := articles[0].(map[string]any)
	sent, ok := first["sentiment"].(map[string]any)
	if !ok {
		t.Fatal("article missing sentiment")
	}
	if sent["label"] != "positive" {
		t.Errorf("first article label: got %v, want positive", sent["label"])
	}
}

func TestSocialEndpointSortedByEngagement(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/social/TCS.NS?sort=engagement", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	posts := resp.Data.([]any)
	if len(posts) == 0 {
		t.Fatal("expected synthetic posts")
	}

	engagement := func(p map[string]any) float64 {
		return p["likes"].(float64) + p["retweets"].(float64)
	}
	for i := 1; i < len(posts); i++ {
		prev := posts[i-1].(map[string]any)
		cur := posts[i].(map[string]any)
		if engagement(cur) > engagement(prev) {
			t.Errorf("posts not sorted by engagement at %d", i)
		}
	}
}

func TestSentimentEndpoint(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/api/v1/sentiment/TCS.NS?days=7", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	if data["ticker"] != "TCS.NS" {
		t.Errorf("ticker: got %v, want TCS.NS", data["ticker"])
	}
	combined := data["combined"].(map[string]any)
	if combined["total"].(float64) <= 0 {
		t.Error("expected combined total > 0")
	}
	sources := data["sources"].(map[string]any)
	for _, src := range []string{"news", "social"} {
		if _, ok := sources[src]; !ok {
			t.Errorf("missing source stats for %q", src)
		}
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := testServer(t)
	body, _ := json.Marshal(AnalyzeRequest{Ticker: "tcs.ns", Days: 7})
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/analyze", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	if data["ticker"] != "TCS.NS" {
		t.Errorf("ticker not normalized: got %v", data["ticker"])
	}
	if _, ok := data["quote"].(map[string]any); !ok {
		t.Error("expected quote in analysis")
	}
	if _, ok := data["summary"].(map[string]any); !ok {
		t.Error("expected summary in analysis")
	}
}

func TestAnalyzeRejectsMissingTicker(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/analyze", []byte(`{"days": 7}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestAnalyzeBroadcastsUpdate(t *testing.T) {
	srv := testServer(t)

	client := &WSClient{hub: srv.Hub(), send: make(chan WSMessage, 16)}
	go srv.Hub().Run()
	srv.Hub().Register(client)

	body, _ := json.Marshal(AnalyzeRequest{Ticker: "TCS.NS"})
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	select {
	case msg := <-client.send:
		if msg.Type != "sentiment_update" {
			t.Errorf("message type: got %q, want sentiment_update", msg.Type)
		}
		data := msg.Data.(map[string]any)
		if data["ticker"] != "TCS.NS" {
			t.Errorf("broadcast ticker: got %v", data["ticker"])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no broadcast received")
	}
}

func TestHubFiltersBySubscription(t *testing.T) {
	hub := NewWSHub()
	go hub.Run()

	subscribed := &WSClient{hub: hub, send: make(chan WSMessage, 16)}
	subscribed.subscribe([]string{"TCS.NS"})
	other := &WSClient{hub: hub, send: make(chan WSMessage, 16)}
	other.subscribe([]string{"INFY.NS"})
	hub.Register(subscribed)
	hub.Register(other)

	hub.Broadcast(WSMessage{Type: "sentiment_update", Data: map[string]any{"ticker": "TCS.NS"}})

	select {
	case <-subscribed.send:
	case <-time.After(2 * time.Second):
		t.Fatal("subscribed client did not receive update")
	}
	select {
	case msg := <-other.send:
		t.Fatalf("unsubscribed client received %v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestIndexServesLandingPage(t *testing.T) {
	srv := testServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type: got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "StockPulse") {
		t.Error("landing page missing title")
	}
}

func TestSocialDefaultOrderSurvivesEngagementSort(t *testing.T) {
	srv := testServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/social/TCS.NS?sort=engagement", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	// The engagement sort must not leak into the cached sample: a
	// follow-up default request stays timestamp-descending.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/social/TCS.NS", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	posts := resp.Data.([]any)
	if len(posts) < 2 {
		t.Fatalf("need at least 2 posts, got %d", len(posts))
	}

	var prev time.Time
	for i, p := range posts {
		raw := p.(map[string]any)["posted_at"].(string)
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			t.Fatalf("posted_at %d: %v", i, err)
		}
		if i > 0 && ts.After(prev) {
			t.Errorf("default response not timestamp-descending at %d: %v after %v", i, ts, prev)
		}
		prev = ts
	}
}

func TestClientSendGuards(t *testing.T) {
	closed := &WSClient{send: make(chan WSMessage, 1)}
	closed.closeSend()
	closed.closeSend() // idempotent
	if closed.trySend(WSMessage{Type: "pong"}) {
		t.Error("send succeeded on a closed client")
	}

	full := &WSClient{send: make(chan WSMessage, 1)}
	if !full.trySend(WSMessage{Type: "pong"}) {
		t.Fatal("send to empty buffer failed")
	}
	if full.trySend(WSMessage{Type: "pong"}) {
		t.Error("send succeeded on a full buffer")
	}
}
