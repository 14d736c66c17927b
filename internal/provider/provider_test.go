package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// mockFetcher implements the Fetcher interface for testing.
type mockFetcher struct {
	BaseFetcher
	fetchFn func(ctx context.Context, params QueryParams) (*FetchResult, error)
}

func newMockFetcher(op Operation, required []string) *mockFetcher {
	return &mockFetcher{
		BaseFetcher: NewBaseFetcher(op, "mock fetcher for "+string(op), required, nil, nil, nil),
	}
}

func (m *mockFetcher) Fetch(ctx context.Context, params QueryParams) (*FetchResult, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, params)
	}
	return &FetchResult{Data: "mock-data"}, nil
}

// mockProvider implements the Provider interface for testing.
type mockProvider struct {
	BaseProvider
}

func newMockProvider(name string, ops ...Operation) *mockProvider {
	mp := &mockProvider{BaseProvider: NewBaseProvider(name)}
	for _, op := range ops {
		mp.RegisterFetcher(newMockFetcher(op, []string{ParamTicker}))
	}
	return mp
}

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(newMockProvider("test-provider", OpQuote, OpHistory)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := reg.Get("test-provider")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name() != "test-provider" {
		t.Errorf("expected name test-provider, got %s", got.Name())
	}
}

func TestRegistryGetNotFound(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Get("nonexistent")
	if err == nil {
		t.Fatal("expected error for nonexistent provider")
	}
	var notFound *ErrProviderNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("expected ErrProviderNotFound, got %T", err)
	}
}

func TestRegistryRejectsEmptyName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(newMockProvider("", OpQuote)); err == nil {
		t.Error("expected error for empty provider name")
	}
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry()
	_ = reg.Register(newMockProvider("beta", OpQuote))
	_ = reg.Register(newMockProvider("alpha", OpHistory))

	list := reg.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(list))
	}
	// Sorted alphabetically.
	if list[0] != "alpha" || list[1] != "beta" {
		t.Errorf("expected [alpha beta], got %v", list)
	}
}

func TestProviderOperationsSorted(t *testing.T) {
	p := newMockProvider("test", OpStockNews, OpQuote, OpHistory)
	ops := p.Operations()
	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}
	for i := 1; i < len(ops); i++ {
		if ops[i-1] > ops[i] {
			t.Errorf("operations not sorted: %v", ops)
		}
	}
}

func TestProviderFetch(t *testing.T) {
	p := newMockProvider("test", OpQuote)
	result, err := p.Fetch(context.Background(), OpQuote, QueryParams{ParamTicker: "TCS.NS"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if result.Data != "mock-data" {
		t.Errorf("unexpected data: %v", result.Data)
	}
	if result.FetchedAt.IsZero() {
		t.Error("FetchedAt not stamped")
	}
}

func TestProviderFetchMissingParam(t *testing.T) {
	p := newMockProvider("test", OpQuote)
	_, err := p.Fetch(context.Background(), OpQuote, QueryParams{})
	if err == nil {
		t.Fatal("expected error for missing param")
	}
	var missing *ErrMissingParam
	if !errors.As(err, &missing) {
		t.Errorf("expected ErrMissingParam, got %T: %v", err, err)
	}
}

func TestProviderFetchUnknownOperation(t *testing.T) {
	p := newMockProvider("test", OpQuote)
	_, err := p.Fetch(context.Background(), OpSearch, QueryParams{ParamTicker: "TCS.NS"})
	if err == nil {
		t.Fatal("expected error for unserved operation")
	}
	var notFound *ErrOperationNotFound
	if !errors.As(err, &notFound) {
		t.Errorf("expected ErrOperationNotFound, got %T: %v", err, err)
	}
}

func TestProviderFetchWrapsFetcherError(t *testing.T) {
	p := newMockProvider("test", OpQuote)
	f := newMockFetcher(OpQuote, []string{ParamTicker})
	f.fetchFn = func(ctx context.Context, params QueryParams) (*FetchResult, error) {
		return nil, ErrTickerNotFound
	}
	p.RegisterFetcher(f)

	_, err := p.Fetch(context.Background(), OpQuote, QueryParams{ParamTicker: "NOPE"})
	if !errors.Is(err, ErrTickerNotFound) {
		t.Errorf("expected wrapped ErrTickerNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "test") {
		t.Errorf("error should name the provider: %v", err)
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	params := QueryParams{
		ParamTicker:   "TCS.NS",
		ParamRange:    "1mo",
		ParamInterval: "1d",
	}

	key := CacheKey(OpHistory, params)
	if key != "history:interval=1d:range=1mo:ticker=TCS.NS" {
		t.Errorf("unexpected cache key %q", key)
	}
	if again := CacheKey(OpHistory, params); again != key {
		t.Errorf("cache key not stable: %q vs %q", key, again)
	}
}

func TestValidateParams(t *testing.T) {
	if err := ValidateParams(QueryParams{ParamTicker: "TCS.NS"}, []string{ParamTicker}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateParams(QueryParams{}, []string{ParamTicker}); err == nil {
		t.Error("expected error for missing param")
	}
	if err := ValidateParams(QueryParams{ParamTicker: ""}, []string{ParamTicker}); err == nil {
		t.Error("expected error for empty param")
	}
}

func TestQueryParamsInt(t *testing.T) {
	params := QueryParams{ParamDays: "7", ParamMax: "abc"}
	if got := params.Int(ParamDays, 1); got != 7 {
		t.Errorf("Int(days) = %d, want 7", got)
	}
	if got := params.Int(ParamMax, 10); got != 10 {
		t.Errorf("Int on malformed value should fall back, got %d", got)
	}
	if got := params.Int("absent", 3); got != 3 {
		t.Errorf("Int on absent key should fall back, got %d", got)
	}
}

func TestNewErrHTTPSnippet(t *testing.T) {
	body := strings.Repeat("x", 500)
	err := NewErrHTTP(429, "https://example.com/quote", []byte(body))
	if len(err.Body) > 160 {
		t.Errorf("body snippet too long: %d bytes", len(err.Body))
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestBaseFetcherNilSafety(t *testing.T) {
	f := newMockFetcher(OpQuote, nil)
	if _, ok := f.CacheGet("k"); ok {
		t.Error("nil cache should always miss")
	}
	f.CacheSetTTL("k", "v", time.Minute)
	if err := f.RateLimit(context.Background()); err != nil {
		t.Errorf("nil limiter should not wait: %v", err)
	}
}

func TestGlobalRegistry(t *testing.T) {
	if Global() == nil {
		t.Fatal("Global() returned nil")
	}
}
