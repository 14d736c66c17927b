package provider

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tradewatch/stockpulse/internal/infra"
)

// BaseFetcher provides common fetcher plumbing. Embed it in concrete
// fetchers to get metadata accessors, caching and rate limiting. A nil cache
// always misses and a nil limiter never waits, which keeps test fetchers
// trivial.
type BaseFetcher struct {
	op          Operation
	description string
	required    []string
	optional    []string
	cache       infra.Store
	limiter     *infra.RateLimiter
}

// NewBaseFetcher builds the embedded base. Cache and limiter are shared
// across a provider's fetchers so one upstream budget covers them all.
func NewBaseFetcher(op Operation, desc string, required, optional []string, cache infra.Store, limiter *infra.RateLimiter) BaseFetcher {
	return BaseFetcher{
		op:          op,
		description: desc,
		required:    required,
		optional:    optional,
		cache:       cache,
		limiter:     limiter,
	}
}

func (b *BaseFetcher) Operation() Operation     { return b.op }
func (b *BaseFetcher) Description() string      { return b.description }
func (b *BaseFetcher) RequiredParams() []string { return b.required }
func (b *BaseFetcher) OptionalParams() []string { return b.optional }

// CacheGet retrieves a previously stored value.
func (b *BaseFetcher) CacheGet(key string) (any, bool) {
	if b.cache == nil {
		return nil, false
	}
	return b.cache.Get(key)
}

// CacheSetTTL stores a value with an explicit TTL.
func (b *BaseFetcher) CacheSetTTL(key string, value any, ttl time.Duration) {
	if b.cache == nil {
		return
	}
	b.cache.SetWithTTL(key, value, ttl)
}

// RateLimit blocks until a request slot is available or ctx is done.
func (b *BaseFetcher) RateLimit(ctx context.Context) error {
	if b.limiter == nil {
		return nil
	}
	return b.limiter.Wait(ctx)
}

// CacheKey builds a deterministic cache key from an operation and its
// parameters.
func CacheKey(op Operation, params QueryParams) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, string(op))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return infra.Key(parts...)
}

// BaseProvider implements the Provider interface over a fetcher table.
// Embed it and register fetchers at construction.
type BaseProvider struct {
	name     string
	fetchers map[Operation]Fetcher
}

// NewBaseProvider builds an empty provider base.
func NewBaseProvider(name string) BaseProvider {
	return BaseProvider{
		name:     name,
		fetchers: make(map[Operation]Fetcher),
	}
}

func (bp *BaseProvider) Name() string { return bp.name }

// Operations lists the registered operations in stable order.
func (bp *BaseProvider) Operations() []Operation {
	ops := make([]Operation, 0, len(bp.fetchers))
	for op := range bp.fetchers {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// RegisterFetcher adds a fetcher to this provider. A fetcher registered for
// an already-covered operation replaces the previous one.
func (bp *BaseProvider) RegisterFetcher(f Fetcher) {
	bp.fetchers[f.Operation()] = f
}

// Fetch validates params and routes to the fetcher for op.
func (bp *BaseProvider) Fetch(ctx context.Context, op Operation, params QueryParams) (*FetchResult, error) {
	f, ok := bp.fetchers[op]
	if !ok {
		return nil, &ErrOperationNotFound{Provider: bp.name, Operation: op}
	}
	if err := ValidateParams(params, f.RequiredParams()); err != nil {
		return nil, err
	}

	result, err := f.Fetch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("provider %q %s: %w", bp.name, op, err)
	}
	if result.FetchedAt.IsZero() {
		result.FetchedAt = time.Now().UTC()
	}
	return result, nil
}
