// Package provider defines the data-provider abstraction: a Provider serves
// one or more operations through per-operation Fetchers, and a central
// registry routes lookups by provider name. Concrete providers live under
// internal/providers.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Provider is the interface all data providers implement.
type Provider interface {
	// Name returns the registry key, e.g. "yahoo", "rssnews".
	Name() string

	// Operations returns the operations this provider can serve.
	Operations() []Operation

	// Fetch validates params and routes to the fetcher for op.
	Fetch(ctx context.Context, op Operation, params QueryParams) (*FetchResult, error)
}

// QueryParams is the query parameter map passed to fetchers. All values are
// strings; numeric parameters are parsed by the fetcher. Common keys:
//
//	"ticker"   : symbol, already exchange-formatted ("TCS.NS", "AAPL", "^NSEI")
//	"period"   : dashboard period label ("1D", "1M", "YTD", "MAX")
//	"range"    : upstream range ("1d", "1mo", "max")
//	"interval" : bar interval ("5m", "1d", "1wk")
//	"days"     : lookback window in days
//	"max"      : max results
//	"query"    : free-text search query
type QueryParams map[string]string

const (
	ParamTicker   = "ticker"
	ParamPeriod   = "period"
	ParamRange    = "range"
	ParamInterval = "interval"
	ParamDays     = "days"
	ParamMax      = "max"
	ParamQuery    = "query"
)

// Int parses an integer parameter, falling back when absent or malformed.
func (p QueryParams) Int(key string, fallback int) int {
	v, ok := p[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// FetchResult wraps fetched data with metadata.
type FetchResult struct {
	Data      any       `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
	Cached    bool      `json:"cached"`
}

// Fetcher serves a single operation for one provider.
type Fetcher interface {
	Operation() Operation
	Description() string
	RequiredParams() []string
	OptionalParams() []string
	Fetch(ctx context.Context, params QueryParams) (*FetchResult, error)
}

// Sentinel errors for upstream conditions, wrapped with %w by fetchers.
var (
	ErrTickerNotFound = errors.New("ticker not found")
	ErrRateLimited    = errors.New("rate limited by upstream")
	ErrNotSupported   = errors.New("operation not supported")
)

// ErrProviderNotFound is returned when a requested provider is not registered.
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return fmt.Sprintf("provider %q not found", e.Name)
}

// ErrOperationNotFound is returned when a provider has no fetcher for an
// operation.
type ErrOperationNotFound struct {
	Provider  string
	Operation Operation
}

func (e *ErrOperationNotFound) Error() string {
	return fmt.Sprintf("provider %q does not serve operation %q", e.Provider, e.Operation)
}

// ErrMissingParam is returned when a required query parameter is absent or
// empty.
type ErrMissingParam struct {
	Param string
}

func (e *ErrMissingParam) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Param)
}

// ErrHTTP reports a non-2xx upstream response. Body holds a short snippet of
// the response text for diagnostics.
type ErrHTTP struct {
	Status int
	URL    string
	Body   string
}

func (e *ErrHTTP) Error() string {
	return fmt.Sprintf("upstream http %d from %s: %s", e.Status, e.URL, e.Body)
}

// NewErrHTTP builds an ErrHTTP, trimming the body to a snippet.
func NewErrHTTP(status int, url string, body []byte) *ErrHTTP {
	snippet := strings.TrimSpace(string(body))
	if len(snippet) > 160 {
		snippet = snippet[:160]
	}
	return &ErrHTTP{Status: status, URL: url, Body: snippet}
}

// ValidateParams checks that every required parameter is present and
// non-empty.
func ValidateParams(params QueryParams, required []string) error {
	for _, key := range required {
		if v, ok := params[key]; !ok || v == "" {
			return &ErrMissingParam{Param: key}
		}
	}
	return nil
}
