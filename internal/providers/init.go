// Package providers wires the concrete data providers into the provider
// registry. Both providers are free and keyless; each one shares the cache
// handed in by the caller so TTLs behave uniformly across the process.
package providers

import (
	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
	"github.com/tradewatch/stockpulse/internal/providers/rssnews"
	"github.com/tradewatch/stockpulse/internal/providers/yahoo"
)

// RegisterAll creates and registers all providers with the global registry.
func RegisterAll(cache infra.Store) error {
	return RegisterAllTo(provider.Global(), cache)
}

// RegisterAllTo registers all providers to the given registry.
func RegisterAllTo(reg *provider.Registry, cache infra.Store) error {
	if err := reg.Register(yahoo.New(cache)); err != nil {
		return err
	}
	return reg.Register(rssnews.New(cache))
}
