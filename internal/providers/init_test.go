package providers

import (
	"testing"
	"time"

	"github.com/tradewatch/stockpulse/internal/infra"
	"github.com/tradewatch/stockpulse/internal/provider"
)

func TestRegisterAllTo(t *testing.T) {
	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, infra.NewCache(time.Minute)); err != nil {
		t.Fatalf("RegisterAllTo: %v", err)
	}

	names := reg.List()
	want := []string{"rssnews", "yahoo"}
	if len(names) != len(want) {
		t.Fatalf("List: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("List[%d]: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestOperationCoverage(t *testing.T) {
	reg := provider.NewRegistry()
	if err := RegisterAllTo(reg, infra.NewCache(time.Minute)); err != nil {
		t.Fatalf("RegisterAllTo: %v", err)
	}

	covered := make(map[provider.Operation]bool)
	for _, name := range reg.List() {
		p, err := reg.Get(name)
		if err != nil {
			t.Fatalf("Get(%s): %v", name, err)
		}
		for _, op := range p.Operations() {
			covered[op] = true
		}
	}

	for _, op := range []provider.Operation{
		provider.OpQuote, provider.OpHistory, provider.OpInfo,
		provider.OpSearch, provider.OpComparables,
		provider.OpStockNews, provider.OpMarketNews,
	} {
		if !covered[op] {
			t.Errorf("operation %q has no provider", op)
		}
	}
}
