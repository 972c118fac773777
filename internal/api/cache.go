package api

import (
	"sync"

	"binance-futures-cli/internal/model"
)

// FilterCache holds per-symbol trading constraints for the lifetime of a
// client session. Static exchange data changes rarely, so there is no
// expiry; Invalidate forces a refetch on the next lookup.
type FilterCache struct {
	mu      sync.Mutex
	filters map[string]model.SymbolFilters
}

func NewFilterCache() *FilterCache {
	return &FilterCache{
		filters: make(map[string]model.SymbolFilters),
	}
}

func (c *FilterCache) Get(symbol string) (model.SymbolFilters, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.filters[symbol]
	return f, ok
}

func (c *FilterCache) Put(symbol string, f model.SymbolFilters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters[symbol] = f
}

func (c *FilterCache) Invalidate(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.filters, symbol)
}
