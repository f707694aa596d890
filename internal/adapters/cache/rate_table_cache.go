package cache

import (
	"fmt"
	"time"

	"curex/internal/domain"

	"github.com/dgraph-io/ristretto"
)

// RistrettoRateTableCache keeps the latest table per base for ttl.
type RistrettoRateTableCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewRateTableCache(maxItems int64, ttl time.Duration) (*RistrettoRateTableCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
		// cost counts tables, not bytes
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate table cache failed: %w", err)
	}
	return &RistrettoRateTableCache{cache: c, ttl: ttl}, nil
}

func (c *RistrettoRateTableCache) Get(base string) (domain.RateTable, bool) {
	if v, ok := c.cache.Get(base); ok {
		table, ok := v.(domain.RateTable)
		return table, ok
	}
	return domain.RateTable{}, false
}

func (c *RistrettoRateTableCache) Set(table domain.RateTable) {
	c.cache.SetWithTTL(table.Base, table, 1, c.ttl)
}

func (c *RistrettoRateTableCache) Close() { c.cache.Close() }
