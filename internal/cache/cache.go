// =============================================================================
// PO Payment Dashboard - Table Cache
// =============================================================================
//
// A key-less, single-slot cache holding the last loaded table and its fetch
// timestamp. The slot is invalidated after a configurable interval, after
// which the next Get reloads and replaces the whole table. The pipeline is
// unaware of caching; only the loader's caller (the serve command) owns it.
//
// =============================================================================

package cache

import (
	"sync"
	"time"

	"github.com/ginjaninja78/po-payment-dashboard/internal/types"
)

// LoadFunc produces a fresh table. It is invoked at most once per stale
// slot; a failed load leaves the slot empty so the next Get retries.
type LoadFunc func() (*types.Table, error)

// TableCache is the single-slot TTL cache.
type TableCache struct {
	mu   sync.Mutex
	ttl  time.Duration
	load LoadFunc
	slot *types.Table

	// now is replaceable for tests.
	now func() time.Time
}

// New creates a cache. A non-positive ttl disables caching entirely: every
// Get loads fresh.
func New(ttl time.Duration, load LoadFunc) *TableCache {
	return &TableCache{
		ttl:  ttl,
		load: load,
		now:  time.Now,
	}
}

// Get returns the cached table, reloading when the slot is empty or its
// fetch timestamp is older than the TTL.
func (c *TableCache) Get() (*types.Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.slot != nil && c.ttl > 0 && c.now().Sub(c.slot.LoadedAt) < c.ttl {
		return c.slot, nil
	}

	table, err := c.load()
	if err != nil {
		c.slot = nil
		return nil, err
	}

	c.slot = table
	return table, nil
}

// Invalidate empties the slot so the next Get reloads regardless of age.
func (c *TableCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slot = nil
}
