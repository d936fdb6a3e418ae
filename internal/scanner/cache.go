package scanner

import (
	"sync"
	"time"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

// DefaultCacheTTL is how long a scan result is served to callers before a
// fresh scan is triggered.
const DefaultCacheTTL = 60 * time.Second

// resultCache holds the most recent ScanResult and its expiry. Reads and
// writes are both cheap and frequent, so a single mutex (rather than a
// sync.Map keyed index) is enough — there is exactly one cached value,
// not one per key.
type resultCache struct {
	mu sync.RWMutex
	ttl time.Duration
	result *models.ScanResult
	expires time.Time
}

func newResultCache(ttl time.Duration) *resultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &resultCache{ttl: ttl}
}

func (c *resultCache) get(now time.Time) (models.ScanResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.result == nil || now.After(c.expires) {
		return models.ScanResult{}, false
	}
	return *c.result, true
}

func (c *resultCache) set(result models.ScanResult, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := result
	c.result = &r
	c.expires = now.Add(c.ttl)
}
