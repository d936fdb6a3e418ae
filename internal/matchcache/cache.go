// Package matchcache defines the core's contract with an external
// match-cache collaborator: given a (pId, kId) pairing, is
// it confirmed, rejected, or unknown? Persistence of that verdict is
// explicitly out of scope for this core; MemoryCache is the in-process
// default for callers that don't wire a persisted backend.
package matchcache

import "sync"

// Verdict is the match-cache's answer for one (pId, kId) pairing.
type Verdict string

const (
	VerdictConfirmed Verdict = "confirmed"
	VerdictRejected Verdict = "rejected"
	VerdictUnknown Verdict = "unknown"
)

// Cache is the match-cache contract. Implementations must be safe for
// concurrent use; the scanner may consult it from multiple goroutines
// fetching different events in parallel.
type Cache interface {
	Lookup(pID, kID string) Verdict
	Confirm(pID, kID string)
	Reject(pID, kID string)
}

type pairKey struct{ pID, kID string }

// MemoryCache is a non-persisted Cache; verdicts recorded in one
// process are lost on restart, which is acceptable since an unknown
// verdict simply falls back to the matcher's own confidence scoring.
type MemoryCache struct {
	mu sync.RWMutex
	verdicts map[pairKey]Verdict
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{verdicts: make(map[pairKey]Verdict)}
}

func (c *MemoryCache) Lookup(pID, kID string) Verdict {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.verdicts[pairKey{pID, kID}]; ok {
		return v
	}
	return VerdictUnknown
}

func (c *MemoryCache) Confirm(pID, kID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verdicts[pairKey{pID, kID}] = VerdictConfirmed
}

func (c *MemoryCache) Reject(pID, kID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verdicts[pairKey{pID, kID}] = VerdictRejected
}
