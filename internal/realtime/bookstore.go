package realtime

import (
	"sync"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

const numShards = 16

// fnvHash is an allocation-free FNV-1a hash, used here to shard pair
// state by pairId.
func fnvHash(s string) uint32 {
	const (
		offset = uint32(2166136261)
		prime = uint32(16777619)
	)
	h := offset
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

// pairBooks holds the raw, mutable per-token/per-side ladders for one
// pair. Polymarket price_change updates carry the absolute resting size
// at a price (zero removes it); Kalshi deltas carry a signed size change.
// Both are folded into these maps and only consolidated into ascending
// ask ladders on read (evaluate), per single-writer policy.
type pairBooks struct {
	mu sync.Mutex

	pYesAsks map[float64]float64
	pYesBids map[float64]float64
	pNoAsks map[float64]float64
	pNoBids map[float64]float64

	kYesBids map[float64]float64
	kNoBids map[float64]float64

	pSeeded bool
	kSeeded bool
}

func newPairBooks() *pairBooks {
	return &pairBooks{
		pYesAsks: map[float64]float64{},
		pYesBids: map[float64]float64{},
		pNoAsks: map[float64]float64{},
		pNoBids: map[float64]float64{},
		kYesBids: map[float64]float64{},
		kNoBids: map[float64]float64{},
	}
}

// snapshot returns the four normalized ask ladders the evaluator needs:
// P-YES asks, P-NO asks, K-YES asks, K-NO asks. K's asks are derived from
// the opposite side's bids via the same price-inversion identity the
// evaluator uses elsewhere.
func (b *pairBooks) snapshot() (pYesAsks, pNoAsks, kYesAsks, kNoAsks []models.OrderBookLevel) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pYesAsks = models.ConsolidateLevels(append(
		toLevels(b.pYesAsks), models.InvertLevels(toLevels(b.pNoBids))...))
	pNoAsks = models.ConsolidateLevels(append(
		toLevels(b.pNoAsks), models.InvertLevels(toLevels(b.pYesBids))...))
	kYesAsks = models.ConsolidateLevels(models.InvertLevels(toLevels(b.kNoBids)))
	kNoAsks = models.ConsolidateLevels(models.InvertLevels(toLevels(b.kYesBids)))
	return
}

func toLevels(m map[float64]float64) []models.OrderBookLevel {
	out := make([]models.OrderBookLevel, 0, len(m))
	for price, size := range m {
		if size > 0 {
			out = append(out, models.OrderBookLevel{Price: price, Size: size})
		}
	}
	return out
}

func setLevel(m map[float64]float64, price, size float64) {
	if size <= 0 {
		delete(m, price)
		return
	}
	m[price] = size
}

func applyDelta(m map[float64]float64, price, delta float64) {
	next := m[price] + delta
	setLevel(m, price, next)
}

// bookStore is the realtime engine's sole writer of per-pair order-book
// state. Sharded by pairId (FNV-1a) so unrelated pairs never contend on
// the same mutex.
type bookStore struct {
	shards []*bookShard
}

type bookShard struct {
	mu sync.Mutex
	books map[string]*pairBooks
}

func newBookStore() *bookStore {
	shards := make([]*bookShard, numShards)
	for i := range shards {
		shards[i] = &bookShard{books: make(map[string]*pairBooks)}
	}
	return &bookStore{shards: shards}
}

func (s *bookStore) shardFor(pairID string) *bookShard {
	return s.shards[fnvHash(pairID)%numShards]
}

func (s *bookStore) get(pairID string) *pairBooks {
	shard := s.shardFor(pairID)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	b, ok := shard.books[pairID]
	if !ok {
		b = newPairBooks()
		shard.books[pairID] = b
	}
	return b
}

func (s *bookStore) delete(pairID string) {
	shard := s.shardFor(pairID)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.books, pairID)
}
