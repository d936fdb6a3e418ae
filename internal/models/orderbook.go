package models

import (
	"sort"
	"time"
)

// OrderBookLevel is one price/size rung of an ask or bid ladder.
type OrderBookLevel struct {
	Price float64
	Size float64
}

// OrderBook is the normalized, probability-space view of a market's book.
// YesAsks and NoAsks are strictly price-ascending with no zero-size
// entries. YesBids and NoBids are filled by the REST venue clients via
// ConsolidateLevels, so they are ascending too; the arbitrage math never
// reads them.
type OrderBook struct {
	YesAsks []OrderBookLevel
	NoAsks []OrderBookLevel
	YesBids []OrderBookLevel
	NoBids []OrderBookLevel
	UpdatedAt time.Time
}

// Depth sums the sizes of an ask ladder.
func Depth(levels []OrderBookLevel) float64 {
	var total float64
	for _, l := range levels {
		total += l.Size
	}
	return total
}

// BestAsk returns the first (lowest-price) level, or ok=false if empty.
func BestAsk(levels []OrderBookLevel) (OrderBookLevel, bool) {
	if len(levels) == 0 {
		return OrderBookLevel{}, false
	}
	return levels[0], true
}

// ConsolidateLevels merges levels that land on the same price after
// normalization, summing their sizes, and returns them sorted ascending
// by price with zero-size entries dropped. Used by both venue clients when
// merging bid-inversion and native-ask sources.
func ConsolidateLevels(levels []OrderBookLevel) []OrderBookLevel {
	byPrice := make(map[float64]float64, len(levels))
	order := make([]float64, 0, len(levels))
	for _, l := range levels {
		if l.Size <= 0 {
			continue
		}
		if _, seen := byPrice[l.Price]; !seen {
			order = append(order, l.Price)
		}
		byPrice[l.Price] += l.Size
	}
	sort.Float64s(order)
	out := make([]OrderBookLevel, 0, len(order))
	for _, p := range order {
		if sz := byPrice[p]; sz > 0 {
			out = append(out, OrderBookLevel{Price: p, Size: sz})
		}
	}
	return out
}

// InvertLevel converts a bid at price X on one outcome into an ask at
// price 1-X on the opposite outcome — the identity that lets callers
// merge bid and ask sources into one ladder.
func InvertLevel(l OrderBookLevel) OrderBookLevel {
	return OrderBookLevel{Price: 1 - l.Price, Size: l.Size}
}

func InvertLevels(levels []OrderBookLevel) []OrderBookLevel {
	out := make([]OrderBookLevel, len(levels))
	for i, l := range levels {
		out[i] = InvertLevel(l)
	}
	return out
}
