package models

// RealtimeOpportunity is the per-pair event the realtime engine emits
// after a debounced order-book evaluation: best-ask-only economics
// rather than the batch scanner's last-trade classification.
type RealtimeOpportunity struct {
	PairID string
	SpreadPercent float64
	MaxContracts float64
	PotentialProfit float64
}
