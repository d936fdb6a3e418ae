package models

import "time"

// PMarketRef is the Polymarket side of a matched pair.
type PMarketRef struct {
	Question string
	YesPrice float64
	NoPrice  float64
	TokenIDs [2]string
	Slug     string
	EndDate  *time.Time
}

// KMarketRef is the Kalshi side of a matched pair.
type KMarketRef struct {
	Question     string
	YesPrice     float64
	NoPrice      float64
	Ticker       string
	SeriesTicker string
	ImageURL     string
	EndDate      *time.Time
}

// MarketPair is one cross-venue pairing of semantically equivalent binary
// markets, produced by the intra-event matcher.
type MarketPair struct {
	MatchedEntity string
	EventName     string
	Category      Category
	P             PMarketRef
	K             KMarketRef
	Confidence    float64
	Spread        float64
}

// NewMarketPair constructs a pair and derives Spread from both legs' prices.
func NewMarketPair(entity, eventName string, cat Category, p PMarketRef, k KMarketRef, confidence float64) MarketPair {
	return MarketPair{
		MatchedEntity: entity,
		EventName:     eventName,
		Category:      cat,
		P:             p,
		K:             k,
		Confidence:    confidence,
		Spread:        abs(p.YesPrice - k.YesPrice),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
