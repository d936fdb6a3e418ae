package models

import "time"

// PriceSnapshotDTO is the nested price block of an OpportunityDTO.
type PriceSnapshotDTO struct {
	PYes       float64         `json:"pYes"`
	PNo        float64         `json:"pNo"`
	KYes       float64         `json:"kYes"`
	KNo        float64         `json:"kNo"`
	OrderBook  *OrderBookDTO   `json:"orderBook,omitempty"`
}

// OrderBookDTO is the optional best-price order-book block nested in a
// PriceSnapshotDTO when a liquidity analysis is present.
type OrderBookDTO struct {
	BestPAsk      *float64 `json:"bestPAsk,omitempty"`
	BestKAsk      *float64 `json:"bestKAsk,omitempty"`
	OrderBookCost *float64 `json:"orderBookCost,omitempty"`
}

// LiquidityDTO summarizes a LiquidityAnalysis for external consumers.
type LiquidityDTO struct {
	Status        string  `json:"status"`
	MaxContracts  float64 `json:"maxContracts"`
	MaxProfit     float64 `json:"maxProfit"`
}

// OpportunityDTO is the external-facing projection of an opportunity.
// Every field is derived, never mutated after construction.
type OpportunityDTO struct {
	ID               string           `json:"id"`
	MatchedEntity    string           `json:"matchedEntity"`
	EventName        string           `json:"eventName"`
	Category         string           `json:"category"`
	ImageURL         string           `json:"imageUrl,omitempty"`
	Type             string           `json:"type"`
	SpreadPct        float64          `json:"spreadPct"`
	Action           string           `json:"action"`
	PotentialProfit  float64          `json:"potentialProfit"`
	MaxInvestment    float64          `json:"maxInvestment"`
	ResolutionDate   *time.Time       `json:"resolutionDate,omitempty"`
	EstimatedFeesPct float64          `json:"estimatedFeesPct"`
	Price            PriceSnapshotDTO `json:"price"`
	PURL             string           `json:"pUrl"`
	KURL             string           `json:"kUrl"`
	Liquidity        *LiquidityDTO    `json:"liquidity,omitempty"`
	ROI              float64          `json:"roi"`
	APR              *float64         `json:"apr,omitempty"`
	ScannedAt        time.Time        `json:"scannedAt"`
}
