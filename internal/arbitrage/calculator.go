// Package arbitrage computes guaranteed and simple cross-venue spreads
// from last-trade prices, generalized from a same-asset cross-exchange
// spread check to the two-leg binary-market cost comparison.
package arbitrage

import "github.com/svyatogor45/xvenue-arb/internal/models"

// MinSpreadPct is the minimum last-trade spread, in percentage points,
// required to classify a non-guaranteed pair as a simple opportunity.
const MinSpreadPct = 2.0

// Calculator turns matched pairs into ranked opportunities.
type Calculator struct {
	minSpreadPct float64
}

func NewCalculator() *Calculator {
	return &Calculator{minSpreadPct: MinSpreadPct}
}

// WithMinSpreadPct returns a copy of the calculator with a different
// simple-spread threshold.
func (c *Calculator) WithMinSpreadPct(pct float64) *Calculator {
	return &Calculator{minSpreadPct: pct}
}

// Detect classifies a single pair, dropping it (returns false) if either
// leg's yes price is non-positive or if it is a simple spread below
// threshold.
func (c *Calculator) Detect(pair models.MarketPair) (models.ArbitrageOpportunity, bool) {
	return c.detect(pair, true)
}

// DetectKeepAll classifies a single pair like Detect, but never drops a
// below-threshold simple spread — used for the "all matched markets"
// display mode.
func (c *Calculator) DetectKeepAll(pair models.MarketPair) (models.ArbitrageOpportunity, bool) {
	return c.detect(pair, false)
}

func (c *Calculator) detect(pair models.MarketPair, dropBelowThreshold bool) (models.ArbitrageOpportunity, bool) {
	if pair.P.YesPrice <= 0 || pair.K.YesPrice <= 0 {
		return models.ArbitrageOpportunity{}, false
	}

	cost1 := pair.P.YesPrice + pair.K.NoPrice
	cost2 := pair.K.YesPrice + pair.P.NoPrice
	minCost := cost1
	guaranteedAction := "Buy P-YES + K-NO"
	if cost2 < cost1 {
		minCost = cost2
		guaranteedAction = "Buy K-YES + P-NO"
	}

	if minCost < 1 {
		profit := 1 - minCost
		return models.ArbitrageOpportunity{
			Pair: pair,
			Type: models.OpportunityGuaranteed,
			ProfitPct: profit * 100,
			Action: guaranteedAction,
			GuaranteedProfit: &profit,
		}, true
	}

	spreadPct := abs(pair.P.YesPrice-pair.K.YesPrice) * 100
	if dropBelowThreshold && spreadPct < c.minSpreadPct {
		return models.ArbitrageOpportunity{}, false
	}

	action := "Buy P-YES, sell exposure on K"
	if pair.K.YesPrice < pair.P.YesPrice {
		action = "Buy K-YES, sell exposure on P"
	}

	return models.ArbitrageOpportunity{
		Pair: pair,
		Type: models.OpportunitySimple,
		ProfitPct: spreadPct,
		Action: action,
	}, true
}

// DetectAll runs Detect over every pair and returns the survivors,
// sorted guaranteed-first then by ProfitPct descending.
func (c *Calculator) DetectAll(pairs []models.MarketPair) []models.ArbitrageOpportunity {
	return c.detectAll(pairs, true)
}

// DetectAllKeepAll runs DetectKeepAll over every pair, retaining every
// pair as an opportunity regardless of spread, sorted the same way.
func (c *Calculator) DetectAllKeepAll(pairs []models.MarketPair) []models.ArbitrageOpportunity {
	return c.detectAll(pairs, false)
}

func (c *Calculator) detectAll(pairs []models.MarketPair, dropBelowThreshold bool) []models.ArbitrageOpportunity {
	out := make([]models.ArbitrageOpportunity, 0, len(pairs))
	for _, p := range pairs {
		var opp models.ArbitrageOpportunity
		var ok bool
		if dropBelowThreshold {
			opp, ok = c.detect(p, true)
		} else {
			opp, ok = c.detect(p, false)
		}
		if ok {
			out = append(out, opp)
		}
	}
	SortOpportunities(out)
	return out
}

// SortOpportunities orders guaranteed-first, then by ProfitPct descending.
func SortOpportunities(opps []models.ArbitrageOpportunity) {
	sortStable(opps)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
