package realtime

import "github.com/svyatogor45/xvenue-arb/internal/models"

// evaluate implements per-pair computation: take the
// cheaper of the two venues' best YES ask and the cheaper of the two
// venues' best NO ask; if their sum is below 1, the spread is the
// position's edge.
func evaluate(pYesAsks, pNoAsks, kYesAsks, kNoAsks []models.OrderBookLevel) (models.RealtimeOpportunity, bool) {
	bestYes, yesOK := cheaperBest(pYesAsks, kYesAsks)
	bestNo, noOK := cheaperBest(pNoAsks, kNoAsks)
	if !yesOK || !noOK {
		return models.RealtimeOpportunity{}, false
	}

	sum := bestYes.Price + bestNo.Price
	if sum >= 1 {
		return models.RealtimeOpportunity{}, false
	}

	spreadPct := (1 - sum) * 100
	maxContracts := bestYes.Size
	if bestNo.Size < maxContracts {
		maxContracts = bestNo.Size
	}

	return models.RealtimeOpportunity{
		SpreadPercent: spreadPct,
		MaxContracts: maxContracts,
		PotentialProfit: spreadPct * maxContracts / 100,
	}, true
}

// cheaperBest returns whichever venue's best ask is cheaper (p wins a
// tie, arbitrarily but deterministically).
func cheaperBest(p, k []models.OrderBookLevel) (models.OrderBookLevel, bool) {
	pBest, pOK := models.BestAsk(p)
	kBest, kOK := models.BestAsk(k)
	switch {
	case pOK && kOK:
		if kBest.Price < pBest.Price {
			return kBest, true
		}
		return pBest, true
	case pOK:
		return pBest, true
	case kOK:
		return kBest, true
	default:
		return models.OrderBookLevel{}, false
	}
}

// significantChange reports whether a new spread differs from the active
// spread by more than 0.1 percentage points.
func significantChange(oldPct, newPct float64) bool {
	d := oldPct - newPct
	if d < 0 {
		d = -d
	}
	return d > 0.1
}
