// Package liquidity walks two ask ladders to size a cross-venue position,
// generalizing a single-exchange order-book depth check to the two-ladder
// walk of a binary-market pair.
package liquidity

import "github.com/svyatogor45/xvenue-arb/internal/models"

// Options configures the liquidity walk. Fees are displayed elsewhere but
// not applied to the top-level arbitrage calculator; they are applied here,
// where their effect on profitPct is explicit.
type Options struct {
	PFee float64
	KFee float64
	MinProfitPct float64
}

// DefaultOptions matches the values the scanner passes.
func DefaultOptions() Options {
	return Options{PFee: 0, KFee: 0, MinProfitPct: 0}
}

// Analyzer computes LiquidityAnalysis for the fixed "buy P-YES and K-NO"
// strategy; the symmetric strategy is the concern of upstream pair
// construction.
type Analyzer struct {
	opts Options
}

func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{opts: opts}
}

// Analyze walks pBook.YesAsks against kBook.NoAsks.
func (a *Analyzer) Analyze(opp models.ArbitrageOpportunity, pBook, kBook models.OrderBook) models.LiquidityAnalysis {
	pAsks := pBook.YesAsks
	kAsks := kBook.NoAsks

	pDepth := models.Depth(pAsks)
	kDepth := models.Depth(kAsks)

	base := models.LiquidityAnalysis{
		Opportunity: opp,
		PDepth: pDepth,
		KDepth: kDepth,
	}

	if len(pAsks) == 0 || len(kAsks) == 0 {
		base.LimitedBy = models.LimitedByNoLiquidity
		return base
	}

	bestP := pAsks[0].Price
	bestK := kAsks[0].Price
	base.BestPAsk = &bestP
	base.BestKAsk = &bestK
	cost0 := bestP + bestK
	base.OrderBookCost = &cost0

	fees := a.opts.PFee + a.opts.KFee
	eps := a.opts.MinProfitPct / 100

	if 1-cost0-fees <= eps {
		base.LimitedBy = models.LimitedBySpreadClosed
		base.Levels = []models.LiquidityLevel{}
		return base
	}

	i, j := 0, 0
	pRemaining := pAsks[0].Size
	kRemaining := kAsks[0].Size

	var levels []models.LiquidityLevel
	var cumContracts, cumCost, cumProfit float64

	for i < len(pAsks) && j < len(kAsks) {
		cost := pAsks[i].Price + kAsks[j].Price
		profit := 1 - cost - fees
		if profit <= eps {
			break
		}

		available := pRemaining
		if kRemaining < available {
			available = kRemaining
		}

		cumContracts += available
		cumCost += available * cost
		cumProfit += available * profit

		levels = append(levels, models.LiquidityLevel{
			Contracts: available,
			PPrice: pAsks[i].Price,
			KPrice: kAsks[j].Price,
			CostPerContract: cost,
			ProfitPerContract: profit,
			CumulativeContracts: cumContracts,
			CumulativeCost: cumCost,
			CumulativeProfit: cumProfit,
		})

		pRemaining -= available
		kRemaining -= available

		advanceP := pRemaining <= 0
		advanceK := kRemaining <= 0

		if advanceP {
			i++
			if i < len(pAsks) {
				pRemaining = pAsks[i].Size
			}
		}
		if advanceK {
			j++
			if j < len(kAsks) {
				kRemaining = kAsks[j].Size
			}
		}
	}

	base.Levels = levels
	base.MaxContracts = cumContracts
	base.MaxInvestment = cumCost
	base.MaxProfit = cumProfit
	if cumCost > 0 {
		base.AvgProfitPct = cumProfit / cumCost * 100
	}

	switch {
	case cumContracts <= 0:
		base.LimitedBy = models.LimitedByNoLiquidity
	case i >= len(pAsks) && j < len(kAsks):
		base.LimitedBy = models.LimitedByPLiquidity
	case j >= len(kAsks) && i < len(pAsks):
		base.LimitedBy = models.LimitedByKLiquidity
	default:
		base.LimitedBy = models.LimitedBySpreadExhaust
	}

	return base
}
