// Package projection implements the pure transform from an internal
// opportunity record into the external-facing DTO consumed by API
// collaborators. Nothing in this package performs I/O.
package projection

import (
	"regexp"
	"strings"
	"time"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

const (
	// PFeePct and KFeePct are the static, display-only fee estimates
	// names; they are never applied to the arbitrage math.
	PFeePct = 2.0
	KFeePct = 1.0
)

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Project turns one scanned opportunity into its external DTO. It is a
// pure function of its two arguments: two calls with the same arguments
// produce equal output. ScannedAt and APR depend on scannedAt.
func Project(o models.OpportunityWithLiquidity, scannedAt time.Time) models.OpportunityDTO {
	pair := o.Opportunity.Pair

	dto := models.OpportunityDTO{
		ID: slugify(pair.EventName + "-" + pair.MatchedEntity),
		MatchedEntity: pair.MatchedEntity,
		EventName: pair.EventName,
		Category: string(pair.Category),
		Type: string(o.Opportunity.Type),
		Action: simplifyAction(o.Opportunity.Action),
		ResolutionDate: earliestResolution(pair),
		EstimatedFeesPct: PFeePct + KFeePct,
		Price: projectPrice(pair, o.Liquidity),
		PURL: PURL(pair.P.Slug),
		KURL: KURL(pair.K.SeriesTicker, pair.K.Ticker),
		ScannedAt: scannedAt,
	}
	if pair.K.ImageURL != "" {
		dto.ImageURL = pair.K.ImageURL
	}

	if o.Liquidity != nil {
		dto.SpreadPct = bestAskSpreadPct(o.Liquidity)
		dto.PotentialProfit = o.Liquidity.MaxProfit
		dto.MaxInvestment = o.Liquidity.MaxInvestment
		dto.Liquidity = &models.LiquidityDTO{
			Status: liquidityStatus(o.Liquidity.LimitedBy, o.Liquidity.MaxProfit),
			MaxContracts: o.Liquidity.MaxContracts,
			MaxProfit: o.Liquidity.MaxProfit,
		}
	} else {
		dto.SpreadPct = o.Opportunity.ProfitPct
		if o.Opportunity.GuaranteedProfit != nil {
			dto.PotentialProfit = *o.Opportunity.GuaranteedProfit
		}
	}

	dto.ROI = roi(dto.PotentialProfit, dto.MaxInvestment)
	if apr, ok := annualized(dto.ROI, dto.ResolutionDate, scannedAt); ok {
		dto.APR = &apr
	}

	return dto
}

// bestAskSpreadPct derives an order-book spread percentage from the best
// asks a liquidity analysis observed, mirroring the realtime engine's
// (1-sum)*100 formula.
func bestAskSpreadPct(l *models.LiquidityAnalysis) float64 {
	if l.BestPAsk == nil || l.BestKAsk == nil {
		return 0
	}
	return (1 - (*l.BestPAsk + *l.BestKAsk)) * 100
}

// simplifyAction trims surrounding whitespace from the calculator's action
// string and substitutes "buy P-YES, buy K-NO" when it is empty; the text
// is not otherwise shortened or rewritten.
func simplifyAction(action string) string {
	a := strings.TrimSpace(action)
	if a == "" {
		return "buy P-YES, buy K-NO"
	}
	return a
}

func earliestResolution(pair models.MarketPair) *time.Time {
	switch {
	case pair.P.EndDate != nil && pair.K.EndDate != nil:
		if pair.P.EndDate.Before(*pair.K.EndDate) {
			return pair.P.EndDate
		}
		return pair.K.EndDate
	case pair.P.EndDate != nil:
		return pair.P.EndDate
	case pair.K.EndDate != nil:
		return pair.K.EndDate
	default:
		return nil
	}
}

func projectPrice(pair models.MarketPair, l *models.LiquidityAnalysis) models.PriceSnapshotDTO {
	snap := models.PriceSnapshotDTO{
		PYes: pair.P.YesPrice,
		PNo: pair.P.NoPrice,
		KYes: pair.K.YesPrice,
		KNo: pair.K.NoPrice,
	}
	if l == nil || (l.BestPAsk == nil && l.BestKAsk == nil) {
		return snap
	}
	snap.OrderBook = &models.OrderBookDTO{
		BestPAsk: l.BestPAsk,
		BestKAsk: l.BestKAsk,
		OrderBookCost: l.OrderBookCost,
	}
	return snap
}

// liquidityStatus derives a short display label from the liquidity
// walk's outcome.
func liquidityStatus(limitedBy models.LimitedBy, maxProfit float64) string {
	switch limitedBy {
	case models.LimitedBySpreadClosed:
		return "closed"
	case models.LimitedByNoLiquidity:
		return "no_liquidity"
	case models.LimitedBySpreadExhaust:
		return "exhausted"
	case models.LimitedByPLiquidity, models.LimitedByKLiquidity:
		if maxProfit <= 0 {
			return "unprofitable"
		}
		return "limited"
	default:
		return "unknown"
	}
}

func roi(potentialProfit, maxInvestment float64) float64 {
	if maxInvestment <= 0 {
		return 0
	}
	return potentialProfit / maxInvestment
}

// annualized computes apr = roi * (365/daysToResolution) when the
// result is positive and a resolution date is known.
func annualized(roi float64, resolution *time.Time, scannedAt time.Time) (float64, bool) {
	if roi <= 0 || resolution == nil {
		return 0, false
	}
	days := resolution.Sub(scannedAt).Hours() / 24
	if days <= 0 {
		return 0, false
	}
	apr := roi * (365 / days)
	if apr <= 0 {
		return 0, false
	}
	return apr, true
}

// slugify lowercases, strips non-alphanumerics to hyphens, and trims to
// 64 characters.
func slugify(s string) string {
	lower := strings.ToLower(s)
	slug := slugNonAlnum.ReplaceAllString(lower, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 64 {
		slug = strings.TrimRight(slug[:64], "-")
	}
	return slug
}
