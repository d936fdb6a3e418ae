package matcher

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

// policyAction is the parsed shape of a monetary-policy question.
type policyAction struct {
	actionType string // "cut", "raise", or "hold"
	bps        *int
}

func (a policyAction) equal(o policyAction) bool {
	if a.actionType != o.actionType {
		return false
	}
	if (a.bps == nil) != (o.bps == nil) {
		return false
	}
	return a.bps == nil || *a.bps == *o.bps
}

var reBps = regexp.MustCompile(`(\d+)\s*(?:bps|basis points?)`)

// parsePolicyAction classifies a question as a rate cut, raise, or hold,
// extracting a basis-point magnitude when present.
func parsePolicyAction(question string) (policyAction, bool) {
	q := strings.ToLower(question)
	var actionType string
	switch {
	case strings.Contains(q, "cut") || strings.Contains(q, "lower") || strings.Contains(q, "decrease"):
		actionType = "cut"
	case strings.Contains(q, "raise") || strings.Contains(q, "hike") || strings.Contains(q, "increase"):
		actionType = "raise"
	case strings.Contains(q, "hold") || strings.Contains(q, "no change") || strings.Contains(q, "unchanged") || strings.Contains(q, "pause"):
		actionType = "hold"
	default:
		return policyAction{}, false
	}

	var bps *int
	if m := reBps.FindStringSubmatch(q); m != nil {
		v, err := strconv.Atoi(m[1])
		if err == nil {
			bps = &v
		}
	}
	return policyAction{actionType: actionType, bps: bps}, true
}

// matchFinance pairs markets whose parsed policy action is exactly equal:
// same type, and same bps magnitude (or both absent).
func matchFinance(event MatchedEvent) []models.MarketPair {
	type parsedP struct {
		shell  models.MarketShell
		action policyAction
	}
	var pActions []parsedP
	for _, p := range event.PMarkets {
		action, ok := parsePolicyAction(p.Question)
		if !ok {
			continue
		}
		pActions = append(pActions, parsedP{p, action})
	}

	var pairs []models.MarketPair
	for _, k := range event.KMarkets {
		kAction, ok := parsePolicyAction(k.Question)
		if !ok {
			continue
		}
		for _, pa := range pActions {
			if !pa.action.equal(kAction) {
				continue
			}
			pairs = append(pairs, models.NewMarketPair(k.Question, event.EventName, models.CategoryFinance,
				models.PMarketRef{Question: pa.shell.Question, YesPrice: pa.shell.YesPrice, NoPrice: pa.shell.ResolvedNoPrice(), TokenIDs: pa.shell.PTokenIDs, EndDate: pa.shell.EndDate},
				models.KMarketRef{Question: k.Question, YesPrice: k.YesPrice, NoPrice: k.ResolvedNoPrice(), Ticker: k.KTicker, EndDate: k.EndDate},
				1.0,
			))
			break
		}
	}
	return pairs
}
