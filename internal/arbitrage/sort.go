package arbitrage

import (
	"sort"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

func sortStable(opps []models.ArbitrageOpportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		a, b := opps[i], opps[j]
		ag := a.Type == models.OpportunityGuaranteed
		bg := b.Type == models.OpportunityGuaranteed
		if ag != bg {
			return ag
		}
		return a.ProfitPct > b.ProfitPct
	})
}
