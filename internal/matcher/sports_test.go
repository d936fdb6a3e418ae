package matcher

import (
	"testing"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

func TestCanonicalTeam_PrefersLongestAlias(t *testing.T) {
	table := DefaultTeamAliases()
	got, ok := canonicalTeam("Will the New York Yankees win the World Series?", table)
	if !ok || got != "Yankees" {
		t.Fatalf("got (%q, %v), want (Yankees, true)", got, ok)
	}
}

func TestMatchSports_PairsByCanonicalTeam(t *testing.T) {
	m := NewMatcher()
	event := MatchedEvent{
		EventName: "MLB World Series",
		Category:  models.CategorySports,
		PMarkets: []models.MarketShell{
			{Question: "Will the Yankees win the World Series?", YesPrice: 0.55, PTokenIDs: [2]string{"p-yes", "p-no"}},
		},
		KMarkets: []models.MarketShell{
			{Question: "New York Yankees to win World Series", YesPrice: 0.53, KTicker: "KXWS-NYY"},
		},
	}
	pairs := m.Match(event)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Confidence != 1.0 {
		t.Fatalf("got confidence %v, want 1.0", pairs[0].Confidence)
	}
	if pairs[0].MatchedEntity != "Yankees" {
		t.Fatalf("got matchedEntity %q, want Yankees", pairs[0].MatchedEntity)
	}
}

func TestMatchSports_NoPairWithoutAliasMatch(t *testing.T) {
	m := NewMatcher()
	event := MatchedEvent{
		Category: models.CategorySports,
		PMarkets: []models.MarketShell{{Question: "Will the Zebras win?", YesPrice: 0.5}},
		KMarkets: []models.MarketShell{{Question: "Zebras championship", YesPrice: 0.5, KTicker: "KXZEB"}},
	}
	pairs := m.Match(event)
	if len(pairs) != 0 {
		t.Fatalf("got %d pairs, want 0 (no alias covers this team)", len(pairs))
	}
}
