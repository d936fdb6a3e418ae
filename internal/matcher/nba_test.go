package matcher

import (
	"testing"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

// NBA team-order disambiguation.
func TestSplitMoneyline_TeamOrderDisambiguation(t *testing.T) {
	teams := DefaultNBATeams()
	away := teams["BOS"] // Boston Celtics
	home := teams["LAL"] // Los Angeles Lakers

	origTokens := [2]string{"tok-yes", "tok-no"}
	awayYes, homeYes, awayTokens, homeTokens := splitMoneyline("Lakers vs. Celtics", 0.60, origTokens, away, home)

	if !almostEqual(awayYes, 0.40) {
		t.Fatalf("awayPolyYes got %v, want 0.40", awayYes)
	}
	if !almostEqual(homeYes, 0.60) {
		t.Fatalf("homePolyYes got %v, want 0.60", homeYes)
	}
	wantAwayTokens := [2]string{origTokens[1], origTokens[0]}
	if awayTokens != wantAwayTokens {
		t.Fatalf("awayTokenIds got %v, want %v", awayTokens, wantAwayTokens)
	}
	if homeTokens != origTokens {
		t.Fatalf("homeTokenIds got %v, want %v (unmodified)", homeTokens, origTokens)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestIsMoneylineMarket_ExcludesPropsAndTotals(t *testing.T) {
	cases := map[string]bool{
		"Lakers vs. Celtics":                     true,
		"Lakers vs. Celtics - Spread -5.5":       false,
		"Will LeBron James score over 30 points": false,
		"Lakers vs. Celtics - First Quarter":     false,
		"Thunder vs. Nuggets":                    true,
		"Thunder vs. Nuggets - Total Points O/U":  false,
	}
	for q, want := range cases {
		if got := isMoneylineMarket(q); got != want {
			t.Errorf("isMoneylineMarket(%q) = %v, want %v", q, got, want)
		}
	}
}

func TestContainsWholeWord_AvoidsThunderSubstring(t *testing.T) {
	if containsWholeWord("Thunder vs. Nuggets", "under") {
		t.Fatal("matched 'under' inside 'Thunder' as a whole word")
	}
	if !containsWholeWord("Will the total go under 210.5", "under") {
		t.Fatal("failed to match standalone 'under'")
	}
}

func TestMatchNBAGame_EmitsOnePairPerTeam(t *testing.T) {
	m := NewMatcher()
	event := MatchedEvent{
		EventName: "Lakers vs. Celtics",
		Category:  models.CategoryNBAGame,
		PMarkets: []models.MarketShell{
			{Question: "Lakers vs. Celtics", YesPrice: 0.60, PTokenIDs: [2]string{"yes-tok", "no-tok"}},
		},
		KMarkets: []models.MarketShell{
			{Question: "Celtics to win", YesPrice: 0.41, KTicker: "KXNBAGAME-26JAN05LALBOS-BOS"},
			{Question: "Lakers to win", YesPrice: 0.59, KTicker: "KXNBAGAME-26JAN05LALBOS-LAL"},
		},
	}
	pairs := m.Match(event)
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}
	for _, p := range pairs {
		if p.Category != models.CategoryNBAGame {
			t.Errorf("pair %+v has wrong category", p)
		}
		if p.P.TokenIDs[0] == p.P.TokenIDs[1] {
			t.Errorf("pair %+v has degenerate token ids", p)
		}
	}
}
