package matcher

import (
	"testing"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

func TestParsePolicyAction(t *testing.T) {
	cases := []struct {
		q    string
		want policyAction
	}{
		{"Will the Fed cut rates by 25 bps?", policyAction{actionType: "cut", bps: i(25)}},
		{"Will the Fed raise rates?", policyAction{actionType: "raise"}},
		{"Will the Fed hold rates unchanged?", policyAction{actionType: "hold"}},
	}
	for _, c := range cases {
		got, ok := parsePolicyAction(c.q)
		if !ok {
			t.Fatalf("%q: failed to parse", c.q)
		}
		if !got.equal(c.want) {
			t.Errorf("%q: got %+v, want %+v", c.q, got, c.want)
		}
	}
}

func i(v int) *int { return &v }

func TestMatchFinance_RequiresExactBpsEquality(t *testing.T) {
	event := MatchedEvent{
		PMarkets: []models.MarketShell{{Question: "Will the Fed cut rates by 25 bps?", YesPrice: 0.7}},
		KMarkets: []models.MarketShell{
			{Question: "Fed cuts rates 50 bps", YesPrice: 0.1, KTicker: "KXFED-50"},
			{Question: "Fed cuts rates 25 bps", YesPrice: 0.68, KTicker: "KXFED-25"},
		},
	}
	pairs := matchFinance(event)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].K.Ticker != "KXFED-25" {
		t.Fatalf("got ticker %q, want the 25bps match", pairs[0].K.Ticker)
	}
}
