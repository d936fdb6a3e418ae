package matcher

import (
	"testing"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

func TestParseTemperatureRange(t *testing.T) {
	cases := []struct {
		q        string
		min, max *float64
		exact    *float64
	}{
		{q: "Will NYC high be 50°F or below?", max: f(50)},
		{q: "Will NYC high be 70 or above?", min: f(70)},
		{q: "Will NYC high be 50 to 60°F?", min: f(50), max: f(60)},
		{q: "Will NYC high be 55°F?", exact: f(55)},
	}
	for _, c := range cases {
		got, ok := parseTemperatureRange(c.q)
		if !ok {
			t.Fatalf("%q: failed to parse", c.q)
		}
		want := temperatureRange{min: c.min, max: c.max, exact: c.exact}
		if !got.equal(want) {
			t.Errorf("%q: got %+v, want %+v", c.q, deref(got), deref(want))
		}
	}
}

func f(v float64) *float64 { return &v }

func deref(r temperatureRange) [3]float64 {
	var out [3]float64
	if r.min != nil {
		out[0] = *r.min
	}
	if r.max != nil {
		out[1] = *r.max
	}
	if r.exact != nil {
		out[2] = *r.exact
	}
	return out
}

func TestMatchWeather_RequiresExactBoundsNoApproximation(t *testing.T) {
	event := MatchedEvent{
		PMarkets: []models.MarketShell{{Question: "Will NYC high be 50°F or below?", YesPrice: 0.3}},
		KMarkets: []models.MarketShell{
			{Question: "NYC high 51°F or below", YesPrice: 0.35, KTicker: "KXTEMP-51"},
			{Question: "NYC high 50°F or below", YesPrice: 0.32, KTicker: "KXTEMP-50"},
		},
	}
	pairs := matchWeather(event)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1 (only the exact-bound match)", len(pairs))
	}
	if pairs[0].K.Ticker != "KXTEMP-50" {
		t.Fatalf("got ticker %q, want the exact 50°F match", pairs[0].K.Ticker)
	}
	if pairs[0].Confidence != 0.9 {
		t.Fatalf("got confidence %v, want 0.9", pairs[0].Confidence)
	}
}
