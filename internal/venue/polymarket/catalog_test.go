package polymarket

import "testing"

func TestParseGammaMarket_HappyPath(t *testing.T) {
	gm := gammaMarket{
		Question:      "Will X happen?",
		Outcomes:      `["Yes","No"]`,
		OutcomePrices: `["0.65","0.35"]`,
		ClobTokenIds:  `["tok-yes","tok-no"]`,
	}
	market, ok := parseGammaMarket(gm)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if market.YesPrice != 0.65 {
		t.Fatalf("got yesPrice %v, want 0.65", market.YesPrice)
	}
	if market.NoPrice == nil || *market.NoPrice != 0.35 {
		t.Fatalf("got noPrice %+v, want 0.35", market.NoPrice)
	}
	if market.PTokenIDs[0] != "tok-yes" || market.PTokenIDs[1] != "tok-no" {
		t.Fatalf("got tokenIds %+v", market.PTokenIDs)
	}
}

func TestParseGammaMarket_MalformedOutcomesStillRecoversPrice(t *testing.T) {
	gm := gammaMarket{
		Question:      "Will X happen?",
		Outcomes:      `not-json`,
		OutcomePrices: `["0.65","0.35"]`,
		ClobTokenIds:  `["tok-yes","tok-no"]`,
	}
	market, ok := parseGammaMarket(gm)
	if !ok {
		t.Fatal("a malformed outcomes field must not discard the market")
	}
	if market.YesPrice != 0.65 {
		t.Fatalf("got yesPrice %v, want 0.65 (default yes index 0)", market.YesPrice)
	}
}

func TestParseGammaMarket_MissingQuestionDrops(t *testing.T) {
	_, ok := parseGammaMarket(gammaMarket{OutcomePrices: `["0.5","0.5"]`})
	if ok {
		t.Fatal("expected ok=false without a question")
	}
}
