package projection

import (
	"reflect"
	"testing"
	"time"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

func samplePair() models.MarketPair {
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return models.NewMarketPair(
		"Lakers",
		"Lakers vs Celtics",
		models.CategoryNBAGame,
		models.PMarketRef{Question: "Will the Lakers win?", YesPrice: 0.45, NoPrice: 0.55, Slug: "lakers-celtics-2026", EndDate: &end},
		models.KMarketRef{Question: "Lakers win?", YesPrice: 0.48, NoPrice: 0.52, Ticker: "KXNBAGAME-26AUG01LALBOS-LAL", SeriesTicker: "KXNBAGAME", EndDate: &end},
		0.9,
	)
}

func sampleOpportunity() models.OpportunityWithLiquidity {
	pair := samplePair()
	pAsk, kAsk, cost := 0.45, 0.48, 0.93
	return models.OpportunityWithLiquidity{
		Opportunity: models.ArbitrageOpportunity{
			Pair:      pair,
			Type:      models.OpportunityGuaranteed,
			ProfitPct: 7.0,
			Action:    "buy P-YES, buy K-NO",
		},
		Liquidity: &models.LiquidityAnalysis{
			MaxContracts:  50,
			MaxInvestment: 46.5,
			MaxProfit:     3.5,
			LimitedBy:     models.LimitedByPLiquidity,
			BestPAsk:      &pAsk,
			BestKAsk:      &kAsk,
			OrderBookCost: &cost,
		},
	}
}

func TestProject_IsIdempotent(t *testing.T) {
	o := sampleOpportunity()
	scannedAt := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)

	a := Project(o, scannedAt)
	b := Project(o, scannedAt)

	// Compare scalar fields directly; the pointer-typed fields
	// (Liquidity, Price.OrderBook, ResolutionDate, APR) may be freshly
	// allocated on each call, so compare their pointed-to values instead
	// of the pointers themselves.
	if !reflect.DeepEqual(a.Liquidity, b.Liquidity) || !reflect.DeepEqual(a.Price.OrderBook, b.Price.OrderBook) ||
		!reflect.DeepEqual(a.ResolutionDate, b.ResolutionDate) || !reflect.DeepEqual(a.APR, b.APR) {
		t.Fatalf("pointer-typed fields differ by value:\na=%+v\nb=%+v", a, b)
	}
	a.Liquidity, b.Liquidity = nil, nil
	a.Price.OrderBook, b.Price.OrderBook = nil, nil
	a.ResolutionDate, b.ResolutionDate = nil, nil
	a.APR, b.APR = nil, nil
	if a != b {
		t.Fatalf("Project is not idempotent:\na=%+v\nb=%+v", a, b)
	}
}

func TestProject_IDIsSlugTrimmedTo64(t *testing.T) {
	o := sampleOpportunity()
	dto := Project(o, time.Now())

	if dto.ID != "lakers-vs-celtics-lakers" {
		t.Fatalf("ID = %q", dto.ID)
	}
	if len(dto.ID) > 64 {
		t.Fatalf("ID exceeds 64 chars: %q", dto.ID)
	}
}

func TestProject_SpreadIsOrderBookDerivedWhenLiquidityPresent(t *testing.T) {
	o := sampleOpportunity()
	dto := Project(o, time.Now())

	// bestPAsk=0.45 + bestKAsk=0.48 = 0.93 -> spreadPct = 7.0
	if got := dto.SpreadPct; got < 6.9 || got > 7.1 {
		t.Fatalf("spreadPct = %v, want ~7.0", got)
	}
}

func TestProject_FallsBackToLastTradeSpreadWithoutLiquidity(t *testing.T) {
	o := sampleOpportunity()
	o.Liquidity = nil
	dto := Project(o, time.Now())

	if dto.SpreadPct != 7.0 {
		t.Fatalf("spreadPct = %v, want 7.0 (last-trade)", dto.SpreadPct)
	}
	if dto.Liquidity != nil {
		t.Fatal("expected nil liquidity DTO")
	}
}

func TestProject_ROIAndAPR(t *testing.T) {
	o := sampleOpportunity()
	scannedAt := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC) // 3 days before resolution
	dto := Project(o, scannedAt)

	wantROI := 3.5 / 46.5
	if dto.ROI != wantROI {
		t.Fatalf("roi = %v, want %v", dto.ROI, wantROI)
	}
	if dto.APR == nil {
		t.Fatal("expected apr to be set for a positive roi with a future resolution date")
	}
}

func TestProject_EstimatedFeesIsSumOfVenueFees(t *testing.T) {
	dto := Project(sampleOpportunity(), time.Now())
	if dto.EstimatedFeesPct != PFeePct+KFeePct {
		t.Fatalf("estimatedFeesPct = %v", dto.EstimatedFeesPct)
	}
}

func TestKURL_StripsTrailingTeamSegmentForNBATicker(t *testing.T) {
	got := KURL("KXNBAGAME", "KXNBAGAME-26AUG01LALBOS-LAL")
	want := "https://kalshi.com/markets/kxnbagame/professional-basketball-game/kxnbagame-26aug01lalbos"
	if got != want {
		t.Fatalf("KURL = %q, want %q", got, want)
	}
}

func TestKURL_FallsBackToSeriesLowerForUnknownSeries(t *testing.T) {
	got := KURL("KXWIDGET", "KXWIDGET-26AUG01")
	want := "https://kalshi.com/markets/kxwidget/kxwidget/kxwidget-26aug01"
	if got != want {
		t.Fatalf("KURL = %q, want %q", got, want)
	}
}

func TestPURL(t *testing.T) {
	if got, want := PURL("lakers-celtics-2026"), "https://polymarket.com/event/lakers-celtics-2026"; got != want {
		t.Fatalf("PURL = %q, want %q", got, want)
	}
}
