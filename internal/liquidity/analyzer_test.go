package liquidity

import (
	"math"
	"testing"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func book(yesAsks, noAsks []models.OrderBookLevel) models.OrderBook {
	return models.OrderBook{YesAsks: yesAsks, NoAsks: noAsks}
}

// Liquidity walk, K-limited.
func TestAnalyze_KLimited(t *testing.T) {
	a := NewAnalyzer(DefaultOptions())
	pBook := book([]models.OrderBookLevel{{Price: 0.50, Size: 100}, {Price: 0.51, Size: 200}}, nil)
	kBook := book(nil, []models.OrderBookLevel{{Price: 0.48, Size: 60}})

	result := a.Analyze(models.ArbitrageOpportunity{}, pBook, kBook)

	if result.LimitedBy != models.LimitedByKLiquidity {
		t.Fatalf("got limitedBy %s, want k_liquidity", result.LimitedBy)
	}
	if len(result.Levels) != 1 {
		t.Fatalf("got %d levels, want 1", len(result.Levels))
	}
	lvl := result.Levels[0]
	if !almostEqual(lvl.Contracts, 60) || !almostEqual(lvl.CostPerContract, 0.98) || !almostEqual(lvl.ProfitPerContract, 0.02) {
		t.Fatalf("got level %+v", lvl)
	}
	if !almostEqual(result.MaxContracts, 60) {
		t.Fatalf("got maxContracts %v", result.MaxContracts)
	}
	if !almostEqual(result.MaxInvestment, 58.8) {
		t.Fatalf("got maxInvestment %v", result.MaxInvestment)
	}
	if !almostEqual(result.MaxProfit, 1.2) {
		t.Fatalf("got maxProfit %v", result.MaxProfit)
	}
}

// Spread closed.
func TestAnalyze_SpreadClosed(t *testing.T) {
	a := NewAnalyzer(DefaultOptions())
	pBook := book([]models.OrderBookLevel{{Price: 0.52, Size: 100}}, nil)
	kBook := book(nil, []models.OrderBookLevel{{Price: 0.50, Size: 100}})

	result := a.Analyze(models.ArbitrageOpportunity{}, pBook, kBook)

	if result.LimitedBy != models.LimitedBySpreadClosed {
		t.Fatalf("got limitedBy %s, want spread_closed", result.LimitedBy)
	}
	if result.MaxContracts != 0 {
		t.Fatalf("got maxContracts %v, want 0", result.MaxContracts)
	}
	if result.BestPAsk == nil || !almostEqual(*result.BestPAsk, 0.52) {
		t.Fatalf("got bestPAsk %+v", result.BestPAsk)
	}
	if result.BestKAsk == nil || !almostEqual(*result.BestKAsk, 0.50) {
		t.Fatalf("got bestKAsk %+v", result.BestKAsk)
	}
	if result.OrderBookCost == nil || !almostEqual(*result.OrderBookCost, 1.02) {
		t.Fatalf("got orderBookCost %+v", result.OrderBookCost)
	}
	if len(result.Levels) != 0 {
		t.Fatalf("expected no levels, got %+v", result.Levels)
	}
}

func TestAnalyze_NoLiquidity(t *testing.T) {
	a := NewAnalyzer(DefaultOptions())
	result := a.Analyze(models.ArbitrageOpportunity{}, book(nil, nil), book(nil, []models.OrderBookLevel{{Price: 0.5, Size: 10}}))
	if result.LimitedBy != models.LimitedByNoLiquidity {
		t.Fatalf("got %s, want no_liquidity", result.LimitedBy)
	}
}

// maxInvestment/maxProfit equal level sums; cumulative fields are prefix sums.
func TestAnalyze_CumulativePrefixSums(t *testing.T) {
	a := NewAnalyzer(DefaultOptions())
	pBook := book([]models.OrderBookLevel{{Price: 0.40, Size: 10}, {Price: 0.41, Size: 90}}, nil)
	kBook := book(nil, []models.OrderBookLevel{{Price: 0.30, Size: 50}, {Price: 0.35, Size: 100}})

	result := a.Analyze(models.ArbitrageOpportunity{}, pBook, kBook)

	var wantContracts, wantCost, wantProfit float64
	for _, lvl := range result.Levels {
		wantContracts += lvl.Contracts
		wantCost += lvl.Contracts * lvl.CostPerContract
		wantProfit += lvl.Contracts * lvl.ProfitPerContract
		if !almostEqual(lvl.CumulativeContracts, wantContracts) {
			t.Fatalf("cumulative contracts mismatch: got %v want %v", lvl.CumulativeContracts, wantContracts)
		}
		if !almostEqual(lvl.CumulativeCost, wantCost) {
			t.Fatalf("cumulative cost mismatch: got %v want %v", lvl.CumulativeCost, wantCost)
		}
		if !almostEqual(lvl.CumulativeProfit, wantProfit) {
			t.Fatalf("cumulative profit mismatch: got %v want %v", lvl.CumulativeProfit, wantProfit)
		}
	}
	if result.MaxContracts > 0 {
		if !almostEqual(result.MaxInvestment, wantCost) {
			t.Fatalf("maxInvestment %v != sum %v", result.MaxInvestment, wantCost)
		}
		if !almostEqual(result.MaxProfit, wantProfit) {
			t.Fatalf("maxProfit %v != sum %v", result.MaxProfit, wantProfit)
		}
	}
}
