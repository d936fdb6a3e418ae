package models

import "testing"

func TestConsolidateLevels_SumsCollidingPrices(t *testing.T) {
	in := []OrderBookLevel{
		{Price: 0.50, Size: 10},
		{Price: 0.48, Size: 5},
		{Price: 0.50, Size: 3},
		{Price: 0.49, Size: 0}, // zero-size: dropped
	}
	out := ConsolidateLevels(in)

	want := []OrderBookLevel{
		{Price: 0.48, Size: 5},
		{Price: 0.50, Size: 13},
	}
	if len(out) != len(want) {
		t.Fatalf("got %d levels, want %d: %+v", len(out), len(want), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("level %d = %+v, want %+v", i, out[i], want[i])
		}
	}
}

func TestConsolidateLevels_AscendingNoZeroSize(t *testing.T) {
	in := []OrderBookLevel{
		{Price: 0.9, Size: 1},
		{Price: 0.1, Size: 2},
		{Price: 0.5, Size: 0},
	}
	out := ConsolidateLevels(in)
	if len(out) != 2 {
		t.Fatalf("expected zero-size entry dropped, got %+v", out)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].Price >= out[i].Price {
			t.Fatalf("levels not strictly ascending: %+v", out)
		}
		if out[i].Size <= 0 {
			t.Fatalf("zero-size level survived: %+v", out)
		}
	}
}

func TestInvertLevel(t *testing.T) {
	l := InvertLevel(OrderBookLevel{Price: 0.3, Size: 50})
	if l.Price != 0.7 || l.Size != 50 {
		t.Fatalf("got %+v", l)
	}
}

func TestMergedPBook_SizeEqualsSourceSum(t *testing.T) {
	// A merged P book's size at a resulting price equals the sum of
	// source entries mapping to it (direct asks + inverted bids).
	yesAsks := []OrderBookLevel{{Price: 0.40, Size: 100}}
	noBidsAsInvertedYesAsks := InvertLevels([]OrderBookLevel{{Price: 0.60, Size: 20}}) // bid at .60 on NO -> ask at .40 on YES
	merged := ConsolidateLevels(append(append([]OrderBookLevel{}, yesAsks...), noBidsAsInvertedYesAsks...))
	if len(merged) != 1 || merged[0].Price != 0.40 || merged[0].Size != 120 {
		t.Fatalf("got %+v", merged)
	}
}
