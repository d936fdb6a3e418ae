package polymarket

import "testing"

func TestToLevels_SkipsUnparseableEntries(t *testing.T) {
	raw := []clobBookLevel{{Price: "0.50", Size: "10"}, {Price: "bad", Size: "5"}, {Price: "0.51", Size: "3"}}
	levels := toLevels(raw)
	if len(levels) != 2 {
		t.Fatalf("got %d levels, want 2", len(levels))
	}
}

func TestPriceTenthsOfCent(t *testing.T) {
	v, ok := priceTenthsOfCent("550")
	if !ok || v != 0.55 {
		t.Fatalf("got (%v, %v), want (0.55, true)", v, ok)
	}
}
