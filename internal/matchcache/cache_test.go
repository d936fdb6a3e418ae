package matchcache

import "testing"

func TestMemoryCache_UnknownUntilRecorded(t *testing.T) {
	c := NewMemoryCache()
	if got := c.Lookup("p1", "k1"); got != VerdictUnknown {
		t.Fatalf("Lookup = %v, want unknown", got)
	}
}

func TestMemoryCache_ConfirmAndReject(t *testing.T) {
	c := NewMemoryCache()
	c.Confirm("p1", "k1")
	c.Reject("p2", "k2")

	if got := c.Lookup("p1", "k1"); got != VerdictConfirmed {
		t.Fatalf("Lookup(p1,k1) = %v, want confirmed", got)
	}
	if got := c.Lookup("p2", "k2"); got != VerdictRejected {
		t.Fatalf("Lookup(p2,k2) = %v, want rejected", got)
	}
	if got := c.Lookup("p3", "k3"); got != VerdictUnknown {
		t.Fatalf("Lookup(p3,k3) = %v, want unknown", got)
	}
}
