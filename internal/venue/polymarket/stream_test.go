package polymarket

import (
	"testing"

	"go.uber.org/zap"
)

func TestParseMessage_PriceChange(t *testing.T) {
	raw := []byte(`{"event_type":"price_change","price_changes":[{"asset_id":"tok-1","price":"550","size":"100","side":"BUY"}]}`)
	updates := parseMessage(raw, zap.NewNop())
	if len(updates) != 1 {
		t.Fatalf("got %d updates, want 1", len(updates))
	}
	if updates[0].Price != 0.55 {
		t.Fatalf("got price %v, want 0.55", updates[0].Price)
	}
}

func TestParseMessage_MalformedFrameDoesNotPanic(t *testing.T) {
	updates := parseMessage([]byte(`not json`), zap.NewNop())
	if updates != nil {
		t.Fatalf("got %+v, want nil", updates)
	}
}

func TestParseMessage_UnknownEventTypeIgnored(t *testing.T) {
	updates := parseMessage([]byte(`{"event_type":"ping"}`), zap.NewNop())
	if updates != nil {
		t.Fatalf("got %+v, want nil", updates)
	}
}
