package kalshi

import (
	"testing"

	"go.uber.org/zap"
)

func TestParseWireMessage_Snapshot(t *testing.T) {
	raw := []byte(`{"type":"orderbook_snapshot","msg":{"market_ticker":"KXFED-25","yes":[[48,100]],"no":[[50,60]]}}`)
	update, ok := parseWireMessage(raw, zap.NewNop())
	if !ok {
		t.Fatal("expected ok=true")
	}
	if !update.IsSnapshot || update.MarketTicker != "KXFED-25" {
		t.Fatalf("got %+v", update)
	}
	if len(update.Yes) != 1 || update.Yes[0].Price != 0.48 {
		t.Fatalf("got yes levels %+v", update.Yes)
	}
}

func TestParseWireMessage_Delta(t *testing.T) {
	raw := []byte(`{"type":"orderbook_delta","msg":{"market_ticker":"KXFED-25","price":52,"delta":10,"side":"yes"}}`)
	update, ok := parseWireMessage(raw, zap.NewNop())
	if !ok {
		t.Fatal("expected ok=true")
	}
	if update.Delta == nil || update.Delta.Price != 0.52 {
		t.Fatalf("got %+v", update.Delta)
	}
}

func TestParseWireMessage_SubscribedIgnored(t *testing.T) {
	_, ok := parseWireMessage([]byte(`{"type":"subscribed","sid":1}`), zap.NewNop())
	if ok {
		t.Fatal("expected ok=false for a subscribed ack")
	}
}

func TestParseWireMessage_MalformedFrameDoesNotPanic(t *testing.T) {
	_, ok := parseWireMessage([]byte(`not json`), zap.NewNop())
	if ok {
		t.Fatal("expected ok=false")
	}
}
