package polymarket

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/models"
	"github.com/svyatogor45/xvenue-arb/internal/venue"
)

// priceTenthsOfCent converts Polymarket's wire unit (tenths of a cent) to
// a probability in [0,1].
func priceTenthsOfCent(raw string) (float64, bool) {
	v, ok := floatAt([]string{raw}, 0)
	if !ok {
		return 0, false
	}
	return v / 1000, true
}

// Update is one normalized book change: either a full replacement (book)
// or an incremental delta (priceChange), keyed by asset (token) id.
type Update struct {
	AssetID string
	Price float64
	Size float64
	Side string // "BUY" or "SELL"
	IsBook bool
	Book *clobBook
}

type priceChangeMsg struct {
	EventType string `json:"event_type"`
	PriceChanges []struct {
		AssetID string `json:"asset_id"`
		Price string `json:"price"`
		Size string `json:"size"`
		Side string `json:"side"`
	} `json:"price_changes"`
}

type bookMsg struct {
	EventType string `json:"event_type"`
	AssetID string `json:"asset_id"`
	clobBook
}

// StreamClient subscribes to Polymarket's unauthenticated market feed and
// normalizes incoming book/price_change frames into Update values.
type StreamClient struct {
	mgr *venue.WSReconnectManager
	log *zap.Logger
}

func NewStreamClient(wsURL string, logger *zap.Logger) *StreamClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	mgr := venue.NewWSReconnectManager("polymarket", wsURL, venue.DefaultWSReconnectConfig(), logger)
	return &StreamClient{mgr: mgr, log: logger}
}

// Subscribe registers interest in a set of asset (token) ids; the
// subscription is replayed automatically on reconnect.
func (s *StreamClient) Subscribe(assetIDs []string) {
	s.mgr.AddSubscription(map[string]interface{}{
		"assets_ids": assetIDs,
		"type": "market",
	})
}

// OnUpdate registers the callback invoked for every normalized message.
// Malformed frames are logged and dropped rather than torn down.
func (s *StreamClient) OnUpdate(handler func(Update)) {
	s.mgr.SetOnMessage(func(raw []byte) {
		for _, u := range parseMessage(raw, s.log) {
			handler(u)
		}
	})
}

func (s *StreamClient) Connect() error { return s.mgr.Connect() }
func (s *StreamClient) Close() error { return s.mgr.Close() }

// NewBookSnapshot builds a book-type Update for assetID, for driving a
// fake StreamClient's OnUpdate handler in downstream tests without a
// real socket.
func NewBookSnapshot(assetID string, asks, bids []models.OrderBookLevel) Update {
	book := clobBook{Asks: toRawLevels(asks), Bids: toRawLevels(bids)}
	return Update{AssetID: assetID, IsBook: true, Book: &book}
}

func toRawLevels(levels []models.OrderBookLevel) []clobBookLevel {
	out := make([]clobBookLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, clobBookLevel{
			Price: strconv.FormatFloat(l.Price, 'f', -1, 64),
			Size: strconv.FormatFloat(l.Size, 'f', -1, 64),
		})
	}
	return out
}

func parseMessage(raw []byte, log *zap.Logger) []Update {
	var probe struct {
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		log.Warn("polymarket stream: unparseable frame", zap.Error(err))
		return nil
	}

	switch probe.EventType {
	case "price_change":
		var msg priceChangeMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Warn("polymarket stream: malformed price_change", zap.Error(err))
			return nil
		}
		out := make([]Update, 0, len(msg.PriceChanges))
		for _, pc := range msg.PriceChanges {
			price, ok := priceTenthsOfCent(pc.Price)
			if !ok {
				continue
			}
			size, _ := floatAt([]string{pc.Size}, 0)
			out = append(out, Update{AssetID: pc.AssetID, Price: price, Size: size, Side: pc.Side})
		}
		return out
	case "book":
		var msg bookMsg
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Warn("polymarket stream: malformed book message", zap.Error(err))
			return nil
		}
		book := msg.clobBook
		return []Update{{AssetID: msg.AssetID, IsBook: true, Book: &book}}
	default:
		return nil
	}
}
