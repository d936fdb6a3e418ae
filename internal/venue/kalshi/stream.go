package kalshi

import (
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/venue"
)

// Update is one normalized book change for a single Kalshi market,
// already converted from cents to probability space.
type Update struct {
	MarketTicker string
	IsSnapshot bool
	Yes []LevelUpdate
	No []LevelUpdate
	Delta *DeltaUpdate
}

type LevelUpdate struct {
	Price float64
	Size float64
}

type DeltaUpdate struct {
	Price float64
	Delta float64
	Side string // "yes" or "no"
}

type subscribeCmd struct {
	ID int `json:"id"`
	Cmd string `json:"cmd"`
	Params subscribeParam `json:"params"`
}

type subscribeParam struct {
	Channels []string `json:"channels"`
	MarketTicker string `json:"market_ticker,omitempty"`
}

type wireMessage struct {
	Type string `json:"type"`
	Msg json.RawMessage `json:"msg"`
}

type snapshotMsg struct {
	MarketTicker string `json:"market_ticker"`
	Yes [][2]int `json:"yes"`
	No [][2]int `json:"no"`
}

type deltaMsg struct {
	MarketTicker string `json:"market_ticker"`
	Price int `json:"price"`
	Delta int `json:"delta"`
	Side string `json:"side"`
}

// StreamClient subscribes to Kalshi's orderbook_delta channel, signing
// every handshake request with the configured Signer.
type StreamClient struct {
	mgr *venue.WSReconnectManager
	signer *Signer
	wsPath string
	subCount int
	log *zap.Logger
}

func NewStreamClient(wsURL string, signer *Signer, logger *zap.Logger) *StreamClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	mgr := venue.NewWSReconnectManager("kalshi", wsURL, venue.DefaultWSReconnectConfig(), logger)
	parsed, _ := url.Parse(wsURL)
	path := "/trade-api/ws/v2"
	if parsed != nil && parsed.Path != "" {
		path = parsed.Path
	}

	client := &StreamClient{mgr: mgr, signer: signer, wsPath: path, log: logger}
	mgr.SetHeaderFunc(func() (http.Header, error) {
		hdrs, err := signer.Headers("GET", path)
		if err != nil {
			return nil, err
		}
		h := http.Header{}
		for k, v := range hdrs {
			h.Set(k, v)
		}
		return h, nil
	})
	return client
}

// Subscribe registers a market ticker on the orderbook_delta channel.
func (s *StreamClient) Subscribe(marketTicker string) {
	s.subCount++
	s.mgr.AddSubscription(subscribeCmd{
		ID: s.subCount,
		Cmd: "subscribe",
		Params: subscribeParam{
			Channels: []string{"orderbook_delta"},
			MarketTicker: marketTicker,
		},
	})
}

func (s *StreamClient) OnUpdate(handler func(Update)) {
	s.mgr.SetOnMessage(func(raw []byte) {
		update, ok := parseWireMessage(raw, s.log)
		if ok {
			handler(update)
		}
	})
}

func (s *StreamClient) Connect() error { return s.mgr.Connect() }
func (s *StreamClient) Close() error { return s.mgr.Close() }

func parseWireMessage(raw []byte, log *zap.Logger) (Update, bool) {
	var wire wireMessage
	if err := json.Unmarshal(raw, &wire); err != nil {
		log.Warn("kalshi stream: unparseable frame", zap.Error(err))
		return Update{}, false
	}

	switch wire.Type {
	case "orderbook_snapshot":
		var snap snapshotMsg
		if err := json.Unmarshal(wire.Msg, &snap); err != nil {
			log.Warn("kalshi stream: malformed snapshot", zap.Error(err))
			return Update{}, false
		}
		return Update{
			MarketTicker: snap.MarketTicker,
			IsSnapshot: true,
			Yes: toLevelUpdates(snap.Yes),
			No: toLevelUpdates(snap.No),
		}, true
	case "orderbook_delta":
		var d deltaMsg
		if err := json.Unmarshal(wire.Msg, &d); err != nil {
			log.Warn("kalshi stream: malformed delta", zap.Error(err))
			return Update{}, false
		}
		return Update{
			MarketTicker: d.MarketTicker,
			Delta: &DeltaUpdate{
				Price: float64(d.Price) / 100,
				Delta: float64(d.Delta),
				Side: d.Side,
			},
		}, true
	case "subscribed", "error":
		return Update{}, false
	default:
		return Update{}, false
	}
}

func toLevelUpdates(pairs [][2]int) []LevelUpdate {
	out := make([]LevelUpdate, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, LevelUpdate{Price: float64(p[0]) / 100, Size: float64(p[1])})
	}
	return out
}
