package realtime

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/models"
	"github.com/svyatogor45/xvenue-arb/internal/venue/kalshi"
	"github.com/svyatogor45/xvenue-arb/internal/venue/polymarket"
)

// PStreamClient is the subset of polymarket.StreamClient the engine
// needs; an interface so tests can fake the wire without a real socket.
type PStreamClient interface {
	Subscribe(assetIDs []string)
	OnUpdate(handler func(polymarket.Update))
	Connect() error
	Close() error
}

// KStreamClient is the subset of kalshi.StreamClient the engine needs.
type KStreamClient interface {
	Subscribe(marketTicker string)
	OnUpdate(handler func(kalshi.Update))
	Connect() error
	Close() error
}

// Config wires one Engine's collaborators.
type Config struct {
	PStream PStreamClient
	KStream KStreamClient
	Debounce time.Duration
	Logger *zap.Logger
}

// Engine is the realtime arbitrage engine: it exclusively owns the
// per-pair order-book map and the debounce timers.
type Engine struct {
	registry *Registry
	books *bookStore
	bus *EventBus
	debounce *debouncer
	pStream PStreamClient
	kStream KStreamClient
	log *zap.Logger

	activeMu sync.Mutex
	active map[string]float64 // pairID -> last-emitted spreadPercent
}

func New(cfg Config) *Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		registry: NewRegistry(),
		books: newBookStore(),
		bus: NewEventBus(),
		pStream: cfg.PStream,
		kStream: cfg.KStream,
		log: log,
		active: make(map[string]float64),
	}
	e.debounce = newDebouncer(cfg.Debounce, e.onQuiescence)
	return e
}

// RegisterPair adds a pair to track. Must be called before Start.
func (e *Engine) RegisterPair(sub Subscription) {
	e.registry.Register(sub)
}

// Events returns a channel of published opportunity/closed events.
func (e *Engine) Events() chan Event {
	return e.bus.Subscribe()
}

// Start subscribes both stream clients to every registered pair and
// connects them. Handlers must be wired before Connect so no update is
// missed between connect and subscribe.
func (e *Engine) Start() error {
	var pTokens []string
	for _, sub := range e.registry.Pairs() {
		if sub.PYesTokenID != "" {
			pTokens = append(pTokens, sub.PYesTokenID)
		}
		if sub.PNoTokenID != "" {
			pTokens = append(pTokens, sub.PNoTokenID)
		}
	}

	if e.pStream != nil {
		e.pStream.OnUpdate(e.handlePUpdate)
		e.pStream.Subscribe(pTokens)
		if err := e.pStream.Connect(); err != nil {
			return err
		}
	}
	if e.kStream != nil {
		e.kStream.OnUpdate(e.handleKUpdate)
		for _, sub := range e.registry.Pairs() {
			if sub.KTicker != "" {
				e.kStream.Subscribe(sub.KTicker)
			}
		}
		if err := e.kStream.Connect(); err != nil {
			return err
		}
	}
	return nil
}

// Stop clears all debounce timers, closes both connections, and empties
// per-pair state; no further events are emitted after it returns.
func (e *Engine) Stop() {
	e.debounce.stop()
	if e.pStream != nil {
		_ = e.pStream.Close()
	}
	if e.kStream != nil {
		_ = e.kStream.Close()
	}
	e.activeMu.Lock()
	e.active = make(map[string]float64)
	e.activeMu.Unlock()
	for _, shard := range e.books.shards {
		shard.mu.Lock()
		shard.books = make(map[string]*pairBooks)
		shard.mu.Unlock()
	}
}

func (e *Engine) handlePUpdate(u polymarket.Update) {
	pairID, ok := e.registry.PairIDForPToken(u.AssetID)
	if !ok {
		return
	}
	sub, _ := e.registry.Get(pairID)
	isYesLeg := u.AssetID == sub.PYesTokenID

	books := e.books.get(pairID)
	books.mu.Lock()
	if u.IsBook && u.Book != nil {
		asks, bids := u.Book.NormalizeLevels()
		if isYesLeg {
			books.pYesAsks, books.pYesBids = levelsToMap(asks), levelsToMap(bids)
		} else {
			books.pNoAsks, books.pNoBids = levelsToMap(asks), levelsToMap(bids)
		}
		books.pSeeded = true
	} else if books.pSeeded {
		// price_change: Size is the new resting size at Price; a delta
		// before any P snapshot for this pair (either token) is ignored.
		asksMap, bidsMap := books.pNoAsks, books.pNoBids
		if isYesLeg {
			asksMap, bidsMap = books.pYesAsks, books.pYesBids
		}
		if u.Side == "SELL" {
			setLevel(asksMap, u.Price, u.Size)
		} else {
			setLevel(bidsMap, u.Price, u.Size)
		}
	}
	books.mu.Unlock()

	e.debounce.trigger(pairID)
}

func (e *Engine) handleKUpdate(u kalshi.Update) {
	pairID, ok := e.registry.PairIDForKTicker(u.MarketTicker)
	if !ok {
		return
	}

	books := e.books.get(pairID)
	books.mu.Lock()
	switch {
	case u.IsSnapshot:
		books.kYesBids = levelUpdatesToMap(u.Yes)
		books.kNoBids = levelUpdatesToMap(u.No)
		books.kSeeded = true
	case u.Delta != nil:
		if !books.kSeeded {
			// a delta before any snapshot for this market is ignored.
			break
		}
		if u.Delta.Side == "yes" {
			applyDelta(books.kYesBids, u.Delta.Price, u.Delta.Delta)
		} else {
			applyDelta(books.kNoBids, u.Delta.Price, u.Delta.Delta)
		}
	}
	books.mu.Unlock()

	e.debounce.trigger(pairID)
}

// onQuiescence runs once per pair after its debounce window elapses with
// no further update.
func (e *Engine) onQuiescence(pairID string) {
	books := e.books.get(pairID)
	pYesAsks, pNoAsks, kYesAsks, kNoAsks := books.snapshot()
	opp, found := evaluate(pYesAsks, pNoAsks, kYesAsks, kNoAsks)

	e.activeMu.Lock()
	oldPct, wasActive := e.active[pairID]
	defer e.activeMu.Unlock()

	if !found {
		if wasActive {
			delete(e.active, pairID)
			e.bus.Publish(Event{Kind: EventClosed, PairID: pairID})
		}
		return
	}

	if wasActive && !significantChange(oldPct, opp.SpreadPercent) {
		return
	}

	opp.PairID = pairID
	e.active[pairID] = opp.SpreadPercent
	e.bus.Publish(Event{Kind: EventOpportunity, PairID: pairID, Opportunity: &opp})
}

func levelsToMap(levels []models.OrderBookLevel) map[float64]float64 {
	m := make(map[float64]float64, len(levels))
	for _, l := range levels {
		m[l.Price] = l.Size
	}
	return m
}

func levelUpdatesToMap(levels []kalshi.LevelUpdate) map[float64]float64 {
	m := make(map[float64]float64, len(levels))
	for _, l := range levels {
		m[l.Price] = l.Size
	}
	return m
}
