// Package scanner orchestrates one full scan pipeline run: expand the
// catalog, fetch both venues' events, match markets within each event,
// classify arbitrage, size liquidity, and publish a ScanResult, generalized
// from an always-on event-driven trading engine to a single coalesced,
// cached scan operation.
package scanner

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/svyatogor45/xvenue-arb/internal/arbitrage"
	"github.com/svyatogor45/xvenue-arb/internal/catalog"
	"github.com/svyatogor45/xvenue-arb/internal/liquidity"
	"github.com/svyatogor45/xvenue-arb/internal/matcher"
	"github.com/svyatogor45/xvenue-arb/internal/models"
	"github.com/svyatogor45/xvenue-arb/internal/venue"
)

// DefaultKConcurrency bounds concurrent Kalshi requests in flight.
const DefaultKConcurrency = 4

// MaxLiquidityAnalysis caps how many ranked opportunities get an order-book
// liquidity walk per scan; the rest are published with Liquidity: nil.
const MaxLiquidityAnalysis = 70

// Config wires a Scanner's collaborators. Every client field is an
// interface so tests can substitute fakes without touching the network.
type Config struct {
	Generator *catalog.Generator
	PCatalog venue.CatalogClient
	KCatalog venue.CatalogClient
	POrderBooks venue.OrderBookClient
	KOrderBooks venue.OrderBookClient
	Matcher *matcher.Matcher
	Calculator *arbitrage.Calculator
	Liquidity *liquidity.Analyzer
	CacheTTL time.Duration
	KConcurrency int
	Logger *zap.Logger
	// Now is injected so cache-expiry and single-flight timing are
	// testable; defaults to time.Now.
	Now func() time.Time
}

// Scanner is the single value the process entry point owns, modeling all
// global scan state in one place rather than scattering it across
// package-level variables.
type Scanner struct {
	generator *catalog.Generator
	pCatalog venue.CatalogClient
	kCatalog venue.CatalogClient
	pBooks venue.OrderBookClient
	kBooks venue.OrderBookClient
	matcher *matcher.Matcher
	calculator *arbitrage.Calculator
	liquidity *liquidity.Analyzer
	cache *resultCache
	group singleflight.Group
	kSem chan struct{}
	log *zap.Logger
	now func() time.Time

	stateMu sync.Mutex
	state State
}

// New constructs a Scanner. Panics are never used for misconfiguration;
// nil collaborators simply mean that venue is skipped, which is only
// useful in tests.
func New(cfg Config) *Scanner {
	kConcurrency := cfg.KConcurrency
	if kConcurrency <= 0 {
		kConcurrency = DefaultKConcurrency
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Scanner{
		generator: cfg.Generator,
		pCatalog: cfg.PCatalog,
		kCatalog: cfg.KCatalog,
		pBooks: cfg.POrderBooks,
		kBooks: cfg.KOrderBooks,
		matcher: cfg.Matcher,
		calculator: cfg.Calculator,
		liquidity: cfg.Liquidity,
		cache: newResultCache(cfg.CacheTTL),
		kSem: make(chan struct{}, kConcurrency),
		log: log,
		now: now,
		state: StateIdle,
	}
}

func (s *Scanner) setState(next State) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if !CanTransition(s.state, next) {
		s.log.Warn("scanner: invalid state transition", zap.String("from", string(s.state)), zap.String("to", string(next)))
		return
	}
	s.state = next
}

// State returns the scanner's current lifecycle state.
func (s *Scanner) State() State {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// Scan returns the current scan result, serving from the TTL cache when
// fresh and coalescing concurrent callers onto a single upstream scan
// otherwise.
func (s *Scanner) Scan(ctx context.Context) (models.ScanResult, error) {
	now := s.now()
	if cached, ok := s.cache.get(now); ok {
		cacheHitsTotal.WithLabelValues("ttl").Inc()
		return cached, nil
	}

	v, err, shared := s.group.Do("scan", func() (interface{}, error) {
		return s.runScan(ctx)
	})
	if shared {
		cacheHitsTotal.WithLabelValues("singleflight").Inc()
	}
	if err != nil {
		scansTotal.WithLabelValues("error").Inc()
		return models.ScanResult{}, err
	}
	scansTotal.WithLabelValues("ok").Inc()
	return v.(models.ScanResult), nil
}

type fetchedEvent struct {
	entry models.CatalogEntry
	pEvent *models.EventShell
	kEvent *models.EventShell
}

// runScan performs one uncached pass of the pipeline. The only error a
// venue client ever returns is context cancellation — every other failure
// (transport, parse, not-found, rate-limit exhaustion) is already
// recovered inside the client as a nil event/empty book plus a logged
// warning, so runScan only needs to propagate ctx errors upward.
func (s *Scanner) runScan(ctx context.Context) (models.ScanResult, error) {
	s.setState(StateScanning)
	defer s.setState(StateIdle)

	timer := prometheus.NewTimer(scanDuration)
	defer timer.ObserveDuration()

	entries := s.generator.Generate()
	fetched, err := s.fetchEvents(ctx, entries)
	if err != nil {
		s.setState(StateError)
		return models.ScanResult{}, err
	}

	var events []models.EventShell
	var pairs []models.MarketPair
	for _, f := range fetched {
		if f.pEvent == nil || f.kEvent == nil {
			continue
		}
		events = append(events, *f.pEvent, *f.kEvent)
		me := matcher.MatchedEvent{
			EventName: f.entry.Name,
			Category: f.entry.Category,
			PMarkets: f.pEvent.Markets,
			KMarkets: f.kEvent.Markets,
			PSlug: f.entry.PSlug,
			KSeries: f.entry.KSeries,
			ImageURL: derefStr(f.pEvent.ImageURL),
		}
		pairs = append(pairs, s.matcher.Match(me)...)
	}

	// Keep every matched pair for the all-markets display, but only walk
	// order books for the top-ranked MaxLiquidityAnalysis opportunities.
	opportunities := s.calculator.DetectAllKeepAll(pairs)

	ranked := opportunities
	var unanalyzed []models.ArbitrageOpportunity
	if len(ranked) > MaxLiquidityAnalysis {
		unanalyzed = ranked[MaxLiquidityAnalysis:]
		ranked = ranked[:MaxLiquidityAnalysis]
	}

	withLiquidity, err := s.attachLiquidity(ctx, ranked)
	if err != nil {
		s.setState(StateError)
		return models.ScanResult{}, err
	}
	for _, o := range unanalyzed {
		withLiquidity = append(withLiquidity, models.OpportunityWithLiquidity{Opportunity: o})
	}

	guaranteed, simple := 0, 0
	for _, o := range opportunities {
		if o.Type == models.OpportunityGuaranteed {
			guaranteed++
		} else {
			simple++
		}
	}
	opportunitiesFound.WithLabelValues(string(models.OpportunityGuaranteed)).Set(float64(guaranteed))
	opportunitiesFound.WithLabelValues(string(models.OpportunitySimple)).Set(float64(simple))

	now := s.now()
	result := models.ScanResult{
		Events: events,
		Opportunities: withLiquidity,
		ScannedAt: now,
	}
	s.cache.set(result, now)
	return result, nil
}

// fetchEvents resolves every catalog entry's P and K event concurrently.
// P fan-out is unbounded; K is gated by kSem (DefaultKConcurrency) on top
// of the Kalshi client's own internal rate limiting.
func (s *Scanner) fetchEvents(ctx context.Context, entries []models.CatalogEntry) ([]fetchedEvent, error) {
	out := make([]fetchedEvent, len(entries))
	g, gctx := errgroup.WithContext(ctx)

	for i, e := range entries {
		i, e := i, e
		out[i] = fetchedEvent{entry: e}
		g.Go(func() error {
			var pEvt, kEvt *models.EventShell

			if e.PSlug != "" && s.pCatalog != nil {
				ev, err := s.pCatalog.FetchEvent(gctx, venue.EventID{PSlug: e.PSlug})
				if err != nil {
					return err
				}
				pEvt = ev
			}
			if e.KTicker != "" && s.kCatalog != nil {
				select {
				case s.kSem <- struct{}{}:
				case <-gctx.Done():
					return gctx.Err()
				}
				ev, err := s.kCatalog.FetchEvent(gctx, venue.EventID{KTicker: e.KTicker, KSeries: e.KSeries})
				<-s.kSem
				if err != nil {
					return err
				}
				kEvt = ev
			}

			out[i].pEvent = pEvt
			out[i].kEvent = kEvt
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// attachLiquidity fetches both legs' order books for every opportunity and
// runs the liquidity analyzer, preserving opportunity order.
func (s *Scanner) attachLiquidity(ctx context.Context, opps []models.ArbitrageOpportunity) ([]models.OpportunityWithLiquidity, error) {
	out := make([]models.OpportunityWithLiquidity, len(opps))
	g, gctx := errgroup.WithContext(ctx)

	for i, opp := range opps {
		i, opp := i, opp
		g.Go(func() error {
			var pBook, kBook models.OrderBook

			if s.pBooks != nil {
				b, err := s.pBooks.FetchOrderBook(gctx, venue.MarketRef{
					PYesTokenID: opp.Pair.P.TokenIDs[0],
					PNoTokenID: opp.Pair.P.TokenIDs[1],
				})
				if err != nil {
					return err
				}
				pBook = b
			}
			if s.kBooks != nil {
				select {
				case s.kSem <- struct{}{}:
				case <-gctx.Done():
					return gctx.Err()
				}
				b, err := s.kBooks.FetchOrderBook(gctx, venue.MarketRef{KTicker: opp.Pair.K.Ticker})
				<-s.kSem
				if err != nil {
					return err
				}
				kBook = b
			}

			var liq *models.LiquidityAnalysis
			if s.liquidity != nil {
				a := s.liquidity.Analyze(opp, pBook, kBook)
				liq = &a
			}
			out[i] = models.OpportunityWithLiquidity{Opportunity: opp, Liquidity: liq}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
