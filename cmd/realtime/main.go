// Command realtime runs the streaming arbitrage engine: it bootstraps
// the set of pairs to track from one batch scan, then subscribes both
// venues' WebSocket feeds and prints every debounced opportunity/closed
// event as it is published. A minimal ops listener (/healthz, /metrics)
// runs alongside it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/api"
	"github.com/svyatogor45/xvenue-arb/internal/arbitrage"
	"github.com/svyatogor45/xvenue-arb/internal/catalog"
	"github.com/svyatogor45/xvenue-arb/internal/config"
	"github.com/svyatogor45/xvenue-arb/internal/liquidity"
	"github.com/svyatogor45/xvenue-arb/internal/matcher"
	"github.com/svyatogor45/xvenue-arb/internal/realtime"
	"github.com/svyatogor45/xvenue-arb/internal/scanner"
	"github.com/svyatogor45/xvenue-arb/internal/venue"
	"github.com/svyatogor45/xvenue-arb/internal/venue/kalshi"
	"github.com/svyatogor45/xvenue-arb/internal/venue/polymarket"
	"github.com/svyatogor45/xvenue-arb/pkg/ratelimit"
	"github.com/svyatogor45/xvenue-arb/pkg/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.RequireKalshiAuth(); err != nil {
		fmt.Fprintf(os.Stderr, "kalshi auth unavailable: %v\n", err)
		os.Exit(1)
	}

	log := utils.InitGlobalLogger(utils.LogConfig{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	defer log.Sync()

	signer, err := kalshi.NewSigner(cfg.Kalshi.APIKeyID, cfg.Kalshi.PrivateKeyPath)
	if err != nil {
		log.Error("failed to build kalshi signer", zap.Error(err))
		os.Exit(1)
	}

	generator, err := catalog.LoadMappingsFile(os.Getenv("CATALOG_CONFIG_PATH"), nil)
	if err != nil {
		log.Error("failed to load catalog config", zap.Error(err))
		os.Exit(1)
	}

	httpClient := venue.GetGlobalHTTPClient()
	kLimiter := ratelimit.NewRateLimiter(10, 20)

	batch := scanner.New(scanner.Config{
		Generator:    generator,
		PCatalog:     polymarket.NewCatalogClient(cfg.Venues.PGammaURL, httpClient, log.Logger),
		KCatalog:     kalshi.NewCatalogClient(cfg.Venues.KRESTURL, httpClient, kLimiter, log.Logger),
		POrderBooks:  polymarket.NewOrderBookClient(cfg.Venues.PCLOBURL, httpClient, log.Logger),
		KOrderBooks:  kalshi.NewOrderBookClient(cfg.Venues.KRESTURL, httpClient, log.Logger),
		Matcher:      matcher.NewMatcher(),
		Calculator:   arbitrage.NewCalculator(),
		Liquidity:    liquidity.NewAnalyzer(liquidity.DefaultOptions()),
		CacheTTL:     cfg.Scanner.CacheTTL,
		KConcurrency: cfg.Scanner.KConcurrency,
		Logger:       log.Logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	result, err := batch.Scan(ctx)
	cancel()
	if err != nil {
		log.Error("bootstrap scan failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("bootstrap scan complete", zap.Int("pairs", len(result.Opportunities)))

	engine := realtime.New(realtime.Config{
		PStream:  polymarket.NewStreamClient(cfg.Venues.PWSURL, log.Logger),
		KStream:  kalshi.NewStreamClient(cfg.Venues.KWSURL, signer, log.Logger),
		Debounce: cfg.Scanner.RealtimeDebounce,
		Logger:   log.Logger,
	})
	for _, o := range result.Opportunities {
		pair := o.Opportunity.Pair
		engine.RegisterPair(realtime.Subscription{
			PairID:      pair.MatchedEntity,
			PYesTokenID: pair.P.TokenIDs[0],
			PNoTokenID:  pair.P.TokenIDs[1],
			KTicker:     pair.K.Ticker,
		})
	}

	events := engine.Events()
	if err := engine.Start(); err != nil {
		log.Error("failed to start realtime engine", zap.Error(err))
		os.Exit(1)
	}
	defer engine.Stop()

	opsRouter := api.SetupRoutes(&api.Dependencies{Logger: log.Logger})
	opsServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Ops.Host, cfg.Ops.Port),
		Handler: opsRouter,
	}
	go func() {
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("ops listener failed", zap.Error(err))
		}
	}()

	enc := json.NewEncoder(os.Stdout)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-events:
			if err := enc.Encode(ev); err != nil {
				log.Warn("failed to encode event", zap.Error(err))
			}
		case <-quit:
			log.Info("shutting down realtime engine")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := opsServer.Shutdown(shutdownCtx); err != nil {
				log.Warn("ops listener shutdown error", zap.Error(err))
			}
			shutdownCancel()
			return
		}
	}
}
