// Command scanner runs a single batch scan pipeline pass and prints the
// resulting opportunities as JSON. Exit code is 0 regardless of
// per-event fetch outcomes; non-zero only on startup failure or when the
// scan itself or the JSON output fails.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/arbitrage"
	"github.com/svyatogor45/xvenue-arb/internal/catalog"
	"github.com/svyatogor45/xvenue-arb/internal/config"
	"github.com/svyatogor45/xvenue-arb/internal/liquidity"
	"github.com/svyatogor45/xvenue-arb/internal/matcher"
	"github.com/svyatogor45/xvenue-arb/internal/projection"
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

	log := utils.InitGlobalLogger(utils.LogConfig{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	defer log.Sync()

	generator, err := catalog.LoadMappingsFile(os.Getenv("CATALOG_CONFIG_PATH"), nil)
	if err != nil {
		log.Error("failed to load catalog config", zap.Error(err))
		os.Exit(1)
	}
	if cfg.Scanner.DynamicDays > 0 {
		generator.Days = cfg.Scanner.DynamicDays
	}

	httpClient := venue.GetGlobalHTTPClient()
	kLimiter := ratelimit.NewRateLimiter(10, 20)

	s := scanner.New(scanner.Config{
		Generator: generator,
		PCatalog: polymarket.NewCatalogClient(cfg.Venues.PGammaURL, httpClient, log.Logger),
		KCatalog: kalshi.NewCatalogClient(cfg.Venues.KRESTURL, httpClient, kLimiter, log.Logger),
		POrderBooks: polymarket.NewOrderBookClient(cfg.Venues.PCLOBURL, httpClient, log.Logger),
		KOrderBooks: kalshi.NewOrderBookClient(cfg.Venues.KRESTURL, httpClient, log.Logger),
		Matcher: matcher.NewMatcher(),
		Calculator: arbitrage.NewCalculator(),
		Liquidity: liquidity.NewAnalyzer(liquidity.DefaultOptions()),
		CacheTTL: cfg.Scanner.CacheTTL,
		KConcurrency: cfg.Scanner.KConcurrency,
		Logger: log.Logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := s.Scan(ctx)
	if err != nil {
		log.Error("scan failed", zap.Error(err))
		os.Exit(1)
	}

	dtos := make([]interface{}, 0, len(result.Opportunities))
	for _, o := range result.Opportunities {
		dtos = append(dtos, projection.Project(o, result.ScannedAt))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", " ")
	if err := enc.Encode(dtos); err != nil {
		log.Error("failed to encode scan result", zap.Error(err))
		os.Exit(1)
	}

	log.Info("scan complete",
		zap.Int("opportunities", len(result.Opportunities)),
		zap.Time("scanned_at", result.ScannedAt),
	)
}
