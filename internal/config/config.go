// Package config loads process configuration from the environment using
// the familiar getEnv/getEnvAsInt/getEnvAsDuration helper pattern, covering
// this project's venue endpoints, scan cadence, and fee constants.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full process configuration.
type Config struct {
	Venues VenuesConfig
	Scanner ScannerConfig
	Kalshi KalshiAuthConfig
	Ops OpsConfig
	Logging LoggingConfig
}

// VenuesConfig holds the base URLs for the two venue REST/WS surfaces.
type VenuesConfig struct {
	PGammaURL string // Polymarket catalog (Gamma) REST base
	PCLOBURL string // Polymarket order-book (CLOB) REST base
	PWSURL string // Polymarket market-data WebSocket base
	KRESTURL string // Kalshi REST base
	KWSURL string // Kalshi trade-api WebSocket base
}

// ScannerConfig tunes the batch scan pipeline.
type ScannerConfig struct {
	CacheTTL time.Duration
	KConcurrency int
	DynamicDays int
	RealtimeDebounce time.Duration

	MinSpreadPct float64
	MinProfitPct float64
	PFeePct float64
	KFeePct float64
}

// KalshiAuthConfig is the RSA-PSS signing material for Kalshi's
// authenticated WebSocket.
type KalshiAuthConfig struct {
	APIKeyID string
	PrivateKeyPath string
}

// OpsConfig configures the ambient health/metrics listener; it carries
// no domain routes.
type OpsConfig struct {
	Host string
	Port int
}

// LoggingConfig configures pkg/utils.InitLogger.
type LoggingConfig struct {
	Level string
	Format string
}

// Load reads Config from the environment, applying the same defaults a
// local single-operator deployment would want.
func Load() (*Config, error) {
	cfg := &Config{
		Venues: VenuesConfig{
			PGammaURL: getEnv("P_GAMMA_URL", "https://gamma-api.polymarket.com"),
			PCLOBURL: getEnv("P_CLOB_URL", "https://clob.polymarket.com"),
			PWSURL: getEnv("P_WS_URL", "wss://ws-subscriptions-clob.polymarket.com/ws/market"),
			KRESTURL: getEnv("K_REST_URL", "https://api.elections.kalshi.com/trade-api/v2"),
			KWSURL: getEnv("K_WS_URL", "wss://api.elections.kalshi.com/trade-api/ws/v2"),
		},
		Scanner: ScannerConfig{
			CacheTTL: getEnvAsDuration("SCAN_CACHE_TTL", 60*time.Second),
			KConcurrency: getEnvAsInt("K_CONCURRENCY", 4),
			DynamicDays: getEnvAsInt("CATALOG_DYNAMIC_DAYS", 3),
			RealtimeDebounce: getEnvAsDuration("REALTIME_DEBOUNCE", 100*time.Millisecond),
			MinSpreadPct: getEnvAsFloat("MIN_SPREAD_PCT", 2.0),
			MinProfitPct: getEnvAsFloat("MIN_PROFIT_PCT", 1.0),
			PFeePct: getEnvAsFloat("P_FEE_PCT", 2.0),
			KFeePct: getEnvAsFloat("K_FEE_PCT", 1.0),
		},
		Kalshi: KalshiAuthConfig{
			APIKeyID: getEnv("KALSHI_API_ID", ""),
			PrivateKeyPath: getEnv("KALSHI_PRIVATE_KEY_PATH", "kalshi-api-rsa"),
		},
		Ops: OpsConfig{
			Host: getEnv("OPS_HOST", "0.0.0.0"),
			Port: getEnvAsInt("OPS_PORT", 9090),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Scanner.KConcurrency <= 0 {
		return nil, fmt.Errorf("K_CONCURRENCY must be positive, got %d", cfg.Scanner.KConcurrency)
	}
	if cfg.Scanner.DynamicDays <= 0 {
		return nil, fmt.Errorf("CATALOG_DYNAMIC_DAYS must be positive, got %d", cfg.Scanner.DynamicDays)
	}

	return cfg, nil
}

// RequireKalshiAuth validates the fields the realtime engine needs to
// sign Kalshi's WebSocket handshake; the batch scanner never calls this,
// since unauthenticated REST catalog/order-book reads don't need it.
func (c *Config) RequireKalshiAuth() error {
	if c.Kalshi.APIKeyID == "" {
		return fmt.Errorf("KALSHI_API_ID is required for Kalshi streaming authentication")
	}
	if _, err := os.Stat(c.Kalshi.PrivateKeyPath); err != nil {
		return fmt.Errorf("kalshi private key %q not readable: %w", c.Kalshi.PrivateKeyPath, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
