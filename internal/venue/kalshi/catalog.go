package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/models"
	"github.com/svyatogor45/xvenue-arb/internal/venue"
	"github.com/svyatogor45/xvenue-arb/pkg/retry"
)

// kMarket is the raw shape of one Kalshi market, nested under its event
// or returned by the standalone /markets endpoint.
type kMarket struct {
	Ticker string `json:"ticker"`
	Title string `json:"title"`
	Status string `json:"status"`
	YesBid int `json:"yes_bid"`
	YesAsk int `json:"yes_ask"`
	NoBid int `json:"no_bid"`
	NoAsk int `json:"no_ask"`
	LastPrice int `json:"last_price"`
	Volume int `json:"volume"`
	CloseTime string `json:"close_time"`
}

type kEvent struct {
	EventTicker string `json:"event_ticker"`
	SeriesTicker string `json:"series_ticker"`
	Title string `json:"title"`
	Markets []kMarket `json:"markets"`
}

type eventsResponse struct {
	Events []kEvent `json:"events"`
	Cursor string `json:"cursor"`
}

type marketsResponse struct {
	Markets []kMarket `json:"markets"`
	Cursor string `json:"cursor"`
}

// retryConfig matches "100/200/400ms" exactly: no jitter, fixed delays
// only. retry.Do stops computing delays one attempt before MaxRetries is
// reached, so MaxRetries must be one more than the number of backoff
// steps we want to actually fire.
func retryConfig() retry.Config {
	return retry.Config{
		MaxRetries: 4,
		InitialDelay: 100 * time.Millisecond,
		Multiplier: 2.0,
		MaxDelay: 400 * time.Millisecond,
		JitterFactor: 0,
	}
}

// pageDelay is the pause between consecutive events-page requests.
const pageDelay = 50 * time.Millisecond

// rateLimitedErr marks a 429 so retry.Config's default RetryIf (retry
// everything) is narrowed to just this case at the call site.
type rateLimitedErr struct{}

func (rateLimitedErr) Error() string { return "kalshi: rate limited" }

// CatalogClient fetches Kalshi events by (ticker, series), retrying 429s
// only.
type CatalogClient struct {
	baseURL string
	http *venue.HTTPClient
	limiter RateLimiter
	log *zap.Logger
}

// RateLimiter is the subset of pkg/ratelimit.RateLimiter the catalog
// client needs, so tests can substitute a no-op.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

func NewCatalogClient(baseURL string, httpClient *venue.HTTPClient, limiter RateLimiter, logger *zap.Logger) *CatalogClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, limiter: limiter, log: logger}
}

// FetchEvent paginates a series' events via cursor, waiting pageDelay
// between pages, until it finds the one whose ticker matches id.KTicker
// case-insensitively, or exhausts the series. Markets with non-active
// status are dropped.
func (c *CatalogClient) FetchEvent(ctx context.Context, id venue.EventID) (*models.EventShell, error) {
	cursor := ""
	for {
		page, nextCursor, err := c.fetchEventsPage(ctx, id.KSeries, cursor)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.log.Warn("kalshi events fetch failed", zap.String("series", id.KSeries), zap.Error(err))
			return nil, nil
		}

		for _, ev := range page {
			if strings.EqualFold(ev.EventTicker, id.KTicker) {
				return toEventShell(ev), nil
			}
		}

		if nextCursor == "" || nextCursor == cursor {
			return nil, nil
		}
		cursor = nextCursor

		select {
		case <-time.After(pageDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (c *CatalogClient) fetchEventsPage(ctx context.Context, series, cursor string) ([]kEvent, string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, "", err
		}
	}

	q := url.Values{}
	q.Set("limit", "100")
	q.Set("with_nested_markets", "true")
	q.Set("status", "open")
	q.Set("series_ticker", series)
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	reqURL := fmt.Sprintf("%s/events?%s", c.baseURL, q.Encode())

	var result eventsResponse
	err := retry.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return retry.Permanent(err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.Permanent(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return rateLimitedErr{}
		}
		if resp.StatusCode != http.StatusOK {
			return retry.Permanent(fmt.Errorf("kalshi: events status %d", resp.StatusCode))
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return retry.Permanent(err)
		}
		return nil
	}, withRateLimitOnly(retryConfig()))
	if err != nil {
		return nil, "", err
	}

	return result.Events, result.Cursor, nil
}

func withRateLimitOnly(cfg retry.Config) retry.Config {
	cfg.RetryIf = func(err error) bool {
		_, ok := err.(rateLimitedErr)
		return ok
	}
	return cfg
}

func toEventShell(ev kEvent) *models.EventShell {
	shell := &models.EventShell{Title: ev.Title}
	for _, m := range ev.Markets {
		if !strings.EqualFold(m.Status, "active") {
			continue
		}
		shell.Markets = append(shell.Markets, toMarketShell(m))
	}
	return shell
}

func toMarketShell(m kMarket) models.MarketShell {
	market := models.MarketShell{
		Question: m.Title,
		YesPrice: float64(m.LastPrice) / 100,
		KTicker: m.Ticker,
	}
	if m.Volume > 0 {
		v := float64(m.Volume)
		market.Volume = &v
	}
	if t, err := time.Parse(time.RFC3339, m.CloseTime); err == nil {
		market.EndDate = &t
	}
	return market
}
