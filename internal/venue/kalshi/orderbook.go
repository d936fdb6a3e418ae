package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/models"
	"github.com/svyatogor45/xvenue-arb/internal/venue"
	"github.com/svyatogor45/xvenue-arb/pkg/retry"
)

// rawOrderbook is Kalshi's /markets/{ticker}/orderbook shape: each side is
// a list of [priceCents, quantity] pairs, bids only.
type rawOrderbook struct {
	Yes [][2]int `json:"yes"`
	No [][2]int `json:"no"`
}

type orderbookResponse struct {
	Orderbook rawOrderbook `json:"orderbook"`
}

// OrderBookClient fetches a single Kalshi market's order book and derives
// its ask ladders from the opposite side's bids via the bid-inversion
// identity: a bid at X on side S is an ask at 1-X on ¬S.
type OrderBookClient struct {
	baseURL string
	http *venue.HTTPClient
	log *zap.Logger
}

func NewOrderBookClient(baseURL string, httpClient *venue.HTTPClient, logger *zap.Logger) *OrderBookClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderBookClient{baseURL: baseURL, http: httpClient, log: logger}
}

func (c *OrderBookClient) FetchOrderBook(ctx context.Context, ref venue.MarketRef) (models.OrderBook, error) {
	if ref.KTicker == "" {
		return models.OrderBook{}, nil
	}

	reqURL := fmt.Sprintf("%s/markets/%s/orderbook", c.baseURL, ref.KTicker)

	var raw orderbookResponse
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
			return retry.Permanent(fmt.Errorf("kalshi: orderbook status %d", resp.StatusCode))
		}
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			return retry.Permanent(err)
		}
		return nil
	}, withRateLimitOnly(retryConfig()))
	if err != nil {
		if ctx.Err() != nil {
			return models.OrderBook{}, ctx.Err()
		}
		c.log.Warn("kalshi orderbook fetch failed", zap.String("ticker", ref.KTicker), zap.Error(err))
		return models.OrderBook{}, nil
	}

	yesBids := toLevelsCents(raw.Orderbook.Yes)
	noBids := toLevelsCents(raw.Orderbook.No)

	return models.OrderBook{
		YesAsks: models.ConsolidateLevels(models.InvertLevels(noBids)),
		NoAsks: models.ConsolidateLevels(models.InvertLevels(yesBids)),
		YesBids: models.ConsolidateLevels(yesBids),
		NoBids: models.ConsolidateLevels(noBids),
		UpdatedAt: time.Now(),
	}, nil
}

func toLevelsCents(pairs [][2]int) []models.OrderBookLevel {
	out := make([]models.OrderBookLevel, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, models.OrderBookLevel{Price: float64(p[0]) / 100, Size: float64(p[1])})
	}
	return out
}
