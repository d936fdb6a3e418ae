package polymarket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/models"
	"github.com/svyatogor45/xvenue-arb/internal/venue"
)

// clobBookLevel is one [price, size] rung as the CLOB API serializes it:
// both fields are decimal strings in probability space (unlike Kalshi,
// which quotes cents).
type clobBookLevel struct {
	Price string `json:"price"`
	Size string `json:"size"`
}

type clobBook struct {
	Asks []clobBookLevel `json:"asks"`
	Bids []clobBookLevel `json:"bids"`
}

// OrderBookClient fetches and merges the two CLOB books for a market's
// YES and NO token ids into one normalized OrderBook.
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

// FetchOrderBook implements venue.OrderBookClient. YES asks are populated
// by the YES token's direct asks plus the NO token's inverted bids; NO
// asks are the mirror image. Levels colliding at the same price after
// inversion have their sizes summed.
func (c *OrderBookClient) FetchOrderBook(ctx context.Context, ref venue.MarketRef) (models.OrderBook, error) {
	yesBook, yesOK := c.fetchToken(ctx, ref.PYesTokenID)
	noBook, noOK := c.fetchToken(ctx, ref.PNoTokenID)
	if !yesOK && !noOK {
		return models.OrderBook{}, nil
	}

	yesAsks := models.ConsolidateLevels(append(append([]models.OrderBookLevel{}, yesBook.Asks...), models.InvertLevels(noBook.Bids)...))
	noAsks := models.ConsolidateLevels(append(append([]models.OrderBookLevel{}, noBook.Asks...), models.InvertLevels(yesBook.Bids)...))

	return models.OrderBook{
		YesAsks: yesAsks,
		NoAsks: noAsks,
		YesBids: models.ConsolidateLevels(yesBook.Bids),
		NoBids: models.ConsolidateLevels(noBook.Bids),
		UpdatedAt: time.Now(),
	}, nil
}

type parsedBook struct {
	Asks []models.OrderBookLevel
	Bids []models.OrderBookLevel
}

func (c *OrderBookClient) fetchToken(ctx context.Context, tokenID string) (parsedBook, bool) {
	if tokenID == "" {
		return parsedBook{}, false
	}

	reqURL := fmt.Sprintf("%s/book?token_id=%s", c.baseURL, url.QueryEscape(tokenID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return parsedBook{}, false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("clob book fetch failed", zap.String("tokenId", tokenID), zap.Error(err))
		return parsedBook{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("clob book fetch non-200", zap.String("tokenId", tokenID), zap.Int("status", resp.StatusCode))
		return parsedBook{}, false
	}

	var raw clobBook
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.log.Warn("clob book parse failed", zap.String("tokenId", tokenID), zap.Error(err))
		return parsedBook{}, false
	}

	return parsedBook{Asks: toLevels(raw.Asks), Bids: toLevels(raw.Bids)}, true
}

// NormalizeLevels converts a raw book snapshot's string-encoded levels
// into probability-space OrderBookLevel slices. Exported so the realtime
// engine can normalize a Update.Book snapshot without duplicating the
// string-parsing logic; callable on a value obtained from Update even
// though clobBook itself is unexported, since Go field/method access
// doesn't require naming the type.
func (b *clobBook) NormalizeLevels() (asks, bids []models.OrderBookLevel) {
	return toLevels(b.Asks), toLevels(b.Bids)
}

func toLevels(raw []clobBookLevel) []models.OrderBookLevel {
	out := make([]models.OrderBookLevel, 0, len(raw))
	for _, r := range raw {
		price, err := strconv.ParseFloat(r.Price, 64)
		if err != nil {
			continue
		}
		size, err := strconv.ParseFloat(r.Size, 64)
		if err != nil {
			continue
		}
		out = append(out, models.OrderBookLevel{Price: price, Size: size})
	}
	return out
}
