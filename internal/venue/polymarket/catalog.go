// Package polymarket implements venue.CatalogClient, venue.OrderBookClient,
// and a realtime stream client against Polymarket's Gamma and CLOB APIs.
package polymarket

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/svyatogor45/xvenue-arb/internal/models"
	"github.com/svyatogor45/xvenue-arb/internal/venue"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// gammaMarket is the raw Gamma API market shape. outcomes, outcomePrices,
// and clobTokenIds arrive as JSON-encoded strings, not native
// arrays, and must be re-parsed.
type gammaMarket struct {
	Question string `json:"question"`
	Outcomes string `json:"outcomes"`
	OutcomePrices string `json:"outcomePrices"`
	ClobTokenIds string `json:"clobTokenIds"`
	Volume string `json:"volume"`
	EndDate string `json:"endDate"`
}

type gammaEvent struct {
	Slug string `json:"slug"`
	Title string `json:"title"`
	Image string `json:"image"`
	Markets []gammaMarket `json:"markets"`
}

// CatalogClient fetches events from Polymarket's Gamma API by slug.
type CatalogClient struct {
	baseURL string
	http *venue.HTTPClient
	log *zap.Logger
}

func NewCatalogClient(baseURL string, httpClient *venue.HTTPClient, logger *zap.Logger) *CatalogClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogClient{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient, log: logger}
}

// FetchEvent implements venue.CatalogClient. Not-found, transport, and
// parse failures are logged and reported as a nil event; only context
// cancellation surfaces as an error.
func (c *CatalogClient) FetchEvent(ctx context.Context, id venue.EventID) (*models.EventShell, error) {
	reqURL := fmt.Sprintf("%s/events?slug=%s", c.baseURL, url.QueryEscape(id.PSlug))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.log.Warn("gamma event fetch failed", zap.String("slug", id.PSlug), zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("gamma event fetch non-200", zap.String("slug", id.PSlug), zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var events []gammaEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		c.log.Warn("gamma event parse failed", zap.String("slug", id.PSlug), zap.Error(err))
		return nil, nil
	}
	if len(events) == 0 {
		return nil, nil
	}

	return toEventShell(events[0]), nil
}

func toEventShell(ev gammaEvent) *models.EventShell {
	shell := &models.EventShell{Title: ev.Title}
	if ev.Image != "" {
		img := ev.Image
		shell.ImageURL = &img
	}

	for _, gm := range ev.Markets {
		market, ok := parseGammaMarket(gm)
		if !ok {
			continue
		}
		shell.Markets = append(shell.Markets, market)
	}
	return shell
}

// parseGammaMarket defensively parses the doubly-JSON-encoded fields.
// A single malformed field falls back to its zero value rather than
// discarding the whole market, as long as question and prices survive.
func parseGammaMarket(gm gammaMarket) (models.MarketShell, bool) {
	if gm.Question == "" {
		return models.MarketShell{}, false
	}

	outcomes := decodeStringArray(gm.Outcomes)
	prices := decodeStringArray(gm.OutcomePrices)
	tokenIDs := decodeStringArray(gm.ClobTokenIds)

	yesIdx := indexOfOutcome(outcomes, "yes")
	if yesIdx == -1 {
		yesIdx = 0
	}
	noIdx := indexOfOutcome(outcomes, "no")
	if noIdx == -1 {
		noIdx = 1
	}

	yesPrice, ok := floatAt(prices, yesIdx)
	if !ok {
		return models.MarketShell{}, false
	}

	market := models.MarketShell{Question: gm.Question, YesPrice: yesPrice}
	if noPrice, ok := floatAt(prices, noIdx); ok {
		market.NoPrice = &noPrice
	}
	if v, err := strconv.ParseFloat(gm.Volume, 64); err == nil {
		market.Volume = &v
	}
	if t, err := time.Parse(time.RFC3339, gm.EndDate); err == nil {
		market.EndDate = &t
	}
	if yesTok, ok := stringAt(tokenIDs, yesIdx); ok {
		market.PTokenIDs[0] = yesTok
	}
	if noTok, ok := stringAt(tokenIDs, noIdx); ok {
		market.PTokenIDs[1] = noTok
	}

	return market, true
}

func decodeStringArray(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.UnmarshalFromString(raw, &out); err != nil {
		return nil
	}
	return out
}

func indexOfOutcome(outcomes []string, want string) int {
	for i, o := range outcomes {
		if strings.EqualFold(strings.TrimSpace(o), want) {
			return i
		}
	}
	return -1
}

func floatAt(values []string, idx int) (float64, bool) {
	if idx < 0 || idx >= len(values) {
		return 0, false
	}
	v, err := strconv.ParseFloat(values[idx], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func stringAt(values []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(values) {
		return "", false
	}
	return values[idx], true
}
