package venue

import (
	"context"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

// CatalogClient resolves a venue-specific market identifier to an event
// shell. Implementations never return an error for not-found, transport,
// or parse failures — those are logged and reported as a nil event;
// ctx cancellation is the only error path.
type CatalogClient interface {
	// FetchEvent returns the event named by the identifier, or nil if it
	// doesn't exist or couldn't be fetched/parsed.
	FetchEvent(ctx context.Context, id EventID) (*models.EventShell, error)
}

// EventID is a venue-tagged lookup key: a P slug, or a K (ticker, series)
// pair. Exactly one venue's fields are populated.
type EventID struct {
	PSlug string
	KTicker string
	KSeries string
}

// OrderBookClient fetches a single market's normalized order book.
type OrderBookClient interface {
	// FetchOrderBook returns the book for the market identified by ref,
	// or an empty book if the fetch failed (logged, never returned as an
	// error for transport/parse/not-found).
	FetchOrderBook(ctx context.Context, ref MarketRef) (models.OrderBook, error)
}

// MarketRef identifies a single market's order book: P's token-id pair,
// or K's ticker.
type MarketRef struct {
	PYesTokenID string
	PNoTokenID string
	KTicker string
}
