package models

import "time"

// Category dispatches intra-event matching and URL projection.
type Category string

const (
	CategorySports   Category = "sports"
	CategoryWeather  Category = "weather"
	CategoryFinance  Category = "finance"
	CategoryNBAGame  Category = "nba_game"
	CategoryOther    Category = "other"
)

// EntryType distinguishes catalog entries generated from a date pattern
// from ones that name a fixed pairing.
type EntryType string

const (
	EntryStatic  EntryType = "static"
	EntryDynamic EntryType = "dynamic"
)

// CatalogEntry is one row of the scan-local catalog: a candidate
// (P slug, K ticker) pairing to fetch and match.
type CatalogEntry struct {
	Name     string
	Category Category
	Type     EntryType
	PSlug    string
	KTicker  string
	KSeries  string
	Date     *time.Time
}
