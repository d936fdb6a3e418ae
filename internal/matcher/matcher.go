// Package matcher pairs binary markets within an already-matched event,
// dispatching by category to domain-specific rules.
package matcher

import "github.com/svyatogor45/xvenue-arb/internal/models"

// MatchedEvent is a pair of event shells already known to correspond to
// the same real-world event (matching event titles is a separate,
// out-of-scope subsystem).
type MatchedEvent struct {
	EventName string
	Category models.Category
	PMarkets []models.MarketShell
	KMarkets []models.MarketShell
	PSlug string
	KSeries string
	ImageURL string
}

// categoryMatcher is implemented once per category.
type categoryMatcher func(event MatchedEvent) []models.MarketPair

// Matcher dispatches a MatchedEvent to its category's matching rule. The
// sports alias table is configurable; the weather/finance/NBA parsers are
// fixed-format and need no configuration.
type Matcher struct {
	SportsAliases TeamAliasTable
	NBATeams NBATeamTable

	byCategory map[models.Category]categoryMatcher
}

func NewMatcher() *Matcher {
	m := &Matcher{
		SportsAliases: DefaultTeamAliases(),
		NBATeams: DefaultNBATeams(),
	}
	m.byCategory = map[models.Category]categoryMatcher{
		models.CategorySports: m.matchSports,
		models.CategoryWeather: matchWeather,
		models.CategoryFinance: matchFinance,
		models.CategoryNBAGame: m.matchNBAGame,
	}
	return m
}

// Match runs the configured category matcher and enriches every resulting
// pair with event-level metadata.
func (m *Matcher) Match(event MatchedEvent) []models.MarketPair {
	fn, ok := m.byCategory[event.Category]
	if !ok {
		return nil
	}
	pairs := fn(event)
	for i := range pairs {
		pairs[i].EventName = event.EventName
		pairs[i].Category = event.Category
		if pairs[i].P.Slug == "" {
			pairs[i].P.Slug = event.PSlug
		}
		if pairs[i].K.SeriesTicker == "" {
			pairs[i].K.SeriesTicker = event.KSeries
		}
		if pairs[i].K.ImageURL == "" {
			pairs[i].K.ImageURL = event.ImageURL
		}
	}
	return pairs
}
