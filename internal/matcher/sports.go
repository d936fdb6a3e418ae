package matcher

import (
	"strings"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

// TeamAliasTable maps any recognized alias (full name, city, nickname,
// abbreviation) to a single canonical team name. Matching prefers the
// longest alias so "New York Yankees" isn't mis-normalized by a shorter
// "Yankees" entry matching a substring of a different alias first.
type TeamAliasTable map[string]string

// DefaultTeamAliases ships a small cross-league seed; production
// deployments extend it per league as new sports events appear in the
// catalog.
func DefaultTeamAliases() TeamAliasTable {
	return TeamAliasTable{
		"new york yankees": "Yankees", "yankees": "Yankees", "nyy": "Yankees",
		"boston red sox": "Red Sox", "red sox": "Red Sox", "bos": "Red Sox",
		"los angeles dodgers": "Dodgers", "dodgers": "Dodgers", "lad": "Dodgers",
		"kansas city chiefs": "Chiefs", "chiefs": "Chiefs", "kc": "Chiefs",
		"san francisco 49ers": "49ers", "49ers": "49ers", "niners": "49ers", "sf": "49ers",
		"buffalo bills": "Bills", "bills": "Bills",
		"boston celtics": "Celtics", "celtics": "Celtics", "bos celtics": "Celtics",
		"los angeles lakers": "Lakers", "lakers": "Lakers", "lal": "Lakers",
		"manchester united": "Man United", "man united": "Man United", "man utd": "Man United",
		"manchester city": "Man City", "man city": "Man City",
	}
}

// canonicalTeam normalizes a market question against the alias table,
// preferring the longest matching alias.
func canonicalTeam(question string, table TeamAliasTable) (string, bool) {
	q := strings.ToLower(question)
	best := ""
	bestAlias := ""
	for alias, canonical := range table {
		if strings.Contains(q, alias) && len(alias) > len(bestAlias) {
			bestAlias = alias
			best = canonical
		}
	}
	return best, best != ""
}

var leagueKeywords = []string{"nfl", "nba", "nhl", "mlb", "soccer"}

// detectLeague reports whether the event name names a supported league;
// the league itself isn't threaded further since pairing is keyed by
// canonical team name, not league.
func detectLeague(eventName string) bool {
	name := strings.ToLower(eventName)
	for _, kw := range leagueKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// matchSports pairs markets by canonical team name, independent of league
// once the event itself has been confirmed to be a sports event.
func (m *Matcher) matchSports(event MatchedEvent) []models.MarketPair {
	pByTeam := map[string]models.MarketShell{}
	for _, p := range event.PMarkets {
		team, ok := canonicalTeam(p.Question, m.SportsAliases)
		if !ok {
			continue
		}
		pByTeam[team] = p
	}

	var pairs []models.MarketPair
	for _, k := range event.KMarkets {
		team, ok := canonicalTeam(k.Question, m.SportsAliases)
		if !ok {
			continue
		}
		p, ok := pByTeam[team]
		if !ok {
			continue
		}
		pairs = append(pairs, models.NewMarketPair(team, event.EventName, models.CategorySports,
			models.PMarketRef{Question: p.Question, YesPrice: p.YesPrice, NoPrice: p.ResolvedNoPrice(), TokenIDs: p.PTokenIDs, EndDate: p.EndDate},
			models.KMarketRef{Question: k.Question, YesPrice: k.YesPrice, NoPrice: k.ResolvedNoPrice(), Ticker: k.KTicker, EndDate: k.EndDate},
			1.0,
		))
	}
	return pairs
}
