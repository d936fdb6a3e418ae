package matcher

import (
	"regexp"
	"strings"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

// NBATeam is one resolvable identity for team-order disambiguation:
// checked in order full name, city, nickname, three-letter code.
type NBATeam struct {
	FullName string
	City string
	Nickname string
	Code string
}

// NBATeamTable indexes teams by their three-letter code, the form K
// tickers carry.
type NBATeamTable map[string]NBATeam

// DefaultNBATeams ships the subset of the league needed to disambiguate
// the matchups the catalog generator actually produces; extend as the
// catalog's NBA coverage grows.
func DefaultNBATeams() NBATeamTable {
	teams := []NBATeam{
		{FullName: "Los Angeles Lakers", City: "Los Angeles", Nickname: "Lakers", Code: "LAL"},
		{FullName: "Boston Celtics", City: "Boston", Nickname: "Celtics", Code: "BOS"},
		{FullName: "Golden State Warriors", City: "Golden State", Nickname: "Warriors", Code: "GSW"},
		{FullName: "Miami Heat", City: "Miami", Nickname: "Heat", Code: "MIA"},
		{FullName: "Denver Nuggets", City: "Denver", Nickname: "Nuggets", Code: "DEN"},
		{FullName: "Oklahoma City Thunder", City: "Oklahoma City", Nickname: "Thunder", Code: "OKC"},
		{FullName: "New York Knicks", City: "New York", Nickname: "Knicks", Code: "NYK"},
		{FullName: "Dallas Mavericks", City: "Dallas", Nickname: "Mavericks", Code: "DAL"},
		{FullName: "Milwaukee Bucks", City: "Milwaukee", Nickname: "Bucks", Code: "MIL"},
		{FullName: "Philadelphia 76ers", City: "Philadelphia", Nickname: "76ers", Code: "PHI"},
	}
	table := make(NBATeamTable, len(teams))
	for _, t := range teams {
		table[t.Code] = t
	}
	return table
}

// moneylineExclusions lists substrings whose presence marks a market as a
// prop, spread, total, period, or sub-market rather than the full-game
// moneyline.
var moneylineExclusions = []string{
	"spread", "handicap", "prop", "to score", "total points", "margin",
	"by how many", "halftime", "quarter", "overtime",
}

var wholeWordExclusions = []string{"over", "under", "first", "second", "three"}

func containsWholeWord(text, word string) bool {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(text)
}

// isMoneylineMarket reports whether a P question is the single full-game
// moneyline market: it mentions "vs." (or "vs ") and trips none of the exclusion
// rules, with "over"/"under"/"first"/"second"/"three" checked as whole
// words so a team name like "Thunder" doesn't falsely exclude it.
func isMoneylineMarket(question string) bool {
	q := strings.ToLower(question)
	if !strings.Contains(q, "vs.") && !strings.Contains(q, "vs ") {
		return false
	}
	for _, sub := range moneylineExclusions {
		if strings.Contains(q, sub) {
			return false
		}
	}
	for _, word := range wholeWordExclusions {
		if containsWholeWord(q, word) {
			return false
		}
	}
	return true
}

// findTeamPosition returns the lowest index at which any identifying form
// of team is found in the question (full name, city, nickname, code, in
// that preference order when multiple forms would match at the same
// index), or -1 if none is found.
func findTeamPosition(question string, team NBATeam) int {
	q := strings.ToLower(question)
	candidates := []string{team.FullName, team.City, team.Nickname, team.Code}
	best := -1
	for _, c := range candidates {
		if c == "" {
			continue
		}
		idx := strings.Index(q, strings.ToLower(c))
		if idx == -1 {
			continue
		}
		if best == -1 || idx < best {
			best = idx
		}
	}
	return best
}

// resolveTeamOrder reports whether away is the team listed first in the
// question. If only one team resolves, that team is first. If neither
// resolves, it defaults to away-first.
func resolveTeamOrder(question string, away, home NBATeam) bool {
	awayIdx := findTeamPosition(question, away)
	homeIdx := findTeamPosition(question, home)
	switch {
	case awayIdx == -1 && homeIdx == -1:
		return true
	case awayIdx == -1:
		return false
	case homeIdx == -1:
		return true
	default:
		return awayIdx < homeIdx
	}
}

// splitMoneyline derives each team's own yesPrice and token pair from the
// shared P moneyline market. tokenIDs[0] is assumed to be the YES token
// for whichever team is listed first in question.
func splitMoneyline(question string, yesPrice float64, tokenIDs [2]string, away, home NBATeam) (awayYes, homeYes float64, awayTokens, homeTokens [2]string) {
	swapped := [2]string{tokenIDs[1], tokenIDs[0]}
	if resolveTeamOrder(question, away, home) {
		return yesPrice, 1 - yesPrice, tokenIDs, swapped
	}
	return 1 - yesPrice, yesPrice, swapped, tokenIDs
}

// matchNBAGame locates the single full-game moneyline market on P and the
// two per-team markets on K (keyed by the three-letter code their ticker
// ends with), then emits one MarketPair per team with prices and token
// ids reassigned to that team's own perspective.
func (m *Matcher) matchNBAGame(event MatchedEvent) []models.MarketPair {
	var moneyline *models.MarketShell
	for i := range event.PMarkets {
		if isMoneylineMarket(event.PMarkets[i].Question) {
			moneyline = &event.PMarkets[i]
			break
		}
	}
	if moneyline == nil {
		return nil
	}

	type kTeamMarket struct {
		shell models.MarketShell
		team NBATeam
	}
	var kTeams []kTeamMarket
	for _, k := range event.KMarkets {
		code := tickerTeamCode(k.KTicker)
		team, ok := m.NBATeams[code]
		if !ok {
			continue
		}
		kTeams = append(kTeams, kTeamMarket{k, team})
	}
	if len(kTeams) != 2 {
		return nil
	}

	away, home := kTeams[0], kTeams[1]
	awayYes, homeYes, awayTokens, homeTokens := splitMoneyline(moneyline.Question, moneyline.YesPrice, moneyline.PTokenIDs, away.team, home.team)

	pairs := []models.MarketPair{
		models.NewMarketPair(away.team.Nickname, event.EventName, models.CategoryNBAGame,
			models.PMarketRef{Question: moneyline.Question, YesPrice: awayYes, NoPrice: 1 - awayYes, TokenIDs: awayTokens, EndDate: moneyline.EndDate},
			models.KMarketRef{Question: away.shell.Question, YesPrice: away.shell.YesPrice, NoPrice: away.shell.ResolvedNoPrice(), Ticker: away.shell.KTicker, EndDate: away.shell.EndDate},
			1.0,
		),
		models.NewMarketPair(home.team.Nickname, event.EventName, models.CategoryNBAGame,
			models.PMarketRef{Question: moneyline.Question, YesPrice: homeYes, NoPrice: 1 - homeYes, TokenIDs: homeTokens, EndDate: moneyline.EndDate},
			models.KMarketRef{Question: home.shell.Question, YesPrice: home.shell.YesPrice, NoPrice: home.shell.ResolvedNoPrice(), Ticker: home.shell.KTicker, EndDate: home.shell.EndDate},
			1.0,
		),
	}
	return pairs
}

// tickerTeamCode extracts the trailing three-letter team code from a K
// ticker, e.g. "KXNBAGAME-25JAN05LALBOS-LAL" -> "LAL".
func tickerTeamCode(ticker string) string {
	idx := strings.LastIndex(ticker, "-")
	if idx == -1 || idx+1 >= len(ticker) {
		return ""
	}
	return strings.ToUpper(ticker[idx+1:])
}
