package projection

import (
	"regexp"
	"strings"
)

// seriesSlugs maps a Kalshi series ticker to the path segment kalshi.com
// uses for its category; unknown series fall back to their own
// lowercased ticker.
var seriesSlugs = map[string]string{
	"KXNBAGAME": "professional-basketball-game",
	"KXNFLGAME": "professional-football-game",
	"KXMLBGAME": "professional-baseball-game",
	"KXFED": "fed-rate-decision",
	"KXHIGHNY": "weather",
}

var nbaTickerSuffix = regexp.MustCompile(`-[A-Za-z0-9]+$`)

// PURL builds the Polymarket market URL for a slug.
func PURL(slug string) string {
	return "https://polymarket.com/event/" + slug
}

// KURL builds the Kalshi market URL for a (seriesTicker, marketTicker)
// pair. For SERIES-DATE-TEAM-shaped tickers (NBA game markets), the
// trailing -TEAM segment is stripped to recover the event ticker.
func KURL(seriesTicker, marketTicker string) string {
	seriesLower := strings.ToLower(seriesTicker)
	seriesSlug, ok := seriesSlugs[strings.ToUpper(seriesTicker)]
	if !ok {
		seriesSlug = seriesLower
	}

	eventTicker := eventTickerFromMarket(seriesTicker, marketTicker)
	return "https://kalshi.com/markets/" + seriesLower + "/" + seriesSlug + "/" + strings.ToLower(eventTicker)
}

// eventTickerFromMarket strips a market ticker's trailing team segment
// when it follows the SERIES-DATE-TEAM convention (e.g.
// "KXNBAGAME-26JAN05LALBOS-LAL" -> "KXNBAGAME-26JAN05LALBOS").
func eventTickerFromMarket(seriesTicker, marketTicker string) string {
	if !strings.HasPrefix(marketTicker, seriesTicker+"-") {
		return marketTicker
	}
	rest := marketTicker[len(seriesTicker):]
	parts := strings.Split(rest, "-")
	if len(parts) < 3 {
		// no trailing team segment to strip (just SERIES-DATE).
		return marketTicker
	}
	return nbaTickerSuffix.ReplaceAllString(marketTicker, "")
}
