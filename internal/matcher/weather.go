package matcher

import (
	"regexp"
	"strconv"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

// temperatureRange is the parsed shape of a weather question. Bare "N or
// below"/"N or above" set only one bound; "A to B" sets both; a bare "N°F"
// sets exact.
type temperatureRange struct {
	min, max, exact *float64
}

func (r temperatureRange) equal(o temperatureRange) bool {
	return floatPtrEqual(r.min, o.min) && floatPtrEqual(r.max, o.max) && floatPtrEqual(r.exact, o.exact)
}

func floatPtrEqual(a, b *float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return *a == *b
}

var (
	reBelow = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*(?:°F)?\s*or below`)
	reAbove = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*(?:°F)?\s*or above`)
	reRange = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*(?:°F)?\s*to\s*(-?\d+(?:\.\d+)?)\s*°?F?`)
	reExact = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*°F`)
)

// parseTemperatureRange recognizes, in order, "N°F or below", "N or above",
// "A to B", and bare "N°F". The first matching pattern wins.
func parseTemperatureRange(question string) (temperatureRange, bool) {
	if m := reBelow.FindStringSubmatch(question); m != nil {
		v := mustFloat(m[1])
		return temperatureRange{max: &v}, true
	}
	if m := reAbove.FindStringSubmatch(question); m != nil {
		v := mustFloat(m[1])
		return temperatureRange{min: &v}, true
	}
	if m := reRange.FindStringSubmatch(question); m != nil {
		lo, hi := mustFloat(m[1]), mustFloat(m[2])
		return temperatureRange{min: &lo, max: &hi}, true
	}
	if m := reExact.FindStringSubmatch(question); m != nil {
		v := mustFloat(m[1])
		return temperatureRange{exact: &v}, true
	}
	return temperatureRange{}, false
}

func mustFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

// matchWeather pairs markets whose temperature ranges are bit-for-bit
// identical; no approximate matching, to avoid a systematic 1°F offset
// between venues surfacing as phantom arbitrage.
func matchWeather(event MatchedEvent) []models.MarketPair {
	type parsedP struct {
		shell models.MarketShell
		rng   temperatureRange
	}
	var pRanges []parsedP
	for _, p := range event.PMarkets {
		rng, ok := parseTemperatureRange(p.Question)
		if !ok {
			continue
		}
		pRanges = append(pRanges, parsedP{p, rng})
	}

	var pairs []models.MarketPair
	for _, k := range event.KMarkets {
		kRng, ok := parseTemperatureRange(k.Question)
		if !ok {
			continue
		}
		for _, pr := range pRanges {
			if !pr.rng.equal(kRng) {
				continue
			}
			pairs = append(pairs, models.NewMarketPair(k.Question, event.EventName, models.CategoryWeather,
				models.PMarketRef{Question: pr.shell.Question, YesPrice: pr.shell.YesPrice, NoPrice: pr.shell.ResolvedNoPrice(), TokenIDs: pr.shell.PTokenIDs, EndDate: pr.shell.EndDate},
				models.KMarketRef{Question: k.Question, YesPrice: k.YesPrice, NoPrice: k.ResolvedNoPrice(), Ticker: k.KTicker, EndDate: k.EndDate},
				0.9,
			))
			break
		}
	}
	return pairs
}
