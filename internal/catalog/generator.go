// Package catalog expands static and dynamic (date-templated) mappings
// into concrete (P-slug, K-ticker, series) tuples, built from small
// composable helpers in the same style as pkg/utils/time.go's date-range
// utilities, generalized from calendar bucketing to slug/ticker template
// substitution.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/svyatogor45/xvenue-arb/internal/models"
	"github.com/svyatogor45/xvenue-arb/pkg/utils"
)

// Clock is injected so the generator's "D consecutive days starting today"
// rule is testable without depending on the wall clock.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// SystemClock is the production Clock.
var SystemClock Clock = systemClock{}

// YearlyMapping is a fixed pairing parameterized by year, e.g. a
// championship-per-year market.
type YearlyMapping struct {
	Name string `json:"name"`
	Category models.Category `json:"category"`
	PSlugPattern string `json:"pSlugPattern"` // substitutes {year}
	KTickerPattern string `json:"kTickerPattern"` // substitutes {year}
	KSeries string `json:"kSeries"`
	Years []int `json:"years"`
}

// DynamicMapping is a pattern iterated over D consecutive days.
type DynamicMapping struct {
	Name string `json:"name"`
	Category models.Category `json:"category"`
	PSlugPattern string `json:"pSlugPattern"` // substitutes {year} {month} {day}
	KTickerPattern string `json:"kTickerPattern"` // substitutes {yy} {MON} {dd}
	KSeries string `json:"kSeries"`
}

// StaticEntry is a fixed (non-templated) pairing.
type StaticEntry struct {
	Name string `json:"name"`
	Category models.Category `json:"category"`
	PSlug string `json:"pSlug"`
	KTicker string `json:"kTicker"`
	KSeries string `json:"kSeries"`
}

// Generator produces the scan-local catalog from configured mappings.
type Generator struct {
	clock Clock
	Yearly []YearlyMapping
	Dynamic []DynamicMapping
	Static []StaticEntry
	// Days is the number of consecutive days (D) the dynamic generator
	// iterates starting today. Default 3.
	Days int
}

func NewGenerator(clock Clock) *Generator {
	if clock == nil {
		clock = SystemClock
	}
	return &Generator{clock: clock, Days: 3}
}

// Generate expands every configured mapping into catalog entries.
func (g *Generator) Generate() []models.CatalogEntry {
	var out []models.CatalogEntry
	out = append(out, g.generateStatic()...)
	out = append(out, g.generateYearly()...)
	out = append(out, g.generateDynamic()...)
	return out
}

func (g *Generator) generateStatic() []models.CatalogEntry {
	out := make([]models.CatalogEntry, 0, len(g.Static))
	for _, s := range g.Static {
		out = append(out, models.CatalogEntry{
			Name: s.Name,
			Category: s.Category,
			Type: models.EntryStatic,
			PSlug: s.PSlug,
			KTicker: s.KTicker,
			KSeries: s.KSeries,
		})
	}
	return out
}

func (g *Generator) generateYearly() []models.CatalogEntry {
	var out []models.CatalogEntry
	for _, y := range g.Yearly {
		for _, year := range y.Years {
			yearStr := fmt.Sprintf("%d", year)
			out = append(out, models.CatalogEntry{
				Name: fmt.Sprintf("%s-%d", y.Name, year),
				Category: y.Category,
				Type: models.EntryStatic,
				PSlug: strings.ReplaceAll(y.PSlugPattern, "{year}", yearStr),
				KTicker: strings.ReplaceAll(y.KTickerPattern, "{year}", yearStr),
				KSeries: y.KSeries,
			})
		}
	}
	return out
}

func (g *Generator) generateDynamic() []models.CatalogEntry {
	days := g.Days
	if days <= 0 {
		days = 3
	}
	today := utils.GetDayStartFrom(g.clock.Now())

	var out []models.CatalogEntry
	for _, d := range g.Dynamic {
		for i := 0; i < days; i++ {
			date := today.AddDate(0, 0, i)
			out = append(out, models.CatalogEntry{
				Name: d.Name,
				Category: d.Category,
				Type: models.EntryDynamic,
				PSlug: substitutePSlug(d.PSlugPattern, date),
				KTicker: substituteKTicker(d.KTickerPattern, date),
				KSeries: d.KSeries,
				Date: &date,
			})
		}
	}
	return out
}

// substitutePSlug replaces {year}, {month} (full name), {day} in a
// Polymarket slug pattern.
func substitutePSlug(pattern string, date time.Time) string {
	s := pattern
	s = strings.ReplaceAll(s, "{year}", fmt.Sprintf("%d", date.Year()))
	s = strings.ReplaceAll(s, "{month}", strings.ToLower(date.Month().String()))
	s = strings.ReplaceAll(s, "{day}", fmt.Sprintf("%d", date.Day()))
	return s
}

// substituteKTicker replaces {yy}, {MON} (three-letter upper), {dd}
// (zero-padded) in a Kalshi ticker pattern.
func substituteKTicker(pattern string, date time.Time) string {
	s := pattern
	yy := fmt.Sprintf("%02d", date.Year()%100)
	mon := strings.ToUpper(date.Month().String()[:3])
	dd := fmt.Sprintf("%02d", date.Day())
	s = strings.ReplaceAll(s, "{yy}", yy)
	s = strings.ReplaceAll(s, "{MON}", mon)
	s = strings.ReplaceAll(s, "{dd}", dd)
	return s
}
