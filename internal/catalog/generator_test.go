package catalog

import (
	"testing"
	"time"

	"github.com/svyatogor45/xvenue-arb/internal/models"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func TestGenerate_Yearly(t *testing.T) {
	g := NewGenerator(fixedClock{time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)})
	g.Yearly = []YearlyMapping{
		{Name: "champs", Category: models.CategorySports, PSlugPattern: "champs-{year}", KTickerPattern: "CHAMP-{year}", Years: []int{2026}},
	}
	entries := g.Generate()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].PSlug != "champs-2026" || entries[0].KTicker != "CHAMP-2026" {
		t.Fatalf("got %+v", entries[0])
	}
}

func TestGenerate_DynamicIteratesDDays(t *testing.T) {
	g := NewGenerator(fixedClock{time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)})
	g.Days = 3
	g.Dynamic = []DynamicMapping{
		{Name: "temp", Category: models.CategoryWeather, PSlugPattern: "nyc-temp-{month}-{day}", KTickerPattern: "KXTEMP-{yy}{MON}{dd}"},
	}
	entries := g.Generate()
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].PSlug != "nyc-temp-january-5" {
		t.Fatalf("got pslug %q", entries[0].PSlug)
	}
	if entries[0].KTicker != "KXTEMP-26JAN05" {
		t.Fatalf("got kticker %q", entries[0].KTicker)
	}
	if entries[2].PSlug != "nyc-temp-january-7" {
		t.Fatalf("got day-3 pslug %q", entries[2].PSlug)
	}
}

func TestGenerate_Static(t *testing.T) {
	g := NewGenerator(fixedClock{time.Now()})
	g.Static = []StaticEntry{{Name: "fed", Category: models.CategoryFinance, PSlug: "fed-decision", KTicker: "FED", KSeries: "KXFED"}}
	entries := g.Generate()
	if len(entries) != 1 || entries[0].Type != models.EntryStatic {
		t.Fatalf("got %+v", entries)
	}
}
