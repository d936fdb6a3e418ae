package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMappingsFile_MissingPathReturnsEmptyGenerator(t *testing.T) {
	g, err := LoadMappingsFile(filepath.Join(t.TempDir(), "missing.json"), nil)
	if err != nil {
		t.Fatalf("LoadMappingsFile() error = %v", err)
	}
	if len(g.Generate()) != 0 {
		t.Errorf("expected an empty catalog, got %d entries", len(g.Generate()))
	}
}

func TestLoadMappingsFile_EmptyPathReturnsEmptyGenerator(t *testing.T) {
	g, err := LoadMappingsFile("", nil)
	if err != nil {
		t.Fatalf("LoadMappingsFile() error = %v", err)
	}
	if len(g.Generate()) != 0 {
		t.Errorf("expected an empty catalog, got %d entries", len(g.Generate()))
	}
}

func TestLoadMappingsFile_ParsesStaticEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `{
		"static": [
			{"name": "fed-rate", "category": "finance", "pSlug": "fed-decision-2026", "kTicker": "KXFED-26JUL", "kSeries": "KXFED"}
		]
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	g, err := LoadMappingsFile(path, nil)
	if err != nil {
		t.Fatalf("LoadMappingsFile() error = %v", err)
	}
	entries := g.Generate()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].PSlug != "fed-decision-2026" {
		t.Errorf("PSlug = %q", entries[0].PSlug)
	}
}

func TestLoadMappingsFile_RejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadMappingsFile(path, nil); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoadMappingsFile_OverridesDaysWhenPositive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(`{"days": 7}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	g, err := LoadMappingsFile(path, nil)
	if err != nil {
		t.Fatalf("LoadMappingsFile() error = %v", err)
	}
	if g.Days != 7 {
		t.Errorf("Days = %d, want 7", g.Days)
	}
}
