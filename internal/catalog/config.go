package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileConfig is the on-disk shape of a Generator's mappings: the curated
// list of (P, K) pairings an operator wants scanned. There is no
// hardcoded default list — an empty or missing file simply yields an
// empty catalog, which is a valid (if useless) scan.
type FileConfig struct {
	Days int `json:"days"`
	Yearly []YearlyMapping `json:"yearly"`
	Dynamic []DynamicMapping `json:"dynamic"`
	Static []StaticEntry `json:"static"`
}

// LoadMappingsFile reads a FileConfig from path and builds a Generator
// from it. A missing path is not an error: it returns an empty Generator
// so callers can run without a curated catalog.
func LoadMappingsFile(path string, clock Clock) (*Generator, error) {
	g := NewGenerator(clock)
	if path == "" {
		return g, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return g, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog config %q: %w", path, err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing catalog config %q: %w", path, err)
	}

	if cfg.Days > 0 {
		g.Days = cfg.Days
	}
	g.Yearly = cfg.Yearly
	g.Dynamic = cfg.Dynamic
	g.Static = cfg.Static
	return g, nil
}
