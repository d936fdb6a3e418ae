package models

import "time"

// ScanResult is the output of one full scan pipeline run. Empty
// Opportunities is valid and distinguishable from "never scanned" by the
// presence of ScannedAt.
type ScanResult struct {
	Events []EventShell
	Opportunities []OpportunityWithLiquidity
	ScannedAt time.Time
}
