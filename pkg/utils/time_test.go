package utils

import (
	"testing"
	"time"
)

func TestGetDayStartFrom(t *testing.T) {
	in := time.Date(2026, 3, 15, 14, 30, 45, 123, time.UTC)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	if got := GetDayStartFrom(in); !got.Equal(want) {
		t.Fatalf("GetDayStartFrom(%v) = %v, want %v", in, got, want)
	}
}

func TestGetDayStartFrom_ConvertsNonUTCInput(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	in := time.Date(2026, 3, 15, 23, 0, 0, 0, loc) // 2026-03-16T04:00:00Z
	want := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	if got := GetDayStartFrom(in); !got.Equal(want) {
		t.Fatalf("GetDayStartFrom(%v) = %v, want %v", in, got, want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{5*time.Minute + 30*time.Second, "5m30s"},
		{2*time.Hour + 15*time.Minute, "2h15m0s"},
		{3*24*time.Hour + 5*time.Hour, "77h0m0s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration_NegativeIsAbs(t *testing.T) {
	if got, want := FormatDuration(-45*time.Second), FormatDuration(45*time.Second); got != want {
		t.Errorf("FormatDuration(negative) = %q, want %q", got, want)
	}
}

func TestToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	in := time.Date(2026, 3, 15, 10, 0, 0, 0, loc)

	got := ToUTC(in)
	if got.Location() != time.UTC {
		t.Fatalf("ToUTC did not convert to UTC: %v", got)
	}
	if !got.Equal(in) {
		t.Fatalf("ToUTC changed the instant: got %v, want %v", got, in)
	}
}
