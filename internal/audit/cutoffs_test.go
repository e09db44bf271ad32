package audit

import (
	"testing"
	"time"

	"github.com/aatumaykin/giscleanup/internal/config"
)

func TestNewCutoffs(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	cutoffs := NewCutoffs(now, config.ThresholdsConfig{
		YearsUnviewed:   1,
		YearsInactive:   4,
		YearsUnmodified: 8,
	})

	tests := []struct {
		name  string
		got   time.Time
		years int
	}{
		{"viewed cutoff", cutoffs.Viewed, 1},
		{"login cutoff", cutoffs.Login, 4},
		{"modified cutoff", cutoffs.Modified, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := now.Add(-time.Duration(tt.years) * 365 * 24 * time.Hour)
			if !tt.got.Equal(want) {
				t.Errorf("cutoff = %v, want %v", tt.got, want)
			}
		})
	}
}

func TestNewCutoffsTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 5, 0, time.UTC)
	cutoffs := NewCutoffs(now, config.ThresholdsConfig{YearsUnviewed: 1, YearsInactive: 4, YearsUnmodified: 8})

	if cutoffs.Timestamp != "20250615_103005" {
		t.Errorf("Timestamp = %s, want 20250615_103005", cutoffs.Timestamp)
	}
}

func TestNewCutoffsNoLeapCorrection(t *testing.T) {
	// 4 years spanning a leap day are still exactly 4*365 days.
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cutoffs := NewCutoffs(now, config.ThresholdsConfig{YearsUnviewed: 1, YearsInactive: 4, YearsUnmodified: 8})

	want := now.Add(-4 * 365 * 24 * time.Hour)
	if !cutoffs.Login.Equal(want) {
		t.Errorf("Login cutoff = %v, want %v (365-day years, no leap correction)", cutoffs.Login, want)
	}
	if cutoffs.Login.Equal(now.AddDate(-4, 0, 0)) {
		t.Error("Login cutoff must not be calendar-corrected")
	}
}
