package audit

import (
	"time"

	"github.com/aatumaykin/giscleanup/internal/config"
)

// timestampLayout names run artifacts; stable for the whole run.
const timestampLayout = "20060102_150405"

// Cutoffs holds the three absolute cutoff instants for a run, plus the
// artifact timestamp derived from the same reference time.
type Cutoffs struct {
	Viewed    time.Time // items last viewed before this are unviewed
	Login     time.Time // users last logged in before this are inactive
	Modified  time.Time // items last modified before this are unmodified
	Timestamp string    // artifact name suffix
}

// NewCutoffs derives the cutoffs from a reference time and the configured
// year counts. A year counts as 365 days; leap years are deliberately not
// corrected for.
func NewCutoffs(now time.Time, t config.ThresholdsConfig) Cutoffs {
	return Cutoffs{
		Viewed:    now.Add(-yearsToDuration(t.YearsUnviewed)),
		Login:     now.Add(-yearsToDuration(t.YearsInactive)),
		Modified:  now.Add(-yearsToDuration(t.YearsUnmodified)),
		Timestamp: now.Format(timestampLayout),
	}
}

func yearsToDuration(years int) time.Duration {
	return time.Duration(years) * 365 * 24 * time.Hour
}
