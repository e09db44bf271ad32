package audit

import (
	"context"
	"fmt"
	"sort"

	"github.com/aatumaykin/giscleanup/internal/logger"
	"github.com/aatumaykin/giscleanup/internal/portal"
)

// Finder identifies inactive user accounts.
type Finder struct {
	portal   portal.Portal
	cutoffs  Cutoffs
	maxUsers int
	logger   *logger.Logger
}

// NewFinder creates a Finder bounded by maxUsers per run.
func NewFinder(p portal.Portal, cutoffs Cutoffs, maxUsers int, log *logger.Logger) *Finder {
	return &Finder{
		portal:   p,
		cutoffs:  cutoffs,
		maxUsers: maxUsers,
		logger:   log,
	}
}

// FindInactive fetches all visible accounts and returns those whose
// effective last login is strictly before the login cutoff, sorted
// ascending by that instant (stable for equal instants). Accounts that
// never logged in always qualify. Malformed records are logged and skipped.
func (f *Finder) FindInactive(ctx context.Context) ([]UserRecord, error) {
	users, err := f.portal.SearchUsers(ctx, portal.SearchUsersOptions{
		Max:       f.maxUsers,
		SortField: "lastLogin",
		SortOrder: "desc",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user accounts: %w", err)
	}

	var inactive []UserRecord
	for _, u := range users {
		if u.Username == "" {
			f.logger.Warn("skipping user record without username")
			continue
		}

		record := userFromPortal(u)
		if record.EffectiveLastLogin().Before(f.cutoffs.Login) {
			inactive = append(inactive, record)
		}
	}

	sort.SliceStable(inactive, func(i, j int) bool {
		return inactive[i].EffectiveLastLogin().Before(inactive[j].EffectiveLastLogin())
	})

	f.logger.Info("inactive user scan completed",
		logger.Field{Key: "scanned", Value: len(users)},
		logger.Field{Key: "inactive", Value: len(inactive)})

	return inactive, nil
}

// Usernames returns the ordered username list for downstream querying.
func Usernames(records []UserRecord) []string {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Username
	}
	return names
}
