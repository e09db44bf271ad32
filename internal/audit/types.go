// Package audit implements the cleanup pipeline core: deriving cutoff
// instants, finding inactive users, flagging their stale content, and
// removing confirmed items.
package audit

import (
	"time"

	"github.com/aatumaykin/giscleanup/internal/portal"
)

// Flagging reasons, in precedence order.
const (
	ReasonUnmodifiedUnviewed = "unmodified & unviewed"
	ReasonUnmodified         = "unmodified"
	ReasonUnviewed           = "unviewed"
)

// dateLayout is the calendar date format used in CSV exports and reports.
const dateLayout = "2006-01-02"

// UserRecord is a read-only snapshot of an inactive user account.
// LastLogin is nil for accounts that never logged in; the epoch sentinel is
// substituted only at classification and display time.
type UserRecord struct {
	Username  string
	FullName  string
	Email     string
	LastLogin *time.Time
}

// EffectiveLastLogin returns the last login instant, substituting the epoch
// for never-logged-in accounts.
func (r UserRecord) EffectiveLastLogin() time.Time {
	if r.LastLogin == nil {
		return time.Unix(0, 0).UTC()
	}
	return *r.LastLogin
}

// LastLoginDisplay returns the calendar date of the last login, or "Never".
func (r UserRecord) LastLoginDisplay() string {
	if r.LastLogin == nil {
		return "Never"
	}
	return r.LastLogin.Format(dateLayout)
}

// ItemRecord is a read-only snapshot of a flagged content item.
// LastViewed is nil when the portal has no view data for the item.
type ItemRecord struct {
	Title      string
	Owner      string
	Type       string
	ID         string
	Modified   time.Time
	LastViewed *time.Time
	URL        string
	Reason     string
}

// EffectiveLastViewed returns the last viewed instant, substituting the
// epoch when the portal has no view data.
func (r ItemRecord) EffectiveLastViewed() time.Time {
	if r.LastViewed == nil {
		return time.Unix(0, 0).UTC()
	}
	return *r.LastViewed
}

// ModifiedDisplay returns the calendar date of the last modification.
func (r ItemRecord) ModifiedDisplay() string {
	return r.Modified.Format(dateLayout)
}

// LastViewedDisplay returns the calendar date of the last view, with the
// epoch standing in for "never viewed".
func (r ItemRecord) LastViewedDisplay() string {
	return r.EffectiveLastViewed().Format(dateLayout)
}

// millisToTime converts portal epoch milliseconds to a UTC instant.
func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// optionalMillis converts a portal timestamp to an optional instant,
// mapping the never sentinel (<= 0) to nil.
func optionalMillis(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := millisToTime(ms)
	return &t
}

// userFromPortal converts a portal user to an internal record.
func userFromPortal(u portal.User) UserRecord {
	return UserRecord{
		Username:  u.Username,
		FullName:  valueOrNA(u.FullName),
		Email:     valueOrNA(u.Email),
		LastLogin: optionalMillis(u.LastLogin),
	}
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
