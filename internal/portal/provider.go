// Package portal talks to the GIS portal's sharing REST API. It exposes the
// small surface the audit pipeline needs: the authenticated session context,
// user directory search, content search, and item deletion.
//
// Two implementations exist: Client (live HTTP) and FixtureProvider
// (YAML-backed snapshots for offline runs and tests).
package portal

import "context"

// SearchUsersOptions bounds and orders a user directory search.
type SearchUsersOptions struct {
	Max       int    // maximum number of users to return
	SortField string // e.g. "lastLogin"
	SortOrder string // "asc" or "desc"
}

// SearchItemsOptions filters a content search by owner and organization.
type SearchItemsOptions struct {
	Owner string // owning username, required
	OrgID string // organization id, required
	Max   int    // maximum number of items to return
}

// Portal is the authenticated portal surface consumed by the audit pipeline.
type Portal interface {
	// Self returns the session context: organization id/name and the
	// acting username. An error here is fatal to the whole run.
	Self(ctx context.Context) (Session, error)

	// SearchUsers returns up to opts.Max user accounts visible to the
	// session, ordered per opts.
	SearchUsers(ctx context.Context, opts SearchUsersOptions) ([]User, error)

	// SearchItems returns up to opts.Max items owned by opts.Owner within
	// the organization opts.OrgID.
	SearchItems(ctx context.Context, opts SearchItemsOptions) ([]Item, error)

	// DeleteItem deletes a single item by owner and id.
	DeleteItem(ctx context.Context, owner, id string) error
}
