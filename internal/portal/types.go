package portal

// Org identifies the organization the session is bound to.
type Org struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Session is the authenticated session context.
type Session struct {
	Org      Org    // organization the session belongs to
	Username string // acting username (the executor)
}

// User is a user account as returned by the portal. Timestamps are epoch
// milliseconds; LastLogin <= 0 means the account has never logged in.
type User struct {
	Username  string `json:"username" yaml:"username"`
	FullName  string `json:"fullName" yaml:"full_name"`
	Email     string `json:"email" yaml:"email"`
	LastLogin int64  `json:"lastLogin" yaml:"last_login"`
}

// Item is a content item as returned by the portal. Timestamps are epoch
// milliseconds; LastViewed is 0 when the portal predates view tracking for
// the item.
type Item struct {
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Owner      string `json:"owner" yaml:"owner"`
	Type       string `json:"type" yaml:"type"`
	Modified   int64  `json:"modified" yaml:"modified"`
	LastViewed int64  `json:"lastViewed" yaml:"last_viewed"`
	Homepage   string `json:"homepage" yaml:"homepage"`
}
