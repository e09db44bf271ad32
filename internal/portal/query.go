package portal

import (
	"fmt"

	"github.com/wasilibs/go-re2"
	"golang.org/x/text/unicode/norm"
)

// usernamePattern matches portal usernames: letters, digits and the
// punctuation the portal itself allows. Anything else could smuggle
// operators into the search query.
var usernamePattern = re2.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._@-]*$`)

// orgIDPattern matches organization identifiers (hex-ish short ids).
var orgIDPattern = re2.MustCompile(`^[A-Za-z0-9]+$`)

// BuildOwnerQuery builds the owner+organization search query, validating
// both values first so user-controlled names cannot inject query operators.
func BuildOwnerQuery(owner, orgID string) (string, error) {
	owner = norm.NFKC.String(owner)

	if !usernamePattern.MatchString(owner) {
		return "", fmt.Errorf("invalid owner username for search query: %q", owner)
	}
	if !orgIDPattern.MatchString(orgID) {
		return "", fmt.Errorf("invalid organization id for search query: %q", orgID)
	}

	return fmt.Sprintf("owner:%s AND orgid:%s", owner, orgID), nil
}
