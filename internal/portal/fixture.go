package portal

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Fixture is an offline snapshot of a portal organization. It backs the
// --fixtures flag and the pipeline tests, so bounded runs stay reproducible
// without a live session.
type Fixture struct {
	Org         Org      `yaml:"org"`
	Executor    string   `yaml:"executor"`
	Users       []User   `yaml:"users"`
	Items       []Item   `yaml:"items"`
	DeleteFails []string `yaml:"delete_fails"` // item ids whose deletion should fail
}

// FixtureProvider implements the Portal interface over a Fixture.
type FixtureProvider struct {
	fixture Fixture
	deleted []string
	fails   map[string]bool
}

// NewFixtureProvider creates a provider from an in-memory fixture.
func NewFixtureProvider(f Fixture) *FixtureProvider {
	fails := make(map[string]bool, len(f.DeleteFails))
	for _, id := range f.DeleteFails {
		fails[id] = true
	}
	return &FixtureProvider{
		fixture: f,
		fails:   fails,
	}
}

// LoadFixture reads a fixture from a YAML file.
func LoadFixture(path string) (*FixtureProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture file: %w", err)
	}

	return NewFixtureProvider(f), nil
}

// Self returns the fixture's organization and executor.
func (p *FixtureProvider) Self(ctx context.Context) (Session, error) {
	if p.fixture.Org.ID == "" {
		return Session{}, fmt.Errorf("fixture has no organization")
	}
	return Session{
		Org:      p.fixture.Org,
		Username: p.fixture.Executor,
	}, nil
}

// SearchUsers returns up to opts.Max fixture users in declaration order.
func (p *FixtureProvider) SearchUsers(ctx context.Context, opts SearchUsersOptions) ([]User, error) {
	users := p.fixture.Users
	if opts.Max > 0 && len(users) > opts.Max {
		users = users[:opts.Max]
	}
	out := make([]User, len(users))
	copy(out, users)
	return out, nil
}

// SearchItems returns up to opts.Max fixture items owned by opts.Owner,
// excluding anything already deleted.
func (p *FixtureProvider) SearchItems(ctx context.Context, opts SearchItemsOptions) ([]Item, error) {
	if _, err := BuildOwnerQuery(opts.Owner, opts.OrgID); err != nil {
		return nil, err
	}

	var out []Item
	for _, item := range p.fixture.Items {
		if item.Owner != opts.Owner {
			continue
		}
		if p.isDeleted(item.ID) {
			continue
		}
		out = append(out, item)
		if opts.Max > 0 && len(out) == opts.Max {
			break
		}
	}
	return out, nil
}

// DeleteItem removes an item from the fixture, or fails when the item is
// listed in delete_fails or does not exist.
func (p *FixtureProvider) DeleteItem(ctx context.Context, owner, id string) error {
	if p.fails[id] {
		return fmt.Errorf("fixture: deletion of item %s is configured to fail", id)
	}

	for _, item := range p.fixture.Items {
		if item.ID == id && item.Owner == owner && !p.isDeleted(id) {
			p.deleted = append(p.deleted, id)
			return nil
		}
	}
	return fmt.Errorf("fixture: item %s owned by %s not found", id, owner)
}

// Deleted returns the ids deleted so far, in deletion order.
func (p *FixtureProvider) Deleted() []string {
	return p.deleted
}

func (p *FixtureProvider) isDeleted(id string) bool {
	for _, d := range p.deleted {
		if d == id {
			return true
		}
	}
	return false
}
