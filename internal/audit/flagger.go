package audit

import (
	"context"
	"fmt"
	"sort"

	"github.com/aatumaykin/giscleanup/internal/logger"
	"github.com/aatumaykin/giscleanup/internal/portal"
)

// Flagger classifies content owned by inactive users as stale.
type Flagger struct {
	portal   portal.Portal
	cutoffs  Cutoffs
	org      portal.Org
	maxItems int
	homeURL  string // base URL for synthesized item links
	logger   *logger.Logger
}

// NewFlagger creates a Flagger bounded by maxItems per owner. homeURL is
// used to synthesize an item URL when the portal provides no homepage link.
func NewFlagger(p portal.Portal, cutoffs Cutoffs, org portal.Org, maxItems int, homeURL string, log *logger.Logger) *Flagger {
	return &Flagger{
		portal:   p,
		cutoffs:  cutoffs,
		org:      org,
		maxItems: maxItems,
		homeURL:  homeURL,
		logger:   log,
	}
}

// FlagContent fetches the content owned by each given username and returns
// every item that is unmodified and/or unviewed past its cutoff, sorted
// ascending by last modified. A fetch error for one owner is logged and
// that owner is skipped.
func (f *Flagger) FlagContent(ctx context.Context, usernames []string) []ItemRecord {
	var flagged []ItemRecord

	for _, username := range usernames {
		items, err := f.portal.SearchItems(ctx, portal.SearchItemsOptions{
			Owner: username,
			OrgID: f.org.ID,
			Max:   f.maxItems,
		})
		if err != nil {
			f.logger.Error("failed to fetch content, skipping owner", err,
				logger.Field{Key: "owner", Value: username})
			continue
		}

		for _, item := range items {
			if record, ok := f.classify(item); ok {
				flagged = append(flagged, record)
			}
		}
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		return flagged[i].Modified.Before(flagged[j].Modified)
	})

	f.logger.Info("content flagging completed",
		logger.Field{Key: "owners", Value: len(usernames)},
		logger.Field{Key: "flagged", Value: len(flagged)})

	return flagged
}

// classify applies both staleness predicates and returns the flagged record
// with its reason, or ok=false when neither predicate holds.
func (f *Flagger) classify(item portal.Item) (ItemRecord, bool) {
	record := ItemRecord{
		Title:      item.Title,
		Owner:      item.Owner,
		Type:       item.Type,
		ID:         item.ID,
		Modified:   millisToTime(item.Modified),
		LastViewed: optionalMillis(item.LastViewed),
		URL:        f.itemURL(item),
	}

	unmodified := record.Modified.Before(f.cutoffs.Modified)
	unviewed := record.EffectiveLastViewed().Before(f.cutoffs.Viewed)

	switch {
	case unmodified && unviewed:
		record.Reason = ReasonUnmodifiedUnviewed
	case unmodified:
		record.Reason = ReasonUnmodified
	case unviewed:
		record.Reason = ReasonUnviewed
	default:
		return ItemRecord{}, false
	}

	return record, true
}

func (f *Flagger) itemURL(item portal.Item) string {
	if item.Homepage != "" {
		return item.Homepage
	}
	return fmt.Sprintf("%s/home/item.html?id=%s", f.homeURL, item.ID)
}
