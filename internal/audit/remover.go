package audit

import (
	"context"
	"fmt"
	"io"

	"github.com/aatumaykin/giscleanup/internal/logger"
	"github.com/aatumaykin/giscleanup/internal/portal"
)

// Remover deletes flagged items one by one. No retries, no rollback.
type Remover struct {
	portal portal.Portal
	out    io.Writer // confirmation lines for the operator
	logger *logger.Logger
}

// NewRemover creates a Remover writing confirmation lines to out.
func NewRemover(p portal.Portal, out io.Writer, log *logger.Logger) *Remover {
	return &Remover{
		portal: p,
		out:    out,
		logger: log,
	}
}

// Remove attempts to delete every flagged item. It returns the rows that
// were actually removed, in deletion order, plus the number of failures.
// A failed deletion is logged and the batch continues.
func (r *Remover) Remove(ctx context.Context, flagged []ItemRecord) ([]ItemRecord, int) {
	var removed []ItemRecord
	failed := 0

	for _, item := range flagged {
		if err := r.portal.DeleteItem(ctx, item.Owner, item.ID); err != nil {
			failed++
			r.logger.Error("failed to delete item", err,
				logger.Field{Key: "item_id", Value: item.ID},
				logger.Field{Key: "owner", Value: item.Owner})
			continue
		}

		removed = append(removed, item)
		fmt.Fprintf(r.out, "Deleted: %s (ID: %s)\n", item.Title, item.ID)
	}

	r.logger.Info("removal completed",
		logger.Field{Key: "removed", Value: len(removed)},
		logger.Field{Key: "failed", Value: failed})

	return removed, failed
}
