package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aatumaykin/giscleanup/internal/audit"
	"github.com/aatumaykin/giscleanup/internal/constants"
	"github.com/aatumaykin/giscleanup/internal/portal"
)

// previewLimit caps the number of item lines in the report preview.
const previewLimit = 10

// Data collects everything the report summarizes. Removed may be empty when
// no removal was confirmed.
type Data struct {
	Session  portal.Session
	Inactive []audit.UserRecord
	Flagged  []audit.ItemRecord
	Removed  []audit.ItemRecord
}

// Build renders the report text block. Pure so tests can check the exact
// output.
func Build(data Data, generatedAt time.Time) string {
	lines := []string{
		fmt.Sprintf("GIS Cleanup Report - %s", generatedAt.Format("2006-01-02 15:04:05")),
		fmt.Sprintf("Executor: %s", data.Session.Username),
		fmt.Sprintf("Organization: %s", data.Session.Org.Name),
		"",
		"Summary:",
		fmt.Sprintf("Total Inactive Users: %d", len(data.Inactive)),
		fmt.Sprintf("Total Flagged Content: %d", len(data.Flagged)),
		fmt.Sprintf("Total Removed Items: %d", len(data.Removed)),
	}

	if len(data.Flagged) > 0 {
		lines = append(lines, "", "Flagged Content:")

		preview := data.Flagged
		if len(data.Removed) > 0 {
			preview = data.Removed
		}
		if len(preview) > previewLimit {
			preview = preview[:previewLimit]
		}

		for _, item := range preview {
			lines = append(lines, fmt.Sprintf("- %s (%s) by %s | Last Modified: %s | Last Viewed: %s",
				item.Title, item.ID, item.Owner, item.ModifiedDisplay(), item.LastViewedDisplay()))
		}
	} else {
		lines = append(lines, "", "No flagged content found.")
	}

	return strings.Join(lines, "\n") + "\n"
}

// Write renders the report and writes it to the timestamped artifact,
// returning the written file path.
func Write(dir, timestamp string, data Data, generatedAt time.Time) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf(constants.ReportFilePattern, timestamp))

	if err := os.WriteFile(path, []byte(Build(data, generatedAt)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}

	return path, nil
}
