// Package report writes the run artifacts: the inactive users CSV, the
// flagged items CSV, and the free-text cleanup report.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aatumaykin/giscleanup/internal/audit"
	"github.com/aatumaykin/giscleanup/internal/constants"
)

// WriteInactiveUsersCSV exports the inactive user table and returns the
// written file path.
func WriteInactiveUsersCSV(dir, timestamp string, users []audit.UserRecord) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf(constants.InactiveUsersFilePattern, timestamp))

	rows := make([][]string, 0, len(users)+1)
	rows = append(rows, []string{"Username", "Full Name", "Email", "Last Login"})
	for _, u := range users {
		rows = append(rows, []string{u.Username, u.FullName, u.Email, u.LastLoginDisplay()})
	}

	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFlaggedItemsCSV exports the flagged item table and returns the
// written file path. No file is written when the table is empty.
func WriteFlaggedItemsCSV(dir, timestamp string, items []audit.ItemRecord) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	path := filepath.Join(dir, fmt.Sprintf(constants.FlaggedItemsFilePattern, timestamp))

	rows := make([][]string, 0, len(items)+1)
	rows = append(rows, []string{"Title", "Owner", "Item Type", "Item ID", "Last Modified", "Last Viewed", "URL", "Reason"})
	for _, item := range items {
		rows = append(rows, []string{
			item.Title,
			item.Owner,
			item.Type,
			item.ID,
			item.ModifiedDisplay(),
			item.LastViewedDisplay(),
			item.URL,
			item.Reason,
		})
	}

	if err := writeCSV(path, rows); err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
