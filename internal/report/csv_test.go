package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aatumaykin/giscleanup/internal/audit"
)

func TestWriteInactiveUsersCSV(t *testing.T) {
	dir := t.TempDir()
	lastLogin := time.Date(2019, 3, 2, 8, 0, 0, 0, time.UTC)

	users := []audit.UserRecord{
		{Username: "ghost", FullName: "Ghost User", Email: "N/A", LastLogin: nil},
		{Username: "olduser", FullName: "Old User", Email: "old@example.com", LastLogin: &lastLogin},
	}

	path, err := WriteInactiveUsersCSV(dir, "20250615_120000", users)
	if err != nil {
		t.Fatalf("WriteInactiveUsersCSV failed: %v", err)
	}
	if filepath.Base(path) != "inactive_users_20250615_120000.csv" {
		t.Errorf("unexpected file name: %s", path)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"Username", "Full Name", "Email", "Last Login"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][3] != "Never" {
		t.Errorf("never-logged-in user should display Never, got %q", rows[1][3])
	}
	if rows[2][3] != "2019-03-02" {
		t.Errorf("last login = %q, want 2019-03-02", rows[2][3])
	}
}

func TestWriteInactiveUsersCSVEmptyTable(t *testing.T) {
	dir := t.TempDir()

	// An empty organization still gets a (header-only) users export.
	path, err := WriteInactiveUsersCSV(dir, "20250615_120000", nil)
	if err != nil {
		t.Fatalf("WriteInactiveUsersCSV failed: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 1 {
		t.Errorf("expected header only, got %d rows", len(rows))
	}
}

func TestWriteFlaggedItemsCSV(t *testing.T) {
	dir := t.TempDir()

	items := []audit.ItemRecord{{
		Title:    "Ancient Map",
		Owner:    "ghost",
		Type:     "Web Map",
		ID:       "abc123",
		Modified: time.Date(2016, 5, 4, 0, 0, 0, 0, time.UTC),
		URL:      "https://gis.example.com/home/item.html?id=abc123",
		Reason:   audit.ReasonUnmodifiedUnviewed,
	}}

	path, err := WriteFlaggedItemsCSV(dir, "20250615_120000", items)
	if err != nil {
		t.Fatalf("WriteFlaggedItemsCSV failed: %v", err)
	}

	rows := readCSV(t, path)
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}

	wantHeader := "Title,Owner,Item Type,Item ID,Last Modified,Last Viewed,URL,Reason"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}

	row := rows[1]
	if row[4] != "2016-05-04" {
		t.Errorf("last modified = %q, want 2016-05-04", row[4])
	}
	if row[5] != "1970-01-01" {
		t.Errorf("never-viewed item should display the epoch date, got %q", row[5])
	}
	if row[7] != "unmodified & unviewed" {
		t.Errorf("reason = %q", row[7])
	}
}

func TestWriteFlaggedItemsCSVSkipsEmptySet(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFlaggedItemsCSV(dir, "20250615_120000", nil)
	if err != nil {
		t.Fatalf("WriteFlaggedItemsCSV failed: %v", err)
	}
	if path != "" {
		t.Errorf("no file should be written for an empty set, got %s", path)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("output dir should be empty, found %d entries", len(entries))
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse %s: %v", path, err)
	}
	return rows
}
