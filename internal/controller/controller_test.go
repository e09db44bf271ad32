package controller

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aatumaykin/giscleanup/internal/config"
	"github.com/aatumaykin/giscleanup/internal/logger"
	"github.com/aatumaykin/giscleanup/internal/portal"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

const testTimestamp = "20250615_120000"

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Format: "text", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func yearsAgoMillis(years float64) int64 {
	return testNow.Add(-time.Duration(years * 365 * 24 * float64(time.Hour))).UnixMilli()
}

func testFixture() portal.Fixture {
	return portal.Fixture{
		Org:      portal.Org{ID: "org1", Name: "Test Org"},
		Executor: "admin",
		Users: []portal.User{
			{Username: "active", FullName: "Active User", LastLogin: yearsAgoMillis(0.1)},
			{Username: "ghost", FullName: "Ghost User", LastLogin: 0},
			{Username: "olduser", FullName: "Old User", Email: "old@example.com", LastLogin: yearsAgoMillis(5)},
		},
		Items: []portal.Item{
			{ID: "i1", Title: "Ancient Map", Owner: "ghost", Type: "Web Map", Modified: yearsAgoMillis(9), LastViewed: 0},
			{ID: "i2", Title: "Dusty Layer", Owner: "olduser", Type: "Feature Layer", Modified: yearsAgoMillis(9), LastViewed: yearsAgoMillis(0.5)},
			{ID: "i3", Title: "Fresh App", Owner: "olduser", Type: "Web App", Modified: yearsAgoMillis(0.2), LastViewed: yearsAgoMillis(0.1)},
		},
	}
}

func runController(t *testing.T, fixture portal.Fixture, input string, reportOnly bool) (*portal.FixtureProvider, State, string, string) {
	t.Helper()

	dir := t.TempDir()
	provider := portal.NewFixtureProvider(fixture)

	var out bytes.Buffer
	ctrl := New(provider, Options{
		Thresholds: config.ThresholdsConfig{YearsUnviewed: 1, YearsInactive: 4, YearsUnmodified: 8},
		Limits:     config.LimitsConfig{MaxUsers: 1000, MaxItemsPerUser: 100},
		OutputDir:  dir,
		HomeURL:    "https://gis.example.com",
		ReportOnly: reportOnly,
		Now:        func() time.Time { return testNow },
	}, strings.NewReader(input), &out, newTestLogger(t))

	state, err := ctrl.Run(context.Background())
	require.NoError(t, err)

	return provider, state, dir, out.String()
}

func readArtifact(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRunReportChoice(t *testing.T) {
	provider, state, dir, out := runController(t, testFixture(), "report\n", false)

	assert.Equal(t, StateReported, state)
	assert.Empty(t, provider.Deleted())
	assert.Contains(t, out, "Connected to organization: Test Org as admin")
	assert.Contains(t, out, "2 items flagged for potential removal.")

	users := readArtifact(t, dir, "inactive_users_"+testTimestamp+".csv")
	assert.Contains(t, users, "Username,Full Name,Email,Last Login")
	assert.Contains(t, users, "ghost,Ghost User,N/A,Never")
	assert.Contains(t, users, "olduser,Old User,old@example.com,")
	assert.NotContains(t, users, "active,")

	items := readArtifact(t, dir, "flagged_items_"+testTimestamp+".csv")
	assert.Contains(t, items, "Ancient Map")
	assert.Contains(t, items, "unmodified & unviewed")
	assert.Contains(t, items, "Dusty Layer")
	assert.NotContains(t, items, "Fresh App")

	rep := readArtifact(t, dir, "cleanup_report_"+testTimestamp+".txt")
	assert.Contains(t, rep, "Executor: admin")
	assert.Contains(t, rep, "Total Removed Items: 0")
	assert.Contains(t, rep, "Ancient Map")
}

func TestRunCancelChoice(t *testing.T) {
	provider, state, dir, out := runController(t, testFixture(), "cancel\n", false)

	assert.Equal(t, StateCancelled, state)
	assert.Empty(t, provider.Deleted())
	assert.Contains(t, out, "Exiting without changes.")

	_, err := os.Stat(filepath.Join(dir, "cleanup_report_"+testTimestamp+".txt"))
	assert.True(t, os.IsNotExist(err), "cancel must not write a report")
}

func TestRunInvalidChoice(t *testing.T) {
	provider, state, dir, out := runController(t, testFixture(), "delete\n", false)

	assert.Equal(t, StateInvalidChoice, state)
	assert.Empty(t, provider.Deleted())
	assert.Contains(t, out, "Invalid choice. No actions taken.")

	_, err := os.Stat(filepath.Join(dir, "cleanup_report_"+testTimestamp+".txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunConfirmYes(t *testing.T) {
	provider, state, dir, out := runController(t, testFixture(), "confirm\nyes\n", false)

	assert.Equal(t, StateRemovedReported, state)
	assert.Equal(t, []string{"i1", "i2"}, provider.Deleted())
	assert.Contains(t, out, "Deleted: Ancient Map (ID: i1)")

	rep := readArtifact(t, dir, "cleanup_report_"+testTimestamp+".txt")
	assert.Contains(t, rep, "Total Removed Items: 2")
}

func TestRunConfirmThenNo(t *testing.T) {
	provider, state, dir, out := runController(t, testFixture(), "confirm\nno\n", false)

	assert.Equal(t, StateCancelledWithReport, state)
	assert.Empty(t, provider.Deleted(), "confirm followed by no must not delete")
	assert.Contains(t, out, "Exiting without changes.")

	// Report is still generated and lists the flagged (not removed) items.
	rep := readArtifact(t, dir, "cleanup_report_"+testTimestamp+".txt")
	assert.Contains(t, rep, "Total Removed Items: 0")
	assert.Contains(t, rep, "Ancient Map")
	assert.Contains(t, rep, "Dusty Layer")
}

func TestRunConfirmYesWithFailures(t *testing.T) {
	fixture := testFixture()
	fixture.DeleteFails = []string{"i1"}

	provider, state, dir, out := runController(t, fixture, "confirm\nyes\n", false)

	assert.Equal(t, StateRemovedReported, state)
	assert.Equal(t, []string{"i2"}, provider.Deleted())
	assert.Contains(t, out, "1 items could not be removed.")

	rep := readArtifact(t, dir, "cleanup_report_"+testTimestamp+".txt")
	assert.Contains(t, rep, "Total Removed Items: 1")
}

func TestRunNoFlags(t *testing.T) {
	fixture := testFixture()
	fixture.Items = []portal.Item{
		{ID: "i3", Title: "Fresh App", Owner: "olduser", Modified: yearsAgoMillis(0.2), LastViewed: yearsAgoMillis(0.1)},
	}

	_, state, dir, out := runController(t, fixture, "", false)

	assert.Equal(t, StateNoFlags, state)
	assert.Contains(t, out, "No flagged content found.")

	// Inactive users CSV is still written, but neither the flagged CSV nor
	// the report are.
	_, err := os.Stat(filepath.Join(dir, "inactive_users_"+testTimestamp+".csv"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "flagged_items_"+testTimestamp+".csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "cleanup_report_"+testTimestamp+".txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunReportOnlySkipsPrompt(t *testing.T) {
	// No input at all: --report-only must not block on the choice prompt.
	provider, state, dir, _ := runController(t, testFixture(), "", true)

	assert.Equal(t, StateReported, state)
	assert.Empty(t, provider.Deleted())

	rep := readArtifact(t, dir, "cleanup_report_"+testTimestamp+".txt")
	assert.Contains(t, rep, "Total Flagged Content: 2")
}

func TestRunSessionFailureIsFatal(t *testing.T) {
	provider := portal.NewFixtureProvider(portal.Fixture{}) // no org

	var out bytes.Buffer
	ctrl := New(provider, Options{
		Thresholds: config.ThresholdsConfig{YearsUnviewed: 1, YearsInactive: 4, YearsUnmodified: 8},
		Limits:     config.LimitsConfig{MaxUsers: 1000, MaxItemsPerUser: 100},
		OutputDir:  t.TempDir(),
		Now:        func() time.Time { return testNow },
	}, strings.NewReader(""), &out, newTestLogger(t))

	_, err := ctrl.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to establish session")
}
