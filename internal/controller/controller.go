package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aatumaykin/giscleanup/internal/audit"
	"github.com/aatumaykin/giscleanup/internal/config"
	"github.com/aatumaykin/giscleanup/internal/logger"
	"github.com/aatumaykin/giscleanup/internal/portal"
	"github.com/aatumaykin/giscleanup/internal/report"
)

// Options configures a Controller run.
type Options struct {
	Thresholds config.ThresholdsConfig
	Limits     config.LimitsConfig
	OutputDir  string
	HomeURL    string // base URL for synthesized item links
	ReportOnly bool   // behave as if the operator typed "report"
	Now        func() time.Time
}

// Controller drives the audit pipeline: scan, flag, prompt, optionally
// remove, report. Input and output are injected so tests can script the
// interactive flow.
type Controller struct {
	portal portal.Portal
	opts   Options
	in     *bufio.Scanner
	out    io.Writer
	logger *logger.Logger
}

// New creates a Controller reading operator input from in and writing
// console output to out.
func New(p portal.Portal, opts Options, in io.Reader, out io.Writer, log *logger.Logger) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Controller{
		portal: p,
		opts:   opts,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: log,
	}
}

// Run executes one audit run and returns the terminal state. A session or
// scan failure is fatal; everything after the scan follows the state
// machine.
func (c *Controller) Run(ctx context.Context) (State, error) {
	session, err := c.portal.Self(ctx)
	if err != nil {
		return StateIdle, fmt.Errorf("failed to establish session: %w", err)
	}
	fmt.Fprintf(c.out, "Connected to organization: %s as %s\n", session.Org.Name, session.Username)

	cutoffs := audit.NewCutoffs(c.opts.Now(), c.opts.Thresholds)

	// Scanning: inactive users, then their content.
	finder := audit.NewFinder(c.portal, cutoffs, c.opts.Limits.MaxUsers, c.logger)
	inactive, err := finder.FindInactive(ctx)
	if err != nil {
		return StateScanning, err
	}

	usersFile, err := report.WriteInactiveUsersCSV(c.opts.OutputDir, cutoffs.Timestamp, inactive)
	if err != nil {
		return StateScanning, err
	}
	fmt.Fprintf(c.out, "Inactive users exported: %s\n", usersFile)

	flagger := audit.NewFlagger(c.portal, cutoffs, session.Org, c.opts.Limits.MaxItemsPerUser, c.opts.HomeURL, c.logger)
	flagged := flagger.FlagContent(ctx, audit.Usernames(inactive))

	if itemsFile, err := report.WriteFlaggedItemsCSV(c.opts.OutputDir, cutoffs.Timestamp, flagged); err != nil {
		return StateScanning, err
	} else if itemsFile != "" {
		fmt.Fprintf(c.out, "Flagged content exported: %s\n", itemsFile)
	}

	state := ScanOutcome(len(flagged))
	if state == StateNoFlags {
		fmt.Fprintln(c.out, "No flagged content found.")
		return state, nil
	}

	data := report.Data{Session: session, Inactive: inactive, Flagged: flagged}

	fmt.Fprintf(c.out, "%d items flagged for potential removal.\n", len(flagged))
	fmt.Fprintln(c.out, "Options:")
	fmt.Fprintln(c.out, "Type 'report'  → Generate a report of flagged items")
	fmt.Fprintln(c.out, "Type 'cancel'  → Exit without removing anything")
	fmt.Fprintln(c.out, "Type 'confirm' → Proceed to removal of flagged items")

	choice := "report"
	if !c.opts.ReportOnly {
		choice = c.prompt("Enter your choice: ")
	}

	state = state.Next(choice)
	switch state {
	case StateReported:
		if err := c.writeReport(cutoffs.Timestamp, data); err != nil {
			return state, err
		}
	case StateCancelled:
		fmt.Fprintln(c.out, "Exiting without changes.")
	case StateInvalidChoice:
		fmt.Fprintln(c.out, "Invalid choice. No actions taken.")
	case StateAwaitingConfirm:
		answer := c.prompt("Are you sure you want to remove flagged items? (yes/no): ")
		state = state.Next(answer)

		if state == StateRemovedReported {
			remover := audit.NewRemover(c.portal, c.out, c.logger)
			removed, failed := remover.Remove(ctx, flagged)
			if failed > 0 {
				fmt.Fprintf(c.out, "%d items could not be removed.\n", failed)
			}
			data.Removed = removed
		} else {
			fmt.Fprintln(c.out, "Exiting without changes.")
		}

		if err := c.writeReport(cutoffs.Timestamp, data); err != nil {
			return state, err
		}
	}

	c.logger.Info("audit run finished",
		logger.Field{Key: "state", Value: state.String()},
		logger.Field{Key: "inactive_users", Value: len(inactive)},
		logger.Field{Key: "flagged_items", Value: len(flagged)},
		logger.Field{Key: "removed_items", Value: len(data.Removed)})

	return state, nil
}

func (c *Controller) writeReport(timestamp string, data report.Data) error {
	path, err := report.Write(c.opts.OutputDir, timestamp, data, c.opts.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Report generated: %s\n", path)
	return nil
}

func (c *Controller) prompt(message string) string {
	fmt.Fprint(c.out, message)
	if !c.in.Scan() {
		return ""
	}
	return c.in.Text()
}
