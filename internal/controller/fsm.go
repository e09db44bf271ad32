// Package controller orchestrates the audit pipeline behind an explicit
// finite-state machine. The transitions are pure functions of operator
// input, independent of how the input is obtained, so the whole flow can be
// driven by scripted readers in tests.
package controller

import "strings"

// State enumerates the controller states.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateNoFlags
	StateAwaitingChoice
	StateReported
	StateCancelled
	StateInvalidChoice
	StateAwaitingConfirm
	StateRemovedReported
	StateCancelledWithReport
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateNoFlags:
		return "no_flags"
	case StateAwaitingChoice:
		return "awaiting_choice"
	case StateReported:
		return "reported"
	case StateCancelled:
		return "cancelled"
	case StateInvalidChoice:
		return "invalid_choice"
	case StateAwaitingConfirm:
		return "awaiting_confirm"
	case StateRemovedReported:
		return "removed_reported"
	case StateCancelledWithReport:
		return "cancelled_with_report"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	switch s {
	case StateNoFlags, StateReported, StateCancelled, StateInvalidChoice,
		StateRemovedReported, StateCancelledWithReport:
		return true
	default:
		return false
	}
}

// ScanOutcome is the Scanning transition: an empty flagged table terminates
// the run, otherwise the operator is asked to choose.
func ScanOutcome(flaggedCount int) State {
	if flaggedCount == 0 {
		return StateNoFlags
	}
	return StateAwaitingChoice
}

// Next applies operator input to an input-accepting state. Input is
// trimmed and lowercased; unrecognized input on the primary choice is an
// explicit no-op terminal state, and anything but "yes" on the secondary
// confirmation cancels with a report. States that accept no input are
// returned unchanged.
func (s State) Next(input string) State {
	input = strings.ToLower(strings.TrimSpace(input))

	switch s {
	case StateAwaitingChoice:
		switch input {
		case "report":
			return StateReported
		case "cancel":
			return StateCancelled
		case "confirm":
			return StateAwaitingConfirm
		default:
			return StateInvalidChoice
		}
	case StateAwaitingConfirm:
		if input == "yes" {
			return StateRemovedReported
		}
		return StateCancelledWithReport
	default:
		return s
	}
}
