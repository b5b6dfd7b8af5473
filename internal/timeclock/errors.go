// Package timeclock owns the business rules for work sessions (clock-in
// to clock-out) and breaks, and the derived totals consumed by dashboards
// and reports.  It is parameterized by an injected EntryStore so the same
// rules run against MySQL in production and an in-memory store in tests.
package timeclock

import "errors"

// Sentinel errors for domain-rule violations.  Every one of these means
// the operation was rejected and nothing changed; handlers translate
// them into HTTP 409 responses.
var (
	// ErrAlreadyClockedIn – clock-in while an active entry exists.
	ErrAlreadyClockedIn = errors.New("already clocked in")
	// ErrNoActiveSession – clock-out or break start/end with no active entry.
	ErrNoActiveSession = errors.New("no active session")
	// ErrBreakAlreadyInProgress – break start while a break is open.
	ErrBreakAlreadyInProgress = errors.New("break already in progress")
	// ErrNoBreakInProgress – break end with no open break.
	ErrNoBreakInProgress = errors.New("no break in progress")
	// ErrBreakInProgress – clock-out while a break is open.  The break
	// must be ended first; the service never auto-closes it.
	ErrBreakInProgress = errors.New("break in progress")
)

// Storage-layer errors surfaced through the EntryStore contract.
var (
	// ErrEntryNotFound – the referenced entry does not exist.
	ErrEntryNotFound = errors.New("time entry not found")
	// ErrWriteConflict – the entry changed underneath us (version check
	// failed), e.g. the same user clocking out from two browser tabs.
	ErrWriteConflict = errors.New("write conflict")
)
