// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried by ClockEvent.
const (
	ActionClockIn    = "clock_in"
	ActionClockOut   = "clock_out"
	ActionBreakStart = "break_start"
	ActionBreakEnd   = "break_end"
)

// ClockEvent is published whenever a time entry changes state.  It
// carries enough information for downstream consumers to build an audit
// trail without querying the primary database.
type ClockEvent struct {
	Action     string   `json:"action"` // clock_in | clock_out | break_start | break_end
	EntryID    string   `json:"entry_id"`
	UserID     string   `json:"user_id"`
	UserEmail  string   `json:"user_email"`
	Date       string   `json:"date"` // YYYY-MM-DD
	OccurredAt string   `json:"occurred_at"`
	TotalHours *float64 `json:"total_hours,omitempty"` // set on clock_out
}
