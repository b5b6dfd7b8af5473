package model

import "time"

// TimeEntry status values.  An entry is created "active" by clock-in and
// becomes "completed" exactly once, at clock-out.  Completed is terminal.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// TimeEntry is one clock-in-to-clock-out span for a user on a given date,
// as stored in the `time_entries` table (breaks live in the `breaks`
// table but are always loaded and saved together with their entry).
//
// All timestamps are UTC and truncated to the minute.  Using full
// timestamps rather than HH:MM strings keeps spans that cross midnight
// well-defined; the familiar HH:MM figures are derived for display only.
//
// Fields:
//  ID         – UUID assigned at clock-in; immutable.
//  UserID     – owning account; immutable.
//  Date       – calendar date of clock-in, "YYYY-MM-DD" (UTC); immutable.
//  ClockIn    – when the session started; immutable.
//  ClockOut   – when the session ended; nil while active, set exactly once.
//  Breaks     – ordered breaks, insertion order = chronological order.
//               Append-only, except that the last break is updated once
//               when it ends.
//  TotalHours – decimal worked hours for a completed session; nil while
//               active.
//  Status     – StatusActive or StatusCompleted.
//  Version    – optimistic concurrency counter checked on every update.
type TimeEntry struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Date       string     `json:"date"`
	ClockIn    time.Time  `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut"`
	Breaks     []Break    `json:"breaks"`
	TotalHours *float64   `json:"totalHours"`
	Status     string     `json:"status"`
	Version    int64      `json:"version"`
}

// Break is a sub-interval of a TimeEntry during which worked time does
// not accrue.  EndTime and Duration are nil while the break is open; an
// open break is always the last element of its entry's Breaks slice.
type Break struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  *int       `json:"duration"` // whole minutes
}

// OpenBreak returns a pointer to the entry's open break, or nil when
// every break is closed.  By invariant the open break can only be the
// last element.
func (e *TimeEntry) OpenBreak() *Break {
	if len(e.Breaks) == 0 {
		return nil
	}
	last := &e.Breaks[len(e.Breaks)-1]
	if last.EndTime == nil {
		return last
	}
	return nil
}

// Clone returns a deep copy of the entry.  Stores and services hand out
// clones so callers can never mutate shared state in place.
func (e *TimeEntry) Clone() *TimeEntry {
	cp := *e
	if e.ClockOut != nil {
		t := *e.ClockOut
		cp.ClockOut = &t
	}
	if e.TotalHours != nil {
		h := *e.TotalHours
		cp.TotalHours = &h
	}
	cp.Breaks = make([]Break, len(e.Breaks))
	for i, b := range e.Breaks {
		nb := b
		if b.EndTime != nil {
			t := *b.EndTime
			nb.EndTime = &t
		}
		if b.Duration != nil {
			d := *b.Duration
			nb.Duration = &d
		}
		cp.Breaks[i] = nb
	}
	return &cp
}
