package timeclock

import (
	"fmt"
	"time"

	"github.com/iliyamo/staff-timeclock/internal/model"
)

// TruncateMinute normalizes a timestamp to UTC with second precision
// dropped.  Every timestamp the service stores goes through this, which
// is what makes the minute arithmetic below exact.
func TruncateMinute(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

// DateOf returns the UTC calendar date of t as "YYYY-MM-DD".
func DateOf(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MinutesBetween returns the whole minutes from t1 to t2.  Because
// entries carry full timestamps, a span crossing midnight is an ordinary
// positive span; a t2 earlier than t1 can only be caller error and is
// rejected rather than returned as a negative figure.
func MinutesBetween(t1, t2 time.Time) (int, error) {
	if t2.Before(t1) {
		return 0, fmt.Errorf("end %s precedes start %s", t2.Format(time.RFC3339), t1.Format(time.RFC3339))
	}
	return int(t2.Sub(t1) / time.Minute), nil
}

// ClosedBreakMinutes sums the durations of the entry's closed breaks.
// An open break contributes nothing here.
func ClosedBreakMinutes(e *model.TimeEntry) int {
	total := 0
	for _, b := range e.Breaks {
		if b.Duration != nil {
			total += *b.Duration
		}
	}
	return total
}

// TotalHours computes the stored decimal figure for a completed entry:
// (session minutes − closed break minutes) / 60.
func TotalHours(e *model.TimeEntry) (float64, error) {
	if e.ClockOut == nil {
		return 0, fmt.Errorf("entry %s has no clock-out", e.ID)
	}
	mins, err := MinutesBetween(e.ClockIn, *e.ClockOut)
	if err != nil {
		return 0, err
	}
	worked := mins - ClosedBreakMinutes(e)
	if worked < 0 {
		worked = 0
	}
	return float64(worked) / 60.0, nil
}

// LiveMinutes returns the minutes worked so far by an active entry at
// `now`.  Unlike the stored TotalHours, the elapsed part of an open
// break counts as non-work here, so the live figure never inflates while
// someone is on break.  This is a read-only projection; nothing derived
// from it is persisted.
func LiveMinutes(e *model.TimeEntry, now time.Time) (int, error) {
	now = TruncateMinute(now)
	elapsed, err := MinutesBetween(e.ClockIn, now)
	if err != nil {
		return 0, err
	}
	worked := elapsed - ClosedBreakMinutes(e)
	if ob := e.OpenBreak(); ob != nil {
		onBreak, err := MinutesBetween(ob.StartTime, now)
		if err != nil {
			return 0, err
		}
		worked -= onBreak
	}
	if worked < 0 {
		worked = 0
	}
	return worked, nil
}
