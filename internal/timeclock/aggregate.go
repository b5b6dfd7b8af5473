package timeclock

import (
	"fmt"
	"time"

	"github.com/iliyamo/staff-timeclock/internal/model"
)

// WeekWindow returns the inclusive [start, end] date strings of the
// 7-day window beginning at weekStart ("YYYY-MM-DD").
func WeekWindow(weekStart string) (string, string, error) {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return "", "", fmt.Errorf("invalid week start %q: %w", weekStart, err)
	}
	end := start.AddDate(0, 0, 6)
	return weekStart, end.Format("2006-01-02"), nil
}

// TotalHoursForDate sums TotalHours over the user's completed entries on
// the given date.  Active entries (TotalHours == nil) never contribute.
func TotalHoursForDate(entries []model.TimeEntry, userID, date string) float64 {
	total := 0.0
	for _, e := range entries {
		if e.UserID != userID || e.Date != date || e.TotalHours == nil {
			continue
		}
		total += *e.TotalHours
	}
	return total
}

// TotalHoursForWeek sums TotalHours over the user's completed entries
// whose date falls in [weekStart, weekStart+6d] inclusive.  Entries from
// other weeks never contribute.  ISO dates compare correctly as strings,
// so the window check is a plain string range test.
func TotalHoursForWeek(entries []model.TimeEntry, userID, weekStart string) (float64, error) {
	from, to, err := WeekWindow(weekStart)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, e := range entries {
		if e.UserID != userID || e.TotalHours == nil {
			continue
		}
		if e.Date < from || e.Date > to {
			continue
		}
		total += *e.TotalHours
	}
	return total, nil
}
