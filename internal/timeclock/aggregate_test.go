package timeclock_test

import (
	"testing"

	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/timeclock"
)

func completed(user, date string, hours float64) model.TimeEntry {
	h := hours
	return model.TimeEntry{UserID: user, Date: date, TotalHours: &h, Status: model.StatusCompleted}
}

func TestWeekWindow(t *testing.T) {
	from, to, err := timeclock.WeekWindow("2026-08-24")
	if err != nil {
		t.Fatalf("WeekWindow: %v", err)
	}
	if from != "2026-08-24" || to != "2026-08-30" {
		t.Errorf("WeekWindow = [%s, %s], want [2026-08-24, 2026-08-30]", from, to)
	}
	if _, _, err := timeclock.WeekWindow("24/08/2026"); err == nil {
		t.Error("expected error for malformed week start")
	}
}

func TestTotalHoursForDate(t *testing.T) {
	entries := []model.TimeEntry{
		completed("u1", "2026-08-24", 4.0),
		completed("u1", "2026-08-24", 3.5),
		completed("u1", "2026-08-25", 8.0), // other date
		completed("u2", "2026-08-24", 6.0), // other user
		{UserID: "u1", Date: "2026-08-24", Status: model.StatusActive}, // active, nil TotalHours
	}
	got := timeclock.TotalHoursForDate(entries, "u1", "2026-08-24")
	if got != 7.5 {
		t.Errorf("TotalHoursForDate = %v, want 7.5", got)
	}
}

// Entries from outside the 7-day window must not contribute; the
// original implementation summed everything regardless of date.
func TestTotalHoursForWeekFiltersWindow(t *testing.T) {
	entries := []model.TimeEntry{
		completed("u1", "2026-08-24", 8.0), // Monday, in window
		completed("u1", "2026-08-30", 4.0), // Sunday, in window (inclusive end)
		completed("u1", "2026-08-23", 9.0), // day before window
		completed("u1", "2026-08-31", 9.0), // day after window
		completed("u1", "2026-07-01", 9.0), // far outside
		completed("u2", "2026-08-25", 9.0), // other user
	}
	got, err := timeclock.TotalHoursForWeek(entries, "u1", "2026-08-24")
	if err != nil {
		t.Fatalf("TotalHoursForWeek: %v", err)
	}
	if got != 12.0 {
		t.Errorf("TotalHoursForWeek = %v, want 12.0", got)
	}
}

func TestTotalHoursForWeekEmpty(t *testing.T) {
	got, err := timeclock.TotalHoursForWeek(nil, "u1", "2026-08-24")
	if err != nil {
		t.Fatalf("TotalHoursForWeek: %v", err)
	}
	if got != 0 {
		t.Errorf("TotalHoursForWeek = %v, want 0", got)
	}
}
