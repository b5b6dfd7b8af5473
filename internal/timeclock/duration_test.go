package timeclock_test

import (
	"testing"
	"time"

	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/timeclock"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 8, 24, hour, min, 0, 0, time.UTC)
}

func TestMinutesBetween(t *testing.T) {
	tests := []struct {
		name    string
		t1, t2  time.Time
		want    int
		wantErr bool
	}{
		{"zero span", at(9, 0), at(9, 0), 0, false},
		{"same hour", at(9, 0), at(9, 45), 45, false},
		{"across hours", at(9, 30), at(17, 0), 450, false},
		{"across midnight", time.Date(2026, 8, 24, 23, 30, 0, 0, time.UTC), time.Date(2026, 8, 25, 0, 15, 0, 0, time.UTC), 45, false},
		{"reversed", at(10, 0), at(9, 0), 0, true},
	}
	for _, tt := range tests {
		got, err := timeclock.MinutesBetween(tt.t1, tt.t2)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %d", tt.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: MinutesBetween = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestTotalHoursNoBreaks(t *testing.T) {
	out := at(17, 0)
	e := &model.TimeEntry{ClockIn: at(9, 0), ClockOut: &out}
	got, err := timeclock.TotalHours(e)
	if err != nil {
		t.Fatalf("TotalHours: %v", err)
	}
	if got != 8.0 {
		t.Errorf("TotalHours = %v, want 8.0", got)
	}
}

func TestTotalHoursSubtractsClosedBreaks(t *testing.T) {
	// Clock in 09:00, break 12:00-12:30, clock out 17:00 -> 480-30 = 450 min = 7.5h.
	out := at(17, 0)
	end := at(12, 30)
	dur := 30
	e := &model.TimeEntry{
		ClockIn:  at(9, 0),
		ClockOut: &out,
		Breaks: []model.Break{
			{ID: "b1", StartTime: at(12, 0), EndTime: &end, Duration: &dur},
		},
	}
	got, err := timeclock.TotalHours(e)
	if err != nil {
		t.Fatalf("TotalHours: %v", err)
	}
	if got != 7.5 {
		t.Errorf("TotalHours = %v, want 7.5", got)
	}
}

func TestTotalHoursActiveEntryRejected(t *testing.T) {
	e := &model.TimeEntry{ClockIn: at(9, 0)}
	if _, err := timeclock.TotalHours(e); err == nil {
		t.Error("expected error for entry without clock-out")
	}
}

func TestLiveMinutes(t *testing.T) {
	end := at(12, 30)
	dur := 30
	closed := model.Break{ID: "b1", StartTime: at(12, 0), EndTime: &end, Duration: &dur}
	open := model.Break{ID: "b2", StartTime: at(14, 0)}

	tests := []struct {
		name   string
		breaks []model.Break
		now    time.Time
		want   int
	}{
		{"no breaks", nil, at(10, 0), 60},
		{"closed break excluded", []model.Break{closed}, at(13, 0), 210},
		{"open break elapsed excluded", []model.Break{closed, open}, at(14, 20), 250},
	}
	for _, tt := range tests {
		e := &model.TimeEntry{ClockIn: at(9, 0), Breaks: tt.breaks}
		got, err := timeclock.LiveMinutes(e, tt.now)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: LiveMinutes = %d, want %d", tt.name, got, tt.want)
		}
	}
}
