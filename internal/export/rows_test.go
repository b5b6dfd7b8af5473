package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/staff-timeclock/internal/model"
)

func ts(hour, min int) time.Time {
	return time.Date(2026, 8, 24, hour, min, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func TestBuildRows(t *testing.T) {
	out := ts(17, 30)
	entries := []model.TimeEntry{
		{
			ID: "e1", UserID: "u1", Date: "2026-08-24",
			ClockIn: ts(9, 0), ClockOut: &out,
			Breaks: []model.Break{
				{ID: "b1", StartTime: ts(12, 0), EndTime: ptr(ts(12, 30)), Duration: ptr(30)},
				{ID: "b2", StartTime: ts(15, 0), EndTime: ptr(ts(15, 15)), Duration: ptr(15)},
			},
			TotalHours: ptr(7.75), Status: model.StatusCompleted,
		},
		{
			ID: "e2", UserID: "u2", Date: "2026-08-24",
			ClockIn: ts(8, 15),
			Breaks:  []model.Break{},
			Status:  model.StatusActive,
		},
	}
	names := map[string]string{"u1": "Dana Example"}

	rows := BuildRows(entries, names)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Date: "2026-08-24", StaffName: "Dana Example",
		ClockIn: "09:00", ClockOut: "17:30",
		BreakMin: "45", Hours: "7.75", Status: "completed",
	}, rows[0])

	// Unknown user falls back to the raw id; open entry renders dashes.
	assert.Equal(t, Row{
		Date: "2026-08-24", StaffName: "u2",
		ClockIn: "08:15", ClockOut: "-",
		BreakMin: "0", Hours: "-", Status: "active",
	}, rows[1])
}

func TestBuildRowsIgnoresOpenBreakDuration(t *testing.T) {
	entries := []model.TimeEntry{{
		ID: "e1", UserID: "u1", Date: "2026-08-24",
		ClockIn: ts(9, 0),
		Breaks: []model.Break{
			{ID: "b1", StartTime: ts(12, 0), EndTime: ptr(ts(12, 30)), Duration: ptr(30)},
			{ID: "b2", StartTime: ts(14, 0)}, // still open, no duration yet
		},
		Status: model.StatusActive,
	}}

	rows := BuildRows(entries, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "30", rows[0].BreakMin)
}

func TestExcelProducesWorkbook(t *testing.T) {
	rows := BuildRows([]model.TimeEntry{{
		ID: "e1", UserID: "u1", Date: "2026-08-24",
		ClockIn: ts(9, 0), ClockOut: ptr(ts(17, 0)),
		Breaks: []model.Break{}, TotalHours: ptr(8.0), Status: model.StatusCompleted,
	}}, map[string]string{"u1": "Dana Example"})

	blob, err := Excel(rows)
	require.NoError(t, err)
	// xlsx files are zip archives: PK magic.
	require.Greater(t, len(blob), 4)
	assert.Equal(t, []byte{'P', 'K'}, blob[:2])
}

func TestPDFProducesDocument(t *testing.T) {
	rows := BuildRows([]model.TimeEntry{{
		ID: "e1", UserID: "u1", Date: "2026-08-24",
		ClockIn: ts(9, 0), ClockOut: ptr(ts(17, 0)),
		Breaks: []model.Break{}, TotalHours: ptr(8.0), Status: model.StatusCompleted,
	}}, map[string]string{"u1": "Dana Example"})

	blob, err := PDF(rows, time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Greater(t, len(blob), 5)
	assert.Equal(t, []byte("%PDF-"), blob[:5])
}
