// Package export renders time entries into downloadable timesheets
// (Excel and PDF).  Both formats share one tabular projection so the
// files always agree on columns and formatting.
package export

import (
	"fmt"

	"github.com/iliyamo/staff-timeclock/internal/model"
)

// Header is the column set shared by every export format.
var Header = []string{"Date", "Staff Name", "Clock In", "Clock Out", "Break Time (min)", "Total Hours", "Status"}

// Row is one rendered timesheet line.  All values are display strings;
// absent values ("still clocked in") render as "-".
type Row struct {
	Date      string
	StaffName string
	ClockIn   string
	ClockOut  string
	BreakMin  string
	Hours     string
	Status    string
}

// Columns returns the row as a slice ordered like Header.
func (r Row) Columns() []string {
	return []string{r.Date, r.StaffName, r.ClockIn, r.ClockOut, r.BreakMin, r.Hours, r.Status}
}

// BuildRows projects entries into display rows.  names maps user id to
// display name; an unknown id falls back to the raw id so a deleted
// account still produces a traceable line.  The input order is kept.
func BuildRows(entries []model.TimeEntry, names map[string]string) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		name, ok := names[e.UserID]
		if !ok {
			name = e.UserID
		}

		out := "-"
		if e.ClockOut != nil {
			out = e.ClockOut.Format("15:04")
		}
		hours := "-"
		if e.TotalHours != nil {
			hours = fmt.Sprintf("%.2f", *e.TotalHours)
		}

		breakMin := 0
		for _, b := range e.Breaks {
			if b.Duration != nil {
				breakMin += *b.Duration
			}
		}

		rows = append(rows, Row{
			Date:      e.Date,
			StaffName: name,
			ClockIn:   e.ClockIn.Format("15:04"),
			ClockOut:  out,
			BreakMin:  fmt.Sprintf("%d", breakMin),
			Hours:     hours,
			Status:    e.Status,
		})
	}
	return rows
}
