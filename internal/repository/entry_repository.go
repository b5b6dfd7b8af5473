package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/timeclock"
)

// EntryRepo is the MySQL implementation of timeclock.EntryStore.  An
// entry and its breaks always travel together: Create and Update run in
// a single transaction so a failed write leaves the stored data exactly
// as it was.  All timestamps are stored as UTC DATETIMEs (the DSN sets
// parseTime=true&loc=UTC).
type EntryRepo struct{ DB *sql.DB }

func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{DB: db} }

// Create inserts a new entry and its breaks.  The unique index on the
// generated active_user column makes a racing second active insert fail
// with a duplicate-key error, which surfaces as ErrWriteConflict.
func (r *EntryRepo) Create(ctx context.Context, e *model.TimeEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO time_entries (id, user_id, entry_date, clock_in, clock_out, total_hours, status, version)
		 VALUES (?,?,?,?,?,?,?,?)`,
		e.ID, e.UserID, e.Date, e.ClockIn, nullTime(e.ClockOut), nullFloat(e.TotalHours), e.Status, e.Version)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return timeclock.ErrWriteConflict
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	if err := insertBreaksTx(ctx, tx, e); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	return nil
}

// Update rewrites the entry row under an optimistic version check and
// replaces its breaks.  On success the entry's Version is advanced to
// the newly stored value.
func (r *EntryRepo) Update(ctx context.Context, e *model.TimeEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE time_entries
		 SET clock_out=?, total_hours=?, status=?, version=version+1
		 WHERE id=? AND version=?`,
		nullTime(e.ClockOut), nullFloat(e.TotalHours), e.Status, e.ID, e.Version)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		// Distinguish a stale version from a missing row.
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM time_entries WHERE id=? LIMIT 1", e.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return timeclock.ErrEntryNotFound
		}
		if err != nil {
			return fmt.Errorf("check entry: %w", err)
		}
		return timeclock.ErrWriteConflict
	}

	// Breaks are few per entry; a delete-and-reinsert keeps the slice and
	// the table trivially in sync.
	if _, err := tx.ExecContext(ctx, "DELETE FROM breaks WHERE entry_id=?", e.ID); err != nil {
		return fmt.Errorf("clear breaks: %w", err)
	}
	if err := insertBreaksTx(ctx, tx, e); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	committed = true
	e.Version++
	return nil
}

// ActiveByUser returns the user's single active entry with its breaks,
// or (nil, nil) when the user is not clocked in.
func (r *EntryRepo) ActiveByUser(ctx context.Context, userID string) (*model.TimeEntry, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, entry_date, clock_in, clock_out, total_hours, status, version
		 FROM time_entries WHERE user_id=? AND status='active' LIMIT 1`, userID)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query active entry: %w", err)
	}
	if err := r.loadBreaks(ctx, map[string]*model.TimeEntry{e.ID: e}); err != nil {
		return nil, err
	}
	return e, nil
}

// Query returns entries matching the filter, newest first, with breaks
// attached.
func (r *EntryRepo) Query(ctx context.Context, f timeclock.QueryFilter) ([]model.TimeEntry, error) {
	q := `SELECT id, user_id, entry_date, clock_in, clock_out, total_hours, status, version
	      FROM time_entries WHERE 1=1`
	var args []interface{}
	if f.UserID != "" {
		q += " AND user_id=?"
		args = append(args, f.UserID)
	}
	if f.From != "" {
		q += " AND entry_date>=?"
		args = append(args, f.From)
	}
	if f.To != "" {
		q += " AND entry_date<=?"
		args = append(args, f.To)
	}
	q += " ORDER BY entry_date DESC, clock_in DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.TimeEntry
	byID := make(map[string]*model.TimeEntry)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadBreaks(ctx, byID); err != nil {
		return nil, err
	}

	out := make([]model.TimeEntry, len(entries))
	for i, e := range entries {
		out[i] = *e
	}
	return out, nil
}

// loadBreaks attaches breaks (in seq order) to every entry in the map
// with a single IN query.
func (r *EntryRepo) loadBreaks(ctx context.Context, byID map[string]*model.TimeEntry) error {
	if len(byID) == 0 {
		return nil
	}
	placeholders := make([]string, 0, len(byID))
	args := make([]interface{}, 0, len(byID))
	for id, e := range byID {
		placeholders = append(placeholders, "?")
		args = append(args, id)
		e.Breaks = []model.Break{}
	}
	q := fmt.Sprintf(
		`SELECT id, entry_id, start_time, end_time, duration_min
		 FROM breaks WHERE entry_id IN (%s) ORDER BY entry_id, seq`,
		strings.Join(placeholders, ","))

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("query breaks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			b       model.Break
			entryID string
			end     sql.NullTime
			dur     sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &entryID, &b.StartTime, &end, &dur); err != nil {
			return fmt.Errorf("scan break: %w", err)
		}
		b.StartTime = b.StartTime.UTC()
		if end.Valid {
			t := end.Time.UTC()
			b.EndTime = &t
		}
		if dur.Valid {
			d := int(dur.Int64)
			b.Duration = &d
		}
		if e, ok := byID[entryID]; ok {
			e.Breaks = append(e.Breaks, b)
		}
	}
	return rows.Err()
}

func insertBreaksTx(ctx context.Context, tx *sql.Tx, e *model.TimeEntry) error {
	for i, b := range e.Breaks {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO breaks (id, entry_id, seq, start_time, end_time, duration_min)
			 VALUES (?,?,?,?,?,?)`,
			b.ID, e.ID, i, b.StartTime, nullTime(b.EndTime), nullInt(b.Duration))
		if err != nil {
			return fmt.Errorf("insert break: %w", err)
		}
	}
	return nil
}

// rowScanner lets scanEntry serve both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*model.TimeEntry, error) {
	var (
		e     model.TimeEntry
		date  time.Time
		out   sql.NullTime
		hours sql.NullFloat64
	)
	err := row.Scan(&e.ID, &e.UserID, &date, &e.ClockIn, &out, &hours, &e.Status, &e.Version)
	if err != nil {
		return nil, err
	}
	e.Date = date.Format("2006-01-02")
	e.ClockIn = e.ClockIn.UTC()
	if out.Valid {
		t := out.Time.UTC()
		e.ClockOut = &t
	}
	if hours.Valid {
		h := hours.Float64
		e.TotalHours = &h
	}
	return &e, nil
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullInt(i *int) interface{} {
	if i == nil {
		return nil
	}
	return *i
}

var _ timeclock.EntryStore = (*EntryRepo)(nil)
