package timeclock_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/timeclock"
)

// failingStore wraps a MemoryStore and fails writes on demand, standing
// in for an unreachable database.
type failingStore struct {
	*timeclock.MemoryStore
	failWrites bool
}

var errUnavailable = errors.New("storage unavailable")

func (f *failingStore) Create(ctx context.Context, e *model.TimeEntry) error {
	if f.failWrites {
		return errUnavailable
	}
	return f.MemoryStore.Create(ctx, e)
}

func (f *failingStore) Update(ctx context.Context, e *model.TimeEntry) error {
	if f.failWrites {
		return errUnavailable
	}
	return f.MemoryStore.Update(ctx, e)
}

func TestClockInClockOutNoBreaks(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, "u1", at(9, 0))
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, in.Status)
	assert.Equal(t, "2026-08-24", in.Date)
	assert.Nil(t, in.ClockOut)
	assert.Nil(t, in.TotalHours)
	assert.Empty(t, in.Breaks)

	out, err := svc.ClockOut(ctx, "u1", at(17, 30))
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, out.Status)
	require.NotNil(t, out.TotalHours)
	// 510 minutes exactly.
	assert.Equal(t, 510.0/60.0, *out.TotalHours)
}

func TestFullDayScenario(t *testing.T) {
	// Clock in 09:00, break 12:00-12:30, clock out 17:00 -> 8.0 hours.
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "u1", at(9, 0))
	require.NoError(t, err)
	_, err = svc.StartBreak(ctx, "u1", at(12, 0))
	require.NoError(t, err)
	b, err := svc.EndBreak(ctx, "u1", at(12, 30))
	require.NoError(t, err)
	require.NotNil(t, b.Duration)
	assert.Equal(t, 30, *b.Duration)

	out, err := svc.ClockOut(ctx, "u1", at(17, 0))
	require.NoError(t, err)
	require.NotNil(t, out.TotalHours)
	assert.Equal(t, 8.0, *out.TotalHours)
}

func TestDoubleClockInRejected(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	first, err := svc.ClockIn(ctx, "u1", at(9, 0))
	require.NoError(t, err)
	_, err = svc.ClockIn(ctx, "u1", at(9, 5))
	assert.ErrorIs(t, err, timeclock.ErrAlreadyClockedIn)

	// The rejected call must not have touched the first entry.
	st, err := svc.Status(ctx, "u1", at(9, 10))
	require.NoError(t, err)
	require.NotNil(t, st.Active)
	assert.Equal(t, first.ID, st.Active.ID)
}

func TestClockOutWithoutSessionRejected(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	_, err := svc.ClockOut(context.Background(), "u1", at(17, 0))
	assert.ErrorIs(t, err, timeclock.ErrNoActiveSession)
}

func TestClockOutDuringBreakRejected(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "u1", at(9, 0))
	require.NoError(t, err)
	_, err = svc.StartBreak(ctx, "u1", at(12, 0))
	require.NoError(t, err)

	_, err = svc.ClockOut(ctx, "u1", at(17, 0))
	assert.ErrorIs(t, err, timeclock.ErrBreakInProgress)

	// Still active, break still open.
	st, err := svc.Status(ctx, "u1", at(17, 0))
	require.NoError(t, err)
	require.NotNil(t, st.Active)
	assert.Equal(t, model.StatusActive, st.Active.Status)
	assert.NotNil(t, st.OpenBreak)

	// Ending the break unblocks clock-out.
	_, err = svc.EndBreak(ctx, "u1", at(17, 0))
	require.NoError(t, err)
	out, err := svc.ClockOut(ctx, "u1", at(17, 0))
	require.NoError(t, err)
	require.NotNil(t, out.TotalHours)
	assert.Equal(t, 3.0, *out.TotalHours) // 480 - 300 min on break
}

func TestDoubleStartBreakRejectedAndUnchanged(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "u1", at(9, 0))
	require.NoError(t, err)
	_, err = svc.StartBreak(ctx, "u1", at(12, 0))
	require.NoError(t, err)
	_, err = svc.StartBreak(ctx, "u1", at(12, 5))
	assert.ErrorIs(t, err, timeclock.ErrBreakAlreadyInProgress)

	st, err := svc.Status(ctx, "u1", at(12, 10))
	require.NoError(t, err)
	assert.Len(t, st.Active.Breaks, 1)
}

func TestEndBreakWithoutOpenBreakRejected(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.EndBreak(ctx, "u1", at(12, 0))
	assert.ErrorIs(t, err, timeclock.ErrNoActiveSession)

	_, err = svc.ClockIn(ctx, "u1", at(9, 0))
	require.NoError(t, err)
	_, err = svc.EndBreak(ctx, "u1", at(12, 0))
	assert.ErrorIs(t, err, timeclock.ErrNoBreakInProgress)
}

func TestBreaksKeepChronologicalOrder(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, "u1", at(9, 0))
	require.NoError(t, err)
	for _, span := range [][2]time.Time{
		{at(10, 0), at(10, 10)},
		{at(12, 0), at(12, 30)},
		{at(15, 0), at(15, 5)},
	} {
		_, err = svc.StartBreak(ctx, "u1", span[0])
		require.NoError(t, err)
		_, err = svc.EndBreak(ctx, "u1", span[1])
		require.NoError(t, err)
	}

	out, err := svc.ClockOut(ctx, "u1", at(17, 0))
	require.NoError(t, err)
	require.Len(t, out.Breaks, 3)
	for i := 1; i < len(out.Breaks); i++ {
		assert.True(t, out.Breaks[i].StartTime.After(out.Breaks[i-1].StartTime))
	}
	// 480 - (10+30+5) = 435 minutes.
	assert.Equal(t, 435.0/60.0, *out.TotalHours)
}

// At most one active entry per user, even under concurrent clock-ins
// from the same user (e.g. two browser tabs).
func TestConcurrentClockInSingleWinner(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.ClockIn(ctx, "u1", at(9, 0))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, timeclock.ErrAlreadyClockedIn)
		}
	}
	assert.Equal(t, 1, wins)

	entries, err := svc.Entries(ctx, "u1", "", "")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// A failed store write must leave no observable state change.
func TestWriteFailureLeavesStateUnchanged(t *testing.T) {
	store := &failingStore{MemoryStore: timeclock.NewMemoryStore()}
	svc := timeclock.NewService(store)
	ctx := context.Background()

	store.failWrites = true
	_, err := svc.ClockIn(ctx, "u1", at(9, 0))
	assert.ErrorIs(t, err, errUnavailable)

	store.failWrites = false
	st, err := svc.Status(ctx, "u1", at(9, 5))
	require.NoError(t, err)
	assert.Nil(t, st.Active)

	// Same for updates: a failed break-start is invisible afterwards.
	_, err = svc.ClockIn(ctx, "u1", at(9, 0))
	require.NoError(t, err)
	store.failWrites = true
	_, err = svc.StartBreak(ctx, "u1", at(12, 0))
	assert.ErrorIs(t, err, errUnavailable)
	store.failWrites = false

	st, err = svc.Status(ctx, "u1", at(12, 5))
	require.NoError(t, err)
	require.NotNil(t, st.Active)
	assert.Empty(t, st.Active.Breaks)
}

func TestStaleVersionConflicts(t *testing.T) {
	store := timeclock.NewMemoryStore()
	ctx := context.Background()

	e := &model.TimeEntry{ID: "e1", UserID: "u1", Date: "2026-08-24", ClockIn: at(9, 0), Status: model.StatusActive, Version: 1}
	require.NoError(t, store.Create(ctx, e))

	first := e.Clone()
	second := e.Clone()
	require.NoError(t, store.Update(ctx, first))
	assert.ErrorIs(t, store.Update(ctx, second), timeclock.ErrWriteConflict)
}

func TestWeeklyTotalThroughService(t *testing.T) {
	svc := timeclock.NewService(timeclock.NewMemoryStore())
	ctx := context.Background()

	days := []time.Time{
		time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), // in window
		time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC), // in window
		time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC),  // next week
	}
	for _, d := range days {
		_, err := svc.ClockIn(ctx, "u1", d)
		require.NoError(t, err)
		_, err = svc.ClockOut(ctx, "u1", d.Add(4*time.Hour))
		require.NoError(t, err)
	}

	total, err := svc.WeeklyTotal(ctx, "u1", "2026-08-24")
	require.NoError(t, err)
	assert.Equal(t, 8.0, total)

	daily, err := svc.DailyTotal(ctx, "u1", "2026-08-26")
	require.NoError(t, err)
	assert.Equal(t, 4.0, daily)
}
