package timeclock

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/staff-timeclock/internal/model"
)

// stripeCount sizes the per-user lock table.  Operations for the same
// user always hash to the same stripe, so they serialize; unrelated
// users almost never contend.
const stripeCount = 64

// Service enforces the session and break state machine:
//
//	NoSession --ClockIn--> ActiveNoBreak
//	ActiveNoBreak --StartBreak--> ActiveOnBreak
//	ActiveOnBreak --EndBreak--> ActiveNoBreak
//	ActiveNoBreak --ClockOut--> NoSession (entry completed, terminal)
//	ActiveOnBreak --ClockOut--> rejected with ErrBreakInProgress
//
// Every mutating operation re-reads the current state from the store,
// builds the mutated entry, and persists it in a single version-checked
// write.  A failed write therefore leaves nothing behind: the caller
// observes either the full transition or no transition at all.  On top
// of the store's version check, a striped mutex serializes mutations per
// user within this process.
type Service struct {
	store EntryStore
	locks [stripeCount]sync.Mutex
}

// NewService returns a Service writing through the given store.
func NewService(store EntryStore) *Service {
	if store == nil {
		panic("nil store passed to NewService")
	}
	return &Service{store: store}
}

func (s *Service) userLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return &s.locks[h.Sum32()%stripeCount]
}

// ClockIn opens a new active entry for the user dated at now's UTC
// calendar date.  Rejected with ErrAlreadyClockedIn when an active entry
// already exists.
func (s *Service) ClockIn(ctx context.Context, userID string, now time.Time) (*model.TimeEntry, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	active, err := s.store.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrAlreadyClockedIn
	}

	now = TruncateMinute(now)
	e := &model.TimeEntry{
		ID:      uuid.NewString(),
		UserID:  userID,
		Date:    DateOf(now),
		ClockIn: now,
		Breaks:  []model.Break{},
		Status:  model.StatusActive,
		Version: 1,
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// ClockOut completes the user's active entry, computing its TotalHours.
// Rejected with ErrNoActiveSession when not clocked in and with
// ErrBreakInProgress while a break is open — the break must be ended
// first so that every stored break end is one the user chose.
func (s *Service) ClockOut(ctx context.Context, userID string, now time.Time) (*model.TimeEntry, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	e, err := s.store.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNoActiveSession
	}
	if e.OpenBreak() != nil {
		return nil, ErrBreakInProgress
	}

	out := TruncateMinute(now)
	e.ClockOut = &out
	hours, err := TotalHours(e)
	if err != nil {
		return nil, err
	}
	e.TotalHours = &hours
	e.Status = model.StatusCompleted
	if err := s.store.Update(ctx, e); err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// StartBreak appends an open break to the user's active entry.
func (s *Service) StartBreak(ctx context.Context, userID string, now time.Time) (*model.Break, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	e, err := s.store.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNoActiveSession
	}
	if e.OpenBreak() != nil {
		return nil, ErrBreakAlreadyInProgress
	}

	b := model.Break{
		ID:        uuid.NewString(),
		StartTime: TruncateMinute(now),
	}
	e.Breaks = append(e.Breaks, b)
	if err := s.store.Update(ctx, e); err != nil {
		return nil, err
	}
	cp := b
	return &cp, nil
}

// EndBreak closes the open break on the user's active entry and records
// its whole-minute duration.
func (s *Service) EndBreak(ctx context.Context, userID string, now time.Time) (*model.Break, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	e, err := s.store.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNoActiveSession
	}
	ob := e.OpenBreak()
	if ob == nil {
		return nil, ErrNoBreakInProgress
	}

	end := TruncateMinute(now)
	mins, err := MinutesBetween(ob.StartTime, end)
	if err != nil {
		return nil, err
	}
	ob.EndTime = &end
	ob.Duration = &mins
	if err := s.store.Update(ctx, e); err != nil {
		return nil, err
	}
	cp := *ob
	return &cp, nil
}

// ClockStatus is the read-only projection behind the dashboard: the
// active entry (nil when clocked out), its open break if any, and the
// live worked-minutes figure at the time of the call.
type ClockStatus struct {
	Active      *model.TimeEntry
	OpenBreak   *model.Break
	LiveMinutes int
}

// Status reports the user's current clock state.  Purely a read; it
// never writes and is safe to call concurrently with mutations.
func (s *Service) Status(ctx context.Context, userID string, now time.Time) (*ClockStatus, error) {
	e, err := s.store.ActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return &ClockStatus{}, nil
	}
	live, err := LiveMinutes(e, now)
	if err != nil {
		return nil, err
	}
	st := &ClockStatus{Active: e.Clone(), LiveMinutes: live}
	if ob := st.Active.OpenBreak(); ob != nil {
		st.OpenBreak = ob
	}
	return st, nil
}

// Entries returns the user's entries, newest first, optionally bounded
// by inclusive from/to dates ("YYYY-MM-DD", empty = unbounded).
func (s *Service) Entries(ctx context.Context, userID, from, to string) ([]model.TimeEntry, error) {
	return s.store.Query(ctx, QueryFilter{UserID: userID, From: from, To: to})
}

// DailyTotal returns the user's summed completed hours for one date.
func (s *Service) DailyTotal(ctx context.Context, userID, date string) (float64, error) {
	entries, err := s.store.Query(ctx, QueryFilter{UserID: userID, From: date, To: date})
	if err != nil {
		return 0, err
	}
	return TotalHoursForDate(entries, userID, date), nil
}

// WeeklyTotal returns the user's summed completed hours over the 7-day
// window starting at weekStart.
func (s *Service) WeeklyTotal(ctx context.Context, userID, weekStart string) (float64, error) {
	from, to, err := WeekWindow(weekStart)
	if err != nil {
		return 0, err
	}
	entries, err := s.store.Query(ctx, QueryFilter{UserID: userID, From: from, To: to})
	if err != nil {
		return 0, err
	}
	return TotalHoursForWeek(entries, userID, weekStart)
}
