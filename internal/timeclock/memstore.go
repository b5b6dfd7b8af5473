package timeclock

import (
	"context"
	"sort"
	"sync"

	"github.com/iliyamo/staff-timeclock/internal/model"
)

// MemoryStore is an EntryStore backed by a map.  It exists for tests; it
// honors the same version-check and single-active-entry contracts as the
// SQL store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*model.TimeEntry
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*model.TimeEntry)}
}

// Create stores a new entry, refusing a second active entry per user.
func (m *MemoryStore) Create(_ context.Context, e *model.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.Status == model.StatusActive {
		for _, ex := range m.entries {
			if ex.UserID == e.UserID && ex.Status == model.StatusActive {
				return ErrWriteConflict
			}
		}
	}
	m.entries[e.ID] = e.Clone()
	return nil
}

// Update applies a version-checked replacement of the stored entry.
func (m *MemoryStore) Update(_ context.Context, e *model.TimeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.entries[e.ID]
	if !ok {
		return ErrEntryNotFound
	}
	if cur.Version != e.Version {
		return ErrWriteConflict
	}
	e.Version++
	m.entries[e.ID] = e.Clone()
	return nil
}

// ActiveByUser returns the user's active entry, or (nil, nil).
func (m *MemoryStore) ActiveByUser(_ context.Context, userID string) (*model.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries {
		if e.UserID == userID && e.Status == model.StatusActive {
			return e.Clone(), nil
		}
	}
	return nil, nil
}

// Query returns matching entries, newest first.
func (m *MemoryStore) Query(_ context.Context, f QueryFilter) ([]model.TimeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.TimeEntry
	for _, e := range m.entries {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.From != "" && e.Date < f.From {
			continue
		}
		if f.To != "" && e.Date > f.To {
			continue
		}
		out = append(out, *e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ClockIn.After(out[j].ClockIn)
	})
	return out, nil
}

var _ EntryStore = (*MemoryStore)(nil)
