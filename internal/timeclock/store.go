package timeclock

import (
	"context"

	"github.com/iliyamo/staff-timeclock/internal/model"
)

// QueryFilter narrows entry lookups.  Zero values mean "no constraint".
// From and To are inclusive "YYYY-MM-DD" bounds on the entry date.
type QueryFilter struct {
	UserID string
	From   string
	To     string
}

// EntryStore is the persistence contract the timeclock service writes
// through.  Implementations must make each call atomic: a failed Create
// or Update must leave the stored data untouched.
//
// Update is version-checked.  The entry's Version field holds the version
// the caller last read; the store applies the change only if the stored
// row still carries that version, increments it, and reflects the new
// version back into the entry.  A mismatch returns ErrWriteConflict.
type EntryStore interface {
	// Create persists a brand-new entry.  It must refuse a second active
	// entry for the same user with ErrWriteConflict even if the caller's
	// pre-check raced.
	Create(ctx context.Context, e *model.TimeEntry) error
	// Update persists clock-out and break mutations under the version
	// check described above.  ErrEntryNotFound when the id is unknown.
	Update(ctx context.Context, e *model.TimeEntry) error
	// ActiveByUser returns the user's single active entry, or (nil, nil)
	// when the user is not clocked in.
	ActiveByUser(ctx context.Context, userID string) (*model.TimeEntry, error)
	// Query returns entries matching the filter, newest first.
	Query(ctx context.Context, f QueryFilter) ([]model.TimeEntry, error)
}
