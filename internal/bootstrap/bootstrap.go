// Package bootstrap seeds the accounts a fresh deployment needs.
// Self-registration only ever creates STAFF accounts and the whole
// admin surface requires an ADMIN token, so without a seeded admin a
// new database would leave user management and export unreachable.
package bootstrap

import (
	"context"
	"errors"

	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/repository"
)

// UserStore is the slice of account storage the bootstrap needs.
// *repository.UserRepo is the production implementation.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, email, password, name, role string, cost int) (string, error)
}

// EnsureAdmin creates the ADMIN account with the given credentials when
// no account with that email exists yet.  Idempotent: an existing
// account is left untouched (password included), so restarts and
// multiple replicas are safe.  Returns whether an account was created.
func EnsureAdmin(ctx context.Context, store UserStore, email, password, name string, cost int) (bool, error) {
	_, err := store.GetByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return false, err
	}

	_, err = store.Create(ctx, email, password, name, model.RoleAdmin, cost)
	if errors.Is(err, repository.ErrEmailExists) {
		// Another replica won the race; the account exists now.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
