package handler

import (
	"context"
	"time"

	"github.com/iliyamo/staff-timeclock/internal/model"
)

// UserStore is the account storage surface the handlers depend on.
// *repository.UserRepo is the production implementation; tests use
// in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, email, password, name, role string, cost int) (string, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id, password string, cost int) error
}

// TokenStore is the refresh-token storage surface the handlers depend
// on.  *repository.TokenRepo is the production implementation.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
