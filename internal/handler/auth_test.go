package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/staff-timeclock/internal/config"
	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/repository"
	"github.com/iliyamo/staff-timeclock/internal/utils"
)

// fakeUserStore keeps accounts in a map and hashes passwords the same
// way the MySQL repo does.
type fakeUserStore struct {
	users map[string]model.User // keyed by id
}

func (f *fakeUserStore) Create(_ context.Context, email, password, name, role string, cost int) (string, error) {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := "id-" + email
	f.users[id] = model.User{ID: id, Email: email, PasswordHash: hash, Name: name, Role: role, IsActive: true}
	return id, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) SetActive(_ context.Context, id string, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.IsActive = active
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id, password string, cost int) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	f.users[id] = u
	return nil
}

// fakeTokenStore records revocations; the rest is unused here.
type fakeTokenStore struct {
	revokedAllFor []string
}

func (f *fakeTokenStore) StoreRefresh(context.Context, string, string, time.Time) error {
	return nil
}
func (f *fakeTokenStore) ValidateRefresh(context.Context, string) (string, error) {
	return "", repository.ErrUserNotFound
}
func (f *fakeTokenStore) RevokeByHash(context.Context, string) error { return nil }
func (f *fakeTokenStore) RevokeAllForUser(_ context.Context, userID string) error {
	f.revokedAllFor = append(f.revokedAllFor, userID)
	return nil
}

func newAuthFixture(t *testing.T) (*AuthHandler, *fakeUserStore, *fakeTokenStore, string) {
	t.Helper()
	users := &fakeUserStore{users: map[string]model.User{}}
	toks := &fakeTokenStore{}
	uid, err := users.Create(context.Background(), "dana@example.com", "old-password", "Dana", model.RoleStaff, 4)
	require.NoError(t, err)
	h := NewAuthHandler(config.Config{BcryptCost: 4}, users, toks)
	return h, users, toks, uid
}

func patchPassword(t *testing.T, h *AuthHandler, userID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/v1/me/password", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	require.NoError(t, h.ChangePassword(c))
	return rec
}

func TestChangePassword(t *testing.T) {
	h, users, toks, uid := newAuthFixture(t)

	rec := patchPassword(t, h, uid,
		`{"currentPassword":"old-password","newPassword":"brand-new-pass"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	u, err := users.GetByID(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "brand-new-pass"))
	assert.False(t, utils.VerifyPassword(u.PasswordHash, "old-password"))

	// Every refresh session is revoked so the old password cannot keep
	// a session alive past the access token's TTL.
	assert.Equal(t, []string{uid}, toks.revokedAllFor)
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	h, users, toks, uid := newAuthFixture(t)

	rec := patchPassword(t, h, uid,
		`{"currentPassword":"not-the-password","newPassword":"brand-new-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	u, err := users.GetByID(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "old-password"))
	assert.Empty(t, toks.revokedAllFor)
}

func TestChangePasswordRejectsShortPassword(t *testing.T) {
	h, users, _, uid := newAuthFixture(t)

	rec := patchPassword(t, h, uid,
		`{"currentPassword":"old-password","newPassword":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	u, err := users.GetByID(context.Background(), uid)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "old-password"))
}

func TestChangePasswordUnknownUser(t *testing.T) {
	h, _, _, _ := newAuthFixture(t)

	rec := patchPassword(t, h, "missing-id",
		`{"currentPassword":"old-password","newPassword":"brand-new-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
