package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/staff-timeclock/internal/config"
	appmw "github.com/iliyamo/staff-timeclock/internal/middleware"
	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/queue"
	queue_publisher "github.com/iliyamo/staff-timeclock/internal/service"
	"github.com/iliyamo/staff-timeclock/internal/timeclock"
)

// ClockHandler exposes the clock-in/out and break endpoints.  Every
// mutation goes through the timeclock service; the handler only maps
// HTTP to domain calls and domain errors back to status codes.  After a
// successful mutation the user's cached report responses are dropped so
// the next dashboard read reflects the new state immediately.
type ClockHandler struct {
	Cfg      config.Config
	Clock    *timeclock.Service
	Users    UserStore
	Log      *zap.SugaredLogger
	CacheCfg config.CacheConfig
	RDB      *redis.Client
}

func NewClockHandler(cfg config.Config, clock *timeclock.Service, users UserStore,
	log *zap.SugaredLogger, cacheCfg config.CacheConfig, rdb *redis.Client) *ClockHandler {
	return &ClockHandler{Cfg: cfg, Clock: clock, Users: users, Log: log, CacheCfg: cacheCfg, RDB: rdb}
}

// dropCachedReports invalidates the user's cached entries/report
// responses after a state change.
func (h *ClockHandler) dropCachedReports(ctx context.Context, userID string) {
	appmw.InvalidateUserCache(ctx, h.RDB, h.CacheCfg, userID)
}

// domainStatus maps timeclock sentinel errors onto HTTP status codes.
// State-machine rejections are conflicts: the request was well-formed
// but the user's current state forbids the transition.
func domainStatus(err error) (int, string) {
	switch {
	case errors.Is(err, timeclock.ErrAlreadyClockedIn):
		return http.StatusConflict, "already clocked in"
	case errors.Is(err, timeclock.ErrNoActiveSession):
		return http.StatusConflict, "no active session"
	case errors.Is(err, timeclock.ErrBreakAlreadyInProgress):
		return http.StatusConflict, "break already in progress"
	case errors.Is(err, timeclock.ErrNoBreakInProgress):
		return http.StatusConflict, "no break in progress"
	case errors.Is(err, timeclock.ErrBreakInProgress):
		return http.StatusConflict, "end the break before clocking out"
	case errors.Is(err, timeclock.ErrWriteConflict):
		return http.StatusConflict, "concurrent update, retry"
	case errors.Is(err, timeclock.ErrEntryNotFound):
		return http.StatusNotFound, "entry not found"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// publishEvent sends a clock event to the broker without blocking the
// request.  Audit delivery is best effort: a down broker must never
// fail a clock operation.
func (h *ClockHandler) publishEvent(userID, action string, e *model.TimeEntry) {
	if h.Cfg.RabbitURL == "" {
		return // events disabled
	}
	ev := queue.ClockEvent{
		Action:     action,
		EntryID:    e.ID,
		UserID:     userID,
		Date:       e.Date,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
		TotalHours: e.TotalHours,
	}
	url := h.Cfg.RabbitURL
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		if h.Users != nil {
			if u, err := h.Users.GetByID(ctx, userID); err == nil {
				ev.UserEmail = u.Email
			}
		}
		if err := queue_publisher.PublishClockEvent(ctx, url, ev); err != nil {
			h.Log.Warnw("clock event publish failed", "action", action, "entry_id", e.ID, "err", err)
		}
	}()
}

// ClockIn opens a new work session for the authenticated user.
func (h *ClockHandler) ClockIn(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Clock.ClockIn(ctx, currentUser(c), time.Now().UTC())
	if err != nil {
		code, msg := domainStatus(err)
		return c.JSON(code, echo.Map{"error": msg})
	}
	h.dropCachedReports(ctx, currentUser(c))
	h.publishEvent(currentUser(c), queue.ActionClockIn, e)
	return c.JSON(http.StatusCreated, e)
}

// ClockOut completes the active session.  A session with an open break
// cannot be closed; the break has to be ended first.
func (h *ClockHandler) ClockOut(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Clock.ClockOut(ctx, currentUser(c), time.Now().UTC())
	if err != nil {
		code, msg := domainStatus(err)
		return c.JSON(code, echo.Map{"error": msg})
	}
	h.dropCachedReports(ctx, currentUser(c))
	h.publishEvent(currentUser(c), queue.ActionClockOut, e)
	return c.JSON(http.StatusOK, e)
}

// StartBreak opens a break on the active session.
func (h *ClockHandler) StartBreak(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	uid := currentUser(c)
	b, err := h.Clock.StartBreak(ctx, uid, time.Now().UTC())
	if err != nil {
		code, msg := domainStatus(err)
		return c.JSON(code, echo.Map{"error": msg})
	}
	h.dropCachedReports(ctx, uid)
	if st, err := h.Clock.Status(ctx, uid, time.Now().UTC()); err == nil && st.Active != nil {
		h.publishEvent(uid, queue.ActionBreakStart, st.Active)
	}
	return c.JSON(http.StatusCreated, b)
}

// EndBreak closes the open break on the active session.
func (h *ClockHandler) EndBreak(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	uid := currentUser(c)
	b, err := h.Clock.EndBreak(ctx, uid, time.Now().UTC())
	if err != nil {
		code, msg := domainStatus(err)
		return c.JSON(code, echo.Map{"error": msg})
	}
	h.dropCachedReports(ctx, uid)
	if st, err := h.Clock.Status(ctx, uid, time.Now().UTC()); err == nil && st.Active != nil {
		h.publishEvent(uid, queue.ActionBreakEnd, st.Active)
	}
	return c.JSON(http.StatusOK, b)
}

type statusResp struct {
	ClockedIn   bool             `json:"clockedIn"`
	OnBreak     bool             `json:"onBreak"`
	Entry       *model.TimeEntry `json:"entry,omitempty"`
	LiveMinutes int              `json:"liveMinutes"`
}

// Status reports the caller's current clock state, including the
// minutes worked so far with any open break discounted live.
func (h *ClockHandler) Status(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	st, err := h.Clock.Status(ctx, currentUser(c), time.Now().UTC())
	if err != nil {
		code, msg := domainStatus(err)
		return c.JSON(code, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusOK, statusResp{
		ClockedIn:   st.Active != nil,
		OnBreak:     st.OpenBreak != nil,
		Entry:       st.Active,
		LiveMinutes: st.LiveMinutes,
	})
}
