package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staff-timeclock/internal/config"
	"github.com/iliyamo/staff-timeclock/internal/export"
	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/repository"
	"github.com/iliyamo/staff-timeclock/internal/timeclock"
)

// AdminHandler serves the ADMIN-only surface: account management,
// cross-user entry queries and timesheet export.  Role enforcement
// happens in the router middleware; these handlers assume an admin.
type AdminHandler struct {
	Cfg   config.Config
	Users UserStore
	Clock *timeclock.Service
}

func NewAdminHandler(cfg config.Config, users UserStore, clock *timeclock.Service) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Users: users, Clock: clock}
}

// ----- users -----

type createUserReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Role     string `json:"role" validate:"required,oneof=ADMIN STAFF"`
}

type setActiveReq struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// ListUsers returns every account, newest first.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// CreateUser provisions an account with an explicit role.  Unlike
// self-registration this may create ADMIN accounts.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.Name, req.Role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, userPart{ID: uid, Email: req.Email, Name: req.Name, Role: req.Role})
}

// SetUserActive toggles whether an account can log in.  Deactivation
// keeps all of the account's entries.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	var req setActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "isActive required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Users.SetActive(ctx, c.Param("id"), *req.IsActive); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": c.Param("id"), "isActive": *req.IsActive})
}

// ----- entries -----

// queryEntries resolves the shared user/from/to filter for the entries
// and export endpoints.
func (h *AdminHandler) queryEntries(c echo.Context) ([]model.TimeEntry, int, string) {
	from, ok := parseDateParam(c, "from")
	if !ok {
		return nil, http.StatusBadRequest, "from must be YYYY-MM-DD"
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return nil, http.StatusBadRequest, "to must be YYYY-MM-DD"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, err := h.Clock.Entries(ctx, c.QueryParam("user_id"), from, to)
	if err != nil {
		return nil, http.StatusInternalServerError, "query failed"
	}
	return entries, 0, ""
}

// ListEntries returns entries across all users, optionally filtered by
// user_id and a from/to date range.
func (h *AdminHandler) ListEntries(c echo.Context) error {
	entries, code, msg := h.queryEntries(c)
	if msg != "" {
		return c.JSON(code, echo.Map{"error": msg})
	}
	if entries == nil {
		entries = []model.TimeEntry{}
	}
	return c.JSON(http.StatusOK, echo.Map{"entries": entries})
}

// ----- export -----

// Export renders the filtered entries as a downloadable timesheet.
// format=excel (default) or format=pdf.
func (h *AdminHandler) Export(c echo.Context) error {
	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = "excel"
	}
	if format != "excel" && format != "pdf" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "format must be excel or pdf"})
	}

	entries, code, msg := h.queryEntries(c)
	if msg != "" {
		return c.JSON(code, echo.Map{"error": msg})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	rows := export.BuildRows(entries, names)
	stamp := time.Now().UTC()

	switch format {
	case "pdf":
		blob, err := export.PDF(rows, stamp)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="timesheet-%s.pdf"`, stamp.Format("20060102-1504")))
		return c.Blob(http.StatusOK, "application/pdf", blob)
	default:
		blob, err := export.Excel(rows)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "render failed"})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="timesheet-%s.xlsx"`, stamp.Format("20060102-1504")))
		return c.Blob(http.StatusOK,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", blob)
	}
}
