package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/staff-timeclock/internal/model"
	"github.com/iliyamo/staff-timeclock/internal/timeclock"
)

// ReportHandler serves the staff-facing entry list and the daily/weekly
// total reports.  All routes operate on the authenticated user only;
// admins use the /admin surface for cross-user queries.
type ReportHandler struct {
	Clock *timeclock.Service
}

func NewReportHandler(clock *timeclock.Service) *ReportHandler {
	return &ReportHandler{Clock: clock}
}

const dateLayout = "2006-01-02"

// parseDateParam validates an optional YYYY-MM-DD query parameter.
func parseDateParam(c echo.Context, name string) (string, bool) {
	v := c.QueryParam(name)
	if v == "" {
		return "", true
	}
	if _, err := time.Parse(dateLayout, v); err != nil {
		return "", false
	}
	return v, true
}

// Entries lists the caller's entries, newest first.  Supports optional
// from/to date bounds.
func (h *ReportHandler) Entries(c echo.Context) error {
	from, ok := parseDateParam(c, "from")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "from must be YYYY-MM-DD"})
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	entries, err := h.Clock.Entries(ctx, currentUser(c), from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if entries == nil {
		entries = []model.TimeEntry{}
	}
	return c.JSON(http.StatusOK, echo.Map{"entries": entries})
}

// Daily returns the caller's summed completed hours for one date.
// Defaults to today (UTC) when no date is given.
func (h *ReportHandler) Daily(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = time.Now().UTC().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hours, err := h.Clock.DailyTotal(ctx, currentUser(c), date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"date": date, "totalHours": hours})
}

// Weekly returns the caller's summed completed hours over the 7-day
// window starting at week_start.  Only dates inside the window count.
func (h *ReportHandler) Weekly(c echo.Context) error {
	weekStart := c.QueryParam("week_start")
	if weekStart == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_start required (YYYY-MM-DD)"})
	}
	if _, err := time.Parse(dateLayout, weekStart); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "week_start must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	hours, err := h.Clock.WeeklyTotal(ctx, currentUser(c), weekStart)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"weekStart": weekStart, "totalHours": hours})
}
