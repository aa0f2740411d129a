package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-availability-backend/internal/model"
	"fleet-availability-backend/internal/store"
	"fleet-availability-backend/internal/timeline"
)

type postShiftReportRequest struct {
	VehicleID  int64    `json:"vehicle_id" binding:"required"`
	ReportDate string   `json:"report_date" binding:"required"` // "2006-01-02"
	Period     int      `json:"period" binding:"required"`
	FirstName  string   `json:"first_name" binding:"required"`
	LastName   string   `json:"last_name" binding:"required"`
	Phone      string   `json:"phone" binding:"required"`
	StartedAt  string   `json:"started_at" binding:"required"` // "HH:MM" local
	EndedAt    string   `json:"ended_at" binding:"required"`   // "HH:MM" local
	CounterEnd *float64 `json:"counter_end"`
	Comment    string   `json:"comment"`
}

// PostShiftReport records one end-of-shift attendance form. Resubmitting
// the same form is an idempotent no-op. The times are local clock times
// on the report date; a third-period shift whose end clock precedes its
// start rolls over to the next calendar day.
func (h *Handler) PostShiftReport(c *gin.Context) {
	var req postShiftReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := h.windows.Location()
	date, err := time.ParseInLocation("2006-01-02", req.ReportDate, loc)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid report_date, expected YYYY-MM-DD"})
		return
	}
	startedAt, err := clockOn(req.StartedAt, date, loc)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid started_at: %v", err)})
		return
	}
	endedAt, err := clockOn(req.EndedAt, date, loc)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid ended_at: %v", err)})
		return
	}
	// Overnight third shift: the end clock belongs to the next day.
	// Other periods keep a backwards interval as recorded; the
	// reconciler flags it instead of the API guessing an intent.
	if p, ok := timeline.ParsePeriod(req.Period); ok && p == timeline.PeriodThird && !endedAt.After(startedAt) {
		endedAt = endedAt.AddDate(0, 0, 1)
	}

	if _, err := h.store.GetVehicle(c.Request.Context(), req.VehicleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown vehicle"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up vehicle"})
		}
		return
	}

	report := model.ShiftReport{
		VehicleID:  req.VehicleID,
		ReportDate: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Period:     req.Period,
		Phone:      req.Phone,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		StartedAt:  startedAt,
		EndedAt:    endedAt,
		CounterEnd: req.CounterEnd,
		Comment:    req.Comment,
	}

	created, err := h.store.CreateShiftReport(c.Request.Context(), &report)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"created": false, "message": "shift report already recorded"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// clockOn anchors an "HH:MM" clock string to the calendar day of date.
func clockOn(clock string, date time.Time, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("15:04", clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected HH:MM, got %q", clock)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}
