package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-availability-backend/internal/model"
	"fleet-availability-backend/internal/store"
)

type postStoppageRequest struct {
	VehicleID   int64      `json:"vehicle_id" binding:"required"`
	Cause       string     `json:"cause" binding:"required"`
	Description string     `json:"description"`
	Severity    string     `json:"severity"`
	StartedAt   time.Time  `json:"started_at" binding:"required"`
	EndedAt     *time.Time `json:"ended_at"`
}

// PostStoppage records a manual stoppage form. The end may be left open;
// reconciliation then assumes the configured default duration.
func (h *Handler) PostStoppage(c *gin.Context) {
	var req postStoppageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.EndedAt != nil && req.EndedAt.Before(req.StartedAt) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Stoppage cannot end before it starts"})
		return
	}

	if _, err := h.store.GetVehicle(c.Request.Context(), req.VehicleID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown vehicle"})
		} else {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up vehicle"})
		}
		return
	}

	stoppage := model.Stoppage{
		VehicleID:   req.VehicleID,
		Cause:       req.Cause,
		Description: req.Description,
		Severity:    req.Severity,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
		RecordedAt:  time.Now().UTC(),
	}
	if err := h.store.CreateStoppage(c.Request.Context(), &stoppage); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, stoppage)
}

// GetStoppages lists manual stoppages overlapping a date range (the
// stoppage history table), defaulting to the last seven days.
func (h *Handler) GetStoppages(c *gin.Context) {
	loc := h.windows.Location()
	now := time.Now().In(loc)

	from := now.AddDate(0, 0, -7)
	to := now
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.ParseInLocation("2006-01-02", raw, loc); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.ParseInLocation("2006-01-02", raw, loc); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
		to = to.AddDate(0, 0, 1) // inclusive end date
	}

	var vehicleID int64
	if raw := c.Query("vehicle_id"); raw != "" {
		if vehicleID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
			return
		}
	}

	stoppages, err := h.store.ListStoppages(c.Request.Context(), vehicleID, from, to)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stoppages"})
		return
	}
	c.JSON(http.StatusOK, stoppages)
}
