package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-availability-backend/internal/model"
	"fleet-availability-backend/internal/store"
	"fleet-availability-backend/internal/timeline"
)

// vehicleActivityResponse is one vehicle's reconciled day in the
// activity film.
type vehicleActivityResponse struct {
	VehicleID    int64                       `json:"vehicle_id"`
	Registration string                      `json:"registration"`
	VehicleType  string                      `json:"vehicle_type"`
	Day          timeline.Interval           `json:"day"`
	Segments     []timeline.Segment          `json:"segments"`
	WorkedHours  map[timeline.Period]float64 `json:"worked_hours"`
	Warnings     []timeline.Warning          `json:"warnings"`
}

// GetVehicleActivity handles GET /api/activity/vehicles: the activity
// film. For each vehicle it reconciles the requested operating day into
// a gapless timeline plus net worked hours per shift period.
func (h *Handler) GetVehicleActivity(c *gin.Context) {
	rawDate := c.Query("date")
	if rawDate == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "date is required (YYYY-MM-DD)"})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", rawDate, h.windows.Location())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var vehicles []model.Vehicle
	if raw := c.Query("vehicle_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
			return
		}
		vehicle, err := h.store.GetVehicle(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown vehicle"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up vehicle"})
			}
			return
		}
		vehicles = []model.Vehicle{*vehicle}
	} else {
		if vehicles, err = h.store.ListVehicles(c.Request.Context()); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicles"})
			return
		}
	}

	response := make([]vehicleActivityResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		result, err := h.reconcileVehicleDay(c, vehicle, date)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": fmt.Sprintf("Failed to reconcile vehicle %s: %v", vehicle.Registration, err)})
			return
		}
		response = append(response, vehicleActivityResponse{
			VehicleID:    vehicle.ID,
			Registration: vehicle.Registration,
			VehicleType:  vehicle.VehicleType,
			Day:          result.Day,
			Segments:     result.Segments,
			WorkedHours:  result.WorkedHours,
			Warnings:     result.Warnings,
		})
	}

	c.JSON(http.StatusOK, response)
}

// reconcileVehicleDay loads the vehicle's day feed and runs the
// reconciliation engine over it.
func (h *Handler) reconcileVehicleDay(c *gin.Context, vehicle model.Vehicle, date time.Time) (*timeline.Result, error) {
	day := h.windows.OperatingDay(date)
	feed, err := h.store.DayFeed(c.Request.Context(), vehicle.ID, day)
	if err != nil {
		return nil, err
	}

	input := timeline.Input{
		VehicleID:           vehicle.ID,
		Date:                date,
		Windows:             h.windows,
		CounterBaseline:     feed.CounterBaseline,
		FormStoppageDefault: h.formDefault,
	}
	for _, shift := range feed.Shifts {
		input.Shifts = append(input.Shifts, timeline.ShiftEntry{
			Driver:     shift.FirstName + " " + shift.LastName,
			Phone:      shift.Phone,
			Period:     shift.Period,
			Start:      shift.StartedAt,
			End:        shift.EndedAt,
			CounterEnd: shift.CounterEnd,
			Comment:    shift.Comment,
		})
	}
	for _, ticket := range feed.Tickets {
		input.Stoppages = append(input.Stoppages, timeline.StoppageEntry{
			Source:   timeline.SourceTicket,
			Cause:    fmt.Sprintf("%s: %s", ticket.Reference, ticket.Description),
			Severity: ticket.Severity,
			Start:    ticket.CreatedAt,
			End:      ticket.ClosedAt,
		})
	}
	for _, stoppage := range feed.FormStoppages {
		input.Stoppages = append(input.Stoppages, timeline.StoppageEntry{
			Source:   timeline.SourceForm,
			Cause:    stoppage.Cause,
			Severity: stoppage.Severity,
			Start:    stoppage.StartedAt,
			End:      stoppage.EndedAt,
		})
	}

	return timeline.Reconcile(input)
}
