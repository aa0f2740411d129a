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

type postTicketRequest struct {
	Reference   string     `json:"reference" binding:"required"`
	VehicleID   int64      `json:"vehicle_id" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Severity    string     `json:"severity"`
	CreatedAt   *time.Time `json:"created_at"`
}

// PostTicket opens an incident ticket against a vehicle. The creation
// time defaults to now but may be supplied for late data entry.
func (h *Handler) PostTicket(c *gin.Context) {
	var req postTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
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

	ticket := model.Ticket{
		Reference:   req.Reference,
		VehicleID:   req.VehicleID,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      model.TicketStatusOpen,
	}
	if req.CreatedAt != nil {
		ticket.CreatedAt = *req.CreatedAt
	}

	if err := h.store.CreateTicket(c.Request.Context(), &ticket); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// GetTickets lists tickets, optionally filtered by vehicle and status.
func (h *Handler) GetTickets(c *gin.Context) {
	var vehicleID int64
	if raw := c.Query("vehicle_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
			return
		}
		vehicleID = id
	}

	tickets, err := h.store.ListTickets(c.Request.Context(), vehicleID, c.Query("status"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tickets"})
		return
	}
	c.JSON(http.StatusOK, tickets)
}

type closeTicketRequest struct {
	ClosedAt *time.Time `json:"closed_at"`
}

// CloseTicket back-fills the closure time of an open ticket and notifies
// subscribers of the vehicle.
func (h *Handler) CloseTicket(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("ticket_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	// The body is optional: closure time defaults to now.
	var req closeTicketRequest
	_ = c.ShouldBindJSON(&req)
	closedAt := time.Now().UTC()
	if req.ClosedAt != nil {
		closedAt = *req.ClosedAt
	}

	ticket, err := h.store.CloseTicket(c.Request.Context(), id, closedAt)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		}
		return
	}

	if h.notifier != nil {
		h.notifier.Dispatch(ticket.VehicleID)
	}

	c.JSON(http.StatusOK, ticket)
}

type patchTicketHoursRequest struct {
	CreatedAt *time.Time `json:"created_at"`
	ClosedAt  *time.Time `json:"closed_at"`
}

// PatchTicketHours corrects the recorded creation/closure times of a
// ticket (supervisor fix-up), feeding corrected stoppage intervals into
// the next reconciliation.
func (h *Handler) PatchTicketHours(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("ticket_id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID"})
		return
	}

	var req patchTicketHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.CreatedAt == nil && req.ClosedAt == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	ticket, err := h.store.UpdateTicketHours(c.Request.Context(), id, req.CreatedAt, req.ClosedAt)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		} else {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, ticket)
}
