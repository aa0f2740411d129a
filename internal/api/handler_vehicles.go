package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-availability-backend/internal/model"
)

type postVehicleRequest struct {
	Registration   string     `json:"registration" binding:"required"`
	VehicleType    string     `json:"vehicle_type" binding:"required"`
	Brand          string     `json:"brand"`
	Model          string     `json:"model"`
	CommissionedAt *time.Time `json:"commissioned_at"`
	MaxTonnage     *float64   `json:"max_tonnage"`
	InService      *bool      `json:"in_service"`
}

// PostVehicle creates or refreshes a vehicle of the fleet roster, keyed
// by its registration.
func (h *Handler) PostVehicle(c *gin.Context) {
	var req postVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inService := true
	if req.InService != nil {
		inService = *req.InService
	}
	vehicle := model.Vehicle{
		Registration:   req.Registration,
		VehicleType:    req.VehicleType,
		Brand:          req.Brand,
		Model:          req.Model,
		CommissionedAt: req.CommissionedAt,
		MaxTonnage:     req.MaxTonnage,
		InService:      inService,
	}

	if err := h.store.UpsertVehicle(c.Request.Context(), &vehicle); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles handles the GET /api/vehicles request.
func (h *Handler) GetVehicles(c *gin.Context) {
	vehicles, err := h.store.ListVehicles(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve vehicles"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}
