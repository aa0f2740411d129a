package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetFleetSituation handles GET /api/fleet/situation: dashboard counts
// of vehicles in service, stopped vehicles and open tickets by severity.
func (h *Handler) GetFleetSituation(c *gin.Context) {
	situation, err := h.store.FleetSituation(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate fleet situation"})
		return
	}
	c.JSON(http.StatusOK, situation)
}
