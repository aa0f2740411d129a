package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"fleet-availability-backend/config"
	"fleet-availability-backend/internal/mw"
	"fleet-availability-backend/internal/notification"
	"fleet-availability-backend/internal/store"
	"fleet-availability-backend/internal/timeline"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.Config, windows timeline.WindowTable, webpushOptions *webpush.Options, notifier *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, windows, cfg.Shifts.FormDefault, webpushOptions, notifier)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/vehicles", caching, handler.GetVehicles)
		api.POST("/vehicles", handler.PostVehicle)

		api.GET("/tickets", handler.GetTickets)
		api.POST("/tickets", handler.PostTicket)
		api.POST("/tickets/:ticket_id/close", handler.CloseTicket)
		api.PATCH("/tickets/:ticket_id/hours", handler.PatchTicketHours)

		api.POST("/shift-reports", handler.PostShiftReport)

		api.GET("/stoppages", handler.GetStoppages)
		api.POST("/stoppages", handler.PostStoppage)

		// The activity film: reconciled per-vehicle daily timelines.
		api.GET("/activity/vehicles", caching, handler.GetVehicleActivity)

		api.GET("/fleet/situation", caching, handler.GetFleetSituation)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
