package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"fleet-availability-backend/internal/notification"
	"fleet-availability-backend/internal/store"
	"fleet-availability-backend/internal/timeline"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store       store.Store
	windows     timeline.WindowTable
	formDefault time.Duration
	webpush     *webpush.Options
	notifier    *notification.WorkerPool
}

// NewHandler creates a new API handler. The notifier may be nil, in
// which case ticket closures are not pushed to subscribers.
func NewHandler(s store.Store, windows timeline.WindowTable, formDefault time.Duration, webpushOptions *webpush.Options, notifier *notification.WorkerPool) *Handler {
	return &Handler{
		store:       s,
		windows:     windows,
		formDefault: formDefault,
		webpush:     webpushOptions,
		notifier:    notifier,
	}
}
