package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"fleet-availability-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers notifying subscribers that a
// vehicle's ticket has closed and the vehicle is back in service.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// worker is the actual worker goroutine.
func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case vehicleID := <-wp.jobs:
			log.Printf("Worker %d processing vehicle %d", id, vehicleID)
			wp.sendNotificationsForVehicle(ctx, vehicleID)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(vehicleID int64) {
	wp.jobs <- vehicleID
}

// sendNotificationsForVehicle fetches subscriptions and sends notifications for a given vehicle.
func (wp *WorkerPool) sendNotificationsForVehicle(ctx context.Context, vehicleID int64) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_vehicle_mapping svm ON svm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("svm.vehicle_id = ?", vehicleID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for vehicle %d: %v", vehicleID, err)
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	log.Printf("Sending %d notifications for vehicle %d", len(subscriptions), vehicleID)

	var vehicle model.Vehicle
	vehicleLabel := fmt.Sprintf("%d", vehicleID)
	if err := wp.db.WithContext(ctx).
		Select("registration").
		First(&vehicle, vehicleID).Error; err != nil {
		log.Printf("Error fetching vehicle %d: %v", vehicleID, err)
	} else if vehicle.Registration != "" {
		vehicleLabel = vehicle.Registration
	}

	message := fmt.Sprintf("Le véhicule %s est de nouveau en service !", vehicleLabel)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Handle expired subscriptions
	if resp.StatusCode == 410 {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
