package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fleet-availability-backend/internal/model"
	"fleet-availability-backend/internal/store"
	"fleet-availability-backend/internal/timeline"
)

// newTestStore creates an in-memory database with the full schema.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Vehicle{},
		&model.Ticket{},
		&model.ShiftReport{},
		&model.Stoppage{},
		&model.PushSubscription{},
	))
	return store.NewGormStore(db)
}

func testWindows(t *testing.T) timeline.WindowTable {
	t.Helper()
	table, err := timeline.NewWindowTable(time.UTC, "07:00", []timeline.WindowSpec{
		{Period: 1, Start: "07:00", End: "15:00"},
		{Period: 2, Start: "15:00", End: "23:00"},
		{Period: 3, Start: "23:00", End: "07:00"},
	})
	require.NoError(t, err)
	return table
}

// newTestRouter wires all handlers onto a bare engine, without the
// caching and rate-limiting middleware of the production router.
func newTestRouter(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := newTestStore(t)
	handler := NewHandler(s, testWindows(t), 30*time.Minute, &webpush.Options{}, nil)

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/vehicles", handler.GetVehicles)
		api.POST("/vehicles", handler.PostVehicle)
		api.GET("/tickets", handler.GetTickets)
		api.POST("/tickets", handler.PostTicket)
		api.POST("/tickets/:ticket_id/close", handler.CloseTicket)
		api.PATCH("/tickets/:ticket_id/hours", handler.PatchTicketHours)
		api.POST("/shift-reports", handler.PostShiftReport)
		api.GET("/stoppages", handler.GetStoppages)
		api.POST("/stoppages", handler.PostStoppage)
		api.GET("/activity/vehicles", handler.GetVehicleActivity)
		api.GET("/fleet/situation", handler.GetFleetSituation)
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}
	return r, s
}

func seedVehicle(t *testing.T, s store.Store, registration string) *model.Vehicle {
	t.Helper()
	vehicle := &model.Vehicle{Registration: registration, VehicleType: "CAMION", InService: true}
	require.NoError(t, s.DB().Create(vehicle).Error)
	return vehicle
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
