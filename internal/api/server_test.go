package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"innkeep/internal/config"
	"innkeep/internal/database"
	"innkeep/internal/events"
	"innkeep/internal/export"
	"innkeep/internal/models"
	"innkeep/internal/repository"
	"innkeep/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-key"

var testLogger = zerolog.New(io.Discard)

func newTestServer(t *testing.T, mutate func(*config.APIConfig)) (*httptest.Server, *database.DB) {
	db, err := database.NewDB(":memory:", &testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.APIConfig{
		Port: 0,
		Auth: config.APIAuthConfig{
			Enabled:      true,
			HeaderAPIKey: "x-api-key",
			APIKeys:      []config.APIClientKey{{Key: testAPIKey, Name: "tests"}},
		},
		RateLimit: config.APIRateLimitConfig{RPS: 1000, Burst: 1000},
	}
	if mutate != nil {
		mutate(&cfg)
	}

	bus := events.NewEventBus()
	bookings := service.NewBookingService(db, bus, nil, &testLogger)
	drafts := service.NewDraftService(
		repository.NewMemoryDraftRepository(time.Minute), db, bookings, &testLogger)

	srv := NewServer(
		cfg,
		service.NewHotelService(db, &testLogger),
		service.NewRoomService(db, &testLogger),
		bookings,
		service.NewOccupancyService(db, bus, nil, &testLogger),
		service.NewReportService(db, &testLogger),
		drafts,
		export.NewScheduleExporter(db, t.TempDir(), &testLogger),
		&testLogger,
	)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, db
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body any) (*http.Response, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", testAPIKey)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decodeInto(t *testing.T, raw []byte, dst any) {
	require.NoError(t, json.Unmarshal(raw, dst), "body: %s", raw)
}

func createHotelAndRoom(t *testing.T, ts *httptest.Server) (int64, int64) {
	resp, raw := doRequest(t, ts, http.MethodPost, "/api/v1/hotels", map[string]any{
		"name": "Test Hotel",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	var hotel models.Hotel
	decodeInto(t, raw, &hotel)

	resp, raw = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/rooms", hotel.ID), map[string]any{
			"room_number":     "101",
			"room_type":       "standard",
			"price_per_night": "3500.00",
			"capacity":        2,
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	var room models.Room
	decodeInto(t, raw, &room)

	return hotel.ID, room.ID
}

func futureDate(daysAhead int) string {
	return models.Today().AddDate(0, 0, daysAhead).Format(models.DateLayout)
}

func TestAuthRequired(t *testing.T) {
	ts, _ := newTestServer(t, nil)

	// Health endpoint is public.
	resp, err := ts.Client().Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Missing key.
	resp, err = ts.Client().Get(ts.URL + "/api/v1/hotels")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Wrong key.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/hotels", nil)
	require.NoError(t, err)
	req.Header.Set("x-api-key", "bogus")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	ts, _ := newTestServer(t, func(cfg *config.APIConfig) {
		cfg.RateLimit = config.APIRateLimitConfig{RPS: 0.001, Burst: 2}
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, _ := doRequest(t, ts, http.MethodGet, "/api/v1/hotels", nil)
		statuses = append(statuses, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestBookingFlow(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	hotelID, roomID := createHotelAndRoom(t, ts)

	checkIn, checkOut := futureDate(7), futureDate(9)

	// The room shows up as available.
	resp, raw := doRequest(t, ts, http.MethodGet, fmt.Sprintf(
		"/api/v1/hotels/%d/rooms/available?check_in=%s&check_out=%s&guests=2",
		hotelID, checkIn, checkOut), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)
	var avail struct {
		Rooms []models.Room `json:"rooms"`
	}
	decodeInto(t, raw, &avail)
	require.Len(t, avail.Rooms, 1)

	// Book it.
	resp, raw = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings", hotelID), map[string]any{
			"room_id":     roomID,
			"guest_name":  "Иванов",
			"check_in":    checkIn,
			"check_out":   checkOut,
			"guest_count": 2,
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	var booking models.Booking
	decodeInto(t, raw, &booking)
	assert.NotEmpty(t, booking.Reference)
	assert.True(t, booking.TotalAmount.Equal(decimal.RequireFromString("7000")),
		"total = %s", booking.TotalAmount)

	// A second overlapping booking conflicts.
	resp, _ = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings", hotelID), map[string]any{
			"room_id":     roomID,
			"guest_name":  "Петров",
			"check_in":    futureDate(8),
			"check_out":   futureDate(10),
			"guest_count": 1,
		})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Mark paid.
	resp, raw = doRequest(t, ts, http.MethodPut,
		fmt.Sprintf("/api/v1/hotels/%d/bookings/%d/payment", hotelID, booking.ID),
		map[string]any{"status": "paid"})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)
	decodeInto(t, raw, &booking)
	assert.Equal(t, models.PaymentPaid, booking.PaymentStatus)

	// Cancel; a repeat cancel conflicts.
	resp, _ = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings/%d/cancel", hotelID, booking.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings/%d/cancel", hotelID, booking.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The cancelled list has it.
	resp, raw = doRequest(t, ts, http.MethodGet,
		fmt.Sprintf("/api/v1/hotels/%d/bookings?status=cancelled", hotelID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list struct {
		Bookings []models.Booking `json:"bookings"`
	}
	decodeInto(t, raw, &list)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, booking.ID, list.Bookings[0].ID)
}

func TestErrorMapping(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	hotelID, roomID := createHotelAndRoom(t, ts)

	// Validation: inverted dates.
	resp, _ := doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings", hotelID), map[string]any{
			"room_id":     roomID,
			"guest_name":  "Иванов",
			"check_in":    futureDate(9),
			"check_out":   futureDate(7),
			"guest_count": 1,
		})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Malformed date string.
	resp, _ = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings", hotelID), map[string]any{
			"room_id":     roomID,
			"guest_name":  "Иванов",
			"check_in":    "not-a-date",
			"check_out":   futureDate(7),
			"guest_count": 1,
		})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Not found.
	resp, _ = doRequest(t, ts, http.MethodGet,
		fmt.Sprintf("/api/v1/hotels/%d/bookings/999", hotelID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// State: check-out before check-in.
	resp, raw := doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings", hotelID), map[string]any{
			"room_id":     roomID,
			"guest_name":  "Иванов",
			"check_in":    futureDate(7),
			"check_out":   futureDate(9),
			"guest_count": 1,
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	var booking models.Booking
	decodeInto(t, raw, &booking)

	resp, _ = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings/%d/checkout", hotelID, booking.ID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Unknown report period.
	resp, _ = doRequest(t, ts, http.MethodGet,
		fmt.Sprintf("/api/v1/hotels/%d/reports/sales?period=quarter", hotelID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOccupancyEndpoints(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	hotelID, roomID := createHotelAndRoom(t, ts)

	resp, raw := doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings", hotelID), map[string]any{
			"room_id":     roomID,
			"guest_name":  "Иванов",
			"check_in":    futureDate(0),
			"check_out":   futureDate(2),
			"guest_count": 1,
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	var booking models.Booking
	decodeInto(t, raw, &booking)

	var state struct {
		State models.OccupancyState `json:"state"`
	}

	resp, raw = doRequest(t, ts, http.MethodGet,
		fmt.Sprintf("/api/v1/hotels/%d/bookings/%d/occupancy", hotelID, booking.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, raw, &state)
	assert.Equal(t, models.OccupancyNotArrived, state.State)

	resp, raw = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings/%d/checkin", hotelID, booking.ID),
		map[string]any{"notes": "ранний заезд"})
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", raw)
	decodeInto(t, raw, &state)
	assert.Equal(t, models.OccupancyCheckedIn, state.State)

	// The guest shows up in the current-guests list.
	resp, raw = doRequest(t, ts, http.MethodGet,
		fmt.Sprintf("/api/v1/hotels/%d/occupancy/guests", hotelID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var guests struct {
		Guests []models.CurrentGuest `json:"guests"`
	}
	decodeInto(t, raw, &guests)
	require.Len(t, guests.Guests, 1)

	resp, raw = doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings/%d/checkout", hotelID, booking.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, raw, &state)
	assert.Equal(t, models.OccupancyCheckedOut, state.State)
}

func TestDraftEndpoints(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	hotelID, roomID := createHotelAndRoom(t, ts)

	resp, raw := doRequest(t, ts, http.MethodPost, "/api/v1/drafts/client-1/start", map[string]any{
		"hotel_id":    hotelID,
		"room_id":     roomID,
		"check_in":    futureDate(7),
		"check_out":   futureDate(9),
		"guest_count": 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	var draft models.BookingDraft
	decodeInto(t, raw, &draft)
	assert.Equal(t, "101", draft.RoomNumber)

	resp, raw = doRequest(t, ts, http.MethodPost, "/api/v1/drafts/client-1/confirm", map[string]any{
		"guest_name": "Иванов",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)
	var booking models.Booking
	decodeInto(t, raw, &booking)
	assert.Equal(t, models.StatusConfirmed, booking.BookingStatus)

	// The draft is gone after confirmation.
	resp, _ = doRequest(t, ts, http.MethodGet, "/api/v1/drafts/client-1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportsEndpoints(t *testing.T) {
	ts, _ := newTestServer(t, nil)
	hotelID, roomID := createHotelAndRoom(t, ts)

	resp, raw := doRequest(t, ts, http.MethodPost,
		fmt.Sprintf("/api/v1/hotels/%d/bookings", hotelID), map[string]any{
			"room_id":     roomID,
			"guest_name":  "Иванов",
			"check_in":    futureDate(0),
			"check_out":   futureDate(2),
			"guest_count": 1,
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)

	resp, raw = doRequest(t, ts, http.MethodGet,
		fmt.Sprintf("/api/v1/hotels/%d/reports/sales?period=today", hotelID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report models.SalesReport
	decodeInto(t, raw, &report)
	assert.Equal(t, "today", report.Period)
	assert.Equal(t, int64(1), report.TotalBookings)

	resp, raw = doRequest(t, ts, http.MethodGet,
		fmt.Sprintf("/api/v1/hotels/%d/reports/analytics", hotelID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var analytics models.Analytics
	decodeInto(t, raw, &analytics)
	assert.Equal(t, int64(1), analytics.TotalRooms)
	assert.Equal(t, int64(1), analytics.OccupiedRooms)
}
