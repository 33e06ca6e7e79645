package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"innkeep/internal/database"
	"innkeep/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeStoreError maps the store's error taxonomy onto HTTP status codes.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case database.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case database.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case database.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error())
	case database.IsState(err):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func urlID(r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func parseStay(checkIn, checkOut string) (models.Stay, string) {
	in, err := models.ParseDate(strings.TrimSpace(checkIn))
	if err != nil {
		return models.Stay{}, "invalid check_in; expected YYYY-MM-DD"
	}
	out, err := models.ParseDate(strings.TrimSpace(checkOut))
	if err != nil {
		return models.Stay{}, "invalid check_out; expected YYYY-MM-DD"
	}
	return models.NewStay(in, out), ""
}

// --- hotels ---

type hotelPayload struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
}

func (s *Server) handleCreateHotel(w http.ResponseWriter, r *http.Request) {
	var body hotelPayload
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	hotel := &models.Hotel{
		Name:       body.Name,
		Address:    body.Address,
		Phone:      body.Phone,
		Email:      body.Email,
		OwnerName:  body.OwnerName,
		OwnerEmail: body.OwnerEmail,
		IsActive:   true,
	}
	if err := s.hotels.CreateHotel(r.Context(), hotel); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hotel)
}

func (s *Server) handleListHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := s.hotels.ListHotels(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": hotels})
}

func (s *Server) handleGetHotel(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	hotel, err := s.hotels.GetHotel(r.Context(), hotelID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func (s *Server) handleSetHotelActive(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	var body struct {
		Active bool `json:"active"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if err := s.hotels.SetHotelActive(r.Context(), hotelID, body.Active); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": hotelID, "active": body.Active})
}

func (s *Server) handleDeleteHotel(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	if err := s.hotels.DeleteHotel(r.Context(), hotelID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- rooms ---

type roomPayload struct {
	RoomNumber    string          `json:"room_number"`
	RoomType      string          `json:"room_type"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Capacity      int64           `json:"capacity"`
}

func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	var body roomPayload
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.RoomNumber) == "" {
		writeError(w, http.StatusBadRequest, "room_number is required")
		return
	}

	room := &models.Room{
		HotelID:       hotelID,
		RoomNumber:    body.RoomNumber,
		RoomType:      body.RoomType,
		PricePerNight: body.PricePerNight,
		Capacity:      body.Capacity,
		IsActive:      true,
	}
	if err := s.rooms.CreateRoom(r.Context(), room); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (s *Server) handleListRooms(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	rooms, err := s.rooms.ListActiveRooms(r.Context(), hotelID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	roomID, ok2 := urlID(r, "roomID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	room, err := s.rooms.GetRoom(r.Context(), hotelID, roomID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *Server) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	roomID, ok2 := urlID(r, "roomID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body roomPayload
	if !decodeBody(w, r, &body) {
		return
	}

	room := &models.Room{
		ID:            roomID,
		HotelID:       hotelID,
		RoomNumber:    body.RoomNumber,
		RoomType:      body.RoomType,
		PricePerNight: body.PricePerNight,
		Capacity:      body.Capacity,
	}
	if err := s.rooms.UpdateRoom(r.Context(), room); err != nil {
		writeStoreError(w, err)
		return
	}
	updated, err := s.rooms.GetRoom(r.Context(), hotelID, roomID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeactivateRoom(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	roomID, ok2 := urlID(r, "roomID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.rooms.DeactivateRoom(r.Context(), hotelID, roomID); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": roomID, "active": false})
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	roomID, ok2 := urlID(r, "roomID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.rooms.DeleteRoom(r.Context(), hotelID, roomID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFindAvailableRooms(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}

	stay, msg := parseStay(r.URL.Query().Get("check_in"), r.URL.Query().Get("check_out"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	var guests int64
	if raw := strings.TrimSpace(r.URL.Query().Get("guests")); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid guests")
			return
		}
		guests = n
	}

	rooms, err := s.bookings.FindAvailableRooms(r.Context(), hotelID, stay, guests)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *Server) handleRoomStatus(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	status, err := s.bookings.RoomStatusToday(r.Context(), hotelID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// --- bookings ---

type bookingPayload struct {
	RoomID         int64  `json:"room_id"`
	GuestName      string `json:"guest_name"`
	GuestEmail     string `json:"guest_email,omitempty"`
	GuestPhone     string `json:"guest_phone,omitempty"`
	CheckIn        string `json:"check_in"`
	CheckOut       string `json:"check_out"`
	GuestCount     int64  `json:"guest_count"`
	OverrideAmount string `json:"override_amount,omitempty"`
}

func (p bookingPayload) toRequest(hotelID int64) (*models.BookingRequest, string) {
	if strings.TrimSpace(p.GuestName) == "" {
		return nil, "guest_name is required"
	}

	stay, msg := parseStay(p.CheckIn, p.CheckOut)
	if msg != "" {
		return nil, msg
	}

	req := &models.BookingRequest{
		HotelID: hotelID,
		RoomID:  p.RoomID,
		Guest: models.GuestInfo{
			Name:  p.GuestName,
			Email: p.GuestEmail,
			Phone: p.GuestPhone,
		},
		Stay:       stay,
		GuestCount: p.GuestCount,
	}

	if raw := strings.TrimSpace(p.OverrideAmount); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, "invalid override_amount"
		}
		req.OverrideAmount = &amount
	}

	return req, ""
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	var body bookingPayload
	if !decodeBody(w, r, &body) {
		return
	}
	req, msg := body.toRequest(hotelID)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}

	limit := 100
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	if from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to"); from != "" || to != "" {
		stay, msg := parseStay(from, to)
		if msg != "" {
			writeError(w, http.StatusBadRequest, "invalid from/to; expected YYYY-MM-DD")
			return
		}
		bookings, err := s.bookings.GetBookingsByDateRange(r.Context(), hotelID, stay.CheckIn, stay.CheckOut)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
		return
	}

	var err error
	var bookings []models.Booking
	if r.URL.Query().Get("status") == models.StatusCancelled {
		bookings, err = s.bookings.GetCancelledBookings(r.Context(), hotelID, limit)
	} else {
		bookings, err = s.bookings.ListBookings(r.Context(), hotelID, limit)
	}
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	bookingID, ok2 := urlID(r, "bookingID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	booking, err := s.bookings.GetBooking(r.Context(), hotelID, bookingID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleUpdateBooking(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	bookingID, ok2 := urlID(r, "bookingID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body bookingPayload
	if !decodeBody(w, r, &body) {
		return
	}
	req, msg := body.toRequest(hotelID)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	booking, err := s.bookings.UpdateBooking(r.Context(), hotelID, bookingID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	bookingID, ok2 := urlID(r, "bookingID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	booking, err := s.bookings.CancelBooking(r.Context(), hotelID, bookingID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *Server) handleSetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	bookingID, ok2 := urlID(r, "bookingID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	booking, err := s.bookings.SetPaymentStatus(r.Context(), hotelID, bookingID, body.Status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// --- occupancy ---

func (s *Server) handleGetOccupancy(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	bookingID, ok2 := urlID(r, "bookingID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	record, err := s.occupancy.GetOccupancy(r.Context(), hotelID, bookingID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": record, "state": record.State()})
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	bookingID, ok2 := urlID(r, "bookingID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var body struct {
		Notes string `json:"notes,omitempty"`
	}
	if r.ContentLength > 0 && !decodeBody(w, r, &body) {
		return
	}

	record, err := s.occupancy.CheckInGuest(r.Context(), hotelID, bookingID, body.Notes)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": record, "state": record.State()})
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	hotelID, ok1 := urlID(r, "hotelID")
	bookingID, ok2 := urlID(r, "bookingID")
	if !ok1 || !ok2 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	record, err := s.occupancy.CheckOutGuest(r.Context(), hotelID, bookingID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"record": record, "state": record.State()})
}

func (s *Server) handleTodaysCheckins(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	bookings, err := s.occupancy.GetTodaysCheckins(r.Context(), hotelID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *Server) handleTodaysCheckouts(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	bookings, err := s.occupancy.GetTodaysCheckouts(r.Context(), hotelID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *Server) handleCurrentGuests(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	guests, err := s.occupancy.GetCurrentGuests(r.Context(), hotelID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guests": guests})
}

// --- reports ---

func (s *Server) handleSalesReport(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		period = models.PeriodToday
	}

	report, err := s.reports.SalesReport(r.Context(), hotelID, period)
	if err != nil {
		if database.IsNotFound(err) || database.IsConflict(err) {
			writeStoreError(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}
	analytics, err := s.reports.Analytics(r.Context(), hotelID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// --- exports ---

func (s *Server) handleExportSchedule(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}

	start := models.Today()
	end := start.AddDate(0, 0, models.DefaultExportRangeDays-1)
	if from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to"); from != "" && to != "" {
		stay, msg := parseStay(from, to)
		if msg != "" {
			writeError(w, http.StatusBadRequest, "invalid from/to; expected YYYY-MM-DD")
			return
		}
		start, end = stay.CheckIn, stay.CheckOut
	}

	path, err := s.exporter.ExportSchedule(r.Context(), hotelID, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": path})
}

func (s *Server) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	hotelID, ok := urlID(r, "hotelID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid hotel id")
		return
	}

	limit := 1000
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	path, err := s.exporter.ExportBookings(r.Context(), hotelID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"file": path})
}

// --- drafts ---

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	draft, err := s.drafts.GetDraft(r.Context(), clientID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if draft == nil {
		writeError(w, http.StatusNotFound, database.ErrDraftNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleStartDraft(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	var body struct {
		HotelID    int64  `json:"hotel_id"`
		RoomID     int64  `json:"room_id"`
		CheckIn    string `json:"check_in"`
		CheckOut   string `json:"check_out"`
		GuestCount int64  `json:"guest_count"`
	}
	if !decodeBody(w, r, &body) {
		return
	}

	stay, msg := parseStay(body.CheckIn, body.CheckOut)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	draft, err := s.drafts.StartDraft(r.Context(), clientID, body.HotelID, body.RoomID, stay, body.GuestCount)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

func (s *Server) handleConfirmDraft(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	var body struct {
		GuestName  string `json:"guest_name"`
		GuestEmail string `json:"guest_email,omitempty"`
		GuestPhone string `json:"guest_phone,omitempty"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if strings.TrimSpace(body.GuestName) == "" {
		writeError(w, http.StatusBadRequest, "guest_name is required")
		return
	}

	booking, err := s.drafts.ConfirmDraft(r.Context(), clientID, models.GuestInfo{
		Name:  body.GuestName,
		Email: body.GuestEmail,
		Phone: body.GuestPhone,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleClearDraft(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	if err := s.drafts.ClearDraft(r.Context(), clientID); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
