package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"innkeep/internal/config"
	"innkeep/internal/export"
	"innkeep/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Server exposes the booking engine over HTTP.
type Server struct {
	cfg       config.APIConfig
	hotels    *service.HotelService
	rooms     *service.RoomService
	bookings  *service.BookingService
	occupancy *service.OccupancyService
	reports   *service.ReportService
	drafts    *service.DraftService
	exporter  *export.ScheduleExporter
	logger    *zerolog.Logger
	server    *http.Server
}

func NewServer(
	cfg config.APIConfig,
	hotels *service.HotelService,
	rooms *service.RoomService,
	bookings *service.BookingService,
	occupancy *service.OccupancyService,
	reports *service.ReportService,
	drafts *service.DraftService,
	exporter *export.ScheduleExporter,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		cfg:       cfg,
		hotels:    hotels,
		rooms:     rooms,
		bookings:  bookings,
		occupancy: occupancy,
		reports:   reports,
		drafts:    drafts,
		exporter:  exporter,
		logger:    logger,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return s
}

// Routes builds the router. Exposed so tests can drive it via httptest.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	r.Use(metricsMiddleware)

	if len(s.cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", s.cfg.Auth.HeaderAPIKey},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/healthz", s.handleHealth)

	auth := NewHTTPAuth(s.cfg)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Wrap)

		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", s.handleListHotels)
			r.Post("/", s.handleCreateHotel)

			r.Route("/{hotelID}", func(r chi.Router) {
				r.Get("/", s.handleGetHotel)
				r.Delete("/", s.handleDeleteHotel)
				r.Put("/active", s.handleSetHotelActive)

				r.Route("/rooms", func(r chi.Router) {
					r.Get("/", s.handleListRooms)
					r.Post("/", s.handleCreateRoom)
					r.Get("/available", s.handleFindAvailableRooms)
					r.Get("/status", s.handleRoomStatus)

					r.Route("/{roomID}", func(r chi.Router) {
						r.Get("/", s.handleGetRoom)
						r.Put("/", s.handleUpdateRoom)
						r.Delete("/", s.handleDeleteRoom)
						r.Post("/deactivate", s.handleDeactivateRoom)
					})
				})

				r.Route("/bookings", func(r chi.Router) {
					r.Get("/", s.handleListBookings)
					r.Post("/", s.handleCreateBooking)

					r.Route("/{bookingID}", func(r chi.Router) {
						r.Get("/", s.handleGetBooking)
						r.Put("/", s.handleUpdateBooking)
						r.Post("/cancel", s.handleCancelBooking)
						r.Put("/payment", s.handleSetPaymentStatus)
						r.Get("/occupancy", s.handleGetOccupancy)
						r.Post("/checkin", s.handleCheckIn)
						r.Post("/checkout", s.handleCheckOut)
					})
				})

				r.Route("/occupancy", func(r chi.Router) {
					r.Get("/checkins", s.handleTodaysCheckins)
					r.Get("/checkouts", s.handleTodaysCheckouts)
					r.Get("/guests", s.handleCurrentGuests)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/sales", s.handleSalesReport)
					r.Get("/analytics", s.handleAnalytics)
				})

				r.Post("/exports/schedule", s.handleExportSchedule)
				r.Post("/exports/bookings", s.handleExportBookings)
			})
		})

		r.Route("/drafts/{clientID}", func(r chi.Router) {
			r.Get("/", s.handleGetDraft)
			r.Delete("/", s.handleClearDraft)
			r.Post("/start", s.handleStartDraft)
			r.Post("/confirm", s.handleConfirmDraft)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
