package service

import (
	"context"

	"innkeep/internal/domain"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
)

type HotelService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewHotelService(store domain.Store, logger *zerolog.Logger) *HotelService {
	return &HotelService{
		store:  store,
		logger: logger,
	}
}

func (s *HotelService) CreateHotel(ctx context.Context, hotel *models.Hotel) error {
	if err := s.store.CreateHotel(ctx, hotel); err != nil {
		return err
	}
	s.logger.Info().Int64("hotel_id", hotel.ID).Str("name", hotel.Name).Msg("hotel created")
	return nil
}

func (s *HotelService) GetHotel(ctx context.Context, id int64) (*models.Hotel, error) {
	return s.store.GetHotel(ctx, id)
}

func (s *HotelService) ListHotels(ctx context.Context) ([]models.Hotel, error) {
	return s.store.ListHotels(ctx)
}

func (s *HotelService) SetHotelActive(ctx context.Context, id int64, active bool) error {
	if err := s.store.SetHotelActive(ctx, id, active); err != nil {
		return err
	}
	s.logger.Info().Int64("hotel_id", id).Bool("active", active).Msg("hotel active flag changed")
	return nil
}

func (s *HotelService) DeleteHotel(ctx context.Context, id int64) error {
	if err := s.store.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.logger.Warn().Int64("hotel_id", id).Msg("hotel deleted with all rooms and bookings")
	return nil
}
