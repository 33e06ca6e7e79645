package service

import (
	"context"

	"innkeep/internal/domain"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
)

type RoomService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewRoomService(store domain.Store, logger *zerolog.Logger) *RoomService {
	return &RoomService{
		store:  store,
		logger: logger,
	}
}

func (s *RoomService) CreateRoom(ctx context.Context, room *models.Room) error {
	if err := s.store.CreateRoom(ctx, room); err != nil {
		return err
	}
	s.logger.Info().
		Int64("hotel_id", room.HotelID).
		Int64("room_id", room.ID).
		Str("room_number", room.RoomNumber).
		Msg("room created")
	return nil
}

func (s *RoomService) GetRoom(ctx context.Context, hotelID, roomID int64) (*models.Room, error) {
	return s.store.GetRoom(ctx, hotelID, roomID)
}

func (s *RoomService) ListActiveRooms(ctx context.Context, hotelID int64) ([]models.Room, error) {
	return s.store.ListActiveRooms(ctx, hotelID)
}

func (s *RoomService) UpdateRoom(ctx context.Context, room *models.Room) error {
	return s.store.UpdateRoom(ctx, room)
}

func (s *RoomService) DeactivateRoom(ctx context.Context, hotelID, roomID int64) error {
	if err := s.store.DeactivateRoom(ctx, hotelID, roomID); err != nil {
		return err
	}
	s.logger.Info().Int64("hotel_id", hotelID).Int64("room_id", roomID).Msg("room deactivated")
	return nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, hotelID, roomID int64) error {
	if err := s.store.DeleteRoom(ctx, hotelID, roomID); err != nil {
		return err
	}
	s.logger.Info().Int64("hotel_id", hotelID).Int64("room_id", roomID).Msg("room deleted")
	return nil
}
