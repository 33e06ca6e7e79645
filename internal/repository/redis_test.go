package repository

import (
	"context"
	"testing"
	"time"

	"innkeep/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDraftRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisDraftRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetDraft", func(t *testing.T) {
		checkIn, err := models.ParseDate("2026-09-10")
		require.NoError(t, err)
		checkOut, err := models.ParseDate("2026-09-12")
		require.NoError(t, err)

		draft := &models.BookingDraft{
			ID:         "client-1",
			HotelID:    1,
			RoomID:     7,
			RoomNumber: "101",
			Guest:      models.GuestInfo{Name: "Anna", Phone: "+79990000001"},
			Stay:       models.NewStay(checkIn, checkOut),
			GuestCount: 2,
		}

		err = repo.SetDraft(ctx, draft)
		require.NoError(t, err)

		got, err := repo.GetDraft(ctx, "client-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, draft.ID, got.ID)
		assert.Equal(t, draft.RoomID, got.RoomID)
		assert.Equal(t, draft.Guest.Name, got.Guest.Name)
		assert.True(t, draft.Stay.CheckIn.Equal(got.Stay.CheckIn))
	})

	t.Run("GetNonExistentDraft", func(t *testing.T) {
		got, err := repo.GetDraft(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearDraft", func(t *testing.T) {
		draft := &models.BookingDraft{ID: "client-2", HotelID: 1}
		repo.SetDraft(ctx, draft)

		err := repo.ClearDraft(ctx, "client-2")
		require.NoError(t, err)

		got, _ := repo.GetDraft(ctx, "client-2")
		assert.Nil(t, got)
	})

	t.Run("RateLimit", func(t *testing.T) {
		clientID := "client-3"
		limit := 2
		window := time.Second

		// First request
		allowed, err := repo.CheckRateLimit(ctx, clientID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Second request
		allowed, err = repo.CheckRateLimit(ctx, clientID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Third request (exceeds limit)
		allowed, err = repo.CheckRateLimit(ctx, clientID, limit, window)
		require.NoError(t, err)
		assert.False(t, allowed)

		// Wait for window to expire
		s.FastForward(window + time.Millisecond)

		// Should be allowed again
		allowed, err = repo.CheckRateLimit(ctx, clientID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		repo := NewRedisDraftRepository(nil, time.Hour)
		_, err := repo.GetDraft(ctx, "client-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})

	t.Run("Ping", func(t *testing.T) {
		err := Ping(ctx, client)
		assert.NoError(t, err)
	})

	t.Run("Close", func(t *testing.T) {
		err := Close(client)
		assert.NoError(t, err)
	})
}
