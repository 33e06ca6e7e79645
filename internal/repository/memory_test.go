package repository

import (
	"context"
	"testing"
	"time"

	"innkeep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDraftRepository(t *testing.T) {
	repo := NewMemoryDraftRepository(time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetDraft", func(t *testing.T) {
		draft := &models.BookingDraft{ID: "client-1", HotelID: 1, RoomID: 3}
		err := repo.SetDraft(ctx, draft)
		require.NoError(t, err)

		got, err := repo.GetDraft(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, draft, got)
	})

	t.Run("ClearDraft", func(t *testing.T) {
		err := repo.ClearDraft(ctx, "client-1")
		require.NoError(t, err)
		got, _ := repo.GetDraft(ctx, "client-1")
		assert.Nil(t, got)
	})

	t.Run("ExpiredDraft", func(t *testing.T) {
		short := NewMemoryDraftRepository(10 * time.Millisecond)
		draft := &models.BookingDraft{ID: "client-2"}
		require.NoError(t, short.SetDraft(ctx, draft))

		time.Sleep(20 * time.Millisecond)
		got, err := short.GetDraft(ctx, "client-2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("RateLimit", func(t *testing.T) {
		clientID := "client-3"
		allowed, _ := repo.CheckRateLimit(ctx, clientID, 2, time.Second)
		assert.True(t, allowed)
		allowed, _ = repo.CheckRateLimit(ctx, clientID, 2, time.Second)
		assert.True(t, allowed)
		allowed, _ = repo.CheckRateLimit(ctx, clientID, 2, time.Second)
		assert.False(t, allowed)

		// Wait for expiry
		time.Sleep(time.Second + 10*time.Millisecond)
		allowed, _ = repo.CheckRateLimit(ctx, clientID, 2, time.Second)
		assert.True(t, allowed)
	})
}
