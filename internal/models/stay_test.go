package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStayOverlaps(t *testing.T) {
	base := NewStay(date("2024-06-01"), date("2024-06-03"))

	tests := []struct {
		name     string
		other    Stay
		overlaps bool
	}{
		{"identical", NewStay(date("2024-06-01"), date("2024-06-03")), true},
		{"contained", NewStay(date("2024-06-01"), date("2024-06-02")), true},
		{"partial tail", NewStay(date("2024-06-02"), date("2024-06-04")), true},
		{"partial head", NewStay(date("2024-05-30"), date("2024-06-02")), true},
		{"surrounds", NewStay(date("2024-05-30"), date("2024-06-10")), true},
		{"back to back after", NewStay(date("2024-06-03"), date("2024-06-05")), false},
		{"back to back before", NewStay(date("2024-05-30"), date("2024-06-01")), false},
		{"disjoint", NewStay(date("2024-06-10"), date("2024-06-12")), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}

func TestStayNights(t *testing.T) {
	assert.Equal(t, 2, NewStay(date("2024-06-01"), date("2024-06-03")).Nights())
	assert.Equal(t, 1, NewStay(date("2024-06-30"), date("2024-07-01")).Nights())
}

func TestStayValid(t *testing.T) {
	assert.False(t, NewStay(date("2024-06-01"), date("2024-06-01")).Valid())
	assert.False(t, NewStay(date("2024-06-02"), date("2024-06-01")).Valid())
	assert.True(t, NewStay(date("2024-06-01"), date("2024-06-02")).Valid())
}

func TestStayContainsDay(t *testing.T) {
	s := NewStay(date("2024-06-01"), date("2024-06-03"))
	assert.True(t, s.ContainsDay(date("2024-06-01")))
	assert.True(t, s.ContainsDay(date("2024-06-02")))
	// Check-out day is free for the next guest.
	assert.False(t, s.ContainsDay(date("2024-06-03")))
	assert.False(t, s.ContainsDay(date("2024-05-31")))
}

func TestOccupancyRecordState(t *testing.T) {
	var rec *OccupancyRecord
	assert.Equal(t, OccupancyNotArrived, rec.State())

	now := time.Now()
	rec = &OccupancyRecord{BookingID: 1}
	assert.Equal(t, OccupancyNotArrived, rec.State())

	rec.CheckInTime = &now
	assert.Equal(t, OccupancyCheckedIn, rec.State())

	rec.CheckOutTime = &now
	assert.Equal(t, OccupancyCheckedOut, rec.State())
}
