package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePeriod(t *testing.T) {
	// Wednesday
	today := mustParseDate(t, "2026-09-16")

	tests := []struct {
		period string
		start  string
		end    string
	}{
		{"today", "2026-09-16", "2026-09-16"},
		{"yesterday", "2026-09-15", "2026-09-15"},
		{"week", "2026-09-14", "2026-09-16"},
		{"month", "2026-09-01", "2026-09-16"},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			start, end, err := ResolvePeriod(tt.period, today)
			require.NoError(t, err)
			assert.Equal(t, tt.start, start.Format("2006-01-02"))
			assert.Equal(t, tt.end, end.Format("2006-01-02"))
		})
	}
}

func TestResolvePeriodWeekOnSunday(t *testing.T) {
	sunday := mustParseDate(t, "2026-09-20")
	require.Equal(t, time.Sunday, sunday.Weekday())

	start, end, err := ResolvePeriod("week", sunday)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-14", start.Format("2006-01-02"))
	assert.Equal(t, "2026-09-20", end.Format("2006-01-02"))
}

func TestResolvePeriodMonthCrossing(t *testing.T) {
	// Yesterday from the 1st lands in the previous month.
	first := mustParseDate(t, "2026-10-01")

	start, end, err := ResolvePeriod("yesterday", first)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-30", start.Format("2006-01-02"))
	assert.Equal(t, "2026-09-30", end.Format("2006-01-02"))

	start, end, err = ResolvePeriod("month", first)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", start.Format("2006-01-02"))
	assert.Equal(t, "2026-10-01", end.Format("2006-01-02"))
}

func TestResolvePeriodUnknown(t *testing.T) {
	_, _, err := ResolvePeriod("quarter", mustParseDate(t, "2026-09-16"))
	assert.Error(t, err)
}
