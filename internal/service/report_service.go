package service

import (
	"context"
	"fmt"
	"time"

	"innkeep/internal/domain"
	"innkeep/internal/models"

	"github.com/rs/zerolog"
)

type ReportService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewReportService(store domain.Store, logger *zerolog.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger,
	}
}

// ResolvePeriod maps a named period to an inclusive [start, end] date pair.
// The week starts on Monday, the month on the 1st.
func ResolvePeriod(period string, today time.Time) (time.Time, time.Time, error) {
	day := models.Day(today)
	switch period {
	case models.PeriodToday:
		return day, day, nil
	case models.PeriodYesterday:
		y := day.AddDate(0, 0, -1)
		return y, y, nil
	case models.PeriodWeek:
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday
		}
		monday := day.AddDate(0, 0, -(weekday - 1))
		return monday, day, nil
	case models.PeriodMonth:
		first := day.AddDate(0, 0, -(day.Day() - 1))
		return first, day, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown report period: %q", period)
	}
}

func (s *ReportService) SalesReport(ctx context.Context, hotelID int64, period string) (*models.SalesReport, error) {
	start, end, err := ResolvePeriod(period, models.Today())
	if err != nil {
		return nil, err
	}

	report, err := s.store.SalesTotals(ctx, hotelID, start, end)
	if err != nil {
		return nil, err
	}
	report.Period = period
	return report, nil
}

func (s *ReportService) Analytics(ctx context.Context, hotelID int64) (*models.Analytics, error) {
	return s.store.Analytics(ctx, hotelID, models.Today())
}
