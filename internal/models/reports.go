package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport aggregates confirmed bookings by check-in date over a period.
type SalesReport struct {
	Period        string          `json:"period"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	TotalBookings int64           `json:"total_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AvgBooking    decimal.Decimal `json:"avg_booking"`
	PaidBookings  int64           `json:"paid_bookings"`
	PaidRevenue   decimal.Decimal `json:"paid_revenue"`
	PaymentRate   float64         `json:"payment_rate"`
}

// Analytics is the dashboard rollup for a hotel.
type Analytics struct {
	TotalRooms          int64           `json:"total_rooms"`
	OccupiedRooms       int64           `json:"occupied_rooms"`
	OccupancyRate       float64         `json:"occupancy_rate"`
	MonthRevenue        decimal.Decimal `json:"month_revenue"`
	MostPopular         string          `json:"most_popular"`
	MostPopularBookings int64           `json:"most_popular_bookings"`
}
