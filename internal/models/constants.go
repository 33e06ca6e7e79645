package models

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

const (
	PeriodToday     = "today"
	PeriodYesterday = "yesterday"
	PeriodWeek      = "week"
	PeriodMonth     = "month"
)

const (
	// DefaultDraftTTL время жизни черновика брони в Redis
	DefaultDraftTTL = 30 * 60 // 30 минут в секундах

	// OutboxQueueSize размер внутренней очереди воркера
	OutboxQueueSize = 1000

	// RateLimitRequests количество запросов в окне
	RateLimitRequests = 20

	// RateLimitWindow окно ограничения частоты запросов
	RateLimitWindow = 60 // 1 минута в секундах

	// DefaultExportRangeDays диапазон экспорта расписания по умолчанию
	DefaultExportRangeDays = 31

	// MaxBookingDays максимальный горизонт бронирования
	MaxBookingDays = 365
)
