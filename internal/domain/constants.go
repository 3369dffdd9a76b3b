package domain

// Default configuration values
const (
	DefaultNoShowGraceMinutes = 15
)

// Business validation constants
const (
	MinDurationMinutes          = 1
	MaxDurationMinutes          = 480 // 8 hours
	MaxSlotRangeDays            = 92  // ~3 months of slots per request
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses список статусов, занимающих время провайдера
// Используется при проверке пересечений и генерации слотов
var OccupyingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
}

// ReleasedStatuses список статусов, не занимающих время провайдера
var ReleasedStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}
