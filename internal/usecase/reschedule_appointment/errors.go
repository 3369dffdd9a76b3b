package reschedule_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда актор не является стороной записи
	// или его роль не даёт права на перенос
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrInvalidTransition возвращается при попытке перенести запись
	// из терминального статуса
	ErrInvalidTransition = errors.New("reschedule_appointment: appointment is not reschedulable in its current status")

	// ErrOutsideAvailability возвращается, когда новый интервал не попадает
	// ни в одно активное окно доступности провайдера
	ErrOutsideAvailability = errors.New("reschedule_appointment: new start is outside provider availability")

	// ErrStoreUnavailable возвращается при сбое транзакции; операция не оставила
	// частичного эффекта, её можно повторить целиком
	ErrStoreUnavailable = errors.New("reschedule_appointment: store unavailable, safe to retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
