package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrOutsideAvailability возвращается, когда запрошенный интервал не попадает
	// ни в одно активное окно доступности провайдера
	ErrOutsideAvailability = errors.New("book_appointment: start is outside provider availability")

	// ErrStoreUnavailable возвращается при сбое транзакции (конфликт сериализации,
	// таймаут). Операция не оставила частичного эффекта, её можно повторить целиком
	ErrStoreUnavailable = errors.New("book_appointment: store unavailable, safe to retry")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
