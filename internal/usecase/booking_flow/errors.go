package booking_flow

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновик не найден или истек
	ErrDraftNotFound = errors.New("booking_flow: draft not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("booking_flow: business not found")

	// ErrServiceNotFound возвращается, когда услуга не принадлежит бизнесу
	ErrServiceNotFound = errors.New("booking_flow: service not found")

	// ErrInvalidTransition возвращается при недопустимом переходе между шагами
	ErrInvalidTransition = errors.New("booking_flow: invalid step transition")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят
	ErrSlotNotAvailable = errors.New("booking_flow: slot is not available")

	// ErrIncompleteDraft возвращается при отправке без услуги, даты-времени или контактов
	ErrIncompleteDraft = errors.New("booking_flow: draft is incomplete")

	// ErrSubmitInProgress возвращается при повторной отправке во время создания записи
	ErrSubmitInProgress = errors.New("booking_flow: submit already in progress")

	// ErrStaleRequest возвращается, когда результат загрузки слотов устарел
	ErrStaleRequest = errors.New("booking_flow: stale availability request")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking_flow: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("booking_flow: internal error")
)
