package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается, когда не указан бизнес или дата
	ErrInvalidInput = errors.New("get_available_slots: invalid business or date")

	// ErrInternal возвращается, когда не удалось построить сетку или прочитать записи
	ErrInternal = errors.New("get_available_slots: internal error")
)
