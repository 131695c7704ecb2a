package get_available_slots

import (
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	Date       time.Time // Дата (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	BusinessID int64
	Date       time.Time
	Slots      []domain.AvailableSlot // Свободные слоты по возрастанию времени
}

// Settings параметры сетки слотов
type Settings struct {
	GridStart       types.TimeString // Первый слот
	GridEnd         types.TimeString // Конец сетки, не включается
	IntervalMinutes int              // Шаг сетки
	DisplayDuration int              // duration, который отдается в каждом слоте
	// DurationAware включает блокировку слотов на всю длительность записи.
	// По умолчанию слот занят, только если время записи совпадает с ним.
	DurationAware bool
}

// DefaultSettings сетка 09:00-18:00 с шагом 30 минут
func DefaultSettings() Settings {
	return Settings{
		GridStart:       domain.DefaultGridStart,
		GridEnd:         domain.DefaultGridEnd,
		IntervalMinutes: domain.DefaultSlotIntervalMinutes,
		DisplayDuration: domain.DefaultSlotDisplayDuration,
	}
}
