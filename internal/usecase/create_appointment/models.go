package create_appointment

import (
	"time"

	"github.com/m04kA/BookEasy/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	BusinessID    int64
	ServiceID     int64
	CustomerID    string // Пустой - будет сгенерирован customer_<uuid>
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Date          time.Time        // Дата записи (без времени)
	Time          types.TimeString // Время начала, HH:MM
	Notes         *string
}

// Settings правила проверки занятости слота, совпадают с правилами выдачи слотов
type Settings struct {
	SlotMinutes   int
	DurationAware bool
}
