package appointments

import (
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
)

// ListRequest выборка записей. Пустые поля не фильтруют.
type ListRequest struct {
	CustomerID *string
	BusinessID *int64
	View       domain.BookingsView // пусто = all
}

// Settings параметры, общие с выдачей слотов
type Settings struct {
	Location      *time.Location // часовой пояс date+time записей
	SlotMinutes   int
	DurationAware bool
}
