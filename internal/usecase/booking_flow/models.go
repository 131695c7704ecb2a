package booking_flow

import (
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
)

// SlotsResult результат загрузки слотов для черновика
type SlotsResult struct {
	DraftID    string
	Generation int64
	Date       time.Time
	Slots      []domain.AvailableSlot
}

// SubmitResult результат успешной отправки черновика
type SubmitResult struct {
	Draft       *domain.BookingDraft
	Appointment *domain.Appointment
}
