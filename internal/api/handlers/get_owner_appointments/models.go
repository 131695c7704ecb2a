package get_owner_appointments

import (
	"fmt"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
)

// Query параметры списка записей владельца
type Query struct {
	View   domain.BookingsView
	Date   *time.Time
	Status *domain.AppointmentStatus
}

// ParseQuery разбирает view, date и status
func ParseQuery(viewStr, dateStr, statusStr string) (*Query, error) {
	q := &Query{View: domain.BookingsView(viewStr)}

	// Парсим date если указана
	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		q.Date = &date
	}

	// Парсим status если указан
	if statusStr != "" {
		status := domain.AppointmentStatus(statusStr)
		if !status.IsValid() {
			return nil, fmt.Errorf("invalid status %q", statusStr)
		}
		q.Status = &status
	}

	return q, nil
}

// Apply оставляет записи на указанную дату и со статусом
func (q *Query) Apply(list []*domain.Appointment) []*domain.Appointment {
	if q.Date == nil && q.Status == nil {
		return list
	}
	result := make([]*domain.Appointment, 0, len(list))
	for _, a := range list {
		if q.Date != nil && a.Date.Format(domain.DateFormat) != q.Date.Format(domain.DateFormat) {
			continue
		}
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		result = append(result, a)
	}
	return result
}
