package queue

import (
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
)

const (
	QueueAppointmentCreated   = "appointment.created"
	QueueAppointmentCancelled = "appointment.cancelled"
)

// AppointmentEvent сообщение о создании или отмене записи
type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID int64     `json:"appointmentId"`
	BusinessID    int64     `json:"businessId"`
	CustomerID    string    `json:"customerId"`
	CustomerEmail string    `json:"customerEmail"`
	ServiceName   string    `json:"serviceName"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewAppointmentEvent собирает событие eventType по записи
func NewAppointmentEvent(eventType string, appt *domain.Appointment, occurredAt time.Time) AppointmentEvent {
	return AppointmentEvent{
		Type:          eventType,
		AppointmentID: appt.ID,
		BusinessID:    appt.BusinessID,
		CustomerID:    appt.CustomerID,
		CustomerEmail: appt.CustomerEmail,
		ServiceName:   appt.ServiceName,
		Date:          appt.Date.Format(domain.DateFormat),
		Time:          appt.Time.String(),
		OccurredAt:    occurredAt.UTC(),
	}
}
