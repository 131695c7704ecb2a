package list_appointments

import (
	"context"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/service/appointments"
)

type AppointmentService interface {
	List(ctx context.Context, req appointments.ListRequest) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
