package get_owner_appointments

import (
	"context"

	"github.com/m04kA/BookEasy/internal/domain"
)

type AppointmentService interface {
	ListForBusiness(ctx context.Context, businessID int64, view domain.BookingsView) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
