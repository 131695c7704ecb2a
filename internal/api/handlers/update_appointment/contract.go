package update_appointment

import (
	"context"

	"github.com/m04kA/BookEasy/internal/domain"
)

type AppointmentService interface {
	Update(ctx context.Context, id int64, patch domain.AppointmentPatch) (*domain.Appointment, error)
	DeleteForBusiness(ctx context.Context, businessID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
