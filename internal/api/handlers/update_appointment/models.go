package update_appointment

import (
	"fmt"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/ptr"
	"github.com/m04kA/BookEasy/pkg/types"
)

// UpdateAppointmentRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateAppointmentRequest struct {
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Date          *string `json:"date,omitempty"`
	Time          *string `json:"time,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// ToPatch конвертирует HTTP запрос в доменный patch
func (r *UpdateAppointmentRequest) ToPatch() (domain.AppointmentPatch, error) {
	patch := domain.AppointmentPatch{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return patch, fmt.Errorf("date: %w", err)
		}
		patch.Date = &date
	}
	if r.Time != nil {
		at, err := types.NewTimeStringFromString(*r.Time)
		if err != nil {
			return patch, fmt.Errorf("time: %w", err)
		}
		patch.Time = &at
	}
	if r.Status != nil {
		patch.Status = ptr.Ptr(domain.AppointmentStatus(*r.Status))
	}

	return patch, nil
}
