package booking_drafts

import (
	"time"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/domain"
	bookingFlow "github.com/m04kA/BookEasy/internal/usecase/booking_flow"
)

// StartDraftRequest тело POST /businesses/{businessId}/drafts
type StartDraftRequest struct {
	ServiceID *int64 `json:"serviceId,omitempty"`
}

// SelectServiceRequest тело PUT /drafts/{draftId}/service
type SelectServiceRequest struct {
	ServiceID int64 `json:"serviceId"`
}

// SelectDateTimeRequest тело PUT /drafts/{draftId}/datetime
type SelectDateTimeRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// CustomerInfoRequest тело PUT /drafts/{draftId}/customer
type CustomerInfoRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
	Notes *string `json:"notes,omitempty"`
}

// GoBackRequest тело POST /drafts/{draftId}/back
type GoBackRequest struct {
	Step string `json:"step"`
}

// CustomerDTO контакты в черновике
type CustomerDTO struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
	Notes *string `json:"notes,omitempty"`
}

// DraftResponse состояние черновика записи
type DraftResponse struct {
	ID            string      `json:"draftId"`
	BusinessID    int64       `json:"businessId"`
	Step          string      `json:"step"`
	ServiceID     *int64      `json:"serviceId,omitempty"`
	Date          *string     `json:"date,omitempty"`
	Time          *string     `json:"time,omitempty"`
	Customer      CustomerDTO `json:"customer"`
	Generation    int64       `json:"generation"`
	LastError     string      `json:"lastError,omitempty"`
	AppointmentID *int64      `json:"appointmentId,omitempty"`
	UpdatedAt     string      `json:"updatedAt"`
}

// SlotsResponse слоты с поколением запроса
type SlotsResponse struct {
	DraftID    string                  `json:"draftId"`
	Generation int64                   `json:"generation"`
	Date       string                  `json:"date"`
	Slots      []handlers.SlotResponse `json:"slots"`
}

// SubmitResponse подтвержденная запись
type SubmitResponse struct {
	Draft       DraftResponse                `json:"draft"`
	Appointment handlers.AppointmentResponse `json:"appointment"`
}

func NewDraftResponse(d *domain.BookingDraft) DraftResponse {
	resp := DraftResponse{
		ID:         d.ID,
		BusinessID: d.BusinessID,
		Step:       string(d.Step),
		ServiceID:  d.ServiceID,
		Customer: CustomerDTO{
			Name:  d.Customer.Name,
			Email: d.Customer.Email,
			Phone: d.Customer.Phone,
			Notes: d.Customer.Notes,
		},
		Generation:    d.Generation,
		LastError:     d.LastError,
		AppointmentID: d.AppointmentID,
		UpdatedAt:     d.UpdatedAt.Format(time.RFC3339),
	}
	if d.Date != nil {
		date := d.Date.Format(domain.DateFormat)
		resp.Date = &date
	}
	if d.Time != nil {
		at := d.Time.String()
		resp.Time = &at
	}
	return resp
}

func NewSlotsResponse(res *bookingFlow.SlotsResult) SlotsResponse {
	return SlotsResponse{
		DraftID:    res.DraftID,
		Generation: res.Generation,
		Date:       res.Date.Format(domain.DateFormat),
		Slots:      handlers.NewSlotListResponse(res.Slots),
	}
}

func NewSubmitResponse(res *bookingFlow.SubmitResult) SubmitResponse {
	return SubmitResponse{
		Draft:       NewDraftResponse(res.Draft),
		Appointment: handlers.NewAppointmentResponse(res.Appointment),
	}
}
