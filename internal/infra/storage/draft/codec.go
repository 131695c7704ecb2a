package draft

import (
	"encoding/json"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/types"
)

// draftJSON представление черновика в хранилище
type draftJSON struct {
	ID            string            `json:"id"`
	BusinessID    int64             `json:"businessId"`
	Step          string            `json:"step"`
	ServiceID     *int64            `json:"serviceId,omitempty"`
	Date          *string           `json:"date,omitempty"`
	Time          *types.TimeString `json:"time,omitempty"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerPhone string            `json:"customerPhone"`
	Notes         *string           `json:"notes,omitempty"`
	Generation    int64             `json:"generation"`
	LastError     string            `json:"lastError,omitempty"`
	AppointmentID *int64            `json:"appointmentId,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func encodeDraft(d *domain.BookingDraft) ([]byte, error) {
	var date *string
	if d.Date != nil {
		s := d.Date.Format(domain.DateFormat)
		date = &s
	}

	return json.Marshal(draftJSON{
		ID:            d.ID,
		BusinessID:    d.BusinessID,
		Step:          string(d.Step),
		ServiceID:     d.ServiceID,
		Date:          date,
		Time:          d.Time,
		CustomerName:  d.Customer.Name,
		CustomerEmail: d.Customer.Email,
		CustomerPhone: d.Customer.Phone,
		Notes:         d.Customer.Notes,
		Generation:    d.Generation,
		LastError:     d.LastError,
		AppointmentID: d.AppointmentID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	})
}

func decodeDraft(data []byte) (*domain.BookingDraft, error) {
	var raw draftJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	var date *time.Time
	if raw.Date != nil {
		parsed, err := time.Parse(domain.DateFormat, *raw.Date)
		if err != nil {
			return nil, err
		}
		date = &parsed
	}

	return &domain.BookingDraft{
		ID:         raw.ID,
		BusinessID: raw.BusinessID,
		Step:       domain.BookingStep(raw.Step),
		ServiceID:  raw.ServiceID,
		Date:       date,
		Time:       raw.Time,
		Customer: domain.CustomerInfo{
			Name:  raw.CustomerName,
			Email: raw.CustomerEmail,
			Phone: raw.CustomerPhone,
			Notes: raw.Notes,
		},
		Generation:    raw.Generation,
		LastError:     raw.LastError,
		AppointmentID: raw.AppointmentID,
		CreatedAt:     raw.CreatedAt,
		UpdatedAt:     raw.UpdatedAt,
	}, nil
}
