package domain

import (
	"time"

	"github.com/m04kA/BookEasy/pkg/types"
)

// BookingStep state of the booking flow
type BookingStep string

const (
	StepChoosingService  BookingStep = "choosing_service"
	StepChoosingDateTime BookingStep = "choosing_datetime"
	StepEnteringDetails  BookingStep = "entering_details"
	StepSubmitting       BookingStep = "submitting"
	StepConfirmed        BookingStep = "confirmed"
)

// Order position of the step in the flow, used to allow only backward jumps
func (s BookingStep) Order() int {
	switch s {
	case StepChoosingService:
		return 1
	case StepChoosingDateTime:
		return 2
	case StepEnteringDetails:
		return 3
	case StepSubmitting:
		return 4
	case StepConfirmed:
		return 5
	default:
		return 0
	}
}

// IsTerminal true once the appointment has been created
func (s BookingStep) IsTerminal() bool {
	return s == StepConfirmed
}

// CustomerInfo contact details entered in the details step
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
	Notes *string
}

// IsComplete true when name, email and phone are all non-empty
func (c CustomerInfo) IsComplete() bool {
	return c.Name != "" && c.Email != "" && c.Phone != ""
}

// BookingDraft in-progress booking collected across flow steps
type BookingDraft struct {
	ID         string
	BusinessID int64
	Step       BookingStep
	ServiceID  *int64
	Date       *time.Time
	Time       *types.TimeString
	Customer   CustomerInfo
	// Generation increases on every availability load; older results are discarded
	Generation    int64
	LastError     string
	AppointmentID *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasService true once a service has been chosen
func (d *BookingDraft) HasService() bool {
	return d.ServiceID != nil
}

// HasDateTime true once a date and time have been chosen
func (d *BookingDraft) HasDateTime() bool {
	return d.Date != nil && d.Time != nil
}

// ReadyToSubmit the submit gate: service, date-time and full contact details
func (d *BookingDraft) ReadyToSubmit() bool {
	return d.HasService() && d.HasDateTime() && d.Customer.IsComplete()
}
