package domain

import (
	"time"

	"github.com/m04kA/BookEasy/pkg/types"
)

// AppointmentStatus lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusPending   AppointmentStatus = "pending"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsValid reports whether s is a known status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment a customer's booking of one service at one business
type Appointment struct {
	ID              int64
	BusinessID      int64
	CustomerID      string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ServiceID       int64
	ServiceName     string
	Date            time.Time
	Time            types.TimeString
	DurationMinutes int
	Price           float64
	Notes           *string
	Status          AppointmentStatus
	CancelledAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsCancelled returns true once the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsActive returns true if the appointment still occupies its slot
func (a *Appointment) IsActive() bool {
	return !a.IsCancelled()
}

// StartsAt composes date and time in loc
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return a.Time.On(a.Date, loc)
}

// AppointmentsFilter selection of appointments. Nil fields are not applied.
type AppointmentsFilter struct {
	CustomerID       *string
	BusinessID       *int64
	Date             *time.Time
	IncludeCancelled bool
}

// Matches reports whether a satisfies the filter
func (f AppointmentsFilter) Matches(a *Appointment) bool {
	if f.CustomerID != nil && a.CustomerID != *f.CustomerID {
		return false
	}
	if f.BusinessID != nil && a.BusinessID != *f.BusinessID {
		return false
	}
	if f.Date != nil && !sameDate(a.Date, *f.Date) {
		return false
	}
	if !f.IncludeCancelled && a.IsCancelled() {
		return false
	}
	return true
}

// AppointmentPatch partial update of an appointment. Nil fields are left untouched.
type AppointmentPatch struct {
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string
	Date          *time.Time
	Time          *types.TimeString
	Notes         *string
	Status        *AppointmentStatus
}

func sameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
