package domain

import "time"

// BookingsView a customer's bookings tab
type BookingsView string

const (
	ViewAll       BookingsView = "all"
	ViewUpcoming  BookingsView = "upcoming"
	ViewPast      BookingsView = "past"
	ViewCancelled BookingsView = "cancelled"
)

// IsValid reports whether v is a known view
func (v BookingsView) IsValid() bool {
	switch v {
	case ViewAll, ViewUpcoming, ViewPast, ViewCancelled:
		return true
	}
	return false
}

// InView classifies a against now.
// A past appointment that is still confirmed counts as past, not upcoming.
func (a *Appointment) InView(view BookingsView, now time.Time, loc *time.Location) bool {
	startsAt := a.StartsAt(loc)

	switch view {
	case ViewUpcoming:
		return !startsAt.Before(now) && !a.IsCancelled()
	case ViewPast:
		return startsAt.Before(now) || a.Status == StatusCompleted
	case ViewCancelled:
		return a.IsCancelled()
	default:
		return true
	}
}

// FilterAppointments keeps the appointments belonging to view, preserving order
func FilterAppointments(list []*Appointment, view BookingsView, now time.Time, loc *time.Location) []*Appointment {
	result := make([]*Appointment, 0, len(list))
	for _, a := range list {
		if a.InView(view, now, loc) {
			result = append(result, a)
		}
	}
	return result
}
