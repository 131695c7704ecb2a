package domain

import "github.com/m04kA/BookEasy/pkg/types"

// AvailableSlot a bookable start time. Taken slots are omitted, so Available is always true.
type AvailableSlot struct {
	Time      types.TimeString
	Available bool
	Duration  int
}

// SlotOverlaps reports whether [slot, slot+slotMinutes) and [start, start+durationMinutes)
// intersect. Intervals that only touch do not overlap; a non-positive duration
// occupies only its start time.
func SlotOverlaps(slot types.TimeString, slotMinutes int, start types.TimeString, durationMinutes int) bool {
	slotStart, apptStart := slot.Minutes(), start.Minutes()
	if slotStart < 0 || apptStart < 0 {
		return false
	}
	if durationMinutes <= 0 {
		return slotStart == apptStart
	}
	return apptStart < slotStart+slotMinutes && apptStart+durationMinutes > slotStart
}

// SlotTaken reports whether an active appointment occupies slot.
// Without durationAware only an exact start time match counts.
func SlotTaken(slot types.TimeString, slotMinutes int, appointments []*Appointment, durationAware bool) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if durationAware {
			if SlotOverlaps(slot, slotMinutes, appt.Time, appt.DurationMinutes) {
				return true
			}
			continue
		}
		if appt.Time == slot {
			return true
		}
	}
	return false
}
