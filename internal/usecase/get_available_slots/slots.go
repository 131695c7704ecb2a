package get_available_slots

import (
	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/types"
)

// freeSlots убирает из сетки занятые слоты, порядок сохраняется
func freeSlots(grid []types.TimeString, appointments []*domain.Appointment, settings Settings) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0, len(grid))

	for _, slot := range grid {
		if domain.SlotTaken(slot, settings.IntervalMinutes, appointments, settings.DurationAware) {
			continue
		}
		result = append(result, domain.AvailableSlot{
			Time:      slot,
			Available: true,
			Duration:  settings.DisplayDuration,
		})
	}

	return result
}
