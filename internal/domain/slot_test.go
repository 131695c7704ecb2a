package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/BookEasy/pkg/types"
)

func TestSlotOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		slot     string
		start    string
		duration int
		want     bool
	}{
		{"same start", "11:30", "11:30", 30, true},
		{"covers slot", "11:30", "11:00", 60, true},
		{"ends at slot start", "11:30", "11:00", 30, false},
		{"starts at slot end", "11:30", "12:00", 30, false},
		{"starts inside slot", "11:30", "11:45", 60, true},
		{"zero duration same start", "11:30", "11:30", 0, true},
		{"zero duration other start", "11:30", "11:45", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SlotOverlaps(types.MustTimeString(tt.slot), 30, types.MustTimeString(tt.start), tt.duration)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotTaken_IgnoresCancelled(t *testing.T) {
	appts := []*Appointment{
		{Time: "10:00", DurationMinutes: 60, Status: StatusCancelled},
		{Time: "12:00", DurationMinutes: 60, Status: StatusConfirmed},
	}

	assert.False(t, SlotTaken("10:00", 30, appts, false))
	assert.True(t, SlotTaken("12:00", 30, appts, false))
	assert.False(t, SlotTaken("12:30", 30, appts, false))
	assert.True(t, SlotTaken("12:30", 30, appts, true))
}
