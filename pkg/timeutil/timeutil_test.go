package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/pkg/types"
)

func TestFormatDate(t *testing.T) {
	got, err := FormatDateString("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, "Saturday, June 1, 2024", got)

	_, err = FormatDateString("01/06/2024")
	assert.Error(t, err)
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		in   types.TimeString
		want string
	}{
		{"14:30", "2:30 PM"},
		{"09:00", "9:00 AM"},
		{"00:15", "12:15 AM"},
		{"12:00", "12:00 PM"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := FormatTime(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateTimeSlots_Default(t *testing.T) {
	slots := DefaultTimeSlots()

	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("17:30"), slots[len(slots)-1])
}

func TestGenerateTimeSlots_Custom(t *testing.T) {
	slots, err := GenerateTimeSlots("10:00", "11:00", 20)
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00", "10:20", "10:40"}, slots)

	slots, err = GenerateTimeSlots("12:00", "12:00", 30)
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = GenerateTimeSlots("09:00", "18:00", 0)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestCombineDateTime(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	got := CombineDateTime(date, "10:30", time.UTC)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), got)
}
