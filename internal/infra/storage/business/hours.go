package business

import (
	"encoding/json"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/types"
)

// dayJSON расписание одного дня в колонке hours (JSONB)
type dayJSON struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

func encodeHours(hours domain.WorkingHours) ([]byte, error) {
	out := make(map[string]dayJSON, len(hours))
	for day, schedule := range hours {
		out[domain.WeekdayKey(day)] = dayJSON{
			Open:   schedule.Open.String(),
			Close:  schedule.Close.String(),
			Closed: schedule.Closed,
		}
	}
	return json.Marshal(out)
}

func decodeHours(data []byte) (domain.WorkingHours, error) {
	if len(data) == 0 {
		return domain.WorkingHours{}, nil
	}

	var raw map[string]dayJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	hours := make(domain.WorkingHours, len(raw))
	for key, day := range raw {
		weekday, ok := domain.ParseWeekday(key)
		if !ok {
			continue
		}
		hours[weekday] = domain.DaySchedule{
			Open:   types.TimeString(day.Open),
			Close:  types.TimeString(day.Close),
			Closed: day.Closed,
		}
	}
	return hours, nil
}
