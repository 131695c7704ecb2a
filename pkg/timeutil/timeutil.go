// Package timeutil содержит функции форматирования дат и генерации сетки слотов.
package timeutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/BookEasy/pkg/types"
)

const (
	// DateLayout ISO формат календарной даты
	DateLayout = "2006-01-02"

	displayDateLayout = "Monday, January 2, 2006"
	displayTimeLayout = "3:04 PM"
)

const (
	DefaultGridStart    types.TimeString = "09:00"
	DefaultGridEnd      types.TimeString = "18:00"
	DefaultGridInterval                  = 30
)

// ErrInvalidInterval возвращается при неположительном шаге сетки
var ErrInvalidInterval = errors.New("timeutil: interval must be positive")

// ParseDate разбирает дату YYYY-MM-DD в UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate "2024-06-01" -> "Saturday, June 1, 2024"
func FormatDate(date time.Time) string {
	return date.Format(displayDateLayout)
}

// FormatDateString то же, что FormatDate, но для строки YYYY-MM-DD
func FormatDateString(s string) (string, error) {
	d, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(d), nil
}

// FormatTime "14:30" -> "2:30 PM"
func FormatTime(t types.TimeString) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	m := t.Minutes()
	return time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format(displayTimeLayout), nil
}

// GenerateTimeSlots строит сетку [start, end) с шагом interval минут
func GenerateTimeSlots(start, end types.TimeString, interval int) ([]types.TimeString, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if err := start.Validate(); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if err := end.Validate(); err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	slots := make([]types.TimeString, 0)
	for m := start.Minutes(); m < end.Minutes(); m += interval {
		slot, err := types.FromMinutes(m)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// DefaultTimeSlots сетка по умолчанию: 09:00..17:30 с шагом 30 минут
func DefaultTimeSlots() []types.TimeString {
	slots, _ := GenerateTimeSlots(DefaultGridStart, DefaultGridEnd, DefaultGridInterval)
	return slots
}

// CombineDateTime собирает момент времени из календарной даты и времени суток
func CombineDateTime(date time.Time, t types.TimeString, loc *time.Location) time.Time {
	return t.On(date, loc)
}

// SameDay true, если обе даты приходятся на один календарный день
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// StartOfDay обнуляет время, сохраняя локацию
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
