package domain

import (
	"strings"
	"time"

	"github.com/m04kA/BookEasy/pkg/types"
)

// BusinessType category of a business in the directory
type BusinessType string

const (
	BusinessTypeSalon   BusinessType = "salon"
	BusinessTypeDental  BusinessType = "dental"
	BusinessTypeSpa     BusinessType = "spa"
	BusinessTypeFitness BusinessType = "fitness"
	BusinessTypeMedical BusinessType = "medical"
	BusinessTypeOther   BusinessType = "other"
)

// BusinessTypes lists every known category in display order
var BusinessTypes = []BusinessType{
	BusinessTypeSalon,
	BusinessTypeDental,
	BusinessTypeSpa,
	BusinessTypeFitness,
	BusinessTypeMedical,
	BusinessTypeOther,
}

// IsValid reports whether t is one of the known categories
func (t BusinessType) IsValid() bool {
	for _, known := range BusinessTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Location postal location of a business
type Location struct {
	Address string
	Area    string
	City    string
	ZipCode string
}

// DaySchedule opening hours for one weekday
type DaySchedule struct {
	Open   types.TimeString
	Close  types.TimeString
	Closed bool
}

// WorkingHours weekly schedule keyed by weekday
type WorkingHours map[time.Weekday]DaySchedule

// For returns the schedule of the given date's weekday. Missing days are closed.
func (h WorkingHours) For(date time.Time) DaySchedule {
	day, ok := h[date.Weekday()]
	if !ok {
		return DaySchedule{Closed: true}
	}
	return day
}

// Service bookable offering owned by a business
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
}

// Business directory entry
type Business struct {
	ID           int64
	Name         string
	Type         BusinessType
	Location     Location
	Description  string
	Services     []Service
	Hours        WorkingHours
	Rating       float64
	ReviewCount  int
	Featured     bool
	Images       []string
	Phone        string
	Email        string
	OwnerName    string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FindService returns the owned service with the given id
func (b *Business) FindService(serviceID int64) (*Service, bool) {
	for i := range b.Services {
		if b.Services[i].ID == serviceID {
			return &b.Services[i], true
		}
	}
	return nil, false
}

// MinPrice lowest service price, 0 when the business has no services
func (b *Business) MinPrice() float64 {
	if len(b.Services) == 0 {
		return 0
	}
	min := b.Services[0].Price
	for _, s := range b.Services[1:] {
		if s.Price < min {
			min = s.Price
		}
	}
	return min
}

// NextServiceID id for a service added to this business
func (b *Business) NextServiceID() int64 {
	var max int64
	for _, s := range b.Services {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

// MatchesQuery case-insensitive substring match on name, description or any service name
func (b *Business) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(b.Name), q) || strings.Contains(strings.ToLower(b.Description), q) {
		return true
	}
	for _, s := range b.Services {
		if strings.Contains(strings.ToLower(s.Name), q) {
			return true
		}
	}
	return false
}

// MatchesLocation case-insensitive substring match on city or area
func (b *Business) MatchesLocation(location string) bool {
	l := strings.ToLower(strings.TrimSpace(location))
	if l == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Location.City), l) ||
		strings.Contains(strings.ToLower(b.Location.Area), l)
}

// MatchesCategory exact match on type; empty or "all" matches everything
func (b *Business) MatchesCategory(category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	return string(b.Type) == category
}

// BusinessPatch partial update of a business. Nil fields are left untouched.
type BusinessPatch struct {
	Name        *string
	Type        *BusinessType
	Location    *Location
	Description *string
	Hours       WorkingHours
	Images      []string
	Phone       *string
	Email       *string
	OwnerName   *string
	Featured    *bool
	Rating      *float64
	ReviewCount *int
}

// Apply copies set fields onto b. ID and services are never changed here.
func (p BusinessPatch) Apply(b *Business) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Type != nil {
		b.Type = *p.Type
	}
	if p.Location != nil {
		b.Location = *p.Location
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Hours != nil {
		b.Hours = p.Hours
	}
	if p.Images != nil {
		b.Images = p.Images
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	if p.OwnerName != nil {
		b.OwnerName = *p.OwnerName
	}
	if p.Featured != nil {
		b.Featured = *p.Featured
	}
	if p.Rating != nil {
		b.Rating = *p.Rating
	}
	if p.ReviewCount != nil {
		b.ReviewCount = *p.ReviewCount
	}
}
