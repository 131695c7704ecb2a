package businesses

import (
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
)

// Settings параметры каталога
type Settings struct {
	FeaturedLimit int
	Location      *time.Location // часовой пояс date+time записей
}

// CreateRequest данные нового бизнеса
type CreateRequest struct {
	Name         string
	Type         domain.BusinessType
	Location     domain.Location
	Description  string
	Services     []ServiceInput
	Hours        domain.WorkingHours
	Images       []string
	Phone        string
	Email        string
	OwnerName    string
	PasswordHash string
}

// ServiceInput услуга без идентификатора
type ServiceInput struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
}

// Dashboard сводка для кабинета владельца
type Dashboard struct {
	BusinessID        int64
	TotalBookings     int
	UpcomingBookings  int
	PastBookings      int
	CancelledBookings int
	Revenue           float64 // сумма по неотмененным записям
	Rating            float64
	ReviewCount       int
	ServiceCount      int
	Recent            []*domain.Appointment
}
