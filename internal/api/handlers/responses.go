package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/types"
)

// LocationDTO адрес бизнеса
type LocationDTO struct {
	Address string `json:"address"`
	Area    string `json:"area"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// DayDTO расписание на день
type DayDTO struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

// ServiceResponse услуга бизнеса
type ServiceResponse struct {
	ID          int64   `json:"Id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

// BusinessResponse карточка бизнеса. Хеш пароля не отдается никогда.
type BusinessResponse struct {
	ID          int64             `json:"Id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Location    LocationDTO       `json:"location"`
	Description string            `json:"description"`
	Services    []ServiceResponse `json:"services"`
	Hours       map[string]DayDTO `json:"hours,omitempty"`
	Rating      float64           `json:"rating"`
	ReviewCount int               `json:"reviewCount"`
	Featured    bool              `json:"featured"`
	Images      []string          `json:"images"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	OwnerName   string            `json:"ownerName,omitempty"`
	CreatedAt   string            `json:"createdAt,omitempty"`
}

// AppointmentResponse запись клиента
type AppointmentResponse struct {
	ID            int64   `json:"Id"`
	BusinessID    int64   `json:"businessId"`
	CustomerID    string  `json:"customerId"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	ServiceID     int64   `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Duration      int     `json:"duration"`
	Price         float64 `json:"price"`
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	CancelledAt   *string `json:"cancelledAt,omitempty"`
}

func NewServiceResponse(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.DurationMinutes,
		Price:       s.Price,
	}
}

func NewBusinessResponse(b *domain.Business) BusinessResponse {
	resp := BusinessResponse{
		ID:   b.ID,
		Name: b.Name,
		Type: string(b.Type),
		Location: LocationDTO{
			Address: b.Location.Address,
			Area:    b.Location.Area,
			City:    b.Location.City,
			ZipCode: b.Location.ZipCode,
		},
		Description: b.Description,
		Services:    make([]ServiceResponse, 0, len(b.Services)),
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
		Featured:    b.Featured,
		Images:      b.Images,
		Phone:       b.Phone,
		Email:       b.Email,
		OwnerName:   b.OwnerName,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	for _, s := range b.Services {
		resp.Services = append(resp.Services, NewServiceResponse(s))
	}
	if len(b.Hours) > 0 {
		resp.Hours = make(map[string]DayDTO, len(b.Hours))
		for day, schedule := range b.Hours {
			resp.Hours[domain.WeekdayKey(day)] = DayDTO{
				Open:   schedule.Open.String(),
				Close:  schedule.Close.String(),
				Closed: schedule.Closed,
			}
		}
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func NewBusinessListResponse(list []*domain.Business) []BusinessResponse {
	result := make([]BusinessResponse, 0, len(list))
	for _, b := range list {
		result = append(result, NewBusinessResponse(b))
	}
	return result
}

func NewAppointmentResponse(a *domain.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:            a.ID,
		BusinessID:    a.BusinessID,
		CustomerID:    a.CustomerID,
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		CustomerPhone: a.CustomerPhone,
		ServiceID:     a.ServiceID,
		ServiceName:   a.ServiceName,
		Date:          a.Date.Format(domain.DateFormat),
		Time:          a.Time.String(),
		Duration:      a.DurationMinutes,
		Price:         a.Price,
		Notes:         a.Notes,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
	if a.CancelledAt != nil {
		cancelledAt := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}
	return resp
}

func NewAppointmentListResponse(list []*domain.Appointment) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(list))
	for _, a := range list {
		result = append(result, NewAppointmentResponse(a))
	}
	return result
}

// ParseHours переводит расписание из JSON ("monday" -> {open, close}) в доменное
func ParseHours(hours map[string]DayDTO) (domain.WorkingHours, error) {
	if hours == nil {
		return nil, nil
	}
	result := make(domain.WorkingHours, len(hours))
	for key, day := range hours {
		weekday, ok := domain.ParseWeekday(key)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", key)
		}
		schedule := domain.DaySchedule{Closed: day.Closed}
		if !day.Closed {
			open, err := types.NewTimeStringFromString(day.Open)
			if err != nil {
				return nil, fmt.Errorf("%s open: %w", key, err)
			}
			closeAt, err := types.NewTimeStringFromString(day.Close)
			if err != nil {
				return nil, fmt.Errorf("%s close: %w", key, err)
			}
			schedule.Open, schedule.Close = open, closeAt
		}
		result[weekday] = schedule
	}
	return result, nil
}

// ParseDate дата в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// SlotResponse свободный слот
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Duration  int    `json:"duration"`
}

func NewSlotListResponse(slots []domain.AvailableSlot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		result = append(result, SlotResponse{Time: s.Time.String(), Available: s.Available, Duration: s.Duration})
	}
	return result
}
