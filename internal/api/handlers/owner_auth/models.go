package owner_auth

import (
	"time"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/service/auth"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

// ServiceInput услуга в анкете регистрации
type ServiceInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

// RegisterRequest тело POST /owners/register
type RegisterRequest struct {
	OwnerName    string                     `json:"ownerName"`
	Email        string                     `json:"email"`
	Password     string                     `json:"password"`
	BusinessName string                     `json:"businessName"`
	BusinessType string                     `json:"businessType"`
	Location     handlers.LocationDTO       `json:"location"`
	Description  string                     `json:"description"`
	Phone        string                     `json:"phone"`
	Services     []ServiceInput             `json:"services"`
	Hours        map[string]handlers.DayDTO `json:"hours"`
	Images       []string                   `json:"images"`
}

// LoginRequest тело POST /owners/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse выданный токен
type SessionResponse struct {
	Token     string                    `json:"token"`
	ExpiresAt string                    `json:"expiresAt"`
	Business  handlers.BusinessResponse `json:"business"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *RegisterRequest) ToServiceRequest() (auth.RegisterRequest, error) {
	hours, err := handlers.ParseHours(r.Hours)
	if err != nil {
		return auth.RegisterRequest{}, err
	}

	services := make([]businesses.ServiceInput, 0, len(r.Services))
	for _, s := range r.Services {
		services = append(services, businesses.ServiceInput{
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.Duration,
			Price:           s.Price,
		})
	}

	return auth.RegisterRequest{
		Business: businesses.CreateRequest{
			Name: r.BusinessName,
			Type: domain.BusinessType(r.BusinessType),
			Location: domain.Location{
				Address: r.Location.Address,
				Area:    r.Location.Area,
				City:    r.Location.City,
				ZipCode: r.Location.ZipCode,
			},
			Description: r.Description,
			Services:    services,
			Hours:       hours,
			Images:      r.Images,
			Phone:       r.Phone,
		},
		OwnerName: r.OwnerName,
		Email:     r.Email,
		Password:  r.Password,
	}, nil
}

func NewSessionResponse(s *auth.Session) SessionResponse {
	return SessionResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt.UTC().Format(time.RFC3339),
		Business:  handlers.NewBusinessResponse(s.Business),
	}
}
