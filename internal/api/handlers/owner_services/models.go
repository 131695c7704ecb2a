package owner_services

import (
	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

// ServiceRequest услуга в теле запроса. ID учитывается только при полной замене списка.
type ServiceRequest struct {
	ID          int64   `json:"Id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
}

func (r ServiceRequest) ToInput() businesses.ServiceInput {
	return businesses.ServiceInput{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.Duration,
		Price:           r.Price,
	}
}

func toDomainServices(list []ServiceRequest) []domain.Service {
	result := make([]domain.Service, 0, len(list))
	for _, r := range list {
		result = append(result, domain.Service{
			ID:              r.ID,
			Name:            r.Name,
			Description:     r.Description,
			DurationMinutes: r.Duration,
			Price:           r.Price,
		})
	}
	return result
}
