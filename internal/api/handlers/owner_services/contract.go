package owner_services

import (
	"context"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

type ServiceCatalog interface {
	AddService(ctx context.Context, businessID int64, in businesses.ServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, businessID, serviceID int64, in businesses.ServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, businessID, serviceID int64) error
	ReplaceServices(ctx context.Context, businessID int64, services []domain.Service) ([]domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
