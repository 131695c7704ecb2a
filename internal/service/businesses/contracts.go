package businesses

import (
	"context"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	Create(ctx context.Context, b *domain.Business) (*domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	List(ctx context.Context) ([]*domain.Business, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Business, error)
	ListFeatured(ctx context.Context, limit int) ([]*domain.Business, error)
	ListByType(ctx context.Context, businessType domain.BusinessType) ([]*domain.Business, error)
	Update(ctx context.Context, b *domain.Business) error
	ReplaceServices(ctx context.Context, businessID int64, services []domain.Service) error
	Delete(ctx context.Context, id int64) error
}

// AppointmentRepository нужен только для статистики кабинета
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
