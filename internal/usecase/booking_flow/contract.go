package booking_flow

import (
	"context"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/usecase/create_appointment"
	"github.com/m04kA/BookEasy/internal/usecase/get_available_slots"
)

// DraftStore хранилище черновиков записи
type DraftStore interface {
	Save(ctx context.Context, d *domain.BookingDraft) error
	Get(ctx context.Context, id string) (*domain.BookingDraft, error)
	Delete(ctx context.Context, id string) error
	// NextGeneration атомарно увеличивает счетчик загрузок слотов черновика
	NextGeneration(ctx context.Context, id string) (int64, error)
	Generation(ctx context.Context, id string) (int64, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// SlotsUseCase выдача свободных слотов
type SlotsUseCase interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// CreateUseCase создание записи
type CreateUseCase interface {
	Execute(ctx context.Context, req *create_appointment.Request) (*domain.Appointment, error)
}

// IDGenerator генерирует ID черновиков
type IDGenerator interface {
	NewID() string
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
