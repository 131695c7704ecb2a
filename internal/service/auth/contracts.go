package auth

import (
	"context"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

// BusinessRepository поиск владельца по email
type BusinessRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Business, error)
}

// BusinessCreator создает бизнес при регистрации владельца
type BusinessCreator interface {
	Create(ctx context.Context, req businesses.CreateRequest) (*domain.Business, error)
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
