package get_owner_business

import (
	"context"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/service/businesses"
)

type BusinessService interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	Dashboard(ctx context.Context, businessID int64, now time.Time) (*businesses.Dashboard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
