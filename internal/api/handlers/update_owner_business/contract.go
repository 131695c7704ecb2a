package update_owner_business

import (
	"context"

	"github.com/m04kA/BookEasy/internal/domain"
)

type BusinessService interface {
	Update(ctx context.Context, id int64, patch domain.BusinessPatch) (*domain.Business, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
