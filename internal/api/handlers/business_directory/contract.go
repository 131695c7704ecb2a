package business_directory

import (
	"context"

	"github.com/m04kA/BookEasy/internal/domain"
)

type BusinessService interface {
	List(ctx context.Context) ([]*domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Business, error)
	ListFeatured(ctx context.Context, limit int) ([]*domain.Business, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Business, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
