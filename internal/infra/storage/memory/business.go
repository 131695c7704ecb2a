package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/m04kA/BookEasy/internal/domain"
	businessRepo "github.com/m04kA/BookEasy/internal/infra/storage/business"
)

// BusinessRepository in-memory каталог бизнесов. Безопасен для конкурентного использования.
type BusinessRepository struct {
	mu     sync.RWMutex
	items  []*domain.Business
	lastID int64
}

// NewBusinessRepository создает репозиторий с начальными данными (копируются)
func NewBusinessRepository(seed []*domain.Business) *BusinessRepository {
	r := &BusinessRepository{items: make([]*domain.Business, 0, len(seed))}
	for _, b := range seed {
		r.items = append(r.items, cloneBusiness(b))
		if b.ID > r.lastID {
			r.lastID = b.ID
		}
	}
	return r
}

// Create присваивает следующий ID (не переиспользуется после удаления) и сохраняет копию
func (r *BusinessRepository) Create(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.Email != "" {
		for _, existing := range r.items {
			if strings.EqualFold(existing.Email, b.Email) {
				return nil, businessRepo.ErrEmailTaken
			}
		}
	}

	r.lastID++
	b.ID = r.lastID
	b.UpdatedAt = b.CreatedAt
	for i := range b.Services {
		b.Services[i].BusinessID = b.ID
	}
	r.items = append(r.items, cloneBusiness(b))

	return cloneBusiness(b), nil
}

func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return cloneBusiness(r.items[idx]), nil
}

func (r *BusinessRepository) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.items {
		if b.Email != "" && strings.EqualFold(b.Email, email) {
			return cloneBusiness(b), nil
		}
	}
	return nil, businessRepo.ErrBusinessNotFound
}

func (r *BusinessRepository) List(ctx context.Context) ([]*domain.Business, error) {
	return r.filter(func(*domain.Business) bool { return true }, 0), nil
}

// Search фильтрует по тексту, локации и категории. Ценовой диапазон и сортировку применяет сервис.
func (r *BusinessRepository) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Business, error) {
	return r.filter(func(b *domain.Business) bool {
		return b.MatchesQuery(criteria.Query) &&
			b.MatchesLocation(criteria.Location) &&
			b.MatchesCategory(criteria.Category)
	}, 0), nil
}

func (r *BusinessRepository) ListFeatured(ctx context.Context, limit int) ([]*domain.Business, error) {
	return r.filter(func(b *domain.Business) bool { return b.Featured }, limit), nil
}

func (r *BusinessRepository) ListByType(ctx context.Context, businessType domain.BusinessType) ([]*domain.Business, error) {
	return r.filter(func(b *domain.Business) bool { return b.Type == businessType }, 0), nil
}

// Update сохраняет поля бизнеса, кроме услуг и пароля. ID не меняется.
func (r *BusinessRepository) Update(ctx context.Context, b *domain.Business) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(b.ID)
	if idx < 0 {
		return businessRepo.ErrBusinessNotFound
	}

	if b.Email != "" {
		for _, existing := range r.items {
			if existing.ID != b.ID && strings.EqualFold(existing.Email, b.Email) {
				return businessRepo.ErrEmailTaken
			}
		}
	}

	stored := r.items[idx]
	updated := cloneBusiness(b)
	updated.Services = stored.Services
	updated.PasswordHash = stored.PasswordHash
	updated.CreatedAt = stored.CreatedAt
	r.items[idx] = updated

	return nil
}

func (r *BusinessRepository) ReplaceServices(ctx context.Context, businessID int64, services []domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(businessID)
	if idx < 0 {
		return businessRepo.ErrBusinessNotFound
	}

	copied := make([]domain.Service, len(services))
	copy(copied, services)
	for i := range copied {
		copied[i].BusinessID = businessID
	}
	r.items[idx].Services = copied

	return nil
}

func (r *BusinessRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return businessRepo.ErrBusinessNotFound
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return nil
}

func (r *BusinessRepository) filter(keep func(*domain.Business) bool, limit int) []*domain.Business {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Business, 0)
	for _, b := range r.items {
		if limit > 0 && len(result) >= limit {
			break
		}
		if keep(b) {
			result = append(result, cloneBusiness(b))
		}
	}
	return result
}

func (r *BusinessRepository) indexOf(id int64) int {
	for i, b := range r.items {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func cloneBusiness(b *domain.Business) *domain.Business {
	c := *b
	c.Services = append([]domain.Service{}, b.Services...)
	c.Images = append([]string{}, b.Images...)
	if b.Hours != nil {
		c.Hours = make(domain.WorkingHours, len(b.Hours))
		for day, schedule := range b.Hours {
			c.Hours[day] = schedule
		}
	}
	return &c
}
