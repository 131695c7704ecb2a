package businesses

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	businessRepo "github.com/m04kA/BookEasy/internal/infra/storage/business"
	"github.com/m04kA/BookEasy/pkg/ptr"
)

const recentLimit = 5

// Service каталог бизнесов и операции кабинета владельца
type Service struct {
	businessRepo    BusinessRepository
	appointmentRepo AppointmentRepository
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бизнесов
func NewService(businessRepo BusinessRepository, appointmentRepo AppointmentRepository, settings Settings, logger Logger) *Service {
	if settings.FeaturedLimit <= 0 {
		settings.FeaturedLimit = domain.DefaultFeaturedLimit
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Service{
		businessRepo:    businessRepo,
		appointmentRepo: appointmentRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// List все бизнесы в порядке хранения
func (s *Service) List(ctx context.Context) ([]*domain.Business, error) {
	list, err := s.businessRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// GetByID получает бизнес по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	b, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}
	return b, nil
}

// Search фильтрует каталог и сортирует результат. Пустой результат не ошибка.
func (s *Service) Search(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Business, error) {
	if !criteria.SortBy.IsValid() {
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, criteria.SortBy)
	}
	if !criteria.PriceRange.IsValid() {
		return nil, fmt.Errorf("%w: unknown price range %q", ErrInvalidInput, criteria.PriceRange)
	}

	list, err := s.businessRepo.Search(ctx, criteria)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	// ценовой диапазон считается по минимальной цене услуги
	result := make([]*domain.Business, 0, len(list))
	for _, b := range list {
		if criteria.PriceRange.Contains(b.MinPrice()) {
			result = append(result, b)
		}
	}

	domain.SortBusinesses(result, criteria.SortBy)
	return result, nil
}

// ListFeatured первые featured-бизнесы, не больше limit (limit <= 0 - значение из настроек)
func (s *Service) ListFeatured(ctx context.Context, limit int) ([]*domain.Business, error) {
	if limit <= 0 {
		limit = s.settings.FeaturedLimit
	}
	list, err := s.businessRepo.ListFeatured(ctx, limit)
	if err != nil {
		s.logger.Error("ListFeatured: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListFeatured - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// ListByCategory бизнесы одной категории; "all" возвращает весь каталог
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Business, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" || category == domain.CategoryAll {
		return s.List(ctx)
	}

	list, err := s.businessRepo.ListByType(ctx, domain.BusinessType(category))
	if err != nil {
		s.logger.Error("ListByCategory: repository error for category=%s: %v", category, err)
		return nil, fmt.Errorf("%w: ListByCategory - repository error: %v", ErrInternal, err)
	}
	return list, nil
}

// Create регистрирует бизнес. Рейтинг, отзывы и featured всегда начинаются с нуля.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Business, error) {
	// 1. Валидация входных данных
	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: invalid input: %v", err)
		return nil, err
	}

	// 2. Собираем доменную модель
	now := s.timeProvider.Now()
	businessType := req.Type
	if businessType == "" {
		businessType = domain.BusinessTypeOther
	}

	b := &domain.Business{
		Name:         strings.TrimSpace(req.Name),
		Type:         businessType,
		Location:     req.Location,
		Description:  req.Description,
		Services:     make([]domain.Service, 0, len(req.Services)),
		Hours:        req.Hours,
		Images:       req.Images,
		Phone:        req.Phone,
		Email:        strings.TrimSpace(req.Email),
		OwnerName:    req.OwnerName,
		PasswordHash: req.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, in := range req.Services {
		b.Services = append(b.Services, toService(int64(i+1), in))
	}

	// 3. Сохраняем
	created, err := s.businessRepo.Create(ctx, b)
	if err != nil {
		if errors.Is(err, businessRepo.ErrEmailTaken) {
			s.logger.Warn("Create: email %s already taken", b.Email)
			return nil, ErrEmailTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created business id=%d", created.ID)
	return created, nil
}

// Update применяет частичное изменение, ID и услуги не меняются
func (s *Service) Update(ctx context.Context, id int64, patch domain.BusinessPatch) (*domain.Business, error) {
	if err := validatePatch(patch); err != nil {
		s.logger.Warn("Update: invalid patch for business id=%d: %v", id, err)
		return nil, err
	}

	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(b)
	b.UpdatedAt = s.timeProvider.Now()

	if err := s.businessRepo.Update(ctx, b); err != nil {
		if errors.Is(err, businessRepo.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated business id=%d", id)
	return b, nil
}

// Delete удаляет бизнес вместе с услугами
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.businessRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}
	s.logger.Info("Delete: successfully deleted business id=%d", id)
	return nil
}

// AddService добавляет услугу с ID = max + 1 в рамках бизнеса
func (s *Service) AddService(ctx context.Context, businessID int64, in ServiceInput) (*domain.Service, error) {
	if err := validateService(in); err != nil {
		return nil, err
	}

	b, err := s.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	service := toService(b.NextServiceID(), in)
	service.BusinessID = businessID
	services := append(b.Services, service)

	if err := s.replace(ctx, "AddService", businessID, services); err != nil {
		return nil, err
	}

	s.logger.Info("AddService: added service id=%d to business id=%d", service.ID, businessID)
	return &service, nil
}

// UpdateService заменяет поля услуги, ID сохраняется
func (s *Service) UpdateService(ctx context.Context, businessID, serviceID int64, in ServiceInput) (*domain.Service, error) {
	if err := validateService(in); err != nil {
		return nil, err
	}

	b, err := s.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	existing, ok := b.FindService(serviceID)
	if !ok {
		s.logger.Warn("UpdateService: service id=%d not found in business id=%d", serviceID, businessID)
		return nil, ErrServiceNotFound
	}
	*existing = toService(serviceID, in)
	existing.BusinessID = businessID
	updated := *existing

	if err := s.replace(ctx, "UpdateService", businessID, b.Services); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateService: updated service id=%d of business id=%d", serviceID, businessID)
	return &updated, nil
}

// DeleteService удаляет услугу бизнеса
func (s *Service) DeleteService(ctx context.Context, businessID, serviceID int64) error {
	b, err := s.GetByID(ctx, businessID)
	if err != nil {
		return err
	}

	if _, ok := b.FindService(serviceID); !ok {
		s.logger.Warn("DeleteService: service id=%d not found in business id=%d", serviceID, businessID)
		return ErrServiceNotFound
	}

	services := make([]domain.Service, 0, len(b.Services)-1)
	for _, svc := range b.Services {
		if svc.ID != serviceID {
			services = append(services, svc)
		}
	}

	if err := s.replace(ctx, "DeleteService", businessID, services); err != nil {
		return err
	}

	s.logger.Info("DeleteService: deleted service id=%d of business id=%d", serviceID, businessID)
	return nil
}

// ReplaceServices полностью заменяет список услуг. Услуги без ID получают новые.
func (s *Service) ReplaceServices(ctx context.Context, businessID int64, services []domain.Service) ([]domain.Service, error) {
	b, err := s.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Service, 0, len(services))
	next := &domain.Business{Services: services}
	nextID := next.NextServiceID()
	seen := make(map[int64]struct{}, len(services))

	for _, svc := range services {
		if err := validateService(ServiceInput{Name: svc.Name, DurationMinutes: svc.DurationMinutes, Price: svc.Price}); err != nil {
			return nil, err
		}
		if svc.ID <= 0 {
			svc.ID = nextID
			nextID++
		}
		if _, dup := seen[svc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate service id %d", ErrInvalidInput, svc.ID)
		}
		seen[svc.ID] = struct{}{}
		svc.BusinessID = b.ID
		result = append(result, svc)
	}

	if err := s.replace(ctx, "ReplaceServices", businessID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Dashboard сводка по записям бизнеса относительно now
func (s *Service) Dashboard(ctx context.Context, businessID int64, now time.Time) (*Dashboard, error) {
	b, err := s.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	appts, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		BusinessID:       ptr.Ptr(businessID),
		IncludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("Dashboard: repository error for business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Dashboard - list appointments: %v", ErrInternal, err)
	}

	d := &Dashboard{
		BusinessID:    businessID,
		TotalBookings: len(appts),
		Rating:        b.Rating,
		ReviewCount:   b.ReviewCount,
		ServiceCount:  len(b.Services),
	}

	loc := s.settings.Location
	upcoming := domain.FilterAppointments(appts, domain.ViewUpcoming, now, loc)
	d.UpcomingBookings = len(upcoming)
	d.PastBookings = len(domain.FilterAppointments(appts, domain.ViewPast, now, loc))

	for _, a := range appts {
		if a.IsCancelled() {
			d.CancelledBookings++
			continue
		}
		d.Revenue += a.Price
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartsAt(loc).Before(upcoming[j].StartsAt(loc))
	})
	if len(upcoming) > recentLimit {
		upcoming = upcoming[:recentLimit]
	}
	d.Recent = upcoming

	return d, nil
}

func (s *Service) replace(ctx context.Context, op string, businessID int64, services []domain.Service) error {
	if err := s.businessRepo.ReplaceServices(ctx, businessID, services); err != nil {
		return s.mapRepoError(op, businessID, err)
	}
	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, businessRepo.ErrBusinessNotFound) {
		s.logger.Warn("%s: business id=%d not found", op, id)
		return ErrBusinessNotFound
	}
	s.logger.Error("%s: repository error for business id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func toService(id int64, in ServiceInput) domain.Service {
	return domain.Service{
		ID:              id,
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
	}
}
