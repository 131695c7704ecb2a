package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/infra/queue"
	appointmentRepo "github.com/m04kA/BookEasy/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/BookEasy/internal/infra/storage/business"
	"github.com/m04kA/BookEasy/pkg/ptr"
	"github.com/m04kA/BookEasy/pkg/timeutil"
)

// UseCase use case для создания записи на услугу
type UseCase struct {
	appointmentRepo AppointmentRepository
	businessRepo    BusinessRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	settings        Settings
	ids             IDGenerator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		businessRepo:    businessRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		settings:        settings,
		ids:             UUIDGenerator{},
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithIDGenerator подменяет генератор customerId (для тестов)
func (uc *UseCase) WithIDGenerator(ids IDGenerator) *UseCase {
	uc.ids = ids
	return uc
}

// Execute выполняет use case создания записи.
// Проверка занятости и вставка выполняются в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date := timeutil.StartOfDay(req.Date)

	uc.logger.Info("CreateAppointment: business=%d, service=%d, date=%s, time=%s",
		req.BusinessID, req.ServiceID, date.Format(domain.DateFormat), req.Time)

	// 2. Получаем бизнес и услугу
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateAppointment: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	service, ok := business.FindService(req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateAppointment: service id=%d not found in business id=%d", req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	customerID := strings.TrimSpace(req.CustomerID)
	if customerID == "" {
		customerID = domain.CustomerIDPrefix + uc.ids.NewID()
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	// 3. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Активные записи бизнеса на дату с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
			BusinessID: ptr.Ptr(req.BusinessID),
			Date:       ptr.Ptr(date),
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// 3.2. Проверяем доступность слота
		if domain.SlotTaken(req.Time, uc.settings.SlotMinutes, existing, uc.settings.DurationAware) {
			return ErrSlotNotAvailable
		}

		// 3.3. Создаем запись с денормализацией данных услуги
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			BusinessID:      req.BusinessID,
			CustomerID:      customerID,
			CustomerName:    strings.TrimSpace(req.CustomerName),
			CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
			CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			Date:            date,
			Time:            req.Time,
			DurationMinutes: service.DurationMinutes,
			Price:           service.Price,
			Notes:           req.Notes,
			Status:          domain.StatusConfirmed,
			CreatedAt:       now,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.IncSlotConflicts()
			uc.logger.Warn("CreateAppointment: slot %s %s is taken for business id=%d",
				date.Format(domain.DateFormat), req.Time, req.BusinessID)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateAppointment: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncAppointmentsCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// 4. Событие публикуется после коммита, ошибка публикации не отменяет запись
	if err := uc.publisher.Publish(ctx, queue.NewAppointmentEvent(queue.QueueAppointmentCreated, result, now)); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%d: %v", result.ID, err)
	}

	return result, nil
}
