package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/infra/queue"
	appointmentRepo "github.com/m04kA/BookEasy/internal/infra/storage/appointment"
	"github.com/m04kA/BookEasy/pkg/ptr"
	"github.com/m04kA/BookEasy/pkg/timeutil"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	settings Settings,
	logger Logger,
) *Service {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
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

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return appt, nil
}

// List возвращает записи (включая отмененные) в порядке создания, опционально по вкладке
func (s *Service) List(ctx context.Context, req ListRequest) ([]*domain.Appointment, error) {
	view := req.View
	if view == "" {
		view = domain.ViewAll
	}
	if !view.IsValid() {
		return nil, fmt.Errorf("%w: unknown view %q", ErrInvalidInput, req.View)
	}

	list, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		CustomerID:       req.CustomerID,
		BusinessID:       req.BusinessID,
		IncludeCancelled: true,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return domain.FilterAppointments(list, view, s.timeProvider.Now(), s.settings.Location), nil
}

// ListForCustomer записи клиента на вкладке view (all, upcoming, past, cancelled)
func (s *Service) ListForCustomer(ctx context.Context, customerID string, view domain.BookingsView) ([]*domain.Appointment, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, fmt.Errorf("%w: customerId is required", ErrInvalidInput)
	}
	return s.List(ctx, ListRequest{CustomerID: &customerID, View: view})
}

// ListForBusiness записи бизнеса на вкладке view
func (s *Service) ListForBusiness(ctx context.Context, businessID int64, view domain.BookingsView) ([]*domain.Appointment, error) {
	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}
	return s.List(ctx, ListRequest{BusinessID: &businessID, View: view})
}

// Update применяет частичное изменение. ID сохраняется, отмененную запись вернуть нельзя.
// При переносе на другое время слот проверяется в сериализуемой транзакции.
func (s *Service) Update(ctx context.Context, id int64, patch domain.AppointmentPatch) (*domain.Appointment, error) {
	if err := validatePatch(patch); err != nil {
		s.logger.Warn("Update: invalid patch for appointment id=%d: %v", id, err)
		return nil, err
	}

	now := s.timeProvider.Now()
	var (
		updated   *domain.Appointment
		cancelled bool
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := s.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if appt.IsCancelled() && patch.Status != nil && *patch.Status != domain.StatusCancelled {
			return ErrInvalidTransition
		}

		moved := applyPatch(appt, patch)

		if patch.Status != nil && *patch.Status == domain.StatusCancelled && appt.CancelledAt == nil {
			appt.CancelledAt = ptr.Ptr(now)
			cancelled = true
		}

		if moved && appt.IsActive() {
			others, err := s.appointmentRepo.List(txCtx, domain.AppointmentsFilter{
				BusinessID: ptr.Ptr(appt.BusinessID),
				Date:       ptr.Ptr(appt.Date),
			})
			if err != nil {
				return fmt.Errorf("%w: Update - list appointments: %v", ErrInternal, err)
			}
			if domain.SlotTaken(appt.Time, s.settings.SlotMinutes, excludeID(others, appt.ID), s.settings.DurationAware) {
				return ErrSlotNotAvailable
			}
		}

		if err := s.appointmentRepo.Update(txCtx, appt); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			case errors.Is(err, appointmentRepo.ErrSlotNotAvailable):
				return ErrSlotNotAvailable
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		updated = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			s.metrics.IncSlotConflicts()
		}
		s.logger.Warn("Update: appointment id=%d not updated: %v", id, err)
		return nil, err
	}

	s.logger.Info("Update: successfully updated appointment id=%d", id)

	if cancelled {
		s.metrics.IncAppointmentsCancelled()
		s.publish(ctx, queue.QueueAppointmentCancelled, updated, now)
	}

	return updated, nil
}

// Cancel отменяет запись. Повторная отмена возвращает ErrCannotCancel.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Appointment, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d", id)

	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.IsCancelled() {
		s.logger.Warn("Cancel: appointment id=%d is already cancelled", id)
		return nil, ErrCannotCancel
	}

	now := s.timeProvider.Now()
	if err := s.appointmentRepo.Cancel(ctx, id, now); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	appt.Status = domain.StatusCancelled
	appt.CancelledAt = &now
	appt.UpdatedAt = now

	s.metrics.IncAppointmentsCancelled()
	s.publish(ctx, queue.QueueAppointmentCancelled, appt, now)

	s.logger.Info("Cancel: successfully cancelled appointment id=%d", id)
	return appt, nil
}

// Delete физически удаляет запись
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

// DeleteForBusiness удаляет запись бизнеса. Чужая запись считается ненайденной.
func (s *Service) DeleteForBusiness(ctx context.Context, businessID, id int64) error {
	appt, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appt.BusinessID != businessID {
		s.logger.Warn("DeleteForBusiness: appointment id=%d belongs to business id=%d, not %d", id, appt.BusinessID, businessID)
		return ErrAppointmentNotFound
	}
	return s.Delete(ctx, id)
}

func (s *Service) publish(ctx context.Context, eventType string, appt *domain.Appointment, at time.Time) {
	if err := s.publisher.Publish(ctx, queue.NewAppointmentEvent(eventType, appt, at)); err != nil {
		s.logger.Warn("publish: failed to publish %s for appointment id=%d: %v", eventType, appt.ID, err)
	}
}

// applyPatch применяет изменения и сообщает, изменились ли дата или время
func applyPatch(appt *domain.Appointment, patch domain.AppointmentPatch) bool {
	moved := false

	if patch.CustomerName != nil {
		appt.CustomerName = strings.TrimSpace(*patch.CustomerName)
	}
	if patch.CustomerEmail != nil {
		appt.CustomerEmail = strings.TrimSpace(*patch.CustomerEmail)
	}
	if patch.CustomerPhone != nil {
		appt.CustomerPhone = strings.TrimSpace(*patch.CustomerPhone)
	}
	if patch.Date != nil {
		day := timeutil.StartOfDay(*patch.Date)
		if !timeutil.SameDay(day, appt.Date) {
			moved = true
		}
		appt.Date = day
	}
	if patch.Time != nil && *patch.Time != appt.Time {
		appt.Time = *patch.Time
		moved = true
	}
	if patch.Notes != nil {
		appt.Notes = patch.Notes
	}
	if patch.Status != nil {
		appt.Status = *patch.Status
	}

	return moved
}

func validatePatch(patch domain.AppointmentPatch) error {
	if patch.Status != nil && !patch.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
	}
	if patch.Time != nil {
		if err := patch.Time.Validate(); err != nil {
			return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
		}
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return fmt.Errorf("%w: date must not be empty", ErrInvalidInput)
	}
	if patch.CustomerName != nil && strings.TrimSpace(*patch.CustomerName) == "" {
		return fmt.Errorf("%w: customerName must not be empty", ErrInvalidInput)
	}
	if patch.Notes != nil && len(*patch.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	return nil
}

func excludeID(list []*domain.Appointment, id int64) []*domain.Appointment {
	result := make([]*domain.Appointment, 0, len(list))
	for _, a := range list {
		if a.ID != id {
			result = append(result, a)
		}
	}
	return result
}
