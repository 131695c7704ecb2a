package booking_flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/BookEasy/internal/domain"
	businessRepo "github.com/m04kA/BookEasy/internal/infra/storage/business"
	"github.com/m04kA/BookEasy/internal/infra/storage/draft"
	"github.com/m04kA/BookEasy/internal/usecase/create_appointment"
	"github.com/m04kA/BookEasy/internal/usecase/get_available_slots"
	"github.com/m04kA/BookEasy/pkg/timeutil"
	"github.com/m04kA/BookEasy/pkg/types"
)

// UUIDGenerator генерирует ID черновиков
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Flow пошаговое оформление записи: услуга → дата и время → контакты → отправка.
// Состояние хранится в черновике, поэтому шаги могут приходить отдельными запросами.
type Flow struct {
	drafts       DraftStore
	businessRepo BusinessRepository
	slots        SlotsUseCase
	creator      CreateUseCase
	ids          IDGenerator
	timeProvider TimeProvider
	logger       Logger
	locks        draftLocks
}

// NewFlow создает новый экземпляр use case
func NewFlow(
	drafts DraftStore,
	businessRepo BusinessRepository,
	slots SlotsUseCase,
	creator CreateUseCase,
	logger Logger,
) *Flow {
	return &Flow{
		drafts:       drafts,
		businessRepo: businessRepo,
		slots:        slots,
		creator:      creator,
		ids:          UUIDGenerator{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (f *Flow) WithTimeProvider(tp TimeProvider) *Flow {
	f.timeProvider = tp
	return f
}

// WithIDGenerator подменяет генератор ID черновиков (для тестов)
func (f *Flow) WithIDGenerator(ids IDGenerator) *Flow {
	f.ids = ids
	return f
}

// Start создает черновик. С serviceID черновик сразу начинается с выбора даты.
func (f *Flow) Start(ctx context.Context, businessID int64, serviceID *int64) (*domain.BookingDraft, error) {
	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	business, err := f.getBusiness(ctx, "Start", businessID)
	if err != nil {
		return nil, err
	}

	now := f.timeProvider.Now()
	d := &domain.BookingDraft{
		ID:         f.ids.NewID(),
		BusinessID: businessID,
		Step:       domain.StepChoosingService,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if serviceID != nil {
		if _, ok := business.FindService(*serviceID); !ok {
			f.logger.Warn("BookingFlow.Start: service id=%d not found in business id=%d", *serviceID, businessID)
			return nil, ErrServiceNotFound
		}
		id := *serviceID
		d.ServiceID = &id
		d.Step = domain.StepChoosingDateTime
	}

	if err := f.save(ctx, "Start", d); err != nil {
		return nil, err
	}

	f.logger.Info("BookingFlow.Start: draft=%s, business=%d, step=%s", d.ID, businessID, d.Step)
	return d, nil
}

// Get возвращает черновик
func (f *Flow) Get(ctx context.Context, draftID string) (*domain.BookingDraft, error) {
	return f.load(ctx, "Get", draftID)
}

// SelectService выбирает услугу и переводит черновик к выбору даты
func (f *Flow) SelectService(ctx context.Context, draftID string, serviceID int64) (*domain.BookingDraft, error) {
	unlock := f.locks.lock(draftID)
	defer unlock()

	d, err := f.load(ctx, "SelectService", draftID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(d, domain.StepChoosingService, domain.StepChoosingDateTime); err != nil {
		return nil, err
	}

	business, err := f.getBusiness(ctx, "SelectService", d.BusinessID)
	if err != nil {
		return nil, err
	}
	if _, ok := business.FindService(serviceID); !ok {
		f.logger.Warn("BookingFlow.SelectService: service id=%d not found in business id=%d", serviceID, d.BusinessID)
		return nil, ErrServiceNotFound
	}

	d.ServiceID = &serviceID
	d.Step = domain.StepChoosingDateTime
	d.LastError = ""

	if err := f.save(ctx, "SelectService", d); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadSlots загружает свободные слоты на дату. Если пока шла загрузка
// был начат более новый запрос, результат отбрасывается с ErrStaleRequest.
func (f *Flow) LoadSlots(ctx context.Context, draftID string, date time.Time) (*SlotsResult, error) {
	d, err := f.load(ctx, "LoadSlots", draftID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(d, domain.StepChoosingDateTime, domain.StepEnteringDetails); err != nil {
		return nil, err
	}
	if !d.HasService() {
		return nil, fmt.Errorf("%w: choose a service first", ErrInvalidTransition)
	}

	generation, err := f.drafts.NextGeneration(ctx, draftID)
	if err != nil {
		f.logger.Error("BookingFlow.LoadSlots: failed to advance generation for draft=%s: %v", draftID, err)
		return nil, fmt.Errorf("%w: failed to advance generation: %v", ErrInternal, err)
	}

	resp, err := f.slots.Execute(ctx, &get_available_slots.Request{BusinessID: d.BusinessID, Date: date})
	if err != nil {
		return nil, mapSlotsError(err)
	}

	current, err := f.drafts.Generation(ctx, draftID)
	if err != nil {
		f.logger.Error("BookingFlow.LoadSlots: failed to read generation for draft=%s: %v", draftID, err)
		return nil, fmt.Errorf("%w: failed to read generation: %v", ErrInternal, err)
	}
	if current != generation {
		f.logger.Info("BookingFlow.LoadSlots: draft=%s discarded generation %d, current is %d", draftID, generation, current)
		return nil, ErrStaleRequest
	}

	return &SlotsResult{
		DraftID:    draftID,
		Generation: generation,
		Date:       resp.Date,
		Slots:      resp.Slots,
	}, nil
}

// SelectDateTime выбирает слот. Слот должен быть в списке свободных на момент выбора.
func (f *Flow) SelectDateTime(ctx context.Context, draftID string, date time.Time, at types.TimeString) (*domain.BookingDraft, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := at.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	unlock := f.locks.lock(draftID)
	defer unlock()

	d, err := f.load(ctx, "SelectDateTime", draftID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(d, domain.StepChoosingDateTime, domain.StepEnteringDetails); err != nil {
		return nil, err
	}
	if !d.HasService() {
		return nil, fmt.Errorf("%w: choose a service first", ErrInvalidTransition)
	}

	resp, err := f.slots.Execute(ctx, &get_available_slots.Request{BusinessID: d.BusinessID, Date: date})
	if err != nil {
		return nil, mapSlotsError(err)
	}
	if !containsSlot(resp.Slots, at) {
		f.logger.Warn("BookingFlow.SelectDateTime: slot %s %s is not available for business id=%d",
			date.Format(domain.DateFormat), at, d.BusinessID)
		return nil, ErrSlotNotAvailable
	}

	day := timeutil.StartOfDay(date)
	d.Date = &day
	d.Time = &at
	d.Step = domain.StepEnteringDetails
	d.LastError = ""

	if err := f.save(ctx, "SelectDateTime", d); err != nil {
		return nil, err
	}
	return d, nil
}

// SetCustomerInfo сохраняет контактные данные. Полноту проверяет Submit.
func (f *Flow) SetCustomerInfo(ctx context.Context, draftID string, info domain.CustomerInfo) (*domain.BookingDraft, error) {
	if info.Notes != nil && len(*info.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	unlock := f.locks.lock(draftID)
	defer unlock()

	d, err := f.load(ctx, "SetCustomerInfo", draftID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(d, domain.StepEnteringDetails); err != nil {
		return nil, err
	}

	d.Customer = domain.CustomerInfo{
		Name:  strings.TrimSpace(info.Name),
		Email: strings.TrimSpace(info.Email),
		Phone: strings.TrimSpace(info.Phone),
		Notes: info.Notes,
	}

	if err := f.save(ctx, "SetCustomerInfo", d); err != nil {
		return nil, err
	}
	return d, nil
}

// GoBack возвращает черновик на более ранний шаг. Собранные данные сохраняются.
func (f *Flow) GoBack(ctx context.Context, draftID string, step domain.BookingStep) (*domain.BookingDraft, error) {
	unlock := f.locks.lock(draftID)
	defer unlock()

	d, err := f.load(ctx, "GoBack", draftID)
	if err != nil {
		return nil, err
	}
	if err := ensureEditable(d); err != nil {
		return nil, err
	}
	if step.Order() == 0 || step.Order() >= d.Step.Order() {
		return nil, fmt.Errorf("%w: cannot go from %s to %s", ErrInvalidTransition, d.Step, step)
	}

	d.Step = step
	if err := f.save(ctx, "GoBack", d); err != nil {
		return nil, err
	}
	return d, nil
}

// Submit создает запись по черновику. При ошибке черновик возвращается к вводу контактов.
func (f *Flow) Submit(ctx context.Context, draftID string) (*SubmitResult, error) {
	d, err := f.beginSubmit(ctx, draftID)
	if err != nil {
		return nil, err
	}

	appt, createErr := f.creator.Execute(ctx, &create_appointment.Request{
		BusinessID:    d.BusinessID,
		ServiceID:     *d.ServiceID,
		CustomerName:  d.Customer.Name,
		CustomerEmail: d.Customer.Email,
		CustomerPhone: d.Customer.Phone,
		Date:          *d.Date,
		Time:          *d.Time,
		Notes:         d.Customer.Notes,
	})

	unlock := f.locks.lock(draftID)
	defer unlock()

	if createErr != nil {
		d.Step = domain.StepEnteringDetails
		d.LastError = createErr.Error()
		if err := f.save(ctx, "Submit", d); err != nil {
			f.logger.Error("BookingFlow.Submit: failed to restore draft=%s: %v", draftID, err)
		}
		f.logger.Warn("BookingFlow.Submit: draft=%s failed: %v", draftID, createErr)
		return nil, mapCreateError(createErr)
	}

	d.Step = domain.StepConfirmed
	d.AppointmentID = &appt.ID
	d.LastError = ""
	d.UpdatedAt = f.timeProvider.Now()

	if err := f.drafts.Delete(ctx, draftID); err != nil {
		f.logger.Warn("BookingFlow.Submit: failed to delete confirmed draft=%s: %v", draftID, err)
	}

	f.logger.Info("BookingFlow.Submit: draft=%s confirmed as appointment id=%d", draftID, appt.ID)
	return &SubmitResult{Draft: d, Appointment: appt}, nil
}

// beginSubmit проверяет готовность черновика и переводит его в submitting
func (f *Flow) beginSubmit(ctx context.Context, draftID string) (*domain.BookingDraft, error) {
	unlock := f.locks.lock(draftID)
	defer unlock()

	d, err := f.load(ctx, "Submit", draftID)
	if err != nil {
		return nil, err
	}

	switch d.Step {
	case domain.StepSubmitting:
		return nil, ErrSubmitInProgress
	case domain.StepConfirmed:
		return nil, fmt.Errorf("%w: draft is already confirmed", ErrInvalidTransition)
	case domain.StepEnteringDetails:
	default:
		return nil, fmt.Errorf("%w: submit is allowed only at step %s, draft is at %s",
			ErrInvalidTransition, domain.StepEnteringDetails, d.Step)
	}

	if !d.ReadyToSubmit() {
		return nil, fmt.Errorf("%w: service, date, time, name, email and phone are required", ErrIncompleteDraft)
	}

	d.Step = domain.StepSubmitting
	d.LastError = ""
	if err := f.save(ctx, "Submit", d); err != nil {
		return nil, err
	}
	return d, nil
}

func (f *Flow) load(ctx context.Context, op, draftID string) (*domain.BookingDraft, error) {
	if strings.TrimSpace(draftID) == "" {
		return nil, fmt.Errorf("%w: draftId is required", ErrInvalidInput)
	}

	d, err := f.drafts.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, draft.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		f.logger.Error("BookingFlow.%s: failed to load draft=%s: %v", op, draftID, err)
		return nil, fmt.Errorf("%w: failed to load draft: %v", ErrInternal, err)
	}

	generation, err := f.drafts.Generation(ctx, draftID)
	if err != nil {
		f.logger.Error("BookingFlow.%s: failed to read generation for draft=%s: %v", op, draftID, err)
		return nil, fmt.Errorf("%w: failed to read generation: %v", ErrInternal, err)
	}
	d.Generation = generation
	return d, nil
}

func (f *Flow) save(ctx context.Context, op string, d *domain.BookingDraft) error {
	d.UpdatedAt = f.timeProvider.Now()
	if err := f.drafts.Save(ctx, d); err != nil {
		f.logger.Error("BookingFlow.%s: failed to save draft=%s: %v", op, d.ID, err)
		return fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}
	return nil
}

func (f *Flow) getBusiness(ctx context.Context, op string, businessID int64) (*domain.Business, error) {
	business, err := f.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			f.logger.Warn("BookingFlow.%s: business id=%d not found", op, businessID)
			return nil, ErrBusinessNotFound
		}
		f.logger.Error("BookingFlow.%s: failed to get business id=%d: %v", op, businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	return business, nil
}

// ensureEditable запрещает изменения во время отправки и после подтверждения
func ensureEditable(d *domain.BookingDraft) error {
	switch d.Step {
	case domain.StepSubmitting:
		return ErrSubmitInProgress
	case domain.StepConfirmed:
		return fmt.Errorf("%w: draft is already confirmed", ErrInvalidTransition)
	}
	return nil
}

// requireStep пропускает действие только с перечисленных шагов
func requireStep(d *domain.BookingDraft, allowed ...domain.BookingStep) error {
	if err := ensureEditable(d); err != nil {
		return err
	}
	for _, step := range allowed {
		if d.Step == step {
			return nil
		}
	}
	return fmt.Errorf("%w: action is not allowed at step %s", ErrInvalidTransition, d.Step)
}

func containsSlot(slots []domain.AvailableSlot, at types.TimeString) bool {
	for _, s := range slots {
		if s.Time == at {
			return true
		}
	}
	return false
}

func mapSlotsError(err error) error {
	if errors.Is(err, get_available_slots.ErrInvalidInput) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return fmt.Errorf("%w: failed to load slots: %v", ErrInternal, err)
}

func mapCreateError(err error) error {
	switch {
	case errors.Is(err, create_appointment.ErrSlotNotAvailable):
		return ErrSlotNotAvailable
	case errors.Is(err, create_appointment.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, create_appointment.ErrBusinessNotFound):
		return ErrBusinessNotFound
	case errors.Is(err, create_appointment.ErrServiceNotFound):
		return ErrServiceNotFound
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
