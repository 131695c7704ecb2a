package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/pkg/ptr"
	"github.com/m04kA/BookEasy/pkg/timeutil"
)

// UseCase use case для получения свободных слотов бизнеса на дату.
// Существование бизнеса не проверяется: для неизвестного ID вернется вся сетка.
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        Settings
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, settings Settings, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		logger:          logger,
	}
}

// Settings параметры сетки, с которыми работает use case
func (uc *UseCase) Settings() Settings {
	return uc.settings
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := timeutil.StartOfDay(req.Date)

	// 2. Генерируем сетку
	grid, err := timeutil.GenerateTimeSlots(uc.settings.GridStart, uc.settings.GridEnd, uc.settings.IntervalMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 3. Получаем активные записи бизнеса на дату
	appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		BusinessID: ptr.Ptr(req.BusinessID),
		Date:       ptr.Ptr(date),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Исключаем занятые слоты
	slots := freeSlots(grid, appointments, uc.settings)

	uc.logger.Info("GetAvailableSlots: business=%d, date=%s, %d of %d slots free",
		req.BusinessID, date.Format(domain.DateFormat), len(slots), len(grid))

	return &Response{
		BusinessID: req.BusinessID,
		Date:       date,
		Slots:      slots,
	}, nil
}
