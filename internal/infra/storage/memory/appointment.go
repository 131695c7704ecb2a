package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/BookEasy/internal/domain"
	appointmentRepo "github.com/m04kA/BookEasy/internal/infra/storage/appointment"
	"github.com/m04kA/BookEasy/pkg/types"
)

// AppointmentRepository in-memory хранилище записей.
// Проверка занятости слота и вставка выполняются под одной блокировкой.
type AppointmentRepository struct {
	mu     sync.RWMutex
	items  []*domain.Appointment
	lastID int64
}

// NewAppointmentRepository создает репозиторий с начальными данными (копируются)
func NewAppointmentRepository(seed []*domain.Appointment) *AppointmentRepository {
	r := &AppointmentRepository{items: make([]*domain.Appointment, 0, len(seed))}
	for _, a := range seed {
		r.items = append(r.items, cloneAppointment(a))
		if a.ID > r.lastID {
			r.lastID = a.ID
		}
	}
	return r
}

// Create присваивает следующий ID, удаленные ID не переиспользуются. Активная запись на тот же (business, date, time) даёт ErrSlotNotAvailable.
func (r *AppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if appt.IsActive() && r.slotTaken(appt.BusinessID, appt.Date, appt.Time, 0) {
		return nil, appointmentRepo.ErrSlotNotAvailable
	}

	r.lastID++
	appt.ID = r.lastID
	appt.UpdatedAt = appt.CreatedAt
	r.items = append(r.items, cloneAppointment(appt))

	return cloneAppointment(appt), nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return cloneAppointment(r.items[idx]), nil
}

// List возвращает записи по фильтру в порядке создания
func (r *AppointmentRepository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.items {
		if filter.Matches(a) {
			result = append(result, cloneAppointment(a))
		}
	}
	return result, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(appt.ID)
	if idx < 0 {
		return appointmentRepo.ErrAppointmentNotFound
	}

	if appt.IsActive() && r.slotTaken(appt.BusinessID, appt.Date, appt.Time, appt.ID) {
		return appointmentRepo.ErrSlotNotAvailable
	}

	stored := r.items[idx]
	updated := cloneAppointment(appt)
	updated.ID = stored.ID
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now()
	r.items[idx] = updated

	return nil
}

func (r *AppointmentRepository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return appointmentRepo.ErrAppointmentNotFound
	}

	at := cancelledAt
	r.items[idx].Status = domain.StatusCancelled
	r.items[idx].CancelledAt = &at
	r.items[idx].UpdatedAt = cancelledAt

	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return appointmentRepo.ErrAppointmentNotFound
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return nil
}

// slotTaken ищет активную запись на тот же слот, кроме exceptID
func (r *AppointmentRepository) slotTaken(businessID int64, date time.Time, t types.TimeString, exceptID int64) bool {
	y, m, d := date.Date()
	for _, a := range r.items {
		if a.ID == exceptID || a.BusinessID != businessID || !a.IsActive() {
			continue
		}
		ay, am, ad := a.Date.Date()
		if ay == y && am == m && ad == d && a.Time == t {
			return true
		}
	}
	return false
}

func (r *AppointmentRepository) indexOf(id int64) int {
	for i, a := range r.items {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	c := *a
	if a.Notes != nil {
		notes := *a.Notes
		c.Notes = &notes
	}
	if a.CancelledAt != nil {
		at := *a.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}
