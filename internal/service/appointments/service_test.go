package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/infra/queue"
	"github.com/m04kA/BookEasy/internal/infra/storage/memory"
	"github.com/m04kA/BookEasy/pkg/logger"
	"github.com/m04kA/BookEasy/pkg/ptr"
	"github.com/m04kA/BookEasy/pkg/types"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event queue.AppointmentEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) IncAppointmentsCancelled() { m.Called() }
func (m *mockMetrics) IncSlotConflicts()         { m.Called() }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func seed() []*domain.Appointment {
	return []*domain.Appointment{
		{ID: 1, BusinessID: 3, CustomerID: "customer_1", Date: day("2024-06-01"), Time: "10:00", Status: domain.StatusConfirmed},
		{ID: 2, BusinessID: 1, CustomerID: "customer_1", Date: day("2024-06-03"), Time: "14:30", Status: domain.StatusConfirmed},
		{ID: 3, BusinessID: 2, CustomerID: "customer_2", Date: day("2024-05-10"), Time: "09:00", Status: domain.StatusCompleted},
		{ID: 4, BusinessID: 3, CustomerID: "customer_1", Date: day("2024-06-10"), Time: "13:00", Status: domain.StatusCancelled},
		{ID: 5, BusinessID: 3, CustomerID: "customer_2", Date: day("2024-06-01"), Time: "15:00", Status: domain.StatusConfirmed},
	}
}

type fixture struct {
	svc       *Service
	repo      *memory.AppointmentRepository
	publisher *mockPublisher
	metrics   *mockMetrics
}

func newFixture() *fixture {
	f := &fixture{
		repo:      memory.NewAppointmentRepository(seed()),
		publisher: &mockPublisher{},
		metrics:   &mockMetrics{},
	}
	f.svc = NewService(f.repo, memory.NewTxManager(), f.publisher, f.metrics,
		Settings{SlotMinutes: 30}, logger.Nop()).WithTimeProvider(fixedClock{now: now})
	return f
}

func ids(list []*domain.Appointment) []int64 {
	out := make([]int64, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestListForCustomer_Views(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		view domain.BookingsView
		want []int64
	}{
		{domain.ViewAll, []int64{1, 2, 4}},
		{"", []int64{1, 2, 4}},
		// 10:00 сегодня уже прошло
		{domain.ViewUpcoming, []int64{2}},
		{domain.ViewPast, []int64{1}},
		{domain.ViewCancelled, []int64{4}},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			list, err := f.svc.ListForCustomer(ctx, "customer_1", tt.view)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list))
		})
	}

	_, err := f.svc.ListForCustomer(ctx, "customer_1", "later")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ListForCustomer(ctx, " ", domain.ViewAll)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListForBusiness(t *testing.T) {
	f := newFixture()

	list, err := f.svc.ListForBusiness(context.Background(), 3, domain.ViewAll)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4, 5}, ids(list))
}

func TestCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.metrics.On("IncAppointmentsCancelled").Once()
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e queue.AppointmentEvent) bool {
		return e.Type == queue.QueueAppointmentCancelled && e.AppointmentID == 1
	})).Return(nil).Once()

	cancelled, err := f.svc.Cancel(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, now, *cancelled.CancelledAt)

	stored, err := f.svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, stored.IsCancelled())

	_, err = f.svc.Cancel(ctx, 1)
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = f.svc.Cancel(ctx, 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	f.metrics.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestUpdate_PreservesIDAndPatchesNotes(t *testing.T) {
	f := newFixture()

	updated, err := f.svc.Update(context.Background(), 2, domain.AppointmentPatch{Notes: ptr.Ptr("bring reference photo")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.ID)
	assert.Equal(t, "bring reference photo", *updated.Notes)

	stored, err := f.svc.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "bring reference photo", *stored.Notes)
}

func TestUpdate_CannotRestoreCancelled(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(context.Background(), 4, domain.AppointmentPatch{Status: ptr.Ptr(domain.StatusConfirmed)})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdate_MoveToTakenSlot(t *testing.T) {
	f := newFixture()
	f.metrics.On("IncSlotConflicts").Once()

	_, err := f.svc.Update(context.Background(), 5, domain.AppointmentPatch{Time: ptr.Ptr(types.TimeString("10:00"))})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.metrics.AssertExpectations(t)

	moved, err := f.svc.Update(context.Background(), 5, domain.AppointmentPatch{Time: ptr.Ptr(types.TimeString("10:30"))})
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), moved.Time)
}

func TestUpdate_StatusCancelledPublishes(t *testing.T) {
	f := newFixture()
	f.metrics.On("IncAppointmentsCancelled").Once()
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := f.svc.Update(context.Background(), 2, domain.AppointmentPatch{Status: ptr.Ptr(domain.StatusCancelled)})
	require.NoError(t, err)
	assert.True(t, updated.IsCancelled())
	assert.NotNil(t, updated.CancelledAt)

	f.metrics.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestUpdate_InvalidPatch(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Update(context.Background(), 2, domain.AppointmentPatch{Status: ptr.Ptr(domain.AppointmentStatus("lost"))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Update(context.Background(), 404, domain.AppointmentPatch{})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture()

	require.NoError(t, f.svc.Delete(context.Background(), 3))
	_, err := f.svc.GetByID(context.Background(), 3)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), 3), ErrAppointmentNotFound)
}

func TestDeleteForBusiness(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// запись 2 принадлежит бизнесу 1
	assert.ErrorIs(t, f.svc.DeleteForBusiness(ctx, 3, 2), ErrAppointmentNotFound)
	_, err := f.svc.GetByID(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteForBusiness(ctx, 3, 5))
	_, err = f.svc.GetByID(ctx, 5)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.ErrorIs(t, f.svc.DeleteForBusiness(ctx, 3, 404), ErrAppointmentNotFound)
}
