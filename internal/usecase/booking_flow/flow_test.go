package booking_flow

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/infra/queue"
	"github.com/m04kA/BookEasy/internal/infra/storage/draft"
	"github.com/m04kA/BookEasy/internal/infra/storage/memory"
	"github.com/m04kA/BookEasy/internal/usecase/create_appointment"
	"github.com/m04kA/BookEasy/internal/usecase/get_available_slots"
	"github.com/m04kA/BookEasy/pkg/logger"
	"github.com/m04kA/BookEasy/pkg/metrics"
	"github.com/m04kA/BookEasy/pkg/ptr"
	"github.com/m04kA/BookEasy/pkg/types"
)

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return "draft-" + strconv.Itoa(s.n)
}

type testEnv struct {
	flow   *Flow
	appts  *memory.AppointmentRepository
	drafts *draft.MemoryStore
}

func spa() *domain.Business {
	return &domain.Business{
		ID:   3,
		Name: "Serenity Day Spa",
		Services: []domain.Service{
			{ID: 1, BusinessID: 3, Name: "Swedish Massage", DurationMinutes: 60, Price: 95},
			{ID: 2, BusinessID: 3, Name: "Express Facial", DurationMinutes: 30, Price: 45},
		},
	}
}

func newEnv(t *testing.T, seed []*domain.Appointment) *testEnv {
	t.Helper()

	log := logger.Nop()
	businesses := memory.NewBusinessRepository([]*domain.Business{spa()})
	appts := memory.NewAppointmentRepository(seed)
	drafts := draft.NewMemoryStore(time.Hour)

	slots := get_available_slots.NewUseCase(appts, get_available_slots.DefaultSettings(), log)
	var m *metrics.Metrics
	creator := create_appointment.NewUseCase(appts, businesses, memory.NewTxManager(), queue.NoopPublisher{}, m,
		create_appointment.Settings{SlotMinutes: 30}, log)

	flow := NewFlow(drafts, businesses, slots, creator, log).WithIDGenerator(&seqIDs{})
	return &testEnv{flow: flow, appts: appts, drafts: drafts}
}

func fillDraft(t *testing.T, env *testEnv) *domain.BookingDraft {
	t.Helper()
	ctx := context.Background()

	d, err := env.flow.Start(ctx, 3, nil)
	require.NoError(t, err)
	_, err = env.flow.SelectService(ctx, d.ID, 1)
	require.NoError(t, err)
	_, err = env.flow.SelectDateTime(ctx, d.ID, june1, types.MustTimeString("10:30"))
	require.NoError(t, err)
	d, err = env.flow.SetCustomerInfo(ctx, d.ID, domain.CustomerInfo{
		Name:  "Sarah Johnson",
		Email: "sarah.j@email.com",
		Phone: "(555) 123-4567",
	})
	require.NoError(t, err)
	return d
}

func TestFlow_HappyPath(t *testing.T) {
	env := newEnv(t, nil)
	d := fillDraft(t, env)
	assert.Equal(t, domain.StepEnteringDetails, d.Step)

	result, err := env.flow.Submit(context.Background(), d.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StepConfirmed, result.Draft.Step)
	require.NotNil(t, result.Draft.AppointmentID)
	assert.Equal(t, result.Appointment.ID, *result.Draft.AppointmentID)
	assert.Equal(t, domain.StatusConfirmed, result.Appointment.Status)
	assert.Contains(t, result.Appointment.CustomerID, domain.CustomerIDPrefix)
	assert.Equal(t, "Swedish Massage", result.Appointment.ServiceName)

	_, err = env.flow.Get(context.Background(), d.ID)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestFlow_StartWithServiceSkipsServiceStep(t *testing.T) {
	env := newEnv(t, nil)

	d, err := env.flow.Start(context.Background(), 3, ptr.Ptr(int64(2)))
	require.NoError(t, err)
	assert.Equal(t, domain.StepChoosingDateTime, d.Step)
	assert.Equal(t, int64(2), *d.ServiceID)

	_, err = env.flow.Start(context.Background(), 3, ptr.Ptr(int64(77)))
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = env.flow.Start(context.Background(), 99, nil)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestFlow_CannotSkipForward(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	d, err := env.flow.Start(ctx, 3, nil)
	require.NoError(t, err)

	_, err = env.flow.SelectDateTime(ctx, d.ID, june1, types.MustTimeString("10:00"))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.flow.SetCustomerInfo(ctx, d.ID, domain.CustomerInfo{Name: "A", Email: "a@b.c", Phone: "1"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.flow.LoadSlots(ctx, d.ID, june1)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.flow.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFlow_CannotSkipForwardAfterGoingBack(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	d := fillDraft(t, env)

	_, err := env.flow.GoBack(ctx, d.ID, domain.StepChoosingService)
	require.NoError(t, err)

	// данные черновика полные, но шаги нельзя перепрыгнуть
	_, err = env.flow.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.flow.SelectDateTime(ctx, d.ID, june1, types.MustTimeString("11:00"))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.flow.LoadSlots(ctx, d.ID, june1)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := env.flow.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepChoosingService, got.Step)
	assert.Equal(t, "10:30", got.Time.String())

	_, err = env.flow.SelectService(ctx, d.ID, 1)
	require.NoError(t, err)
	_, err = env.flow.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	all, err := env.appts.List(ctx, domain.AppointmentsFilter{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = env.flow.SelectDateTime(ctx, d.ID, june1, types.MustTimeString("11:00"))
	require.NoError(t, err)
	result, err := env.flow.Submit(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "11:00", result.Appointment.Time.String())
}

func TestFlow_SelectTakenSlot(t *testing.T) {
	env := newEnv(t, []*domain.Appointment{{
		ID:         1,
		BusinessID: 3,
		Date:       june1,
		Time:       types.MustTimeString("10:00"),
		Status:     domain.StatusConfirmed,
	}})
	ctx := context.Background()

	d, err := env.flow.Start(ctx, 3, ptr.Ptr(int64(1)))
	require.NoError(t, err)

	_, err = env.flow.SelectDateTime(ctx, d.ID, june1, types.MustTimeString("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	got, err := env.flow.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepChoosingDateTime, got.Step)
	assert.Nil(t, got.Time)
}

func TestFlow_GoBackRetainsData(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	d := fillDraft(t, env)

	back, err := env.flow.GoBack(ctx, d.ID, domain.StepChoosingService)
	require.NoError(t, err)
	assert.Equal(t, domain.StepChoosingService, back.Step)
	assert.Equal(t, int64(1), *back.ServiceID)
	assert.Equal(t, "10:30", back.Time.String())
	assert.Equal(t, "Sarah Johnson", back.Customer.Name)

	_, err = env.flow.GoBack(ctx, d.ID, domain.StepEnteringDetails)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.flow.GoBack(ctx, d.ID, domain.BookingStep("nowhere"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFlow_SubmitIncompleteKeepsDetailsStep(t *testing.T) {
	tests := []struct {
		name string
		info domain.CustomerInfo
	}{
		{name: "без email", info: domain.CustomerInfo{Name: "Sarah", Email: "", Phone: "1"}},
		{name: "без телефона", info: domain.CustomerInfo{Name: "Sarah Johnson", Email: "sarah.j@email.com", Phone: ""}},
		{name: "телефон из пробелов", info: domain.CustomerInfo{Name: "Sarah Johnson", Email: "sarah.j@email.com", Phone: "   "}},
		{name: "без имени", info: domain.CustomerInfo{Name: "", Email: "sarah.j@email.com", Phone: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, nil)
			ctx := context.Background()

			d := fillDraft(t, env)
			_, err := env.flow.SetCustomerInfo(ctx, d.ID, tt.info)
			require.NoError(t, err)

			_, err = env.flow.Submit(ctx, d.ID)
			assert.ErrorIs(t, err, ErrIncompleteDraft)

			got, err := env.flow.Get(ctx, d.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.StepEnteringDetails, got.Step)

			all, err := env.appts.List(ctx, domain.AppointmentsFilter{IncludeCancelled: true})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestFlow_GetReportsGeneration(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	d, err := env.flow.Start(ctx, 3, ptr.Ptr(int64(1)))
	require.NoError(t, err)
	assert.Equal(t, int64(0), d.Generation)

	for i := 0; i < 2; i++ {
		_, err = env.flow.LoadSlots(ctx, d.ID, june1)
		require.NoError(t, err)
	}

	got, err := env.flow.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Generation)

	selected, err := env.flow.SelectDateTime(ctx, d.ID, june1, types.MustTimeString("09:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), selected.Generation)
}

func TestFlow_SubmitConflictReturnsToDetails(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	d := fillDraft(t, env)

	// слот заняли после выбора
	_, err := env.appts.Create(ctx, &domain.Appointment{
		BusinessID: 3,
		Date:       june1,
		Time:       types.MustTimeString("10:30"),
		Status:     domain.StatusConfirmed,
	})
	require.NoError(t, err)

	_, err = env.flow.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	got, err := env.flow.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StepEnteringDetails, got.Step)
	assert.NotEmpty(t, got.LastError)
	assert.Equal(t, "Sarah Johnson", got.Customer.Name)
}

func TestFlow_SubmitWhileSubmitting(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()
	d := fillDraft(t, env)

	d.Step = domain.StepSubmitting
	require.NoError(t, env.drafts.Save(ctx, d))

	_, err := env.flow.Submit(ctx, d.ID)
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	_, err = env.flow.SelectService(ctx, d.ID, 2)
	assert.ErrorIs(t, err, ErrSubmitInProgress)
}

type blockingSlots struct {
	inner   SlotsUseCase
	release chan struct{}
	entered chan struct{}
	first   sync.Once
}

func (b *blockingSlots) Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	block := false
	b.first.Do(func() { block = true })
	if block {
		close(b.entered)
		<-b.release
	}
	return b.inner.Execute(ctx, req)
}

func TestFlow_LoadSlotsDiscardsStaleResult(t *testing.T) {
	env := newEnv(t, nil)
	ctx := context.Background()

	blocking := &blockingSlots{
		inner:   env.flow.slots,
		release: make(chan struct{}),
		entered: make(chan struct{}),
	}
	env.flow.slots = blocking

	d, err := env.flow.Start(ctx, 3, ptr.Ptr(int64(1)))
	require.NoError(t, err)

	var staleErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, staleErr = env.flow.LoadSlots(ctx, d.ID, june1)
	}()

	<-blocking.entered
	fresh, err := env.flow.LoadSlots(ctx, d.ID, june1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(2), fresh.Generation)
	assert.Len(t, fresh.Slots, 18)

	close(blocking.release)
	<-done
	assert.ErrorIs(t, staleErr, ErrStaleRequest)
}
