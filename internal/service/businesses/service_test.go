package businesses

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BookEasy/internal/domain"
	"github.com/m04kA/BookEasy/internal/infra/storage/memory"
	"github.com/m04kA/BookEasy/pkg/logger"
	"github.com/m04kA/BookEasy/pkg/ptr"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	d, _ := time.Parse(domain.DateFormat, s)
	return d
}

func seedBusinesses() []*domain.Business {
	return []*domain.Business{
		{
			ID: 1, Name: "Glamour Hair Studio", Type: domain.BusinessTypeSalon, Rating: 4.8, Featured: true,
			Description: "Full service salon",
			Location:    domain.Location{City: "New York", Area: "Manhattan"},
			Services: []domain.Service{
				{ID: 1, Name: "Haircut", DurationMinutes: 60, Price: 65},
				{ID: 2, Name: "Hair Coloring", DurationMinutes: 120, Price: 150},
			},
		},
		{
			ID: 2, Name: "Bright Smile Dental", Type: domain.BusinessTypeDental, Rating: 4.9, Featured: true,
			Location: domain.Location{City: "Brooklyn", Area: "Park Slope"},
			Services: []domain.Service{{ID: 1, Name: "Cleaning", DurationMinutes: 60, Price: 120}},
		},
		{
			ID: 3, Name: "Zen Spa", Type: domain.BusinessTypeSpa, Rating: 4.8, Featured: false,
			Location: domain.Location{City: "New York", Area: "SoHo"},
			Services: []domain.Service{{ID: 1, Name: "Massage", DurationMinutes: 60, Price: 40}},
		},
		{
			ID: 4, Name: "Iron Gym", Type: domain.BusinessTypeFitness, Rating: 4.2,
			Location: domain.Location{City: "Queens", Area: "Astoria"},
			Services: []domain.Service{{ID: 1, Name: "Personal Training", DurationMinutes: 60, Price: 200}},
		},
	}
}

func seedAppointments() []*domain.Appointment {
	return []*domain.Appointment{
		{ID: 1, BusinessID: 1, Date: day("2024-06-01"), Time: "10:00", Price: 65, Status: domain.StatusCompleted},
		{ID: 2, BusinessID: 1, Date: day("2024-06-03"), Time: "14:30", Price: 150, Status: domain.StatusConfirmed},
		{ID: 3, BusinessID: 1, Date: day("2024-06-02"), Time: "09:00", Price: 65, Status: domain.StatusConfirmed},
		{ID: 4, BusinessID: 1, Date: day("2024-06-04"), Time: "11:00", Price: 65, Status: domain.StatusCancelled},
		{ID: 5, BusinessID: 2, Date: day("2024-06-03"), Time: "11:00", Price: 120, Status: domain.StatusConfirmed},
	}
}

func newService() *Service {
	return NewService(
		memory.NewBusinessRepository(seedBusinesses()),
		memory.NewAppointmentRepository(seedAppointments()),
		Settings{},
		logger.Nop(),
	).WithTimeProvider(fixedClock{now: now})
}

func names(list []*domain.Business) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Name
	}
	return out
}

func TestSearch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria domain.SearchCriteria
		want     []string
	}{
		{"empty criteria keeps store order", domain.SearchCriteria{}, []string{"Glamour Hair Studio", "Bright Smile Dental", "Zen Spa", "Iron Gym"}},
		{"query matches service name", domain.SearchCriteria{Query: "massage"}, []string{"Zen Spa"}},
		{"query matches description", domain.SearchCriteria{Query: "FULL SERVICE"}, []string{"Glamour Hair Studio"}},
		{"location matches city or area", domain.SearchCriteria{Location: "new york"}, []string{"Glamour Hair Studio", "Zen Spa"}},
		{"category all", domain.SearchCriteria{Category: "all"}, []string{"Glamour Hair Studio", "Bright Smile Dental", "Zen Spa", "Iron Gym"}},
		{"category exact", domain.SearchCriteria{Category: "dental"}, []string{"Bright Smile Dental"}},
		{"rating desc is stable", domain.SearchCriteria{SortBy: domain.SortRating}, []string{"Bright Smile Dental", "Glamour Hair Studio", "Zen Spa", "Iron Gym"}},
		{"price low", domain.SearchCriteria{SortBy: domain.SortPriceLow}, []string{"Zen Spa", "Glamour Hair Studio", "Bright Smile Dental", "Iron Gym"}},
		{"price high", domain.SearchCriteria{SortBy: domain.SortPriceHigh}, []string{"Iron Gym", "Bright Smile Dental", "Glamour Hair Studio", "Zen Spa"}},
		{"name", domain.SearchCriteria{SortBy: domain.SortName}, []string{"Bright Smile Dental", "Glamour Hair Studio", "Iron Gym", "Zen Spa"}},
		{"medium price band", domain.SearchCriteria{PriceRange: domain.PriceRangeMedium}, []string{"Glamour Hair Studio", "Bright Smile Dental"}},
		{"no match is empty", domain.SearchCriteria{Query: "bowling"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.Search(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(list))
		})
	}

	_, err := svc.Search(ctx, domain.SearchCriteria{SortBy: "popularity"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListFeaturedAndCategory(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	featured, err := svc.ListFeatured(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Glamour Hair Studio", "Bright Smile Dental"}, names(featured))

	featured, err = svc.ListFeatured(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, featured, 1)

	spas, err := svc.ListByCategory(ctx, "spa")
	require.NoError(t, err)
	assert.Equal(t, []string{"Zen Spa"}, names(spas))

	all, err := svc.ListByCategory(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestCreate_AppliesDefaults(t *testing.T) {
	svc := newService()

	created, err := svc.Create(context.Background(), CreateRequest{
		Name:     "Fresh Cuts",
		Type:     domain.BusinessTypeSalon,
		Email:    "owner@freshcuts.test",
		Services: []ServiceInput{{Name: "Fade", DurationMinutes: 30, Price: 25}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), created.ID)
	assert.Zero(t, created.Rating)
	assert.Zero(t, created.ReviewCount)
	assert.False(t, created.Featured)
	require.Len(t, created.Services, 1)
	assert.Equal(t, int64(1), created.Services[0].ID)
	assert.Equal(t, now, created.CreatedAt)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "Copy", Email: "OWNER@freshcuts.test"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Create(context.Background(), CreateRequest{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), CreateRequest{Name: "Bowling", Type: "bowling"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_KeepsIDAndServices(t *testing.T) {
	svc := newService()

	updated, err := svc.Update(context.Background(), 3, domain.BusinessPatch{
		Name:   ptr.Ptr("Zen Day Spa"),
		Rating: ptr.Ptr(4.5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), updated.ID)
	assert.Equal(t, "Zen Day Spa", updated.Name)

	stored, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Zen Day Spa", stored.Name)
	assert.Len(t, stored.Services, 1)

	_, err = svc.Update(context.Background(), 3, domain.BusinessPatch{Rating: ptr.Ptr(7.0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), 99, domain.BusinessPatch{})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestServices_AddUpdateDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	added, err := svc.AddService(ctx, 1, ServiceInput{Name: "Blowout", DurationMinutes: 45, Price: 40})
	require.NoError(t, err)
	assert.Equal(t, int64(3), added.ID)

	changed, err := svc.UpdateService(ctx, 1, 3, ServiceInput{Name: "Blowout Deluxe", DurationMinutes: 60, Price: 55})
	require.NoError(t, err)
	assert.Equal(t, int64(3), changed.ID)

	b, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, b.Services, 3)
	assert.Equal(t, "Blowout Deluxe", b.Services[2].Name)

	require.NoError(t, svc.DeleteService(ctx, 1, 1))
	b, err = svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, b.Services, 2)

	assert.ErrorIs(t, svc.DeleteService(ctx, 1, 1), ErrServiceNotFound)

	_, err = svc.UpdateService(ctx, 1, 42, ServiceInput{Name: "x", DurationMinutes: 10})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.AddService(ctx, 1, ServiceInput{Name: "Free", DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReplaceServices_AssignsMissingIDs(t *testing.T) {
	svc := newService()

	result, err := svc.ReplaceServices(context.Background(), 2, []domain.Service{
		{ID: 4, Name: "Whitening", DurationMinutes: 90, Price: 300},
		{Name: "Checkup", DurationMinutes: 30, Price: 80},
	})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, int64(4), result[0].ID)
	assert.Equal(t, int64(5), result[1].ID)

	_, err = svc.ReplaceServices(context.Background(), 2, []domain.Service{
		{ID: 1, Name: "a", DurationMinutes: 10},
		{ID: 1, Name: "b", DurationMinutes: 10},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDashboard(t *testing.T) {
	svc := newService()

	d, err := svc.Dashboard(context.Background(), 1, now)
	require.NoError(t, err)

	assert.Equal(t, 4, d.TotalBookings)
	assert.Equal(t, 2, d.UpcomingBookings)
	assert.Equal(t, 1, d.PastBookings)
	assert.Equal(t, 1, d.CancelledBookings)
	assert.InDelta(t, 280.0, d.Revenue, 0.001)
	assert.Equal(t, 2, d.ServiceCount)
	require.Len(t, d.Recent, 2)
	assert.Equal(t, int64(3), d.Recent[0].ID)
	assert.Equal(t, int64(2), d.Recent[1].ID)

	_, err = svc.Dashboard(context.Background(), 99, now)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestDelete(t *testing.T) {
	svc := newService()

	require.NoError(t, svc.Delete(context.Background(), 4))
	_, err := svc.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 4), ErrBusinessNotFound)
}
